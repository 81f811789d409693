package handlers

import (
	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/campaign-studio/backend/internal/middleware"
	"github.com/campaign-studio/backend/internal/models"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BrandHandler struct {
	brandService *services.BrandService
	log          *zap.Logger
}

func NewBrandHandler(brandService *services.BrandService, log *zap.Logger) *BrandHandler {
	return &BrandHandler{brandService: brandService, log: log}
}

func (h *BrandHandler) CreateBrand(c *fiber.Ctx) error {
	var req dto.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name is required"})
	}

	brand := &models.Brand{
		Name:           req.Name,
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		BrandVoice:     req.BrandVoice,
		CoreValues:     req.CoreValues,
		ColorPalette:   req.ColorPalette,
		LogoURL:        req.LogoURL,
		WebsiteURL:     req.WebsiteURL,
	}

	userID := middleware.GetUserID(c)
	if err := h.brandService.Create(c.Context(), userID, brand); err != nil {
		h.log.Error("create brand failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: brand})
}

func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	brands, err := h.brandService.List(c.Context(), userID)
	if err != nil {
		h.log.Error("list brands failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: brands})
}

func (h *BrandHandler) GetBrand(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid brand id"})
	}

	userID := middleware.GetUserID(c)
	brand, err := h.brandService.GetByID(c.Context(), id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "brand not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: brand})
}

func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid brand id"})
	}

	var req dto.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	brand := &models.Brand{
		Name:           req.Name,
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		BrandVoice:     req.BrandVoice,
		CoreValues:     req.CoreValues,
		ColorPalette:   req.ColorPalette,
		LogoURL:        req.LogoURL,
		WebsiteURL:     req.WebsiteURL,
	}

	userID := middleware.GetUserID(c)
	if err := h.brandService.Update(c.Context(), id, userID, brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	updated, _ := h.brandService.GetByID(c.Context(), id, userID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

// ImportSite scrapes a website into a brand suggestion for the setup form.
func (h *BrandHandler) ImportSite(c *fiber.Ctx) error {
	var req dto.ImportSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url is required"})
	}

	profile, err := h.brandService.ImportSite(c.Context(), req.URL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "could not fetch site"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}
