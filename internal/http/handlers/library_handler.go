package handlers

import (
	"strconv"

	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/campaign-studio/backend/internal/middleware"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LibraryHandler serves cross-campaign views of a user's generated content.
type LibraryHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewLibraryHandler(campaignService *services.CampaignService, log *zap.Logger) *LibraryHandler {
	return &LibraryHandler{campaignService: campaignService, log: log}
}

func (h *LibraryHandler) ListCreatives(c *fiber.Ctx) error {
	creatives, err := h.campaignService.LibraryCreatives(c.Context(), middleware.GetUserID(c), libraryLimit(c))
	if err != nil {
		h.log.Error("failed to list creatives", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list creatives"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: creatives})
}

func (h *LibraryHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.campaignService.LibraryAssets(c.Context(), middleware.GetUserID(c), libraryLimit(c))
	if err != nil {
		h.log.Error("failed to list assets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list assets"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
}

// libraryLimit parses the limit query parameter. Defaulting and capping
// live in the repositories, next to the queries they bound.
func libraryLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}
