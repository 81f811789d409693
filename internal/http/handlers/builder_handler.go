package handlers

import (
	"errors"
	"strconv"

	"github.com/campaign-studio/backend/internal/builder"
	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/campaign-studio/backend/internal/middleware"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BuilderHandler struct {
	builderService *services.BuilderService
	log            *zap.Logger
}

func NewBuilderHandler(builderService *services.BuilderService, log *zap.Logger) *BuilderHandler {
	return &BuilderHandler{builderService: builderService, log: log}
}

func (h *BuilderHandler) CreateSession(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	sess := h.builderService.CreateSession(userID)
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) DiscardSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}
	if err := h.builderService.DiscardSession(id, middleware.GetUserID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *BuilderHandler) UpdateDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	var req dto.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	sess, err := h.builderService.UpdateDraft(id, middleware.GetUserID(c), req.Patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) Next(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	sess, advanced, err := h.builderService.Next(id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	if !advanced {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "current step is incomplete",
		})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) Back(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	sess, err := h.builderService.Back(id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) GenerateStrategy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	var req dto.GenerateStrategyRequest
	_ = c.BodyParser(&req) // body is optional

	sess, err := h.builderService.GenerateStrategy(c.Context(), id, middleware.GetUserID(c), req.Instructions)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) GenerateCreatives(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	sess, err := h.builderService.GenerateCreatives(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) RegenerateCreatives(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	var req dto.RegenerateCreativesRequest
	if err := c.BodyParser(&req); err != nil || req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "type is required"})
	}

	sess, err := h.builderService.RegenerateCreatives(c.Context(), id, middleware.GetUserID(c), req.Type)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) GeneratePosters(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	sess, err := h.builderService.GeneratePosters(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) GenerateMorePosters(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	sess, err := h.builderService.GenerateMorePosters(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) RegeneratePoster(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid poster index"})
	}

	sess, err := h.builderService.RegeneratePoster(c.Context(), id, middleware.GetUserID(c), index)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess})
}

func (h *BuilderHandler) Deploy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}

	campaign, err := h.builderService.Deploy(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *BuilderHandler) session(c *fiber.Ctx) (*builder.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, services.ErrSessionNotFound
	}
	return h.builderService.GetSession(id, middleware.GetUserID(c))
}

func (h *BuilderHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	case errors.Is(err, services.ErrWrongStep):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrDeployInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrDeployPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNothingToDeploy):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("builder operation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "generation or persistence failed, retry the action"})
	}
}
