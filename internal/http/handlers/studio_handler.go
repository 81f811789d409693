package handlers

import (
	"errors"

	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/campaign-studio/backend/internal/middleware"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudioHandler struct {
	studioService *services.StudioService
	log           *zap.Logger
}

func NewStudioHandler(studioService *services.StudioService, log *zap.Logger) *StudioHandler {
	return &StudioHandler{studioService: studioService, log: log}
}

func (h *StudioHandler) CreateConversation(c *fiber.Ctx) error {
	var req dto.CreateConversationRequest
	_ = c.BodyParser(&req) // all fields optional

	conv, err := h.studioService.CreateConversation(c.Context(), middleware.GetUserID(c), req.AgentName, req.Name, req.Description)
	if err != nil {
		h.log.Error("failed to create conversation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to create conversation"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: conv})
}

func (h *StudioHandler) ListConversations(c *fiber.Ctx) error {
	convs, err := h.studioService.ListConversations(c.Context(), middleware.GetUserID(c), c.Query("agent_name"))
	if err != nil {
		h.log.Error("failed to list conversations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to list conversations"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: convs})
}

func (h *StudioHandler) ListMessages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid conversation id"})
	}

	msgs, err := h.studioService.ListMessages(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err, "failed to list messages")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: msgs})
}

func (h *StudioHandler) SendMessage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid conversation id"})
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "content is required"})
	}

	if err := h.studioService.SendMessage(c.Context(), id, middleware.GetUserID(c), req.Content); err != nil {
		return h.fail(c, err, "failed to send message")
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.SuccessResponse{OK: true})
}

func (h *StudioHandler) fail(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, services.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	h.log.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msg})
}
