package handlers

import (
	"io"

	"github.com/campaign-studio/backend/internal/generation"
	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadHandler accepts user files (brand logos, reference images) and
// returns the public URL they are served from.
type UploadHandler struct {
	uploader generation.Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader generation.Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "file is required"})
	}
	if fh.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Error: "file too large"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cannot read file"})
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cannot read file"})
	}

	url, err := h.uploader.Upload(c.Context(), fh.Filename, data)
	if err != nil {
		h.log.Error("upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "upload failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.UploadResponse{URL: url}})
}
