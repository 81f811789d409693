package handlers

import (
	"github.com/campaign-studio/backend/internal/builder"
	"github.com/campaign-studio/backend/internal/http/dto"
	"github.com/campaign-studio/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves the static vocabularies clients use to render forms.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Platforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: models.Platforms})
}

func (h *MetaHandler) Objectives(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: models.Objectives})
}

func (h *MetaHandler) CreativeTypes(c *fiber.Ctx) error {
	type creativeType struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	out := make([]creativeType, 0, len(builder.CreativeBatches))
	for _, b := range builder.CreativeBatches {
		out = append(out, creativeType{Type: b.Type, Label: b.Label, Count: b.Count})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: out})
}
