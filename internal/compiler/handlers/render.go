package handlers

import (
	"encoding/json"
	"log"

	"scene-compiler/internal/compiler/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Preview Handler
// ============================================================

// Preview renders compiled output JSON back into an SVG for inspection.
func (h *CompileHandler) Preview(c fiber.Ctx) error {
	log.Printf("[PREVIEW] Received request")
	log.Printf("[PREVIEW] Content-Length: %d", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body required",
		})
	}

	var out models.Output
	if err := json.Unmarshal(c.Body(), &out); err != nil {
		log.Printf("[PREVIEW] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	return h.sendPreview(c, &out)
}

func (h *CompileHandler) sendPreview(c fiber.Ctx, out *models.Output) error {
	canvas := models.Canvas{
		Width:  formFloat(c.Query("width"), 0),
		Height: formFloat(c.Query("height"), 0),
	}

	svg, err := h.renderer.Render(out, canvas)
	if err != nil {
		log.Printf("[PREVIEW] Render error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
