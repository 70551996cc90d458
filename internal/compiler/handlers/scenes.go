package handlers

import (
	"errors"
	"log"

	"scene-compiler/internal/compiler/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Stored Scenes
// ============================================================

func (h *CompileHandler) ListScenes(c fiber.Ctx) error {
	if h.store == nil {
		return storeDisabled(c)
	}
	list, err := h.store.List(c.Context())
	if err != nil {
		log.Printf("[SCENES] List error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list scenes"})
	}
	return c.JSON(list)
}

func (h *CompileHandler) GetScene(c fiber.Ctx) error {
	if h.store == nil {
		return storeDisabled(c)
	}
	scene, err := h.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return sceneError(c, err)
	}
	return c.JSON(scene)
}

// GetScenePreview renders a stored scene as SVG.
func (h *CompileHandler) GetScenePreview(c fiber.Ctx) error {
	if h.store == nil {
		return storeDisabled(c)
	}
	scene, err := h.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return sceneError(c, err)
	}
	return h.sendPreview(c, scene.Output)
}

func (h *CompileHandler) DeleteScene(c fiber.Ctx) error {
	if h.store == nil {
		return storeDisabled(c)
	}
	if err := h.store.Delete(c.Context(), c.Params("id")); err != nil {
		return sceneError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func sceneError(c fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrSceneNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
	}
	log.Printf("[SCENES] Store error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "scene store failed"})
}

func storeDisabled(c fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "scene store disabled"})
}
