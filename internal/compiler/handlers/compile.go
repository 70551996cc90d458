package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strconv"

	"scene-compiler/internal/compiler/mapper"
	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/parser"
	"scene-compiler/internal/compiler/repository"

	"github.com/gofiber/fiber/v3"
)

// SceneStore persists compiled scenes. A nil store disables persistence.
type SceneStore interface {
	Save(ctx context.Context, name string, out *models.Output) (string, error)
	GetByID(ctx context.Context, id string) (*repository.StoredScene, error)
	List(ctx context.Context) ([]repository.SceneSummary, error)
	Delete(ctx context.Context, id string) error
}

// ============================================================
// Compile Handler
// ============================================================

type CompileHandler struct {
	compiler *mapper.Compiler
	renderer *mapper.Renderer
	store    SceneStore
	canvas   models.Canvas
}

func NewCompileHandler(compiler *mapper.Compiler, store SceneStore, canvas models.Canvas) *CompileHandler {
	return &CompileHandler{
		compiler: compiler,
		renderer: mapper.NewRenderer(),
		store:    store,
		canvas:   canvas,
	}
}

type compileResponse struct {
	ID string `json:"id,omitempty"`
	*models.Output
}

// Compile compiles an uploaded SVG layout (multipart field "file") with
// optional room metadata (field or file "rooms").
func (h *CompileHandler) Compile(c fiber.Ctx) error {
	log.Printf("[COMPILER] Received request")
	log.Printf("[COMPILER] Content-Type: %s", c.Get("Content-Type"))

	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[COMPILER] FormFile error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	data, err := readFormFile(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	rooms, err := h.formRooms(c)
	if err != nil {
		log.Printf("[COMPILER] Rooms error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	canvas := models.Canvas{
		Width:  formFloat(c.FormValue("canvas_width"), h.canvas.Width),
		Height: formFloat(c.FormValue("canvas_height"), h.canvas.Height),
	}

	log.Printf("[COMPILER] Compiling %s (%d bytes, %d rooms)", file.Filename, len(data), len(rooms))
	out, err := h.compiler.CompileSVG(bytes.NewReader(data), rooms, canvas)
	if err != nil {
		log.Printf("[COMPILER] Compile error: %v", err)
		status := fiber.StatusInternalServerError
		if errors.Is(err, models.ErrNotContainer) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := compileResponse{Output: out}
	if c.FormValue("store") == "true" && h.store != nil {
		id, err := h.store.Save(c.Context(), file.Filename, out)
		if err != nil {
			log.Printf("[COMPILER] Store error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store scene",
			})
		}
		resp.ID = id
	}

	log.Printf("[COMPILER] Compiled: %d walls, %d lights, %d notes", len(out.Walls), len(out.Lights), len(out.Notes))
	return c.JSON(resp)
}

// formRooms reads room metadata from the "rooms" form value or file.
func (h *CompileHandler) formRooms(c fiber.Ctx) ([]models.RoomMeta, error) {
	if raw := c.FormValue("rooms"); raw != "" {
		return parser.DecodeRooms([]byte(raw))
	}

	file, err := c.FormFile("rooms")
	if err != nil {
		return nil, nil
	}
	data, err := readFormFile(file)
	if err != nil {
		return nil, err
	}
	return parser.DecodeRooms(data)
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func formFloat(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
