package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"scene-compiler/internal/common/config"
	"scene-compiler/internal/compiler/mapper"
	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/parser"
)

// scenec compiles one SVG layout to scene JSON without the HTTP service.
// Compiler options come from the same environment variables as the service.
func main() {
	var (
		in      = flag.String("in", "", "SVG layout file (default stdin)")
		rooms   = flag.String("rooms", "", "room metadata JSON file")
		out     = flag.String("out", "", "output file (default stdout)")
		width   = flag.Float64("width", 0, "canvas width (default CANVAS_WIDTH)")
		height  = flag.Float64("height", 0, "canvas height (default CANVAS_HEIGHT)")
		preview = flag.Bool("svg", false, "write an SVG preview instead of JSON")
	)
	flag.Parse()

	cfg := config.Load()
	canvas := cfg.Canvas
	if *width > 0 {
		canvas.Width = *width
	}
	if *height > 0 {
		canvas.Height = *height
	}

	if err := run(*in, *rooms, *out, *preview, canvas, cfg.Compiler); err != nil {
		log.Fatalf("scenec: %v", err)
	}
}

func run(inPath, roomsPath, outPath string, preview bool, canvas models.Canvas, opts models.Options) error {
	compiler, err := mapper.New(opts)
	if err != nil {
		return err
	}

	var src io.Reader = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("open layout: %w", err)
		}
		defer f.Close()
		src = f
	}

	var meta []models.RoomMeta
	if roomsPath != "" {
		data, err := os.ReadFile(roomsPath)
		if err != nil {
			return fmt.Errorf("read rooms: %w", err)
		}
		if meta, err = parser.DecodeRooms(data); err != nil {
			return err
		}
	}

	result, err := compiler.CompileSVG(src, meta, canvas)
	if err != nil {
		return err
	}
	log.Printf("[SCENEC] %d walls, %d lights, %d notes (%d unbound shapes)",
		len(result.Walls), len(result.Lights), len(result.Notes), result.Stats.Unbound)

	var dst io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		dst = f
	}

	if preview {
		svg, err := mapper.NewRenderer().Render(result, canvas)
		if err != nil {
			return err
		}
		_, err = io.WriteString(dst, svg)
		return err
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
