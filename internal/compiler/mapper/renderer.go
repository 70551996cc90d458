package mapper

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"scene-compiler/internal/compiler/models"
)

// ============================================================
// Renderer
// ============================================================

// Renderer draws compiled output as an SVG preview: solid walls in black,
// doors in red (dashed when open), lights as translucent circles and notes
// as labels.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(out *models.Output, canvas models.Canvas) (string, error) {
	if out == nil {
		return "", fmt.Errorf("output is nil")
	}

	width, height := r.sceneSize(out, canvas)

	var elements []string
	elements = append(elements, r.renderLights(out.Lights)...)
	elements = append(elements, r.renderWalls(out.Walls)...)
	elements = append(elements, r.renderNotes(out.Notes)...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) sceneSize(out *models.Output, canvas models.Canvas) (float64, float64) {
	if canvas.Width > 0 && canvas.Height > 0 {
		return canvas.Width, canvas.Height
	}

	maxX, maxY := 0.0, 0.0
	for _, w := range out.Walls {
		maxX = math.Max(maxX, math.Max(w.Coordinates[0], w.Coordinates[2]))
		maxY = math.Max(maxY, math.Max(w.Coordinates[1], w.Coordinates[3]))
	}
	for _, l := range out.Lights {
		maxX = math.Max(maxX, l.X+l.Dim)
		maxY = math.Max(maxY, l.Y+l.Dim)
	}

	if maxX <= 0 {
		maxX = 1000
	}
	if maxY <= 0 {
		maxY = 1000
	}
	return maxX, maxY
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderWalls(segments []models.WallSegment) []string {
	out := make([]string, 0, len(segments))
	for _, w := range segments {
		stroke, extra := "#000", ""
		if w.IsDoor {
			stroke = "#d62728"
			if w.DoorState == models.DoorOpen {
				extra = ` stroke-dasharray="4 2"`
			}
		}
		out = append(out, fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"%s />`,
			formatFloat(w.Coordinates[0]), formatFloat(w.Coordinates[1]),
			formatFloat(w.Coordinates[2]), formatFloat(w.Coordinates[3]), stroke, extra))
	}
	return out
}

func (r *Renderer) renderLights(lights []models.LightPlacement) []string {
	out := make([]string, 0, len(lights))
	for _, l := range lights {
		if l.Dim <= 0 {
			continue
		}
		out = append(out, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="%s" />`,
			formatFloat(l.X), formatFloat(l.Y), formatFloat(l.Dim), html.EscapeString(l.Color), formatFloat(l.Alpha)))
	}
	return out
}

func (r *Renderer) renderNotes(notes []models.NotePlacement) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, fmt.Sprintf(`<text x="%s" y="%s" font-size="14" text-anchor="middle" data-entry="%s">%s</text>`,
			formatFloat(n.X), formatFloat(n.Y), html.EscapeString(n.LinkedEntryID), html.EscapeString(n.Label)))
	}
	return out
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
