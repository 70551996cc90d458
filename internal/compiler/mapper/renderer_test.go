package mapper

import (
	"strings"
	"testing"

	"scene-compiler/internal/compiler/models"
)

func TestRenderPreview(t *testing.T) {
	out := &models.Output{
		Walls: []models.WallSegment{
			{Coordinates: [4]float64{0, 0, 100, 0}},
			{Coordinates: [4]float64{100, 0, 100, 50}, IsDoor: true, DoorState: models.DoorOpen},
		},
		Lights: []models.LightPlacement{{X: 50, Y: 50, Dim: 30, Color: "#fff", Alpha: 0.5}},
		Notes:  []models.NotePlacement{{X: 50, Y: 50, LinkedEntryID: "hall", Label: "Hall & <Kitchen>"}},
	}

	svg, err := NewRenderer().Render(out, models.Canvas{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`width="100" height="80"`,
		`<line x1="0" y1="0" x2="100" y2="0" stroke="#000"`,
		`stroke="#d62728" stroke-width="2" stroke-dasharray="4 2"`,
		`<circle cx="50" cy="50" r="30"`,
		`Hall &amp; &lt;Kitchen&gt;`,
	} {
		if !strings.Contains(svg, want) {
			t.Fatalf("preview missing %q:\n%s", want, svg)
		}
	}
}

func TestRenderUsesCanvasAndRejectsNil(t *testing.T) {
	svg, err := NewRenderer().Render(&models.Output{}, models.Canvas{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(svg, `viewBox="0 0 640 480"`) {
		t.Fatalf("canvas size not used:\n%s", svg)
	}
	if _, err := NewRenderer().Render(nil, models.Canvas{}); err == nil {
		t.Fatalf("expect error for nil output")
	}
}
