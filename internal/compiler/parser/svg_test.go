package parser

import (
	"errors"
	"strings"
	"testing"

	"scene-compiler/internal/compiler/models"
)

const sampleSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
  <defs><rect id="ignored" width="5" height="5"/></defs>
  <rect id="hall" x="0" y="0" width="100" height="100"/>
  <g class="wing">
    <circle data-room-id="well" cx="150" cy="50" r="20" class="room outdoor"/>
    <polygon id="nook" points="100,0 120,0 110,20"/>
  </g>
  <path id="cave" d="M0,0 L10,0 L10,10 Z"/>
  <ellipse id="pond" data-outdoor="true" cx="50" cy="50" rx="10" ry="5"/>
  <line x1="100" y1="40" x2="100" y2="60" data-door-state="open"/>
  <text x="1" y="1">label</text>
</svg>`

func TestParseSVGCollectsInDocumentOrder(t *testing.T) {
	layout, err := ParseSVG(strings.NewReader(sampleSVG))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantKinds := []models.Kind{models.KindRect, models.KindCircle, models.KindPolygon, models.KindPath, models.KindEllipse}
	if len(layout.Shapes) != len(wantKinds) {
		t.Fatalf("expect %d shapes, got %d", len(wantKinds), len(layout.Shapes))
	}
	for i, k := range wantKinds {
		if layout.Shapes[i].Kind != k {
			t.Fatalf("shape %d: kind %s, want %s", i, layout.Shapes[i].Kind, k)
		}
	}

	if layout.Shapes[1].ID != "well" || !layout.Shapes[1].Outdoor {
		t.Fatalf("circle should carry data-room-id and outdoor class: %+v", layout.Shapes[1])
	}
	if !layout.Shapes[4].Outdoor {
		t.Fatalf("ellipse should be outdoor")
	}
	if layout.Shapes[0].Outdoor {
		t.Fatalf("rect should be indoor")
	}

	if len(layout.Doors) != 1 {
		t.Fatalf("expect 1 door, got %d", len(layout.Doors))
	}
	if layout.Doors[0].DoorState != models.DoorOpen {
		t.Fatalf("door state not parsed: %q", layout.Doors[0].DoorState)
	}
	line := layout.Doors[0].Geometry.(models.LineGeometry)
	if line.X1 != 100 || line.Y2 != 60 {
		t.Fatalf("unexpected line geometry %+v", line)
	}

	if layout.Bounds.URx != 200 || layout.Bounds.URy != 100 {
		t.Fatalf("bounds from viewBox wrong: %+v", layout.Bounds)
	}
}

func TestParseSVGBoundsFallback(t *testing.T) {
	layout, err := ParseSVG(strings.NewReader(`<svg width="640px" height="480"></svg>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if layout.Bounds.URx != 640 || layout.Bounds.URy != 480 {
		t.Fatalf("bounds from width/height wrong: %+v", layout.Bounds)
	}

	layout, err = ParseSVG(strings.NewReader(`<svg></svg>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if layout.Bounds.URx != DefaultNativeSize || layout.Bounds.URy != DefaultNativeSize {
		t.Fatalf("default bounds wrong: %+v", layout.Bounds)
	}
}

func TestParseSVGNonFiniteAttributesReadAsZero(t *testing.T) {
	layout, err := ParseSVG(strings.NewReader(`<svg viewBox="0 0 10 10">
  <rect x="Inf" width="NaN" height="10"/>
  <circle cx="1" cy="1" r="-Infinity"/>
</svg>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(layout.Shapes) != 2 {
		t.Fatalf("expect 2 shapes, got %d", len(layout.Shapes))
	}
	r := layout.Shapes[0].Geometry.(models.RectGeometry)
	if r.X != 0 || r.Width != 0 || r.Height != 10 {
		t.Fatalf("rect geometry %+v", r)
	}
	if c := layout.Shapes[1].Geometry.(models.EllipseGeometry); c.RX != 0 {
		t.Fatalf("circle radius %v, want 0", c.RX)
	}
}

func TestParseSVGRejectsNonContainer(t *testing.T) {
	for _, input := range []string{`<html><body/></html>`, `not xml at all`, ``} {
		_, err := ParseSVG(strings.NewReader(input))
		if !errors.Is(err, models.ErrNotContainer) {
			t.Fatalf("input %q: expect ErrNotContainer, got %v", input, err)
		}
	}
}

func TestParseRooms(t *testing.T) {
	rooms, err := DecodeRooms([]byte(`[
		{"id":"hall","name":"Great Hall","purpose":"feasting","approximateSize":"large","features":["hearth"]},
		{"id":"well","name":"Old Well","purpose":"water","size":"small","hazards":["slippery"]}
	]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expect 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Size != "large" || rooms[1].Size != "small" {
		t.Fatalf("size aliases not handled: %+v", rooms)
	}
	if len(rooms[0].Features) != 1 || rooms[1].Hazards[0] != "slippery" {
		t.Fatalf("lists not decoded: %+v", rooms)
	}
}

func TestParseRoomsEmptyAndInvalid(t *testing.T) {
	rooms, err := ParseRooms(strings.NewReader("  \n"))
	if err != nil || rooms != nil {
		t.Fatalf("empty body should be empty list, got %v %v", rooms, err)
	}
	if _, err := DecodeRooms([]byte(`{"id":1}`)); !errors.Is(err, models.ErrInvalidRooms) {
		t.Fatalf("expect ErrInvalidRooms, got %v", err)
	}
}
