package shape

import (
	"scene-compiler/internal/compiler/models"
)

// ============================================================
// Door Extractor
// ============================================================

// ExtractDoors turns line primitives into door segments. Zero-length and
// non-finite lines are dropped; doors are otherwise accepted as given, without dedupe or
// connectivity checks.
func ExtractDoors(lines []models.SVGElement, defaultState models.DoorState) []models.DoorSegment {
	var doors []models.DoorSegment
	for _, elem := range lines {
		l, ok := elem.Geometry.(models.LineGeometry)
		if !ok {
			continue
		}

		edge := models.Edge{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2}
		if !finite(l.X1, l.Y1, l.X2, l.Y2) || (edge.X1 == edge.X2 && edge.Y1 == edge.Y2) {
			continue
		}

		state := elem.DoorState
		if state == "" {
			state = defaultState
		}
		doors = append(doors, models.DoorSegment{Edge: edge, State: state})
	}
	return doors
}
