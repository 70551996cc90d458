package walls

import (
	"scene-compiler/internal/compiler/models"
)

// Dedupe drops wall pieces that repeat an earlier piece, in either
// direction, with both endpoints within tol. Adjacent rooms drawn with a
// common edge would otherwise wall it twice.
func Dedupe(pieces []models.Edge, tol float64) []models.Edge {
	kept := make([]models.Edge, 0, len(pieces))
	for _, p := range pieces {
		if containsEdge(kept, p, tol) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func containsEdge(list []models.Edge, e models.Edge, tol float64) bool {
	r := e.Reversed()
	for _, k := range list {
		if sameEdge(k, e, tol) || sameEdge(k, r, tol) {
			return true
		}
	}
	return false
}

func sameEdge(a, b models.Edge, tol float64) bool {
	return near(a.X1, a.Y1, b.X1, b.Y1, tol) && near(a.X2, a.Y2, b.X2, b.Y2, tol)
}

func near(x1, y1, x2, y2, tol float64) bool {
	dx, dy := x1-x2, y1-y2
	return dx*dx+dy*dy <= tol*tol
}
