package models

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Transform maps native layout coordinates onto the target canvas:
// out = native*scale + offset, per axis.
type Transform struct {
	ScaleX  float64 `json:"scaleX"`
	ScaleY  float64 `json:"scaleY"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// Matrix returns the transform as an affine matrix in [a b c d e f] form.
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Matrix{t.ScaleX, 0, 0, t.ScaleY, t.OffsetX, t.OffsetY}
}

func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	m := t.Matrix()
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

func (t Transform) ApplyEdge(e Edge) Edge {
	return EdgeBetween(t.Apply(e.Start()), t.Apply(e.End()))
}

// ScaleLength scales a radius-like length by the larger axis factor.
func (t Transform) ScaleLength(l float64) float64 {
	return l * math.Max(math.Abs(t.ScaleX), math.Abs(t.ScaleY))
}
