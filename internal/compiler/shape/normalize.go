// Package shape turns layout primitives into edge-based shape records and
// door segments, all in native layout coordinates.
package shape

import (
	"math"

	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/parser"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Shape Normalizer
// ============================================================

type normalizer func(elem models.SVGElement, opts models.Options) (models.ShapeRecord, bool)

var normalizers = map[models.Kind]normalizer{
	models.KindRect:    normalizeRect,
	models.KindCircle:  normalizeEllipse,
	models.KindEllipse: normalizeEllipse,
	models.KindPolygon: normalizePolygon,
	models.KindPath:    normalizePath,
}

// Normalize converts one shape primitive into a ShapeRecord. It reports
// false for degenerate rects, ellipses and polygons and for unknown kinds.
// A path that yields no edges still produces a record, centered on the
// origin with zero radius.
func Normalize(elem models.SVGElement, opts models.Options) (models.ShapeRecord, bool) {
	fn, ok := normalizers[elem.Kind]
	if !ok {
		return models.ShapeRecord{}, false
	}

	rec, ok := fn(elem, opts)
	if !ok {
		return models.ShapeRecord{}, false
	}
	rec.ID = elem.ID
	rec.Kind = elem.Kind
	rec.Outdoor = elem.Outdoor
	return rec, true
}

func normalizeRect(elem models.SVGElement, _ models.Options) (models.ShapeRecord, bool) {
	r, ok := elem.Geometry.(models.RectGeometry)
	if !ok || !finite(r.X, r.Y, r.Width, r.Height) || r.Width <= 0 || r.Height <= 0 {
		return models.ShapeRecord{}, false
	}

	tl := vec.Vec2{X: r.X, Y: r.Y}
	tr := vec.Vec2{X: r.X + r.Width, Y: r.Y}
	br := vec.Vec2{X: r.X + r.Width, Y: r.Y + r.Height}
	bl := vec.Vec2{X: r.X, Y: r.Y + r.Height}

	return models.ShapeRecord{
		Edges: []models.Edge{
			models.EdgeBetween(tl, tr),
			models.EdgeBetween(tr, br),
			models.EdgeBetween(br, bl),
			models.EdgeBetween(bl, tl),
		},
		Centroid:       vec.Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2},
		BoundingRadius: math.Max(r.Width, r.Height) / 2,
	}, true
}

func normalizeEllipse(elem models.SVGElement, opts models.Options) (models.ShapeRecord, bool) {
	e, ok := elem.Geometry.(models.EllipseGeometry)
	if !ok || !finite(e.CX, e.CY, e.RX, e.RY) || e.RX <= 0 || e.RY <= 0 {
		return models.ShapeRecord{}, false
	}

	n := opts.CurveSegmentCount
	if n < 3 {
		n = 3
	}

	points := make([]vec.Vec2, n)
	for k := range points {
		theta := 2 * math.Pi * float64(k) / float64(n)
		points[k] = vec.Vec2{X: e.CX + e.RX*math.Cos(theta), Y: e.CY + e.RY*math.Sin(theta)}
	}

	return models.ShapeRecord{
		Edges:          closedLoop(points),
		Centroid:       vec.Vec2{X: e.CX, Y: e.CY},
		BoundingRadius: math.Max(e.RX, e.RY),
	}, true
}

func normalizePolygon(elem models.SVGElement, _ models.Options) (models.ShapeRecord, bool) {
	p, ok := elem.Geometry.(models.PolygonGeometry)
	if !ok || len(p.Points) < 3 {
		return models.ShapeRecord{}, false
	}
	for _, pt := range p.Points {
		if !finite(pt.X, pt.Y) {
			return models.ShapeRecord{}, false
		}
	}

	edges := closedLoop(p.Points)
	if len(edges) == 0 {
		return models.ShapeRecord{}, false
	}

	var sum vec.Vec2
	for _, pt := range p.Points {
		sum = sum.Add(pt)
	}
	centroid := sum.Mul(1 / float64(len(p.Points)))

	return models.ShapeRecord{
		Edges:          edges,
		Centroid:       centroid,
		BoundingRadius: maxEndpointDistance(centroid, edges),
	}, true
}

func normalizePath(elem models.SVGElement, opts models.Options) (models.ShapeRecord, bool) {
	p, ok := elem.Geometry.(models.PathGeometry)
	if !ok {
		return models.ShapeRecord{}, false
	}

	edges, err := parser.ParsePath(p.D, parser.PathOptions{
		ArcSegments:    opts.ArcSubsegmentCount,
		CloseThreshold: opts.ClosePathThreshold,
	})
	if err != nil || len(edges) == 0 {
		return models.ShapeRecord{}, true
	}

	var sum vec.Vec2
	for _, e := range edges {
		sum = sum.Add(e.Start().Add(e.End()).Mul(0.5))
	}
	centroid := sum.Mul(1 / float64(len(edges)))

	return models.ShapeRecord{
		Edges:          edges,
		Centroid:       centroid,
		BoundingRadius: maxEndpointDistance(centroid, edges),
	}, true
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// closedLoop connects consecutive points and closes last -> first,
// dropping zero-length edges from repeated points.
func closedLoop(points []vec.Vec2) []models.Edge {
	edges := make([]models.Edge, 0, len(points))
	for i, a := range points {
		b := points[(i+1)%len(points)]
		if a == b {
			continue
		}
		edges = append(edges, models.EdgeBetween(a, b))
	}
	return edges
}

func maxEndpointDistance(c vec.Vec2, edges []models.Edge) float64 {
	var r float64
	for _, e := range edges {
		r = math.Max(r, e.Start().Sub(c).Length())
		r = math.Max(r, e.End().Sub(c).Length())
	}
	return r
}
