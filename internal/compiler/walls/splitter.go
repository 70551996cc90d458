// Package walls cuts room edges into solid wall pieces that leave gaps
// where door segments lie on them.
//
// Matching is purely geometric: a door opens a wall only if both of its
// endpoints sit on the wall line within tolerance. Cost is
// O(walls × doors); there is no spatial index.
package walls

import (
	"math"
	"sort"

	"scene-compiler/internal/compiler/models"

	"seehuhn.de/go/geom/vec"
)

// minWallLength below which a wall cannot be projected onto.
const minWallLength = 1e-9

// Options are the splitter tolerances, in output units for Tolerance and
// in projection-parameter units for the rest.
type Options struct {
	Tolerance float64
	Epsilon   float64
	Slack     float64
}

func OptionsFrom(o models.Options) Options {
	return Options{
		Tolerance: o.DoorMatchTolerance,
		Epsilon:   o.MergeEpsilon,
		Slack:     o.ProjectionSlack,
	}
}

type interval struct {
	t1 float64
	t2 float64
}

// ============================================================
// Splitter
// ============================================================

// Split returns the pieces of wall not covered by any matching door, in
// order from the wall's start to its end. With no matching door the wall
// comes back unchanged as the only piece.
func Split(wall models.Edge, doors []models.Edge, opts Options) []models.Edge {
	ranges := mergeIntervals(doorIntervals(wall, doors, opts), opts.Epsilon)
	if len(ranges) == 0 {
		return []models.Edge{wall}
	}

	a, b := wall.Start(), wall.End()
	var pieces []models.Edge
	cursor := 0.0
	for _, r := range ranges {
		if r.t1-cursor > opts.Epsilon {
			pieces = append(pieces, models.EdgeBetween(pointAt(a, b, cursor), pointAt(a, b, r.t1)))
		}
		cursor = math.Max(cursor, r.t2)
	}
	if 1-cursor > opts.Epsilon {
		pieces = append(pieces, models.EdgeBetween(pointAt(a, b, cursor), b))
	}
	return pieces
}

// doorIntervals projects every door lying on the wall line onto the wall
// and returns the clamped [t1,t2] ranges.
func doorIntervals(wall models.Edge, doors []models.Edge, opts Options) []interval {
	a := wall.Start()
	ab := wall.End().Sub(a)
	length := ab.Length()
	if length < minWallLength {
		return nil
	}
	lengthSq := length * length

	var out []interval
	for _, door := range doors {
		p, q := door.Start().Sub(a), door.End().Sub(a)
		if math.Abs(cross(ab, p))/length > opts.Tolerance ||
			math.Abs(cross(ab, q))/length > opts.Tolerance {
			continue
		}

		t1, t2 := p.Dot(ab)/lengthSq, q.Dot(ab)/lengthSq
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		// on the wall's line but past its ends
		if t2 < -opts.Slack || t1 > 1+opts.Slack {
			continue
		}

		t1, t2 = clamp(t1, 0, 1), clamp(t2, 0, 1)
		if t2 <= t1 {
			continue
		}
		out = append(out, interval{t1: t1, t2: t2})
	}
	return out
}

// mergeIntervals sorts by start and fuses ranges that overlap or sit
// within eps of each other.
func mergeIntervals(in []interval, eps float64) []interval {
	if len(in) == 0 {
		return nil
	}

	sorted := append([]interval(nil), in...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].t1 != sorted[j].t1 {
			return sorted[i].t1 < sorted[j].t1
		}
		return sorted[i].t2 < sorted[j].t2
	})

	out := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.t1 <= last.t2+eps {
			last.t2 = math.Max(last.t2, iv.t2)
			continue
		}
		out = append(out, iv)
	}
	return out
}

func pointAt(a, b vec.Vec2, t float64) vec.Vec2 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

func cross(u, v vec.Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
