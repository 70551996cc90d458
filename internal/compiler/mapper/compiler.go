package mapper

import (
	"fmt"
	"io"

	"scene-compiler/internal/compiler/binder"
	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/parser"
	"scene-compiler/internal/compiler/shape"
	"scene-compiler/internal/compiler/walls"
)

// ============================================================
// Compiler
// ============================================================

// Compiler turns a vector layout plus room metadata into wall, light and
// note records. It holds only its options, so one Compiler may serve
// concurrent calls.
type Compiler struct {
	opts models.Options
}

func New(opts models.Options) (*Compiler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Compiler{opts: opts}, nil
}

func (c *Compiler) Options() models.Options {
	return c.opts
}

// CompileSVG parses an SVG layout and compiles it.
func (c *Compiler) CompileSVG(r io.Reader, rooms []models.RoomMeta, canvas models.Canvas) (*models.Output, error) {
	layout, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}
	return c.Compile(layout, rooms, canvas)
}

// Compile runs normalize -> extract doors -> split walls -> bind rooms ->
// emit. Coordinates are transformed onto the canvas before splitting, so
// the door tolerance is in canvas units.
func (c *Compiler) Compile(layout *models.Layout, rooms []models.RoomMeta, canvas models.Canvas) (*models.Output, error) {
	if layout == nil {
		return nil, models.ErrNotContainer
	}

	out := &models.Output{
		Walls:     []models.WallSegment{},
		Lights:    []models.LightPlacement{},
		Notes:     []models.NotePlacement{},
		Journal:   []models.RoomContent{},
		Transform: DeriveTransform(layout.Bounds, canvas),
	}

	shapes := make([]models.ShapeRecord, 0, len(layout.Shapes))
	for _, elem := range layout.Shapes {
		rec, ok := shape.Normalize(elem, c.opts)
		if !ok {
			out.Stats.Degenerate++
			continue
		}
		if len(rec.Edges) == 0 {
			out.Stats.Degenerate++
		}
		shapes = append(shapes, rec)
	}
	doors := shape.ExtractDoors(layout.Doors, c.opts.DefaultDoorState)

	out.Stats.Shapes = len(shapes)
	out.Stats.Doors = len(doors)

	if c.opts.GenerateWalls {
		out.Walls = c.assembleWalls(shapes, doors, out.Transform)
	}
	out.Stats.Walls = len(out.Walls)

	out.Lights = c.assembleLights(shapes, out.Transform)
	c.assembleNotes(out, shapes, rooms)

	return out, nil
}

// assembleWalls emits door segments first, then the solid pieces of every
// room edge.
func (c *Compiler) assembleWalls(shapes []models.ShapeRecord, doors []models.DoorSegment, tr models.Transform) []models.WallSegment {
	segments := make([]models.WallSegment, 0, len(doors))

	doorEdges := make([]models.Edge, len(doors))
	for i, d := range doors {
		e := tr.ApplyEdge(d.Edge)
		doorEdges[i] = e
		segments = append(segments, models.WallSegment{
			Coordinates: coordinates(e),
			IsDoor:      true,
			DoorState:   d.State,
		})
	}

	splitOpts := walls.OptionsFrom(c.opts)
	var pieces []models.Edge
	for _, s := range shapes {
		if s.Outdoor && c.opts.SkipOutdoorWalls {
			continue
		}
		for _, e := range s.Edges {
			pieces = append(pieces, walls.Split(tr.ApplyEdge(e), doorEdges, splitOpts)...)
		}
	}
	if c.opts.DedupeSharedWalls {
		pieces = walls.Dedupe(pieces, c.opts.SharedWallTolerance)
	}

	for _, p := range pieces {
		segments = append(segments, models.WallSegment{Coordinates: coordinates(p)})
	}
	return segments
}

func (c *Compiler) assembleLights(shapes []models.ShapeRecord, tr models.Transform) []models.LightPlacement {
	lights := make([]models.LightPlacement, 0, len(shapes))
	for _, s := range shapes {
		center := tr.Apply(s.Centroid)
		dim := tr.ScaleLength(s.BoundingRadius)
		lights = append(lights, models.LightPlacement{
			X:      center.X,
			Y:      center.Y,
			Dim:    dim,
			Bright: dim * c.opts.LightBrightRatio,
			Color:  c.opts.LightColor,
			Alpha:  c.opts.LightAlpha,
		})
	}
	return lights
}

func (c *Compiler) assembleNotes(out *models.Output, shapes []models.ShapeRecord, rooms []models.RoomMeta) {
	for i, roomIdx := range binder.Bind(shapes, rooms) {
		if roomIdx == binder.Unbound {
			out.Stats.Unbound++
			continue
		}
		room := rooms[roomIdx]
		center := out.Transform.Apply(shapes[i].Centroid)

		out.Notes = append(out.Notes, models.NotePlacement{
			X:             center.X,
			Y:             center.Y,
			LinkedEntryID: room.ID,
			Label:         binder.Label(room),
		})
		out.Journal = append(out.Journal, binder.Content(shapes[i], room))
		out.Stats.Bound++
	}
}

func coordinates(e models.Edge) [4]float64 {
	return [4]float64{e.X1, e.Y1, e.X2, e.Y2}
}
