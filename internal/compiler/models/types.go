package models

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Layout elements
// ============================================================

type Kind string

const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindEllipse Kind = "ellipse"
	KindPolygon Kind = "polygon"
	KindPath    Kind = "path"
	KindLine    Kind = "line"
)

// SVGElement is one drawn primitive of a layout. Geometry holds one of
// RectGeometry, EllipseGeometry, PolygonGeometry, PathGeometry or LineGeometry.
type SVGElement struct {
	ID        string
	Kind      Kind
	Outdoor   bool
	DoorState DoorState
	Geometry  interface{}
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// EllipseGeometry also carries circles (RX == RY).
type EllipseGeometry struct {
	CX float64
	CY float64
	RX float64
	RY float64
}

type PolygonGeometry struct {
	Points []vec.Vec2
}

type PathGeometry struct {
	D string
}

type LineGeometry struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Layout is the parsed vector scene: room shapes and door lines in document
// order, plus the native coordinate bounds.
type Layout struct {
	Bounds rect.Rect
	Shapes []SVGElement
	Doors  []SVGElement
}

// ============================================================
// Geometry primitives
// ============================================================

// Edge is a directed line segment.
type Edge struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func EdgeBetween(a, b vec.Vec2) Edge {
	return Edge{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

func (e Edge) Start() vec.Vec2 { return vec.Vec2{X: e.X1, Y: e.Y1} }
func (e Edge) End() vec.Vec2   { return vec.Vec2{X: e.X2, Y: e.Y2} }

func (e Edge) Length() float64 {
	return math.Hypot(e.X2-e.X1, e.Y2-e.Y1)
}

// Reversed returns the same segment walked the other way.
func (e Edge) Reversed() Edge {
	return Edge{X1: e.X2, Y1: e.Y2, X2: e.X1, Y2: e.Y1}
}

// ShapeRecord is the normalized, edge-based form of one drawn room.
// Coordinates are in the layout's native space.
type ShapeRecord struct {
	ID             string
	Kind           Kind
	Edges          []Edge
	Centroid       vec.Vec2
	BoundingRadius float64
	Outdoor        bool
}

type DoorState string

const (
	DoorClosed DoorState = "closed"
	DoorOpen   DoorState = "open"
)

type DoorSegment struct {
	Edge  Edge
	State DoorState
}

// ============================================================
// Room metadata
// ============================================================

// RoomMeta is one entry of the externally supplied room list.
type RoomMeta struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Purpose       string   `json:"purpose"`
	Size          string   `json:"approximateSize"`
	ReadAloud     string   `json:"readAloud,omitempty"`
	Atmosphere    string   `json:"atmosphere,omitempty"`
	Features      []string `json:"features,omitempty"`
	Hazards       []string `json:"hazards,omitempty"`
	Interactables []string `json:"interactables,omitempty"`
}

// ============================================================
// Output records
// ============================================================

type WallSegment struct {
	Coordinates [4]float64 `json:"coordinates"`
	IsDoor      bool       `json:"isDoor"`
	DoorState   DoorState  `json:"doorState,omitempty"`
}

func (w WallSegment) Edge() Edge {
	return Edge{X1: w.Coordinates[0], Y1: w.Coordinates[1], X2: w.Coordinates[2], Y2: w.Coordinates[3]}
}

type LightPlacement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Dim    float64 `json:"dim"`
	Bright float64 `json:"bright"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
}

type NotePlacement struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	LinkedEntryID string  `json:"linkedEntryId"`
	Label         string  `json:"label"`
}

// RoomContent is the narrative payload handed to the host for one bound room.
type RoomContent struct {
	EntryID       string   `json:"entryId"`
	ShapeID       string   `json:"shapeId,omitempty"`
	Name          string   `json:"name"`
	Purpose       string   `json:"purpose"`
	Size          string   `json:"approximateSize"`
	ReadAloud     string   `json:"readAloud,omitempty"`
	Atmosphere    string   `json:"atmosphere,omitempty"`
	Features      []string `json:"features,omitempty"`
	Hazards       []string `json:"hazards,omitempty"`
	Interactables []string `json:"interactables,omitempty"`
	Outdoor       bool     `json:"outdoor"`
	Body          string   `json:"body"`
}

type Stats struct {
	Shapes     int `json:"shapes"`
	Degenerate int `json:"degenerate"`
	Doors      int `json:"doors"`
	Walls      int `json:"walls"`
	Bound      int `json:"bound"`
	Unbound    int `json:"unbound"`
}

// Output is everything one compilation produces. Notes[i] and Journal[i]
// describe the same bound room.
type Output struct {
	Walls     []WallSegment    `json:"walls"`
	Lights    []LightPlacement `json:"lights"`
	Notes     []NotePlacement  `json:"notes"`
	Journal   []RoomContent    `json:"journal"`
	Transform Transform        `json:"transform"`
	Stats     Stats            `json:"stats"`
}

// Canvas is the target output size.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
