package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"scene-compiler/internal/compiler/models"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DefaultNativeSize is assumed when a layout declares neither viewBox nor
// width/height.
const DefaultNativeSize = 1000.0

// ============================================================
// XML Structures
// ============================================================

// node keeps every element in document order so that shape encounter
// order survives nesting in <g> groups.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (n *node) float(name string) float64 {
	v := strings.TrimSuffix(n.attr(name), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Subtrees that are never drawn directly.
var skippedContainers = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"symbol":   true,
	"pattern":  true,
	"marker":   true,
}

// ============================================================
// Parser
// ============================================================

// ParseSVG decodes a vector layout into shape and door primitives.
// A root element other than <svg> yields models.ErrNotContainer.
func ParseSVG(r io.Reader) (*models.Layout, error) {
	var root node
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNotContainer, err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("%w: root is <%s>", models.ErrNotContainer, root.XMLName.Local)
	}

	layout := &models.Layout{Bounds: parseBounds(&root)}
	for i := range root.Children {
		collect(&root.Children[i], layout)
	}
	return layout, nil
}

func collect(n *node, layout *models.Layout) {
	name := n.XMLName.Local
	if skippedContainers[name] {
		return
	}

	if elem, ok := toElement(n); ok {
		if elem.Kind == models.KindLine {
			layout.Doors = append(layout.Doors, elem)
		} else {
			layout.Shapes = append(layout.Shapes, elem)
		}
		return
	}

	for i := range n.Children {
		collect(&n.Children[i], layout)
	}
}

func toElement(n *node) (models.SVGElement, bool) {
	elem := models.SVGElement{
		ID:      roomID(n),
		Outdoor: isOutdoor(n),
	}

	switch n.XMLName.Local {
	case "rect":
		elem.Kind = models.KindRect
		elem.Geometry = models.RectGeometry{
			X:      n.float("x"),
			Y:      n.float("y"),
			Width:  n.float("width"),
			Height: n.float("height"),
		}
	case "circle":
		r := n.float("r")
		elem.Kind = models.KindCircle
		elem.Geometry = models.EllipseGeometry{CX: n.float("cx"), CY: n.float("cy"), RX: r, RY: r}
	case "ellipse":
		elem.Kind = models.KindEllipse
		elem.Geometry = models.EllipseGeometry{
			CX: n.float("cx"),
			CY: n.float("cy"),
			RX: n.float("rx"),
			RY: n.float("ry"),
		}
	case "polygon":
		elem.Kind = models.KindPolygon
		elem.Geometry = models.PolygonGeometry{Points: parsePoints(n.attr("points"))}
	case "path":
		elem.Kind = models.KindPath
		elem.Geometry = models.PathGeometry{D: n.attr("d")}
	case "line":
		elem.Kind = models.KindLine
		elem.DoorState = doorState(n.attr("data-door-state"))
		elem.Geometry = models.LineGeometry{
			X1: n.float("x1"),
			Y1: n.float("y1"),
			X2: n.float("x2"),
			Y2: n.float("y2"),
		}
	default:
		return models.SVGElement{}, false
	}
	return elem, true
}

func roomID(n *node) string {
	if id := n.attr("data-room-id"); id != "" {
		return id
	}
	return n.attr("id")
}

func isOutdoor(n *node) bool {
	switch strings.ToLower(n.attr("data-outdoor")) {
	case "true", "1", "yes":
		return true
	}
	for _, class := range strings.Fields(n.attr("class")) {
		if class == "outdoor" {
			return true
		}
	}
	return false
}

func doorState(v string) models.DoorState {
	switch strings.ToLower(v) {
	case "open":
		return models.DoorOpen
	case "closed":
		return models.DoorClosed
	}
	return ""
}

// parseBounds reads viewBox, then width/height, then falls back to the
// default native size.
func parseBounds(root *node) rect.Rect {
	if vb := parseCoords(root.attr("viewBox")); len(vb) == 4 && vb[2] > 0 && vb[3] > 0 {
		return rect.Rect{LLx: vb[0], LLy: vb[1], URx: vb[0] + vb[2], URy: vb[1] + vb[3]}
	}

	w, h := root.float("width"), root.float("height")
	if w <= 0 || h <= 0 {
		w, h = DefaultNativeSize, DefaultNativeSize
	}
	return rect.Rect{URx: w, URy: h}
}

func parsePoints(s string) []vec.Vec2 {
	coords := parseCoords(s)
	points := make([]vec.Vec2, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, vec.Vec2{X: coords[i], Y: coords[i+1]})
	}
	return points
}
