package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"scene-compiler/internal/compiler/models"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Path Parser
// ============================================================

// Any letter except e/E (exponent marker) starts a command.
var commandRe = regexp.MustCompile(`([A-DF-Za-df-z])([^A-DF-Za-df-z]*)`)

var numberRe = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

var leadingNumberRe = regexp.MustCompile(`^` + numberRe.String())

// PathOptions controls path interpretation.
type PathOptions struct {
	// ArcSegments is how many straight pieces replace one A/a command.
	ArcSegments int
	// CloseThreshold is the minimum gap for Z to emit a closing edge.
	CloseThreshold float64
}

type pathState struct {
	opts  PathOptions
	cur   vec.Vec2
	start vec.Vec2
	edges []models.Edge
}

// ParsePath interprets the M/L/H/V/A/Z subset of SVG path data (absolute
// and relative) into straight edges. Arcs become ArcSegments equal pieces
// along the chord from the current point to the arc's end point; rotation,
// radii and sweep flags are ignored. Unknown commands are skipped.
func ParsePath(d string, opts PathOptions) ([]models.Edge, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}
	if opts.ArcSegments < 1 {
		opts.ArcSegments = 1
	}

	s := &pathState{opts: opts}
	for _, match := range commandRe.FindAllStringSubmatch(d, -1) {
		if match[1] == "A" || match[1] == "a" {
			s.apply(match[1], parseArcArgs(match[2]))
			continue
		}
		s.apply(match[1], parseCoords(match[2]))
	}
	return s.edges, nil
}

func (s *pathState) apply(cmd string, args []float64) {
	relative := strings.ToLower(cmd) == cmd

	switch cmd {
	case "M", "m":
		for i := 0; i+1 < len(args); i += 2 {
			p := s.point(args[i], args[i+1], relative)
			if i == 0 {
				s.cur = p
				s.start = p
				continue
			}
			// extra pairs after a moveto are implicit linetos
			s.lineTo(p)
		}

	case "L", "l":
		for i := 0; i+1 < len(args); i += 2 {
			s.lineTo(s.point(args[i], args[i+1], relative))
		}

	case "H", "h":
		for _, x := range args {
			if relative {
				x += s.cur.X
			}
			s.lineTo(vec.Vec2{X: x, Y: s.cur.Y})
		}

	case "V", "v":
		for _, y := range args {
			if relative {
				y += s.cur.Y
			}
			s.lineTo(vec.Vec2{X: s.cur.X, Y: y})
		}

	case "A", "a":
		// rx ry rotation large-arc sweep x y
		for i := 0; i+6 < len(args); i += 7 {
			s.arcTo(s.point(args[i+5], args[i+6], relative))
		}

	case "Z", "z":
		if distance(s.cur, s.start) > s.opts.CloseThreshold {
			s.edges = append(s.edges, models.EdgeBetween(s.cur, s.start))
		}
		s.cur = s.start
	}
}

func (s *pathState) point(x, y float64, relative bool) vec.Vec2 {
	if relative {
		return vec.Vec2{X: s.cur.X + x, Y: s.cur.Y + y}
	}
	return vec.Vec2{X: x, Y: y}
}

func (s *pathState) lineTo(p vec.Vec2) {
	if p != s.cur {
		s.edges = append(s.edges, models.EdgeBetween(s.cur, p))
	}
	s.cur = p
}

func (s *pathState) arcTo(target vec.Vec2) {
	from := s.cur
	n := s.opts.ArcSegments
	for k := 1; k <= n; k++ {
		p := target
		if k < n {
			p = from.Add(target.Sub(from).Mul(float64(k) / float64(n)))
		}
		s.lineTo(p)
	}
}

// parseCoords extracts every number from a command's argument list,
// accepting comma/space separators and compact forms like "10-5".
func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var coords []float64
	for _, part := range numberRe.FindAllString(s, -1) {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}

// parseArcArgs reads arc argument groups, where the two flag slots are
// single digits and may run into the next number ("0 1050 0" is 0 1 0 50 0).
// Reading stops at the first malformed token.
func parseArcArgs(s string) []float64 {
	var args []float64
	for {
		s = strings.TrimLeft(s, " \t\r\n,")
		if s == "" {
			return args
		}

		if slot := len(args) % 7; slot == 3 || slot == 4 {
			if s[0] != '0' && s[0] != '1' {
				return args
			}
			args = append(args, float64(s[0]-'0'))
			s = s[1:]
			continue
		}

		tok := leadingNumberRe.FindString(s)
		if tok == "" {
			return args
		}
		val, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return args
		}
		args = append(args, val)
		s = s[len(tok):]
	}
}

func distance(a, b vec.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
