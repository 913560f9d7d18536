package svgmap

import (
	"fmt"
	"math"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Point is a position in document user space.
type Point struct {
	X, Y float64
}

// Op is an absolute drawing operation.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

// Segment is one absolute operation. Pts holds, in order: the end point for move/line,
// control + end for quad, and two controls + end for cubic. Close carries the subpath start.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// End returns the pen position after the segment.
func (s Segment) End() Point {
	switch s.Op {
	case OpQuad:
		return s.Pts[1]
	case OpCubic:
		return s.Pts[2]
	default:
		return s.Pts[0]
	}
}

// argument counts per command letter.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

type pathScanner struct {
	b   []byte
	pos int
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.b) {
		switch sc.b[sc.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) done() bool {
	sc.skipSeparators()
	return sc.pos >= len(sc.b)
}

// atNumber reports whether the next token starts a number.
func (sc *pathScanner) atNumber() bool {
	sc.skipSeparators()
	if sc.pos >= len(sc.b) {
		return false
	}
	c := sc.b[sc.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	f, n := pstrconv.ParseFloat(sc.b[sc.pos:])
	if n == 0 {
		return 0, fmt.Errorf("expected number at offset %d", sc.pos)
	}
	sc.pos += n
	return f, nil
}

// flag reads an arc flag, which may be packed without separators ("a1 1 0 011 2 2").
func (sc *pathScanner) flag() (float64, error) {
	sc.skipSeparators()
	if sc.pos < len(sc.b) {
		switch sc.b[sc.pos] {
		case '0':
			sc.pos++
			return 0, nil
		case '1':
			sc.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("expected arc flag at offset %d", sc.pos)
}

// ParsePathData converts a path "d" attribute to absolute segments.
// Smooth curve shorthands are expanded and elliptical arcs become cubic Béziers.
func ParsePathData(d string) ([]Segment, error) {
	sc := &pathScanner{b: []byte(d)}
	var out []Segment
	var cur, start, lastCtrl Point
	var prev byte
	var cmd byte

	for !sc.done() {
		c := sc.b[sc.pos]
		if _, ok := argCount[upper(c)]; ok {
			cmd = c
			sc.pos++
		} else if cmd == 0 || upper(cmd) == 'Z' || !sc.atNumber() {
			return nil, fmt.Errorf("unexpected %q at offset %d", c, sc.pos)
		}
		rel := cmd >= 'a'
		up := upper(cmd)

		if up == 'Z' {
			out = append(out, Segment{Op: OpClose, Pts: [3]Point{start}})
			cur = start
			prev = 'Z'
			continue
		}

		args := make([]float64, argCount[up])
		for i := range args {
			var err error
			if up == 'A' && (i == 3 || i == 4) {
				args[i], err = sc.flag()
			} else {
				args[i], err = sc.number()
			}
			if err != nil {
				return nil, err
			}
		}

		abs := func(x, y float64) Point {
			if rel {
				return Point{cur.X + x, cur.Y + y}
			}
			return Point{x, y}
		}

		switch up {
		case 'M':
			cur = abs(args[0], args[1])
			start = cur
			out = append(out, Segment{Op: OpMove, Pts: [3]Point{cur}})
			// Subsequent pairs are implicit lineto.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			cur = abs(args[0], args[1])
			out = append(out, Segment{Op: OpLine, Pts: [3]Point{cur}})
		case 'H':
			x := args[0]
			if rel {
				x += cur.X
			}
			cur = Point{x, cur.Y}
			out = append(out, Segment{Op: OpLine, Pts: [3]Point{cur}})
		case 'V':
			y := args[0]
			if rel {
				y += cur.Y
			}
			cur = Point{cur.X, y}
			out = append(out, Segment{Op: OpLine, Pts: [3]Point{cur}})
		case 'C':
			c1, c2, end := abs(args[0], args[1]), abs(args[2], args[3]), abs(args[4], args[5])
			out = append(out, Segment{Op: OpCubic, Pts: [3]Point{c1, c2, end}})
			lastCtrl, cur = c2, end
		case 'S':
			c1 := cur
			if prev == 'C' || prev == 'S' {
				c1 = reflect(lastCtrl, cur)
			}
			c2, end := abs(args[0], args[1]), abs(args[2], args[3])
			out = append(out, Segment{Op: OpCubic, Pts: [3]Point{c1, c2, end}})
			lastCtrl, cur = c2, end
		case 'Q':
			c1, end := abs(args[0], args[1]), abs(args[2], args[3])
			out = append(out, Segment{Op: OpQuad, Pts: [3]Point{c1, end}})
			lastCtrl, cur = c1, end
		case 'T':
			c1 := cur
			if prev == 'Q' || prev == 'T' {
				c1 = reflect(lastCtrl, cur)
			}
			end := abs(args[0], args[1])
			out = append(out, Segment{Op: OpQuad, Pts: [3]Point{c1, end}})
			lastCtrl, cur = c1, end
		case 'A':
			end := abs(args[5], args[6])
			out = append(out, arcToCubics(cur, end, args[0], args[1], args[2], args[3] != 0, args[4] != 0)...)
			cur = end
		}
		prev = up
	}
	return out, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func reflect(ctrl, about Point) Point {
	return Point{2*about.X - ctrl.X, 2*about.Y - ctrl.Y}
}

// arcToCubics converts an endpoint-parameterised elliptical arc into cubic segments
// of at most 90 degrees each (SVG 1.1 implementation notes, F.6.5).
func arcToCubics(p0, p1 Point, rx, ry, phiDeg float64, largeArc, sweep bool) []Segment {
	if p0 == p1 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Segment{{Op: OpLine, Pts: [3]Point{p1}}}
	}
	phi := phiDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale radii up when the endpoints cannot be reached.
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := vecAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	point := func(t float64) (Point, Point) {
		cosT, sinT := math.Cos(t), math.Sin(t)
		pos := Point{
			cx + rx*cosT*cosPhi - ry*sinT*sinPhi,
			cy + rx*cosT*sinPhi + ry*sinT*cosPhi,
		}
		deriv := Point{
			-rx*sinT*cosPhi - ry*cosT*sinPhi,
			-rx*sinT*sinPhi + ry*cosT*cosPhi,
		}
		return pos, deriv
	}

	segs := make([]Segment, 0, n)
	t := theta1
	from, d0 := point(t)
	for i := 0; i < n; i++ {
		to, d1 := point(t + step)
		c1 := Point{from.X + k*d0.X, from.Y + k*d0.Y}
		c2 := Point{to.X - k*d1.X, to.Y - k*d1.Y}
		if i == n-1 {
			to = p1
		}
		segs = append(segs, Segment{Op: OpCubic, Pts: [3]Point{c1, c2, to}})
		from, d0 = to, d1
		t += step
	}
	return segs
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	a := math.Atan2(uy, ux)
	b := math.Atan2(vy, vx)
	d := b - a
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// parseNumberList reads a whitespace/comma separated list of numbers (viewBox, points).
func parseNumberList(s string) ([]float64, error) {
	sc := &pathScanner{b: []byte(s)}
	var out []float64
	for !sc.done() {
		f, err := sc.number()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
