package svgmap

import "math"

// maxCurveSteps caps the subdivision of a single curve.
const maxCurveSteps = 32

// Subpath is one flattened subpath. Closed is set when it ended with Z.
type Subpath struct {
	Points []Point
	Closed bool
}

// Rings flattens the segments into closed polylines, one per subpath. Curves are
// subdivided so no chord is longer than tolerance (user units). Subpaths with fewer
// than three distinct points enclose nothing and are dropped.
func Rings(cmds []Segment, tolerance float64) [][]Point {
	var rings [][]Point
	for _, sp := range Flatten(cmds, tolerance) {
		ring := sp.Points
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// Flatten turns the segments into polylines, keeping open subpaths. Subpaths with
// a single point are dropped.
func Flatten(cmds []Segment, tolerance float64) []Subpath {
	if tolerance <= 0 {
		tolerance = 1
	}
	var out []Subpath
	var cur Subpath
	var pen Point

	flush := func(closed bool) {
		if len(cur.Points) > 1 {
			cur.Closed = closed
			out = append(out, cur)
		}
		cur = Subpath{}
	}
	start := func() {
		if len(cur.Points) == 0 {
			cur.Points = append(cur.Points, pen)
		}
	}

	for _, s := range cmds {
		switch s.Op {
		case OpMove:
			flush(false)
			pen = s.Pts[0]
			cur.Points = append(cur.Points, pen)
		case OpLine:
			start()
			pen = s.Pts[0]
			cur.Points = append(cur.Points, pen)
		case OpQuad:
			start()
			n := curveSteps(dist(pen, s.Pts[0])+dist(s.Pts[0], s.Pts[1]), tolerance)
			for i := 1; i <= n; i++ {
				cur.Points = append(cur.Points, quadAt(pen, s.Pts[0], s.Pts[1], float64(i)/float64(n)))
			}
			pen = s.Pts[1]
		case OpCubic:
			start()
			n := curveSteps(dist(pen, s.Pts[0])+dist(s.Pts[0], s.Pts[1])+dist(s.Pts[1], s.Pts[2]), tolerance)
			for i := 1; i <= n; i++ {
				cur.Points = append(cur.Points, cubicAt(pen, s.Pts[0], s.Pts[1], s.Pts[2], float64(i)/float64(n)))
			}
			pen = s.Pts[2]
		case OpClose:
			flush(true)
			pen = s.Pts[0]
		}
	}
	flush(false)
	return out
}

func curveSteps(length, tolerance float64) int {
	n := int(math.Ceil(length / tolerance))
	if n < 1 {
		return 1
	}
	if n > maxCurveSteps {
		return maxCurveSteps
	}
	return n
}

func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
