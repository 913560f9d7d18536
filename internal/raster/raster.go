// Package raster paints a parsed SVG map into an RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"svg-globe/internal/svgmap"
)

// joinSides is the polygon used for round joins and caps.
const joinSides = 12

// Render paints doc at w x h pixels, mapping the viewBox onto the whole image.
// Each path is filled, then stroked, in document order.
func Render(doc *svgmap.Document, w, h int, tolerance float64) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: bad size %dx%d", w, h)
	}
	vb := doc.ViewBox
	if vb.Width <= 0 || vb.Height <= 0 {
		return nil, fmt.Errorf("raster: empty viewBox")
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	t := transform{
		sx: float64(w) / vb.Width,
		sy: float64(h) / vb.Height,
		ox: vb.MinX,
		oy: vb.MinY,
	}
	// Flatten in pixel space so the tolerance means the same thing at every scale.
	if tolerance <= 0 {
		tolerance = 0.5
	}
	userTol := tolerance / math.Max(t.sx, t.sy)

	z := vector.NewRasterizer(w, h)
	for i := range doc.Paths {
		p := &doc.Paths[i]
		fill, ok, err := ParseColor(p.Style.Fill)
		if err != nil {
			return nil, fmt.Errorf("raster: path %q fill: %w", p.ID, err)
		}
		if ok {
			z.Reset(w, h)
			fillPath(z, p.Cmds, t)
			z.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{})
		}

		stroke, ok, err := ParseColor(p.Style.Stroke)
		if err != nil {
			return nil, fmt.Errorf("raster: path %q stroke: %w", p.ID, err)
		}
		hw := p.Style.StrokeWidth * (t.sx + t.sy) / 4
		if ok && hw > 0 {
			z.Reset(w, h)
			strokePath(z, svgmap.Flatten(p.Cmds, userTol), t, hw)
			z.Draw(dst, dst.Bounds(), image.NewUniform(stroke), image.Point{})
		}
	}
	return dst, nil
}

type transform struct {
	sx, sy, ox, oy float64
}

func (t transform) apply(p svgmap.Point) (float32, float32) {
	return float32((p.X - t.ox) * t.sx), float32((p.Y - t.oy) * t.sy)
}

// fillPath feeds the path outline to z. Every subpath is closed for filling.
func fillPath(z *vector.Rasterizer, cmds []svgmap.Segment, t transform) {
	open := false
	for _, s := range cmds {
		switch s.Op {
		case svgmap.OpMove:
			if open {
				z.ClosePath()
			}
			z.MoveTo(t.apply(s.Pts[0]))
			open = true
		case svgmap.OpLine:
			z.LineTo(t.apply(s.Pts[0]))
		case svgmap.OpQuad:
			bx, by := t.apply(s.Pts[0])
			cx, cy := t.apply(s.Pts[1])
			z.QuadTo(bx, by, cx, cy)
		case svgmap.OpCubic:
			bx, by := t.apply(s.Pts[0])
			cx, cy := t.apply(s.Pts[1])
			dx, dy := t.apply(s.Pts[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case svgmap.OpClose:
			if open {
				z.ClosePath()
			}
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}

// strokePath adds one quad per polyline edge and a round cap at every vertex.
// All shapes share one winding so overlaps accumulate instead of cancelling.
func strokePath(z *vector.Rasterizer, subs []svgmap.Subpath, t transform, hw float64) {
	for _, sp := range subs {
		pts := make([][2]float64, 0, len(sp.Points)+1)
		for _, p := range sp.Points {
			x, y := t.apply(p)
			pts = append(pts, [2]float64{float64(x), float64(y)})
		}
		if sp.Closed && pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		for i := 0; i+1 < len(pts); i++ {
			segmentQuad(z, pts[i], pts[i+1], hw)
		}
		for _, p := range pts {
			roundJoin(z, p, hw)
		}
	}
}

func segmentQuad(z *vector.Rasterizer, a, b [2]float64, hw float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
	z.LineTo(float32(b[0]+nx), float32(b[1]+ny))
	z.LineTo(float32(b[0]-nx), float32(b[1]-ny))
	z.LineTo(float32(a[0]-nx), float32(a[1]-ny))
	z.ClosePath()
}

func roundJoin(z *vector.Rasterizer, c [2]float64, r float64) {
	for i := 0; i <= joinSides; i++ {
		// Decreasing angle matches the winding of segmentQuad.
		a := -2 * math.Pi * float64(i) / joinSides
		x, y := float32(c[0]+r*math.Cos(a)), float32(c[1]+r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// ParseColor reads #rgb, #rrggbb or a few keywords. ok is false for "none".
func ParseColor(s string) (c color.NRGBA, ok bool, err error) {
	switch s {
	case "", svgmap.None, "transparent":
		return color.NRGBA{}, false, nil
	case "black":
		return color.NRGBA{A: 255}, true, nil
	case "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true, nil
	}
	if s[0] != '#' {
		return color.NRGBA{}, false, fmt.Errorf("unsupported colour %q", s)
	}
	hex := s[1:]
	var v [6]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, good := hexDigit(hex[i])
			if !good {
				return color.NRGBA{}, false, fmt.Errorf("bad colour %q", s)
			}
			v[2*i], v[2*i+1] = d, d
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, good := hexDigit(hex[i])
			if !good {
				return color.NRGBA{}, false, fmt.Errorf("bad colour %q", s)
			}
			v[i] = d
		}
	default:
		return color.NRGBA{}, false, fmt.Errorf("bad colour %q", s)
	}
	return color.NRGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 255}, true, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
