// Package texture turns the country map into image references and decodes them off
// the frame loop.
package texture

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"svg-globe/internal/atlas"
	"svg-globe/internal/config"
)

// HiRes is the full-map image pair. Color is what the globe shows, Strokes is the
// outline-only layer drawn on top.
type HiRes struct {
	Color   string
	Strokes string
}

// Generator serialises the atlas into SVG data URIs.
type Generator struct {
	atlas *atlas.Atlas
}

// NewGenerator returns a Generator for a.
func NewGenerator(a *atlas.Atlas) *Generator {
	return &Generator{atlas: a}
}

// HiRes builds the colour and stroke images at the hi-res scaling factor.
func (g *Generator) HiRes(p config.Params) HiRes {
	all := g.atlas.Countries
	return HiRes{
		Color:   EncodeSVG(g.document(p.HiResScalingFactor, paint(p.DefaultColor, p.StrokeColor, p.StrokeWidth), all)),
		Strokes: EncodeSVG(g.document(p.HiResScalingFactor, paint("none", p.StrokeColor, p.StrokeWidth), all)),
	}
}

// LowRes rebuilds every country's highlight image at the low-res scaling factor and
// stores it on the country.
func (g *Generator) LowRes(p config.Params) {
	style := paint(p.HoverColor, p.StrokeColor, p.StrokeWidth)
	for _, c := range g.atlas.Countries {
		c.Highlight = EncodeSVG(g.document(p.LowResScalingFactor, style, []*atlas.Country{c}))
	}
}

// document writes one SVG whose viewBox is the shifted map space and whose pixel
// size is the map size times scale.
func (g *Generator) document(scale float64, style string, countries []*atlas.Country) []byte {
	a := g.atlas
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(
		pixels(a.Width*scale), pixels(a.Height*scale),
		0, int(math.Round(a.OffsetY*a.Height)),
		int(math.Round(a.Width)), int(math.Round(a.Height)),
	)
	canvas.Gstyle(style)
	for _, c := range countries {
		canvas.Path(c.Path.D)
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func paint(fill, stroke string, width float64) string {
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, width)
}

func pixels(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
