// Package atlas turns a parsed SVG map into the ordered country set the globe picks
// against: one record per country with its shape, bounding box and highlight image.
package atlas

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"svg-globe/internal/svgmap"
)

// Country is one map path. Index is its position in document order and is the
// country's identity for the whole session.
type Country struct {
	Index int
	ID    string
	Name  string
	Path  svgmap.Path
	Shape orb.MultiPolygon
	Box   orb.Bound
	// Highlight is the image reference used as the overlay while this country is hovered.
	// The texture generator replaces it whenever the highlight style changes.
	Highlight string
}

// Options describe map space. Zero Width/Height take the document viewBox size.
type Options struct {
	Width, Height float64
	// OffsetY is the fraction of Height the texture is shifted by vertically.
	OffsetY float64
	// Tolerance is the chord length used when flattening curves, in map units.
	Tolerance float64
	// BoxPadding grows every bounding box so points just outside still reach the exact test.
	BoxPadding float64
}

// Atlas is the immutable country set in map space plus its bounding box index.
type Atlas struct {
	Width, Height float64
	OffsetY       float64
	Countries     []*Country
	Index         *Index
	// Doc is the source document, kept for serialising textures.
	Doc *svgmap.Document
}

// New builds the atlas from doc. An empty document gives an empty atlas.
func New(doc *svgmap.Document, opts Options) *Atlas {
	a := &Atlas{
		Width:   opts.Width,
		Height:  opts.Height,
		OffsetY: opts.OffsetY,
		Doc:     doc,
	}
	if a.Width <= 0 {
		a.Width = doc.ViewBox.Width
	}
	if a.Height <= 0 {
		a.Height = doc.ViewBox.Height
	}
	a.Countries = make([]*Country, 0, len(doc.Paths))
	for i, p := range doc.Paths {
		a.Countries = append(a.Countries, &Country{
			Index: i,
			ID:    p.ID,
			Name:  p.DisplayName(),
			Path:  p,
			Shape: buildShape(svgmap.Rings(p.Cmds, opts.Tolerance)),
		})
	}
	a.Index = NewIndex(a.Countries, opts.BoxPadding)
	return a
}

// Len returns the number of countries.
func (a *Atlas) Len() int {
	return len(a.Countries)
}

// Country returns the country at index i.
func (a *Atlas) Country(i int) (*Country, bool) {
	if i < 0 || i >= len(a.Countries) {
		return nil, false
	}
	return a.Countries[i], true
}

// ToMap converts a sphere UV (v grows upward) into map space.
func (a *Atlas) ToMap(u, v float64) orb.Point {
	return orb.Point{
		u * a.Width,
		(1 + a.OffsetY - v) * a.Height,
	}
}

// buildShape groups flattened rings into polygons. Rings are taken largest first; a
// ring whose first vertex falls inside an earlier outer ring is a hole of that polygon.
func buildShape(rings [][]svgmap.Point) orb.MultiPolygon {
	sort.SliceStable(rings, func(i, j int) bool {
		return ringArea(rings[i]) > ringArea(rings[j])
	})
	var mp orb.MultiPolygon
	for _, r := range rings {
		ring := make(orb.Ring, 0, len(r)+1)
		for _, p := range r {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		ring = append(ring, ring[0])

		first := ring[0]
		hole := false
		for i := range mp {
			if planar.RingContains(mp[i][0], first) {
				mp[i] = append(mp[i], ring)
				hole = true
				break
			}
		}
		if !hole {
			mp = append(mp, orb.Polygon{ring})
		}
	}
	return mp
}

func ringArea(r []svgmap.Point) float64 {
	var sum float64
	for i := range r {
		j := (i + 1) % len(r)
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return math.Abs(sum) / 2
}
