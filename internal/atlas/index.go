package atlas

import "github.com/paulmach/orb"

// Index is the bounding box pre-filter: one box per country, in country order.
// It is a cheap rejection test, never a containment answer.
type Index struct {
	boxes []orb.Bound
}

// NewIndex computes every country's bounding box (stored on the country too) and the
// padded box used for rejection.
func NewIndex(countries []*Country, padding float64) *Index {
	ix := &Index{boxes: make([]orb.Bound, len(countries))}
	for i, c := range countries {
		c.Box = c.Shape.Bound()
		b := c.Box
		if padding > 0 && !b.IsEmpty() {
			b = b.Pad(padding)
		}
		ix.boxes[i] = b
	}
	return ix
}

// Len returns the number of boxes.
func (ix *Index) Len() int {
	return len(ix.boxes)
}

// MayContain reports whether p lies inside (or within the padding of) box i. All four
// sides must hold; a point outside any one of them is rejected.
func (ix *Index) MayContain(i int, p orb.Point) bool {
	b := ix.boxes[i]
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1]
}
