// Package hover maps a sphere UV hit to the country under it and keeps the hover state.
package hover

import (
	"github.com/paulmach/orb/planar"

	"svg-globe/internal/atlas"
)

// State is the currently highlighted country and whether pointer picking is on.
// Once a country is set there is no "no country" state; misses leave it alone.
type State struct {
	Index   int
	Enabled bool
}

// Listener is told about the new country after every hover change.
type Listener func(c *atlas.Country)

// Resolver owns the hover state for one atlas.
type Resolver struct {
	atlas     *atlas.Atlas
	state     State
	listeners []Listener
}

// NewResolver starts with initial as the hovered country and picking enabled.
func NewResolver(a *atlas.Atlas, initial int) *Resolver {
	return &Resolver{atlas: a, state: State{Index: initial, Enabled: true}}
}

// OnChange registers l. Listeners run in registration order.
func (r *Resolver) OnChange(l Listener) {
	r.listeners = append(r.listeners, l)
}

// State returns a copy of the hover state.
func (r *Resolver) State() State {
	return r.state
}

// SetEnabled turns pointer picking on or off.
func (r *Resolver) SetEnabled(on bool) {
	r.state.Enabled = on
}

// Current returns the hovered country.
func (r *Resolver) Current() (*atlas.Country, bool) {
	return r.atlas.Country(r.state.Index)
}

// Resolve maps a UV hit into map space and scans countries in order: the bounding box
// rejects cheaply, the polygon decides. The first exact match other than the hovered
// country wins and ends the scan. It returns true when the hovered country changed.
func (r *Resolver) Resolve(u, v float64) bool {
	p := r.atlas.ToMap(u, v)
	ix := r.atlas.Index
	for i, c := range r.atlas.Countries {
		if i == r.state.Index {
			continue
		}
		if !ix.MayContain(i, p) {
			continue
		}
		if !planar.MultiPolygonContains(c.Shape, p) {
			continue
		}
		r.state.Index = i
		for _, l := range r.listeners {
			l(c)
		}
		return true
	}
	return false
}
