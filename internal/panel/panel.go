// Package panel holds the live-editable visual parameters and routes each edit to the
// work it invalidates.
package panel

import (
	"fmt"
	"strconv"
	"strings"

	"svg-globe/internal/config"
	"svg-globe/internal/raster"
)

// Target does the work an edit calls for.
type Target interface {
	// RegenerateHiRes rebuilds the colour and stroke images.
	RegenerateHiRes()
	// RegenerateLowRes rebuilds the per-country highlight images.
	RegenerateLowRes()
	// UpdateFog applies the fog parameters. No texture work.
	UpdateFog()
}

// Effect is what a control invalidates.
type Effect int

const (
	EffectHiRes Effect = iota
	EffectLowRes
	EffectFog
)

// Kind is the editor a control uses.
type Kind int

const (
	KindColor Kind = iota
	KindRange
)

// Control is one editable parameter.
type Control struct {
	Name     string
	Kind     Kind
	Min, Max float64
	Effect   Effect

	color func(p *config.Params) *string
	num   func(p *config.Params) *float64
}

// Entry is a control's name and formatted value, for display.
type Entry struct {
	Name  string
	Kind  Kind
	Value string
}

// Panel edits a Params value in place. It starts closed.
type Panel struct {
	params   *config.Params
	target   Target
	controls []Control
	open     bool
}

// New returns a panel over params. The colour controls are normalised to lowercase #rrggbb;
// a colour that does not parse is an error naming its control.
func New(params *config.Params, target Target) (*Panel, error) {
	p := &Panel{
		params: params,
		target: target,
		controls: []Control{
			{Name: "stroke", Kind: KindColor, Effect: EffectHiRes, color: func(p *config.Params) *string { return &p.StrokeColor }},
			{Name: "color", Kind: KindColor, Effect: EffectHiRes, color: func(p *config.Params) *string { return &p.DefaultColor }},
			{Name: "highlight", Kind: KindColor, Effect: EffectLowRes, color: func(p *config.Params) *string { return &p.HoverColor }},
			{Name: "fog", Kind: KindColor, Effect: EffectFog, color: func(p *config.Params) *string { return &p.FogColor }},
			{Name: "fog distance", Kind: KindRange, Min: 1, Max: 4, Effect: EffectFog, num: func(p *config.Params) *float64 { return &p.FogDistance }},
		},
	}
	for _, c := range p.controls {
		if c.Kind != KindColor {
			continue
		}
		v, err := normalizeColor(*c.color(params))
		if err != nil {
			return nil, fmt.Errorf("panel: %s: %w", c.Name, err)
		}
		*c.color(params) = v
	}
	return p, nil
}

// Controls returns the controls in display order.
func (p *Panel) Controls() []Control {
	return append([]Control(nil), p.controls...)
}

// Params returns the live parameters.
func (p *Panel) Params() *config.Params {
	return p.params
}

func (p *Panel) IsOpen() bool { return p.open }
func (p *Panel) Open()        { p.open = true }
func (p *Panel) Close()       { p.open = false }
func (p *Panel) Toggle()      { p.open = !p.open }

// Entries returns every control with its current value.
func (p *Panel) Entries() []Entry {
	out := make([]Entry, 0, len(p.controls))
	for _, c := range p.controls {
		out = append(out, Entry{Name: c.Name, Kind: c.Kind, Value: p.value(c)})
	}
	return out
}

// Get returns the formatted value of the named control.
func (p *Panel) Get(name string) (string, bool) {
	c, ok := p.find(name)
	if !ok {
		return "", false
	}
	return p.value(c), true
}

// Edit is one control change.
type Edit struct {
	Name  string
	Value string
}

// Set parses value for the named control, applies it and triggers the matching work.
// Range values are clamped rather than rejected. Setting the current value does nothing.
// It reports whether the parameter changed.
func (p *Panel) Set(name, value string) (bool, error) {
	return p.Apply(Edit{Name: name, Value: value})
}

// Apply validates every edit first, so a bad one leaves all parameters untouched.
// Each kind of work runs at most once however many edits need it.
func (p *Panel) Apply(edits ...Edit) (bool, error) {
	next := *p.params
	for _, e := range edits {
		c, ok := p.find(e.Name)
		if !ok {
			return false, fmt.Errorf("panel: unknown control %q", e.Name)
		}
		switch c.Kind {
		case KindColor:
			v, err := normalizeColor(e.Value)
			if err != nil {
				return false, fmt.Errorf("panel: %s: %w", c.Name, err)
			}
			*c.color(&next) = v
		case KindRange:
			f, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
			if err != nil {
				return false, fmt.Errorf("panel: %s: %w", c.Name, err)
			}
			*c.num(&next) = clamp(f, c.Min, c.Max)
		}
	}

	var effects [3]bool
	changed := false
	for _, c := range p.controls {
		if p.value(c) == valueIn(c, &next) {
			continue
		}
		effects[c.Effect] = true
		changed = true
	}
	*p.params = next
	for e, on := range effects {
		if on {
			p.apply(Effect(e))
		}
	}
	return changed, nil
}

func (p *Panel) apply(e Effect) {
	if p.target == nil {
		return
	}
	switch e {
	case EffectHiRes:
		p.target.RegenerateHiRes()
	case EffectLowRes:
		p.target.RegenerateLowRes()
	case EffectFog:
		p.target.UpdateFog()
	}
}

func (p *Panel) find(name string) (Control, bool) {
	for _, c := range p.controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

func (p *Panel) value(c Control) string {
	return valueIn(c, p.params)
}

func valueIn(c Control, params *config.Params) string {
	if c.Kind == KindColor {
		return *c.color(params)
	}
	return strconv.FormatFloat(*c.num(params), 'g', -1, 64)
}

func normalizeColor(s string) (string, error) {
	c, ok, err := raster.ParseColor(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("colour %q paints nothing", s)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
