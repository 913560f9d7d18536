package ui

import (
	"image/color"

	"svg-globe/internal/app"
	"svg-globe/internal/panel"
	"svg-globe/internal/ui/stylesheet"
)

const (
	paramsTitleHeight = 34
	paramsRowHeight   = 28
	paramsBottomPad   = 6
)

// Overlay owns the label and parameter panel nodes and refreshes them from a View.
// Styled by .label, #params, .params-title and .params-row.
type Overlay struct {
	label  *Node
	params *Node
	title  *Node
	rows   []*Node
	colors []color.RGBA
}

// NewOverlay returns an overlay with no rows yet.
func NewOverlay() *Overlay {
	o := &Overlay{
		label:  NewNode("label", "label", "country", ""),
		params: NewNode("panel", "params", "params", ""),
		title:  NewNode("label", "params-title", "", "Parameters"),
	}
	o.title.Parent = o.params
	return o
}

// Nodes returns the nodes to draw for v: the country label, and the panel when open.
// The returned slice is rebuilt every call; node pointers are reused.
func (o *Overlay) Nodes(v app.View) []*Node {
	var out []*Node
	if v.Label != "" {
		o.label.Text = v.Label
		out = append(out, o.label)
	}
	if !v.PanelOpen {
		return out
	}
	o.grow(len(v.Panel))
	o.params.Bounds.Height = float32(paramsTitleHeight + len(v.Panel)*paramsRowHeight + paramsBottomPad)
	out = append(out, o.params, o.title)
	for i, e := range v.Panel {
		row := o.rows[i]
		row.Text = rowText(e)
		row.Swatch = nil
		if e.Kind == panel.KindColor {
			if c, ok := stylesheet.Color(e.Value); ok {
				o.colors[i] = c
				row.Swatch = &o.colors[i]
			}
		}
		out = append(out, row)
	}
	return out
}

func (o *Overlay) grow(n int) {
	if len(o.rows) >= n {
		return
	}
	o.colors = make([]color.RGBA, n)
	for i := len(o.rows); i < n; i++ {
		row := NewNode("label", "params-row", "", "")
		row.Parent = o.params
		row.Bounds.Y = float32(paramsTitleHeight + i*paramsRowHeight)
		row.Bounds.Height = paramsRowHeight
		o.rows = append(o.rows, row)
	}
}

func rowText(e panel.Entry) string {
	return e.Name + "  " + e.Value
}
