package ui

import (
	_ "embed"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"svg-globe/internal/ui/stylesheet"
)

//go:embed default.css
var defaultCSS string

const swatchSize = 14

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next); a parent must
// come before its children.
// Resolved styles are cached per class and id until the stylesheet changes.
// If font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet  *stylesheet.Sheet
	nodes  []*Node
	styles map[[2]string]stylesheet.Style
	font   rl.Font
}

// New creates an engine with the built-in stylesheet and no nodes.
func New() *Engine {
	e := &Engine{}
	sheet, err := stylesheet.Parse(defaultCSS)
	if err == nil {
		e.SetStylesheet(sheet)
	}
	return e
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := stylesheet.Parse(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *stylesheet.Sheet) {
	e.sheet = sheet
	e.styles = make(map[[2]string]stylesheet.Style)
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *stylesheet.Sheet {
	return e.sheet
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists (e.g. after first frame or in draw).
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

func (e *Engine) style(n *Node) stylesheet.Style {
	key := [2]string{n.Class, n.ID}
	if st, ok := e.styles[key]; ok {
		return st
	}
	st := stylesheet.Resolve(e.sheet.Props(n.Class, n.ID))
	if e.styles == nil {
		e.styles = make(map[[2]string]stylesheet.Style)
	}
	e.styles[key] = st
	return st
}

// place resolves n's screen rectangle. Children without a width span their parent;
// other text nodes without a size grow to fit the text.
func (e *Engine) place(n *Node, st stylesheet.Style, screenW, screenH float32) rl.Rectangle {
	w, h := n.Bounds.Width, n.Bounds.Height
	if st.Width > 0 {
		w = float32(st.Width)
	}
	if w == 0 && n.Parent != nil {
		w = n.Parent.placed.Width
	}
	if st.Height > 0 {
		h = float32(st.Height)
	}
	if n.Text != "" {
		if w == 0 {
			w = e.measure(n.Text, st.FontSize) + 2*float32(st.Padding)
		}
		if h == 0 {
			h = float32(st.FontSize + 2*st.Padding)
		}
	}

	var ox, oy float32
	pw, ph := screenW, screenH
	if n.Parent != nil {
		p := n.Parent.placed
		ox, oy, pw, ph = p.X, p.Y, p.Width, p.Height
	}
	x, y := n.Bounds.X, n.Bounds.Y
	if st.HasLeft {
		if st.LeftPct >= 0 {
			x = (pw - w) * float32(st.LeftPct) / 100
		} else {
			x = float32(st.Left)
		}
	}
	if st.HasTop {
		if st.TopPct >= 0 {
			y = (ph - h) * float32(st.TopPct) / 100
		} else {
			y = float32(st.Top)
		}
	}
	n.placed = rl.NewRectangle(ox+x, oy+y, w, h)
	return n.placed
}

func (e *Engine) measure(text string, size int32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

// Draw draws all nodes: for each node, resolve style (cached) and bounds, then draw background, border, text and swatch.
func (e *Engine) Draw() {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	for _, n := range e.nodes {
		st := e.style(n)
		r := e.place(n, st, screenW, screenH)
		x, y, w, h := int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)

		if st.Background.A > 0 && w > 0 && h > 0 {
			rl.DrawRectangle(x, y, w, h, st.Background)
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, st.Border)
		}
		if n.Text != "" {
			tx, ty := x+st.Padding, y+st.Padding
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(tx), float32(ty)), float32(st.FontSize), 1, st.Color)
			} else {
				rl.DrawText(n.Text, tx, ty, st.FontSize, st.Color)
			}
		}
		if n.Swatch != nil {
			sx := x + w - st.Padding - swatchSize
			sy := y + (h-swatchSize)/2
			rl.DrawRectangle(sx, sy, swatchSize, swatchSize, *n.Swatch)
			rl.DrawRectangleLines(sx, sy, swatchSize, swatchSize, st.Color)
		}
	}
}
