// Package debug draws optional diagnostic lines in the top-left corner.
package debug

import (
	"flag"
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"svg-globe/internal/commands"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Text is rebuilt every refreshFrames frames.
	refreshFrames = 30
)

// Overlays says which lines are shown.
type Overlays struct {
	FPS   bool
	Mem   bool
	Globe bool
}

// Debug keeps the overlay switches and the last rendered text. Everything is off by default.
type Debug struct {
	show Overlays
	// Globe describes the globe state for the globe line; nil hides that line.
	Globe func() string

	font  rl.Font
	frame uint32
	text  []string
	stale bool
	mem   runtime.MemStats
}

// New returns a Debug with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Show replaces the overlay switches; the text is rebuilt on the next Draw.
func (d *Debug) Show(o Overlays) {
	d.show = o
	d.stale = true
}

// Shown returns the current switches.
func (d *Debug) Shown() Overlays { return d.show }

// SetFont sets the font for the overlay; a zero texture ID keeps raylib's default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Register adds "cmd debug -fps -mem -globe" to reg.
func (d *Debug) Register(reg *commands.Registry) {
	reg.Register("debug", "toggle the FPS, memory and globe overlays", func(fs *flag.FlagSet) func() error {
		fps := fs.Bool("fps", d.show.FPS, "show frames per second")
		mem := fs.Bool("mem", d.show.Mem, "show heap allocation")
		globe := fs.Bool("globe", d.show.Globe, "show hovered country, surface size and zoom")
		return func() error {
			d.Show(Overlays{FPS: *fps, Mem: *mem, Globe: *globe})
			reg.Println(fmt.Sprintf("debug: fps=%t mem=%t globe=%t", *fps, *mem, *globe))
			return nil
		}
	})
}

// Draw renders the enabled lines. Call last so they sit above the overlay UI.
func (d *Debug) Draw() {
	if d.show == (Overlays{}) {
		return
	}
	d.frame++
	if d.stale || d.frame%refreshFrames == 0 {
		var heap uint64
		if d.show.Mem {
			runtime.ReadMemStats(&d.mem)
			heap = d.mem.Alloc
		}
		d.text = d.lines(d.text[:0], int(rl.GetFPS()), heap)
		d.stale = false
	}
	for i, s := range d.text {
		d.line(s, int32(padding+i*lineHeight))
	}
}

// lines appends the text of every enabled overlay to dst.
func (d *Debug) lines(dst []string, fps int, heap uint64) []string {
	if d.show.FPS {
		dst = append(dst, fmt.Sprintf("FPS: %d", fps))
	}
	if d.show.Mem {
		dst = append(dst, fmt.Sprintf("Mem: %.2f MiB", float64(heap)/(1<<20)))
	}
	if d.show.Globe && d.Globe != nil {
		dst = append(dst, d.Globe())
	}
	return dst
}

func (d *Debug) line(text string, y int32) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(padding, float32(y)), fontSize, 1, rl.DarkGreen)
		return
	}
	rl.DrawText(text, padding, y, fontSize, rl.DarkGreen)
}
