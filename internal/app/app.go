// Package app is the globe's frame state: it owns the hover state, parameters, camera
// and textures, and consumes input as messages on a single thread.
package app

import (
	"errors"
	"fmt"
	"image"

	"svg-globe/internal/atlas"
	"svg-globe/internal/config"
	"svg-globe/internal/globe"
	"svg-globe/internal/hover"
	"svg-globe/internal/logger"
	"svg-globe/internal/orbit"
	"svg-globe/internal/panel"
	"svg-globe/internal/texture"
	"svg-globe/internal/tween"
)

const (
	dragScale         = 0.9
	dragScaleDuration = 0.3
	settleDuration    = 0.6
	settleOvershoot   = 1.7
)

// Surface shows what the app produces. The raylib scene implements it.
type Surface interface {
	// Install replaces the image of a layer.
	Install(layer texture.Layer, img *image.RGBA)
	// SetFog changes the fog colour (#rrggbb) and far distance.
	SetFog(color string, distance float64)
}

// Loader decodes image references off the frame thread. *texture.Loader implements it.
type Loader interface {
	Load(ref string, layer texture.Layer)
	Drain(fn func(texture.Result)) int
}

// View is what the surface needs to draw one frame.
type View struct {
	Camera globe.Camera
	Scale  float32
	// Side is the square render surface size; Left and Top place it in the window.
	Side, Left, Top int
	Label           string
	PanelOpen       bool
	Panel           []panel.Entry
}

// App is the explicit context object; nothing here is global.
type App struct {
	cfg      config.Config
	cfgPath  string
	atlas    *atlas.Atlas
	resolver *hover.Resolver
	gen      *texture.Generator
	loader   Loader
	surface  Surface
	log      *logger.Logger
	panel    *panel.Panel
	orbit    *orbit.Controls
	scale    *tween.Value

	inbox   []Msg
	pointer [2]float32 // normalised device coordinates
	touch   bool

	width, height int
	side          int

	label  string
	hi     texture.HiRes
	images map[texture.Layer]*image.RGBA
}

// Options wires the collaborators. Surface may be nil until the window exists.
type Options struct {
	Loader     Loader
	Surface    Surface
	Log        *logger.Logger
	ConfigPath string
}

// ErrNoCountries is returned when the map has no paths to hover.
var ErrNoCountries = errors.New("app: map has no countries")

// New validates the startup preconditions, builds the initial textures and returns the app.
// The map must have at least one country and the initial index must name one.
func New(cfg config.Config, a *atlas.Atlas, opts Options) (*App, error) {
	if a.Len() == 0 {
		return nil, ErrNoCountries
	}
	if _, ok := a.Country(cfg.InitialCountry); !ok {
		return nil, fmt.Errorf("app: initial country %d out of range [0,%d)", cfg.InitialCountry, a.Len())
	}
	if opts.Loader == nil {
		return nil, errors.New("app: no image loader")
	}
	if opts.Log == nil {
		opts.Log = logger.NewAt("")
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.ConfigPath
	}

	app := &App{
		cfg:      cfg,
		cfgPath:  opts.ConfigPath,
		atlas:    a,
		resolver: hover.NewResolver(a, cfg.InitialCountry),
		gen:      texture.NewGenerator(a),
		loader:   opts.Loader,
		surface:  opts.Surface,
		log:      opts.Log,
		orbit:    orbit.New(),
		scale:    tween.NewValue(1),
		pointer:  [2]float32{-1, -1},
		images:   make(map[texture.Layer]*image.RGBA),
	}
	pnl, err := panel.New(&app.cfg.Params, app)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	app.panel = pnl
	app.resolver.OnChange(app.hovered)
	app.resize(cfg.Window.Width, cfg.Window.Height)

	app.RegenerateHiRes()
	app.RegenerateLowRes()
	app.UpdateFog()
	return app, nil
}

// Panel returns the parameter panel.
func (a *App) Panel() *panel.Panel { return a.panel }

// Config returns the current configuration, including live parameter edits.
func (a *App) Config() config.Config { return a.cfg }

// Hover returns the hover state.
func (a *App) Hover() hover.State { return a.resolver.State() }

// Label is the hovered country's name as last shown.
func (a *App) Label() string { return a.label }

// Atlas returns the country atlas.
func (a *App) Atlas() *atlas.Atlas { return a.atlas }

// SetSurface attaches the surface and replays the images and fog it missed.
func (a *App) SetSurface(s Surface) {
	a.surface = s
	if s == nil {
		return
	}
	for layer, img := range a.images {
		s.Install(layer, img)
	}
	a.UpdateFog()
}

// Send queues a message for the next Update.
func (a *App) Send(m Msg) {
	a.inbox = append(a.inbox, m)
}

// Update runs one frame: queued input, finished image loads, camera and scale animation,
// then picking. dt is the frame time in seconds.
func (a *App) Update(dt float64) {
	inbox := a.inbox
	a.inbox = nil
	for _, m := range inbox {
		a.handle(m)
	}

	a.loader.Drain(a.install)

	a.orbit.Update()
	a.scale.Step(dt)

	if a.resolver.State().Enabled {
		cam := a.orbit.Camera()
		if u, v, ok := globe.Pick(cam, a.pointer[0], a.pointer[1], float32(a.scale.Get()), float32(a.cfg.RayFar)); ok {
			a.resolver.Resolve(float64(u), float64(v))
		}
		// Touch input gets a single pick per interaction.
		if a.touch {
			a.resolver.SetEnabled(false)
		}
	}
}

// View returns the draw state for the current frame.
func (a *App) View() View {
	v := View{
		Camera:    a.orbit.Camera(),
		Scale:     float32(a.scale.Get()),
		Side:      a.side,
		Left:      (a.width - a.side) / 2,
		Top:       (a.height - a.side) / 2,
		Label:     a.label,
		PanelOpen: a.panel.IsOpen(),
	}
	if v.PanelOpen {
		v.Panel = a.panel.Entries()
	}
	return v
}

func (a *App) handle(m Msg) {
	switch m := m.(type) {
	case PointerMoved:
		a.pointer = a.toNDC(m.X, m.Y)
	case TouchStarted:
		a.touch = true
	case DragStarted:
		if a.orbit.BeginDrag() {
			a.interactionStarted()
		}
	case DragMoved:
		a.orbit.Drag(m.DX, float32(a.side))
	case DragEnded:
		if a.orbit.EndDrag() {
			a.interactionEnded()
		}
	case Zoomed:
		// A wheel turn is a whole interaction on its own.
		a.interactionStarted()
		a.orbit.Wheel(m.Notches)
		a.interactionEnded()
	case Resized:
		a.resize(m.Width, m.Height)
	}
}

func (a *App) interactionStarted() {
	a.resolver.SetEnabled(false)
	a.pointer = [2]float32{-1, -1}
	a.scale.To(dragScale, dragScaleDuration, tween.Power1InOut, nil)
}

func (a *App) interactionEnded() {
	a.scale.To(1, settleDuration, tween.BackOut(settleOvershoot), func() {
		if !a.orbit.Dragging() {
			a.resolver.SetEnabled(true)
		}
	})
}

// SurfaceSide is the render surface size for a window: the shorter side minus the
// margin, capped at the maximum.
func SurfaceSide(width, height, maxSide, margin int) int {
	side := min(width, height) - margin
	side = min(side, maxSide)
	return max(side, 1)
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.side = SurfaceSide(w, h, a.cfg.Window.MaxSide, a.cfg.Window.Margin)
}

// toNDC maps window pixels to the surface's normalised device coordinates, y up.
func (a *App) toNDC(x, y float32) [2]float32 {
	left := float32(a.width-a.side) / 2
	top := float32(a.height-a.side) / 2
	side := float32(a.side)
	return [2]float32{
		(x-left)/side*2 - 1,
		-(y-top)/side*2 + 1,
	}
}

func (a *App) install(r texture.Result) {
	if r.Err != nil {
		a.log.Logf("texture %s: %v", r.Layer, r.Err)
		return
	}
	a.images[r.Layer] = r.Image
	if a.surface != nil {
		a.surface.Install(r.Layer, r.Image)
	}
}

func (a *App) hovered(c *atlas.Country) {
	a.loader.Load(c.Highlight, texture.LayerSelection)
	a.label = c.Name
	a.log.Logf("hover %d %s", c.Index, c.Name)
}

// RegenerateHiRes rebuilds the colour and stroke images and resyncs the label.
func (a *App) RegenerateHiRes() {
	a.hi = a.gen.HiRes(a.cfg.Params)
	a.loader.Load(a.hi.Color, texture.LayerColor)
	a.loader.Load(a.hi.Strokes, texture.LayerStrokes)
	if c, ok := a.resolver.Current(); ok {
		a.label = c.Name
	}
}

// RegenerateLowRes rebuilds every highlight image and reloads the hovered one.
func (a *App) RegenerateLowRes() {
	a.gen.LowRes(a.cfg.Params)
	if c, ok := a.resolver.Current(); ok {
		a.loader.Load(c.Highlight, texture.LayerSelection)
	}
}

// UpdateFog pushes the fog parameters to the surface.
func (a *App) UpdateFog() {
	if a.surface != nil {
		a.surface.SetFog(a.cfg.Params.FogColor, a.cfg.Params.FogDistance)
	}
}

// HiRes returns the current full-map image references.
func (a *App) HiRes() texture.HiRes { return a.hi }

// Save writes the configuration, with live parameter edits, to the config file.
func (a *App) Save() error {
	if err := config.SaveTo(a.cfgPath, a.cfg); err != nil {
		return err
	}
	a.log.Logf("saved %s", a.cfgPath)
	return nil
}

// Export writes the installed images as PNG files into dir.
func (a *App) Export(dir string) ([]string, error) {
	imgs := make(map[texture.Layer]image.Image, len(a.images))
	for l, img := range a.images {
		imgs[l] = img
	}
	return texture.Export(dir, imgs)
}
