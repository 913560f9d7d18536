package app

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"svg-globe/internal/atlas"
	"svg-globe/internal/config"
	"svg-globe/internal/logger"
	"svg-globe/internal/svgmap"
	"svg-globe/internal/texture"
)

// testMap: "Far" sits away from the view, "Front" covers map point (1500,360),
// which is what the centre of the surface sees before any rotation.
const testMap = `<svg viewBox="0 -100 2000 1000">
<path id="far" data-name="Far" d="M100 100H300V300H100Z"/>
<path id="front" data-name="Front" d="M1300 200H1700V500H1300Z"/>
</svg>`

type load struct {
	ref   string
	layer texture.Layer
}

type fakeLoader struct {
	loads   []load
	pending []texture.Result
	fail    bool
}

func (f *fakeLoader) Load(ref string, layer texture.Layer) {
	f.loads = append(f.loads, load{ref, layer})
	r := texture.Result{Layer: layer, Ref: ref}
	if f.fail {
		r.Err = errors.New("decode failed")
	} else {
		r.Image = image.NewRGBA(image.Rect(0, 0, 2, 1))
	}
	f.pending = append(f.pending, r)
}

func (f *fakeLoader) Drain(fn func(texture.Result)) int {
	n := len(f.pending)
	for _, r := range f.pending {
		fn(r)
	}
	f.pending = nil
	return n
}

func (f *fakeLoader) layers() []texture.Layer {
	var out []texture.Layer
	for _, l := range f.loads {
		out = append(out, l.layer)
	}
	return out
}

type fakeSurface struct {
	installs    map[texture.Layer]*image.RGBA
	fogColor    string
	fogDistance float64
}

func (s *fakeSurface) Install(l texture.Layer, img *image.RGBA) {
	if s.installs == nil {
		s.installs = map[texture.Layer]*image.RGBA{}
	}
	s.installs[l] = img
}

func (s *fakeSurface) SetFog(c string, d float64) { s.fogColor, s.fogDistance = c, d }

type fixture struct {
	app     *App
	loader  *fakeLoader
	surface *fakeSurface
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	doc, err := svgmap.Parse([]byte(testMap))
	if err != nil {
		t.Fatal(err)
	}
	a := atlas.New(doc, atlas.Options{Width: 2000, Height: 1000, OffsetY: -0.1, Tolerance: 1})
	cfg := config.Default()
	cfg.InitialCountry = 0
	f := fixture{loader: &fakeLoader{}, surface: &fakeSurface{}}
	f.app, err = New(cfg, a, Options{
		Loader:     f.loader,
		Surface:    f.surface,
		Log:        logger.NewAt(""),
		ConfigPath: filepath.Join(t.TempDir(), "globe.yaml"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.app.orbit.AutoRotate = false
	return f
}

// centre is the middle of the render surface for the default 800x700 window.
var centre = PointerMoved{X: 400, Y: 350}

func (f fixture) frames(n int) {
	for i := 0; i < n; i++ {
		f.app.Update(1.0 / 60)
	}
}

func TestNewRejectsBadMaps(t *testing.T) {
	empty, _ := svgmap.Parse([]byte(`<svg viewBox="0 0 10 10"/>`))
	if _, err := New(config.Default(), atlas.New(empty, atlas.Options{}), Options{Loader: &fakeLoader{}}); !errors.Is(err, ErrNoCountries) {
		t.Errorf("empty map: err = %v", err)
	}
	doc, _ := svgmap.Parse([]byte(testMap))
	cfg := config.Default()
	cfg.InitialCountry = 2
	if _, err := New(cfg, atlas.New(doc, atlas.Options{}), Options{Loader: &fakeLoader{}}); err == nil {
		t.Error("out of range initial country accepted")
	}
}

func TestNewRejectsBadColour(t *testing.T) {
	doc, _ := svgmap.Parse([]byte(testMap))
	cfg := config.Default()
	cfg.InitialCountry = 0
	cfg.Params.HoverColor = "magenta-ish"
	loader := &fakeLoader{}
	if _, err := New(cfg, atlas.New(doc, atlas.Options{}), Options{Loader: loader}); err == nil {
		t.Fatal("unparsable hover colour accepted")
	}
	if got := loader.layers(); len(got) != 0 {
		t.Errorf("textures requested before the colour check: %v", got)
	}
}

func TestStartupBuildsTextures(t *testing.T) {
	f := newFixture(t)
	got := f.loader.layers()
	want := []texture.Layer{texture.LayerColor, texture.LayerStrokes, texture.LayerSelection}
	if len(got) != len(want) {
		t.Fatalf("startup loads = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("startup loads = %v, want %v", got, want)
		}
	}
	if f.app.Label() != "Far" {
		t.Errorf("label = %q, want the initial country", f.app.Label())
	}
	if f.surface.fogColor != "#e4e5e6" || f.surface.fogDistance != 2.65 {
		t.Errorf("fog = %s %v", f.surface.fogColor, f.surface.fogDistance)
	}
	f.frames(1)
	if len(f.surface.installs) != 3 {
		t.Errorf("installed %d layers after the first frame, want 3", len(f.surface.installs))
	}
}

func TestSurfaceSide(t *testing.T) {
	tests := []struct{ w, h, want int }{
		{300, 300, 250},
		{1920, 1080, 500},
		{800, 420, 370},
		{40, 40, 1},
	}
	for _, tc := range tests {
		if got := SurfaceSide(tc.w, tc.h, 500, 50); got != tc.want {
			t.Errorf("SurfaceSide(%d,%d) = %d, want %d", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestResizeCentresSurface(t *testing.T) {
	f := newFixture(t)
	f.app.Send(Resized{Width: 300, Height: 300})
	f.frames(1)
	v := f.app.View()
	if v.Side != 250 || v.Left != 25 || v.Top != 25 {
		t.Errorf("view = side %d at %d,%d, want 250 at 25,25", v.Side, v.Left, v.Top)
	}
	f.app.Send(PointerMoved{X: 150, Y: 150})
	f.frames(1)
	if f.app.pointer != [2]float32{0, 0} {
		t.Errorf("pointer = %v, want surface centre", f.app.pointer)
	}
}

func TestPointerHoversCountry(t *testing.T) {
	f := newFixture(t)
	f.app.Send(centre)
	f.frames(1)
	if got := f.app.Hover().Index; got != 1 {
		t.Fatalf("hover index = %d, want 1 (Front)", got)
	}
	if f.app.Label() != "Front" {
		t.Errorf("label = %q", f.app.Label())
	}
	last := f.loader.loads[len(f.loader.loads)-1]
	if last.layer != texture.LayerSelection || last.ref != f.app.atlas.Countries[1].Highlight {
		t.Error("hover change did not load the new highlight")
	}
	n := len(f.loader.loads)
	f.frames(5)
	if len(f.loader.loads) != n {
		t.Error("staying on the same country reloaded textures")
	}
}

func TestPointerOffGlobeKeepsHover(t *testing.T) {
	f := newFixture(t)
	f.app.Send(PointerMoved{X: 0, Y: 0})
	f.frames(3)
	if f.app.Hover().Index != 0 {
		t.Errorf("hover moved to %d with the pointer off the globe", f.app.Hover().Index)
	}
}

func TestDragDisablesHoverUntilSettled(t *testing.T) {
	f := newFixture(t)
	f.app.Send(DragStarted{})
	f.app.Send(centre)
	f.frames(1)
	if f.app.Hover().Enabled {
		t.Fatal("hover still enabled during a drag")
	}
	f.frames(30)
	if s := f.app.View().Scale; s != 0.9 {
		t.Errorf("scale during drag = %v, want 0.9", s)
	}
	if f.app.Hover().Index != 0 {
		t.Error("hover changed during a drag")
	}

	f.app.Send(DragEnded{})
	f.frames(10)
	if f.app.Hover().Enabled {
		t.Error("hover re-enabled before the settle animation finished")
	}
	f.frames(40)
	if !f.app.Hover().Enabled || f.app.View().Scale != 1 {
		t.Errorf("after settling: enabled=%v scale=%v", f.app.Hover().Enabled, f.app.View().Scale)
	}
}

func TestDragStartResetsPointer(t *testing.T) {
	f := newFixture(t)
	f.app.Send(centre)
	f.app.Send(DragStarted{})
	f.app.Send(DragEnded{})
	f.frames(60)
	if f.app.Hover().Index != 0 {
		t.Error("pointer position survived the drag start")
	}
}

func TestDragRotatesCamera(t *testing.T) {
	f := newFixture(t)
	before := f.app.View().Camera.Position
	f.app.Send(DragStarted{})
	f.app.Send(DragMoved{DX: 100})
	f.frames(20)
	if f.app.View().Camera.Position == before {
		t.Error("drag did not move the camera")
	}
}

func TestZoomIsAnInteraction(t *testing.T) {
	f := newFixture(t)
	f.app.Send(Zoomed{Notches: 2})
	f.frames(1)
	if f.app.Hover().Enabled {
		t.Error("hover enabled right after a wheel turn")
	}
	if f.app.View().Camera.Zoom <= 1 {
		t.Error("wheel did not zoom in")
	}
	f.frames(60)
	if !f.app.Hover().Enabled {
		t.Error("hover not restored after the wheel settle")
	}
}

func TestTouchIsOneShot(t *testing.T) {
	f := newFixture(t)
	f.app.Send(TouchStarted{})
	f.app.Send(centre)
	f.frames(1)
	if f.app.Hover().Index != 1 {
		t.Fatalf("first touch frame did not resolve, index %d", f.app.Hover().Index)
	}
	if f.app.Hover().Enabled {
		t.Error("hover still enabled after the touch frame")
	}
	f.app.Send(PointerMoved{X: 0, Y: 0})
	f.frames(5)
	if f.app.Hover().Enabled {
		t.Error("touch hover re-enabled itself")
	}
}

func TestHoverColourRegeneratesOnlyHighlights(t *testing.T) {
	f := newFixture(t)
	hiBefore := f.app.HiRes()
	highlightBefore := f.app.atlas.Countries[1].Highlight
	f.loader.loads = nil

	if _, err := f.app.Panel().Set("highlight", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if got := f.loader.layers(); len(got) != 1 || got[0] != texture.LayerSelection {
		t.Errorf("loads after hover colour change = %v, want only the selection layer", got)
	}
	if f.app.HiRes() != hiBefore {
		t.Error("base map images changed")
	}
	if f.app.atlas.Countries[1].Highlight == highlightBefore {
		t.Error("highlight images not regenerated")
	}
}

func TestStrokeColourRegeneratesBaseMap(t *testing.T) {
	f := newFixture(t)
	f.loader.loads = nil
	if _, err := f.app.Panel().Set("stroke", "#333333"); err != nil {
		t.Fatal(err)
	}
	got := f.loader.layers()
	if len(got) != 2 || got[0] != texture.LayerColor || got[1] != texture.LayerStrokes {
		t.Errorf("loads = %v, want colour and strokes", got)
	}
}

func TestFogUpdatesSurfaceOnly(t *testing.T) {
	f := newFixture(t)
	f.loader.loads = nil
	f.app.Panel().Set("fog distance", "3.5")
	if f.surface.fogDistance != 3.5 || len(f.loader.loads) != 0 {
		t.Errorf("fog distance %v, loads %d", f.surface.fogDistance, len(f.loader.loads))
	}
}

func TestFailedLoadKeepsPreviousImage(t *testing.T) {
	f := newFixture(t)
	f.frames(1)
	prev := f.surface.installs[texture.LayerColor]
	f.loader.fail = true
	f.app.Panel().Set("color", "#000000")
	f.frames(1)
	if f.surface.installs[texture.LayerColor] != prev {
		t.Error("failed load replaced the colour image")
	}
}

func TestSetSurfaceReplaysState(t *testing.T) {
	f := newFixture(t)
	f.frames(1)
	late := &fakeSurface{}
	f.app.SetSurface(late)
	if len(late.installs) != 3 || late.fogColor == "" {
		t.Errorf("late surface got %d images, fog %q", len(late.installs), late.fogColor)
	}
}

func TestSaveAndExport(t *testing.T) {
	f := newFixture(t)
	f.frames(1)
	f.app.Panel().Set("highlight", "#123456")
	if err := f.app.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg, err := config.LoadFrom(f.app.cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.HoverColor != "#123456" {
		t.Errorf("saved hover colour = %q", cfg.Params.HoverColor)
	}
	paths, err := f.app.Export(t.TempDir())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("exported %v", paths)
	}
}

func TestViewShowsPanelWhenOpen(t *testing.T) {
	f := newFixture(t)
	if v := f.app.View(); v.PanelOpen || v.Panel != nil {
		t.Error("closed panel leaked into the view")
	}
	f.app.Panel().Open()
	if v := f.app.View(); !v.PanelOpen || len(v.Panel) != 5 {
		t.Errorf("open panel view = %+v", v)
	}
}
