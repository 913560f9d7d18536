package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"svg-globe/internal/app"
	"svg-globe/internal/atlas"
	"svg-globe/internal/commands"
	"svg-globe/internal/config"
	"svg-globe/internal/debug"
	"svg-globe/internal/download"
	"svg-globe/internal/env"
	"svg-globe/internal/fonts"
	"svg-globe/internal/graphics"
	"svg-globe/internal/logger"
	"svg-globe/internal/panel"
	"svg-globe/internal/scene"
	"svg-globe/internal/svgmap"
	"svg-globe/internal/terminal"
	"svg-globe/internal/texture"
	"svg-globe/internal/ui"
)

// userCSS, when present, replaces the built-in overlay stylesheet.
const userCSS = "assets/ui/globe.css"

func main() {
	if err := env.Load(".env"); err != nil {
		fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if err := env.Apply(&cfg); err != nil {
		fatal(err)
	}

	log := logger.New()
	a, err := loadAtlas(cfg, log)
	if err != nil {
		fatal(err)
	}

	scn := scene.New(log)
	globe, err := app.New(cfg, a, app.Options{
		Loader:  texture.NewLoader(0, cfg.Map.Tolerance),
		Surface: scn,
		Log:     log,
	})
	if err != nil {
		fatal(err)
	}

	reg := commands.NewRegistry(log.Log)
	globe.Panel().Register(reg, panel.Hooks{
		Save:   globe.Save,
		Export: globe.Export,
	})
	dbg := debug.New()
	dbg.Show(debug.Overlays{FPS: cfg.ShowFPS})
	dbg.Globe = func() string { return globeStatus(globe) }
	dbg.Register(reg)

	term := terminal.New(log, reg)
	term.OnToggle = func(open bool) {
		if open {
			globe.Panel().Open()
		} else {
			globe.Panel().Close()
		}
	}

	eng := ui.New()
	if err := eng.LoadCSS(userCSS); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Logf("ui: %v", err)
	}
	overlay := ui.NewOverlay()

	var (
		input   app.Input
		msgs    []app.Msg
		started bool
	)
	update := func(dt float64) {
		term.Update()
		st := graphics.Poll()
		if !started {
			// The window may not match the configured size (tiling, HiDPI).
			st.Resized = true
			started = true
		}
		msgs = input.Translate(msgs[:0], st)
		for _, m := range msgs {
			globe.Send(m)
		}
		globe.Update(dt)
	}
	fontsLoaded := false
	draw := func() {
		if !fontsLoaded {
			loadFont(cfg.Window.Font, eng, term, dbg, log)
			fontsLoaded = true
		}
		v := globe.View()
		scn.Draw(v)
		eng.SetNodes(overlay.Nodes(v))
		eng.Draw()
		term.Draw()
		dbg.Draw()
	}
	graphics.Run(cfg.Window, update, draw)
	scn.Unload()
}

// loadAtlas reads the configured map, fetching it first when it is a URL.
func loadAtlas(cfg config.Config, log *logger.Logger) (*atlas.Atlas, error) {
	src := cfg.Map.Source
	if download.IsURL(src) {
		path, err := download.Download(context.Background(), src, cfg.Map.DownloadDir)
		if err != nil {
			return nil, err
		}
		log.Logf("downloaded %s to %s", src, path)
		src = path
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}
	doc, err := svgmap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", src, err)
	}
	a := atlas.New(doc, atlas.Options{
		Width:      cfg.Map.Width,
		Height:     cfg.Map.Height,
		OffsetY:    cfg.Map.OffsetY,
		Tolerance:  cfg.Map.Tolerance,
		BoxPadding: cfg.Map.BoxPadding,
	})
	log.Logf("map %s: %d countries", src, a.Len())
	return a, nil
}

// loadFont runs once the GL context exists. A missing font only logs.
func loadFont(family string, eng *ui.Engine, term *terminal.Terminal, dbg *debug.Debug, log *logger.Logger) {
	if family == "" {
		return
	}
	path, err := fonts.Find(family)
	if err != nil {
		log.Logf("font %q: not found under %v", family, fonts.BaseDirs())
		return
	}
	if err := eng.LoadFont(path); err != nil {
		log.Logf("font %s: %v", path, err)
		return
	}
	term.SetFont(eng.Font())
	dbg.SetFont(eng.Font())
}

// globeStatus is the debug overlay's globe line.
func globeStatus(a *app.App) string {
	h := a.Hover()
	v := a.View()
	name := "-"
	if c, ok := a.Atlas().Country(h.Index); ok {
		name = c.Name
	}
	return fmt.Sprintf("hover %d %s (picking %t)  side %d  zoom %.2f", h.Index, name, h.Enabled, v.Side, v.Camera.Zoom)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
