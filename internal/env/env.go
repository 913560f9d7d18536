package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"svg-globe/internal/config"
)

// Load reads the given file (e.g. ".env") into the process environment.
// The file may be missing; that is not an error. Variables already set win over the file.
func Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return nil
}

// Apply overrides cfg from GLOBE_* variables. Unset variables leave the field alone;
// a set variable that does not parse is an error naming the variable.
func Apply(cfg *config.Config) error {
	o, err := Overrides()
	if err != nil {
		return err
	}
	return cfg.Apply(o)
}

// Overrides reads the GLOBE_* variables. Empty variables count as unset.
func Overrides() (config.Overrides, error) {
	var o config.Overrides
	strs := []struct {
		key string
		dst **string
	}{
		{"GLOBE_MAP_SOURCE", &o.Map.Source},
		{"GLOBE_STROKE_COLOR", &o.Params.StrokeColor},
		{"GLOBE_DEFAULT_COLOR", &o.Params.DefaultColor},
		{"GLOBE_HOVER_COLOR", &o.Params.HoverColor},
		{"GLOBE_FOG_COLOR", &o.Params.FogColor},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = &v
		}
	}

	floats := []struct {
		key string
		dst **float64
	}{
		{"GLOBE_FOG_DISTANCE", &o.Params.FogDistance},
		{"GLOBE_STROKE_WIDTH", &o.Params.StrokeWidth},
		{"GLOBE_HI_RES", &o.Params.HiResScalingFactor},
		{"GLOBE_LOW_RES", &o.Params.LowResScalingFactor},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, fmt.Errorf("env: %s: %w", f.key, err)
		}
		*f.dst = &n
	}

	if v, ok := lookup("GLOBE_INITIAL_COUNTRY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, fmt.Errorf("env: GLOBE_INITIAL_COUNTRY: %w", err)
		}
		o.InitialCountry = &n
	}
	if v, ok := lookup("GLOBE_SHOW_FPS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return o, fmt.Errorf("env: GLOBE_SHOW_FPS: %w", err)
		}
		o.ShowFPS = &b
	}
	return o, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}
