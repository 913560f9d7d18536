package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the globe config file, relative to the process working directory.
const ConfigPath = "config/globe.yaml"

// Params are the visual parameters. Colours are #rrggbb strings.
// StrokeWidth and the scaling factors are read at startup only.
type Params struct {
	StrokeColor         string  `yaml:"stroke_color"`
	DefaultColor        string  `yaml:"default_color"`
	HoverColor          string  `yaml:"hover_color"`
	FogColor            string  `yaml:"fog_color"`
	FogDistance         float64 `yaml:"fog_distance"`
	StrokeWidth         float64 `yaml:"stroke_width"`
	HiResScalingFactor  float64 `yaml:"hi_res_scaling_factor"`
	LowResScalingFactor float64 `yaml:"low_res_scaling_factor"`
}


// Window holds the window and render surface settings.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
	// MaxSide caps the square render surface; Margin is subtracted from the shorter window side.
	MaxSide int `yaml:"max_side"`
	Margin  int `yaml:"margin"`
	// Font is a family name looked up under assets/fonts; empty keeps raylib's built-in font.
	Font string `yaml:"font,omitempty"`
}

// Map says where the SVG map comes from and how its coordinates are framed.
type Map struct {
	// Source is a file path or an http(s) URL, fetched into DownloadDir at startup.
	Source      string  `yaml:"source"`
	DownloadDir string  `yaml:"download_dir"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	OffsetY     float64 `yaml:"offset_y"`
	Tolerance   float64 `yaml:"tolerance"`
	BoxPadding  float64 `yaml:"box_padding"`
}

// Config is everything the globe reads at startup.
type Config struct {
	Window         Window  `yaml:"window"`
	Map            Map     `yaml:"map"`
	Params         Params  `yaml:"params"`
	InitialCountry int     `yaml:"initial_country"`
	RayFar         float64 `yaml:"ray_far"`
	ShowFPS        bool    `yaml:"show_fps"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:   800,
			Height:  700,
			Title:   "svg globe",
			FPS:     60,
			MaxSide: 500,
			Margin:  50,
		},
		Map: Map{
			Source:      "assets/map/world.svg",
			DownloadDir: "assets/map/downloaded",
			Width:       2000,
			Height:      1000,
			OffsetY:     -0.1,
			Tolerance:   0.5,
			BoxPadding:  1,
		},
		Params: Params{
			StrokeColor:         "#111111",
			DefaultColor:        "#9a9591",
			HoverColor:          "#00c9a2",
			FogColor:            "#e4e5e6",
			FogDistance:         2.65,
			StrokeWidth:         2,
			HiResScalingFactor:  2,
			LowResScalingFactor: 0.7,
		},
		InitialCountry: 6,
		RayFar:         1.15,
	}
}

// Load reads ConfigPath. A missing file gives Default() and no error.
func Load() (Config, error) {
	return LoadFrom(ConfigPath)
}

// LoadFrom reads path over Default(), so keys absent from the file keep their defaults.
// A malformed file returns Default() along with the decode error.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to ConfigPath, creating the config directory if needed.
func Save(cfg Config) error {
	return SaveTo(ConfigPath, cfg)
}

// SaveTo writes cfg as YAML to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Overrides carry optional replacements for Config fields. Nil fields are left alone;
// a set field wins even when it points at a zero value.
type Overrides struct {
	Map            MapOverrides
	Params         ParamsOverrides
	InitialCountry *int
	ShowFPS        *bool
}

// MapOverrides mirror the overridable Map fields.
type MapOverrides struct {
	Source *string
}

// ParamsOverrides mirror Params.
type ParamsOverrides struct {
	StrokeColor         *string
	DefaultColor        *string
	HoverColor          *string
	FogColor            *string
	FogDistance         *float64
	StrokeWidth         *float64
	HiResScalingFactor  *float64
	LowResScalingFactor *float64
}

// Apply copies every set field of o onto c.
func (c *Config) Apply(o Overrides) error {
	if err := copier.CopyWithOption(c, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return fmt.Errorf("config: overrides: %w", err)
	}
	return nil
}
