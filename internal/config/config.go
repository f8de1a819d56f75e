package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	"voxplace/internal/chunk"
	"voxplace/internal/mesh"
	"voxplace/internal/stamp"
	"voxplace/internal/terrain"
)

// Mesh representations the viewer can upload.
const (
	ModePacked = "packed" // one 32-bit record per face, expanded by the shader
	ModeVertex = "vertex" // four coloured vertices and six indices per face
)

var (
	ErrUnknownFormat = errors.New("config: unknown file format")
	ErrInvalid       = errors.New("config: invalid value")
)

type Window struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
	VSync  bool   `json:"vsync" yaml:"vsync"`
}

type Camera struct {
	FOV         float32 `json:"fov" yaml:"fov"`
	Speed       float32 `json:"speed" yaml:"speed"`
	Sensitivity float32 `json:"sensitivity" yaml:"sensitivity"`
}

// Config holds the viewer configuration.
type Config struct {
	Chunk       chunk.Dims `json:"chunk" yaml:"chunk"`
	Bedrock     uint8      `json:"bedrock" yaml:"bedrock"`
	MaxMaterial uint8      `json:"max_material" yaml:"max_material"`
	Mode        string     `json:"mode" yaml:"mode"`     // "packed" or "vertex"
	Radius      int        `json:"radius" yaml:"radius"` // chunks on each side of the origin

	Terrain terrain.Params `json:"terrain" yaml:"terrain"`
	Palette string         `json:"palette" yaml:"palette"` // optional strip image, empty = r/place colours
	Stamp   *stamp.Options `json:"stamp" yaml:"stamp"`

	Window   Window `json:"window" yaml:"window"`
	Camera   Camera `json:"camera" yaml:"camera"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	Profile  bool   `json:"profile" yaml:"profile"` // print the chunk table after the first mesh
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Chunk:       chunk.Dims{X: 16, Y: 255, Z: 16},
		Bedrock:     chunk.DefaultBedrock,
		MaxMaterial: 31,
		Mode:        ModePacked,
		Radius:      4,
		Terrain:     terrain.DefaultParams(),
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "voxplace",
			VSync:  true,
		},
		Camera: Camera{
			FOV:         70,
			Speed:       12,
			Sensitivity: 0.1,
		},
		LogLevel: "info",
		Profile:  true,
	}
}

// Load reads path on top of the defaults. ".json" and ".jsonc" files may
// contain comments; ".yaml" and ".yml" are parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		err = jsonc.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded values to cfg for every field not set
// explicitly on the command line. explicit holds the flag names given.
func Merge(cfg, fromFile *Config, explicit map[string]bool) {
	keep := *cfg
	*cfg = *fromFile

	if explicit["mode"] {
		cfg.Mode = keep.Mode
	}
	if explicit["radius"] {
		cfg.Radius = keep.Radius
	}
	if explicit["seed"] {
		cfg.Terrain.Seed = keep.Terrain.Seed
	}
	if explicit["palette"] {
		cfg.Palette = keep.Palette
	}
	if explicit["log-level"] {
		cfg.LogLevel = keep.LogLevel
	}
	if explicit["width"] {
		cfg.Window.Width = keep.Window.Width
	}
	if explicit["height"] {
		cfg.Window.Height = keep.Window.Height
	}
	if explicit["profile"] {
		cfg.Profile = keep.Profile
	}
}

// Layout derives the packed face layout for the configured chunk size.
func (c *Config) Layout() (mesh.Layout, error) {
	return mesh.NewLayout(c.Chunk, c.MaxMaterial)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Validate checks every field that would otherwise fail later, deep in
// start-up.
func (c *Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return err
	}
	if c.Mode != ModePacked && c.Mode != ModeVertex {
		return fmt.Errorf("%w: mode %q, want %q or %q", ErrInvalid, c.Mode, ModePacked, ModeVertex)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: radius %d", ErrInvalid, c.Radius)
	}
	if c.Bedrock > c.MaxMaterial {
		return fmt.Errorf("%w: bedrock %d above max material %d", ErrInvalid, c.Bedrock, c.MaxMaterial)
	}
	if c.Terrain.Octaves < 0 || c.Terrain.Scale <= 0 {
		return fmt.Errorf("%w: terrain octaves %d scale %g", ErrInvalid, c.Terrain.Octaves, c.Terrain.Scale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if s := c.Stamp; s != nil && (s.Path == "" || s.Width <= 0 || s.Depth <= 0) {
		return fmt.Errorf("%w: stamp needs a path and a positive size", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
