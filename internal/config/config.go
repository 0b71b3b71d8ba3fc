// Package config handles viewer and tool configuration loading and management.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Sort modes applied to the visible set before submission.
const (
	SortState   = "state"
	SortTexture = "texture"
	SortNone    = "none"
)

// Config holds all settings.
type Config struct {
	Tree    quadtree.Config `yaml:"tree"`
	Scene   SceneConfig     `yaml:"scene"`
	View    ViewConfig      `yaml:"view"`
	Cull    CullConfig      `yaml:"cull"`
	Logging LoggingConfig   `yaml:"logging"`
}

// SceneConfig selects the distant land content. When Path is empty a
// synthetic scene is generated from the remaining fields.
type SceneConfig struct {
	Path   string  `yaml:"path"`
	Seed   uint64  `yaml:"seed"`
	Count  int     `yaml:"count"`
	Extent float32 `yaml:"extent"`
}

// ViewConfig holds window and projection settings.
type ViewConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// CullConfig holds per-frame query settings.
type CullConfig struct {
	Sort string `yaml:"sort"`
	// ViewRadius limits queries to a sphere around the camera; 0 disables it.
	ViewRadius float32 `yaml:"view_radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tree: quadtree.DefaultConfig(),
		Scene: SceneConfig{
			Seed:   1,
			Count:  5000,
			Extent: 8192,
		},
		View: ViewConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    60,
			Near:   1,
			Far:    12000,
		},
		Cull: CullConfig{
			Sort: SortState,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	err := c.Tree.Validate()

	if c.Scene.Path == "" {
		if c.Scene.Count < 0 {
			err = multierr.Append(err, errors.Errorf("scene.count must be >= 0, got %d", c.Scene.Count))
		}
		if c.Scene.Extent <= 0 {
			err = multierr.Append(err, errors.Errorf("scene.extent must be > 0, got %v", c.Scene.Extent))
		}
	}

	if c.View.Width <= 0 || c.View.Height <= 0 {
		err = multierr.Append(err, errors.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height))
	}
	if c.View.FOV <= 0 || c.View.FOV >= 180 {
		err = multierr.Append(err, errors.Errorf("view.fov must be in (0, 180), got %v", c.View.FOV))
	}
	if c.View.Near <= 0 || c.View.Far <= c.View.Near {
		err = multierr.Append(err, errors.Errorf("view planes must satisfy 0 < near < far, got %v/%v", c.View.Near, c.View.Far))
	}

	switch c.Cull.Sort {
	case SortState, SortTexture, SortNone:
	default:
		err = multierr.Append(err, errors.Errorf("cull.sort must be state, texture or none, got %q", c.Cull.Sort))
	}
	if c.Cull.ViewRadius < 0 {
		err = multierr.Append(err, errors.Errorf("cull.view_radius must be >= 0, got %v", c.Cull.ViewRadius))
	}

	return err
}
