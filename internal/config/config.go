// Package config loads and persists the engine's one externally visible
// artifact: a JSON configuration file covering graphics, world generation,
// camera, and performance tuning.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Graphics controls window/render setup, grounded on render.Config.
type Graphics struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
	VSync      bool `json:"vsync"`
}

// World controls generation and ring-loading radii.
type World struct {
	Seed             int64   `json:"seed"`
	LoadRadius       int32   `json:"load_radius"`
	UnloadRadius     int32   `json:"unload_radius"`
	VerticalRadius   int32   `json:"vertical_radius"`
	VerticalLoading  string  `json:"vertical_loading"` // "disk" or "ball"
	TerrainAmplitude float32 `json:"terrain_amplitude"`
	CaveFrequency    float32 `json:"cave_frequency"`
	TreeDensity      float32 `json:"tree_density"`
}

// Camera controls the player view.
type Camera struct {
	FOV        float32 `json:"fov"`
	NearPlane  float32 `json:"near_plane"`
	FarPlane   float32 `json:"far_plane"`
	Sensitivity float32 `json:"sensitivity"`
}

// Performance controls worker counts and logging verbosity.
type Performance struct {
	PipelineWorkers int    `json:"pipeline_workers"`
	MaxLoadsPerTick int    `json:"max_loads_per_tick"`
	MaxMeshesPerTick int   `json:"max_meshes_per_tick"`
	LogLevel        string `json:"log_level"` // silent/summary/normal/verbose
}

// Config is the full, round-tripped configuration.
type Config struct {
	Graphics    Graphics    `json:"graphics"`
	World       World       `json:"world"`
	Camera      Camera      `json:"camera"`
	Performance Performance `json:"performance"`
}

// Default returns the engine's built-in defaults, used both as the
// fresh-install config and to backfill any field missing from a file an
// older version wrote.
func Default() Config {
	return Config{
		Graphics: Graphics{Width: 1280, Height: 720, Fullscreen: false, VSync: true},
		World: World{
			Seed: 1, LoadRadius: 8, UnloadRadius: 10, VerticalRadius: 3,
			VerticalLoading: "disk", TerrainAmplitude: 30, CaveFrequency: 0.6, TreeDensity: 0.05,
		},
		Camera:      Camera{FOV: 70, NearPlane: 0.1, FarPlane: 1000, Sensitivity: 0.1},
		Performance: Performance{PipelineWorkers: 0, MaxLoadsPerTick: 4, MaxMeshesPerTick: 32, LogLevel: "normal"},
	}
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".voxelgame", "config.json"), nil
}

// Load reads the config file at the default path, writing and returning the
// defaults if no file exists yet. Fields absent from an on-disk file (e.g.
// one written by an older version) are backfilled from Default rather than
// left at Go's zero value.
func Load() (Config, error) {
	path, err := defaultPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if saveErr := SaveTo(path, cfg); saveErr != nil {
			return cfg, saveErr
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	path, err := defaultPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as indented JSON to an explicit path, creating parent
// directories as needed.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ViewRadius derives the render/view distance in blocks from the world
// load radius, the quantity most of the renderer (far plane, fog) actually
// wants instead of a chunk count.
func (c Config) ViewRadius(chunkSize int32) int32 {
	return c.World.LoadRadius * chunkSize
}
