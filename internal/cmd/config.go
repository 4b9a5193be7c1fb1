package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting. Values come from the environment
// (after a best-effort .env load) and can be overridden by an optional
// YAML file named by FOUNDRYLITE_CONFIG.
type Config struct {
	Port       int    `env:"PORT" envDefault:"5000" yaml:"port"`
	BasePath   string `env:"BASE_PATH" envDefault:"/scenes" yaml:"base_path"`
	SceneDir   string `env:"SCENE_DIR" envDefault:"." yaml:"scene_dir"`
	ImageFile  string `env:"IMAGE_FILE" envDefault:"current-scene.webp" yaml:"image_file"`
	CombatFile string `env:"COMBAT_FILE" envDefault:"combat.json" yaml:"combat_file"`
	StateDir   string `env:"STATE_DIR" envDefault:".fow" yaml:"state_dir"`
	PrettyLog  bool   `env:"PRETTY_LOG" envDefault:"false" yaml:"pretty_log"`
}

// loadConfig parses the environment and applies the YAML override file
// when one is configured and present.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if path := os.Getenv("FOUNDRYLITE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		cfg.Port = 5000
	}
	return cfg, nil
}

// ImagePath is the absolute-ish path of the mirrored scene image.
func (c Config) ImagePath() string {
	return filepath.Join(c.SceneDir, c.ImageFile)
}

// CombatPath is the path of the combat document the authoring tool writes.
func (c Config) CombatPath() string {
	return filepath.Join(c.SceneDir, c.CombatFile)
}

// StatePath is the directory holding the persisted JSON documents.
func (c Config) StatePath() string {
	return filepath.Join(c.SceneDir, c.StateDir)
}
