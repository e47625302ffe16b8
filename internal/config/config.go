package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGranularity = 12
	DefaultSigmaScale  = 0.35
	DefaultTheme       = "coolwarm"
	DefaultFPS         = 60
	DefaultWidth       = 1280
	DefaultHeight      = 480
	DefaultOutput      = "heatmap.png"
	DefaultDataDir     = ".keyheat"
)

type Config struct {
	Granularity int          `yaml:"granularity"` // heat grid cells per key unit
	SigmaScale  float64      `yaml:"sigma_scale"` // kernel sigma as a fraction of home-row pitch
	Theme       string       `yaml:"theme"`
	Window      WindowConfig `yaml:"window"`
	FPS         int          `yaml:"fps"`
	Output      string       `yaml:"output"`
	Sound       bool         `yaml:"sound"`
	DataDir     string       `yaml:"data_dir"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Granularity: DefaultGranularity,
		SigmaScale:  DefaultSigmaScale,
		Theme:       DefaultTheme,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		FPS:     DefaultFPS,
		Output:  DefaultOutput,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
