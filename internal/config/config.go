package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 0.01
	DefaultContactMargin = 0.01
	DefaultSettleSteps   = 0
	DefaultDataDir       = ".contactlab"
)

// Settings is the viewer/CLI configuration, loadable from yaml.
type Settings struct {
	Dataset        string  `yaml:"dataset"`
	Scene          string  `yaml:"scene"`
	EnablePhysics  bool    `yaml:"enable_physics"`
	Dt             float64 `yaml:"dt"`
	ContactMargin  float64 `yaml:"contact_margin"`
	SettleSteps    int     `yaml:"settle_steps"`
	LinkResolution bool    `yaml:"link_resolution"`
	DataDir        string  `yaml:"data_dir"`
}

func DefaultSettings() *Settings {
	return &Settings{
		EnablePhysics:  true,
		Dt:             DefaultDt,
		ContactMargin:  DefaultContactMargin,
		SettleSteps:    DefaultSettleSteps,
		LinkResolution: true,
		DataDir:        DefaultDataDir,
	}
}

func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Settings) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
