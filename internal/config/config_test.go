package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()

	if cfg.Dt != DefaultDt {
		t.Errorf("expected dt %v, got %v", DefaultDt, cfg.Dt)
	}
	if cfg.ContactMargin != DefaultContactMargin {
		t.Errorf("expected margin %v, got %v", DefaultContactMargin, cfg.ContactMargin)
	}
	if !cfg.EnablePhysics {
		t.Error("physics should default to enabled")
	}
	if !cfg.LinkResolution {
		t.Error("link resolution should default to enabled")
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %q, got %q", DefaultDataDir, cfg.DataDir)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := DefaultSettings()
	cfg.Dataset = "scenes/test.yaml"
	cfg.Scene = "ball_drop"
	cfg.SettleSteps = 50

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Dataset != "scenes/test.yaml" || loaded.Scene != "ball_drop" {
		t.Errorf("unexpected loaded settings: %+v", loaded)
	}
	if loaded.SettleSteps != 50 {
		t.Errorf("expected 50 settle steps, got %d", loaded.SettleSteps)
	}
}

func TestLoadPartialOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scene: arm_rest\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scene != "arm_rest" {
		t.Errorf("expected scene override, got %q", cfg.Scene)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("unset fields should keep defaults, got dt=%v", cfg.Dt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
