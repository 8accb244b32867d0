package config

import (
	"os"
	"path/filepath"
	"testing"

	"CylinderForge/shared/meshing"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nao-existe.json"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.Cylinder != meshing.DefaultParams() {
		t.Errorf("LoadFile() = %+v, want defaults", cfg)
	}
}

func TestLoadFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"listen_addr": ":9000", "cylinder": {"height": 4, "radius": 0.01, "sides": 200}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9000")
	}
	if cfg.WindowTitle != "CylinderForge" {
		t.Errorf("WindowTitle = %q, want default", cfg.WindowTitle)
	}
	want := meshing.Params{Height: 4, Radius: meshing.MinExtent, Sides: meshing.MaxSides}
	if cfg.Cylinder != want {
		t.Errorf("Cylinder = %+v, want %+v", cfg.Cylinder, want)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() on invalid JSON returned nil error")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.ServerURL = "ws://example:1/ws"
	cfg.Cylinder.Sides = 7
	cfg.Cylinder.Winding = meshing.WindingCW

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("LoadFile() = %+v, want %+v", got, cfg)
	}
}
