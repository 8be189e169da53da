package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToDefaultWhenPathEmpty(t *testing.T) {
	cfg := Load("")
	if cfg != Default() {
		t.Errorf("expected Default(), got %+v", cfg)
	}
}

func TestLoadFallsBackToDefaultOnMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if cfg != Default() {
		t.Errorf("expected Default(), got %+v", cfg)
	}
}

func TestLoadFallsBackToDefaultOnMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	cfg := Load(path)
	if cfg != Default() {
		t.Errorf("expected Default(), got %+v", cfg)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	want := Build{OutputPath: "out.txt", Verbosity: 2, ClipEpsilon: 0.001}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
