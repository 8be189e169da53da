package main

import "testing"

func TestParseArgsRequiresExactlyOnePositional(t *testing.T) {
	if _, err := parseArgs(nil); err == nil {
		t.Error("expected error with no mesh name given")
	}
	if _, err := parseArgs([]string{"mesh1", "mesh2"}); err == nil {
		t.Error("expected error with two positional args")
	}
}

func TestParseArgsMeshOnly(t *testing.T) {
	a, err := parseArgs([]string{"bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.mesh != "bunny" {
		t.Errorf("mesh = %q, want %q", a.mesh, "bunny")
	}
	if a.outPath != "" || a.configPath != "" || a.verbose != 0 || a.verify || a.json {
		t.Errorf("unexpected defaults set: %+v", a)
	}
}

func TestParseArgsOutputFlag(t *testing.T) {
	a, err := parseArgs([]string{"-o", "out/tree.txt", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.outPath != "out/tree.txt" {
		t.Errorf("outPath = %q, want %q", a.outPath, "out/tree.txt")
	}
}

func TestParseArgsOutputFlagMissingValue(t *testing.T) {
	if _, err := parseArgs([]string{"-o"}); err == nil {
		t.Error("expected error when -o has no following path")
	}
}

func TestParseArgsConfigFlagLongAndShort(t *testing.T) {
	a, err := parseArgs([]string{"-c", "cfg.json", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.configPath != "cfg.json" {
		t.Errorf("configPath = %q, want %q", a.configPath, "cfg.json")
	}

	a, err = parseArgs([]string{"--config", "cfg.json", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.configPath != "cfg.json" {
		t.Errorf("configPath = %q, want %q", a.configPath, "cfg.json")
	}
}

func TestParseArgsVerbosityLevels(t *testing.T) {
	a, err := parseArgs([]string{"-v", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.verbose != 1 {
		t.Errorf("verbose = %d, want 1", a.verbose)
	}

	a, err = parseArgs([]string{"-vv", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.verbose != 2 {
		t.Errorf("verbose = %d, want 2", a.verbose)
	}
}

func TestParseArgsVerifyAndJSONFlags(t *testing.T) {
	a, err := parseArgs([]string{"--verify", "--json", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if !a.verify || !a.json {
		t.Errorf("expected verify and json both set, got %+v", a)
	}
}

func TestParseArgsAllFlagsCombined(t *testing.T) {
	a, err := parseArgs([]string{"-c", "cfg.json", "-o", "tree.json", "-vv", "--verify", "--json", "bunny"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if a.mesh != "bunny" || a.configPath != "cfg.json" || a.outPath != "tree.json" ||
		a.verbose != 2 || !a.verify || !a.json {
		t.Errorf("unexpected parse result: %+v", a)
	}
}
