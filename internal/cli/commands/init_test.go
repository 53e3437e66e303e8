package commands

import (
	"testing"

	"github.com/campus-dev/campus/internal/cli/userconfig"
)

func TestInitCommand_Structure(t *testing.T) {
	cmd := NewInitCmd()

	if cmd.Use != "init" {
		t.Errorf("expected Use to be 'init', got %s", cmd.Use)
	}
	if cmd.Flags().Lookup("server") == nil {
		t.Error("expected --server flag to exist")
	}
}

func TestInitCommand_RequiresServer(t *testing.T) {
	err := runInit("")
	if err == nil {
		t.Fatal("expected error when server URL is missing, got nil")
	}

	expected := "server URL is required (use --server)"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestInitCommand_AddsHTTPSPrefix(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runInit("campus.example.com"); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	cfg, err := userconfig.Load()
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if cfg.ServerURL != "https://campus.example.com" {
		t.Errorf("expected https prefix to be added, got %q", cfg.ServerURL)
	}
}

func TestInitCommand_KeepsExplicitScheme(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runInit("http://localhost:3000"); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	cfg, err := userconfig.Load()
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if cfg.ServerURL != "http://localhost:3000" {
		t.Errorf("expected scheme to be preserved, got %q", cfg.ServerURL)
	}
}
