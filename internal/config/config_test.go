package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Library != "/var/opt/jebman" {
		t.Errorf("library not set: %q", opts.Library)
	}
	if opts.Port != 8585 {
		t.Errorf("port incorrect: %d", opts.Port)
	}
	if !opts.CheckSupportedTypes("epub") || !opts.CheckSupportedTypes("pdf") {
		t.Error("default supported types missing")
	}
	if opts.CheckSupportedTypes("mobi") {
		t.Error("mobi should not be supported by default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	library := filepath.Join(dir, "library")

	file := filepath.Join(dir, "jebman.toml")
	content := `
log_file = "test.log"
log_level = "debug"
host = "0.0.0.0"
port = 2333
library = "` + library + `"
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(file, "")
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}

	if opts.LogFile != "test.log" {
		t.Errorf("log_file incorrect: %q", opts.LogFile)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log_level incorrect: %q", opts.LogLevel)
	}
	if opts.Host != "0.0.0.0" {
		t.Errorf("host incorrect: %q", opts.Host)
	}
	if opts.Port != 2333 {
		t.Errorf("port incorrect: %d", opts.Port)
	}
	if opts.Library != library {
		t.Errorf("library incorrect: %q", opts.Library)
	}
	if opts.DSN != filepath.Join(library, "metadata.db") {
		t.Errorf("dsn not derived from library: %q", opts.DSN)
	}
	// The library directory is created on load.
	if _, err := os.Stat(library); err != nil {
		t.Errorf("library directory not created: %v", err)
	}
}

func TestLoadLibraryOverride(t *testing.T) {
	library := filepath.Join(t.TempDir(), "override")

	opts, err := Load("", library)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Library != library {
		t.Errorf("override not applied: %q", opts.Library)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), ""); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
