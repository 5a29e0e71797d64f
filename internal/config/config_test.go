package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("QREPL_CONFIG_HOME", "/tmp/qrepl-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/qrepl-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/qrepl-config")
	}

	t.Setenv("QREPL_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/qrepl" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/qrepl")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("QREPL_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := Default()
	if cfg.Repl.Prompt != def.Repl.Prompt {
		t.Fatalf("prompt = %q, want %q", cfg.Repl.Prompt, def.Repl.Prompt)
	}
	if cfg.Completion.MaxHeight != def.Completion.MaxHeight {
		t.Fatalf("max-height = %d, want %d", cfg.Completion.MaxHeight, def.Completion.MaxHeight)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QREPL_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[repl]
prompt = "icr> "
indent-width = 4

[completion]
max-height = 20
no-color = true

[theme]
prompt-foreground = "#123456"
autocomplete-header = "#654321"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Repl.Prompt != "icr> " {
		t.Fatalf("prompt = %q, want %q", cfg.Repl.Prompt, "icr> ")
	}
	if cfg.Repl.IndentWidth != 4 {
		t.Fatalf("indent-width = %d, want 4", cfg.Repl.IndentWidth)
	}
	// Unset keys keep their defaults.
	if cfg.Repl.PromptContinuation != Default().Repl.PromptContinuation {
		t.Fatalf("prompt-continuation = %q, want default", cfg.Repl.PromptContinuation)
	}
	if cfg.Completion.MaxHeight != 20 {
		t.Fatalf("max-height = %d, want 20", cfg.Completion.MaxHeight)
	}
	if !cfg.Completion.NoColor {
		t.Fatalf("no-color = false, want true")
	}
	if cfg.Theme.PromptForeground != "#123456" {
		t.Fatalf("prompt-foreground = %q, want %q", cfg.Theme.PromptForeground, "#123456")
	}
	if cfg.Theme.AutocompleteHeader != "#654321" {
		t.Fatalf("autocomplete-header = %q, want %q", cfg.Theme.AutocompleteHeader, "#654321")
	}
	if cfg.Theme.Background != Default().Theme.Background {
		t.Fatalf("background = %q, want default", cfg.Theme.Background)
	}
}

func TestLoadBadToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QREPL_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), `[repl`)

	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want parse error")
	}
}
