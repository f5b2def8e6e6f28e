package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
[library]
name = "App"
version = "1.0"
description = "A test library."
authors = "The App Team"
license = "LGPL-2.1-or-later"
website_url = "https://app.example.org"

[source]
gir_file = "App-1.0.gir"
search_paths = ["gir", "/usr/share/gir-1.0"]

[output]
dir = "reference"
compress_index = true

[dependencies]
"GLib-2.0" = { name = "GLib", description = "The base utility library", docs_url = "https://docs.gtk.org/glib/" }
"GObject-2.0" = "The object system"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "girdoc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Library.Name != "App" || cfg.Library.Version != "1.0" {
		t.Errorf("library = %+v", cfg.Library)
	}
	if cfg.Library.WebsiteURL != "https://app.example.org" {
		t.Errorf("website = %q", cfg.Library.WebsiteURL)
	}
	if cfg.Source.GirFile != "App-1.0.gir" {
		t.Errorf("gir file = %q", cfg.Source.GirFile)
	}
	if len(cfg.SearchPaths()) != 2 {
		t.Errorf("search paths = %v", cfg.SearchPaths())
	}
	if cfg.Output.Dir != "reference" || !cfg.Output.CompressIndex {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoad_PathsResolveAgainstConfigDir(t *testing.T) {
	path := writeConfig(t, testConfig)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.GirPath(); got != filepath.Join(dir, "App-1.0.gir") {
		t.Errorf("gir path = %q", got)
	}
	if got := cfg.OutputDir(); got != filepath.Join(dir, "reference") {
		t.Errorf("output dir = %q", got)
	}

	resolved := cfg.ResolvedSearchPaths()
	if resolved[0] != filepath.Join(dir, "gir") {
		t.Errorf("relative search path = %q", resolved[0])
	}
	if resolved[1] != "/usr/share/gir-1.0" {
		t.Errorf("absolute search path should pass through, got %q", resolved[1])
	}
}

func TestLoad_DependencyShorthand(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	full := cfg.Dependency("GLib-2.0")
	if full.Name != "GLib" || full.DocsURL == "" {
		t.Errorf("full dependency = %+v", full)
	}

	// A bare string spells just the description; the name falls back to
	// the include string.
	short := cfg.Dependency("GObject-2.0")
	if short.Description != "The object system" || short.Name != "GObject-2.0" {
		t.Errorf("shorthand dependency = %+v", short)
	}

	missing := cfg.Dependency("Gio-2.0")
	if missing.Name != "Gio-2.0" || missing.Description != "" {
		t.Errorf("missing dependency = %+v", missing)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Dir != "_docs" {
		t.Errorf("default output dir = %q, want _docs", cfg.Output.Dir)
	}
	if cfg.Output.CompressIndex {
		t.Error("compress_index should default to false")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, testConfig)
	t.Setenv("GIRDOC_OUTPUT_DIR", "elsewhere")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Dir != "elsewhere" {
		t.Errorf("output dir = %q, want env override", cfg.Output.Dir)
	}
}
