package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"nativestyle/style"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Resolver.RootFontSize != 16 {
		t.Errorf("RootFontSize = %v, want 16", cfg.Resolver.RootFontSize)
	}
	if cfg.Resolver.FontScale != 1 || cfg.Resolver.Viewport.Scale != 1 {
		t.Errorf("scales = %v/%v, want 1/1", cfg.Resolver.FontScale, cfg.Resolver.Viewport.Scale)
	}
	if cfg.Output.Format != OutputFormatYaml {
		t.Errorf("Output.Format = %v, want yaml", cfg.Output.Format)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("logging levels = %q/%q", cfg.Logging.ConsoleLogger.Level, cfg.Logging.FileLogger.Level)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "nsr-report.zip") {
		t.Errorf("Reporting.Destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
resolver:
  root_font_size: 14
  font_scale: 1.25
  viewport:
    width: 390
    height: 844
    scale: 2
  color_scheme: dark
  direction: rtl
  passthrough: [shadow-offset, elevation]
  dev: true
output:
  format: json
  indent: 4
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	r := cfg.Resolver
	if r.RootFontSize != 14 || r.FontScale != 1.25 || r.Viewport.Width != 390 || r.Viewport.Height != 844 {
		t.Errorf("Resolver = %+v", r)
	}
	if cfg.Output.Format != OutputFormatJson || cfg.Output.Indent != 4 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	// untouched sections keep template defaults
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("FileLogger.Level = %q, want none", cfg.Logging.FileLogger.Level)
	}

	ctx := r.Context()
	if ctx.RootFontSize != 14 || ctx.ViewportScale != 2 || ctx.Direction != style.DirectionRTL || ctx.ColorScheme != "dark" {
		t.Errorf("Context() = %+v", ctx)
	}
	if len(ctx.Passthrough) != 2 || ctx.Passthrough[0] != "shadowOffset" {
		t.Errorf("Passthrough = %v", ctx.Passthrough)
	}
	if !r.Options().Dev {
		t.Error("Options().Dev = false, want true")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nresolver:\n  dev: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad font size", "version: 1\nresolver:\n  root_font_size: 0\n"},
		{"bad scheme", "version: 1\nresolver:\n  color_scheme: sepia\n"},
		{"bad direction", "version: 1\nresolver:\n  direction: up\n"},
		{"bad format", "version: 1\noutput:\n  format: xml\n"},
		{"half viewport", "version: 1\nresolver:\n  viewport:\n    width: 320\n"},
		{"negative scale", "version: 1\nresolver:\n  font_scale: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Errorf("LoadConfiguration() expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if strings.Contains(string(data), "{{") {
		t.Error("Prepare() left template actions unexpanded")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Format = OutputFormatTree

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "format: tree") {
		t.Errorf("Dump() output misses format:\n%s", data)
	}

	loaded, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if loaded.Output.Format != OutputFormatTree || loaded.Resolver.RootFontSize != cfg.Resolver.RootFontSize {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
		ok   bool
	}{
		{"yaml", OutputFormatYaml, true},
		{"JSON", OutputFormatJson, true},
		{" tree ", OutputFormatTree, true},
		{"xml", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseOutputFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := OutputFormat(99).String(); got != "OutputFormat(99)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := OutputFormat(99).MarshalText(); err == nil {
		t.Error("MarshalText() of invalid value should fail")
	}
	if names := OutputFormatNames(); len(names) != 3 {
		t.Errorf("OutputFormatNames() = %v", names)
	}
}
