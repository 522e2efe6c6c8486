package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Output.Dir != "." {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, ".")
	}
	if cfg.Output.AudioFormat != "aac" {
		t.Errorf("Output.AudioFormat = %q, want %q", cfg.Output.AudioFormat, "aac")
	}
	if cfg.Fetch.LegacyArchive != "astro-ph" {
		t.Errorf("Fetch.LegacyArchive = %q, want %q", cfg.Fetch.LegacyArchive, "astro-ph")
	}
	if cfg.Tools.Detex.Command != "detex" {
		t.Errorf("Tools.Detex.Command = %q, want detex", cfg.Tools.Detex.Command)
	}
	if cfg.Tools.Narrate.Command != "say" {
		t.Errorf("Tools.Narrate.Command = %q, want say", cfg.Tools.Narrate.Command)
	}
	if cfg.Scan.MaxLines != 0 {
		t.Errorf("Scan.MaxLines = %d, want 0", cfg.Scan.MaxLines)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"empty audio format", func(c *Config) { c.Output.AudioFormat = "" }, "output.audioFormat"},
		{"audio format with dot", func(c *Config) { c.Output.AudioFormat = ".aac" }, "output.audioFormat"},
		{"audio format with slash", func(c *Config) { c.Output.AudioFormat = "a/b" }, "output.audioFormat"},
		{"empty base url", func(c *Config) { c.Fetch.BaseURL = "" }, "fetch.baseURL"},
		{"non-http base url", func(c *Config) { c.Fetch.BaseURL = "ftp://arxiv.org/" }, "fetch.baseURL"},
		{"user agent too long", func(c *Config) { c.Fetch.UserAgent = strings.Repeat("a", MaxUserAgentLength+1) }, "fetch.userAgent"},
		{"negative max bytes", func(c *Config) { c.Fetch.MaxBytes = -1 }, "fetch.maxBytes"},
		{"bad timeout", func(c *Config) { c.Fetch.Timeout = "soon" }, "fetch.timeout"},
		{"negative timeout", func(c *Config) { c.Fetch.Timeout = "-1s" }, "fetch.timeout"},
		{"missing detex command", func(c *Config) { c.Tools.Detex.Command = "" }, "tools.detex.command"},
		{"detex without input", func(c *Config) { c.Tools.Detex.Args = []string{"-n"} }, "tools.detex.args"},
		{"narrate without output", func(c *Config) { c.Tools.Narrate.Args = []string{"-f", "{input}"} }, "tools.narrate.args"},
		{"negative max lines", func(c *Config) { c.Scan.MaxLines = -1 }, "scan.maxLines"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"upper-case level accepted", func(c *Config) { c.Log.Level = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.errSubstr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Validate() = %q, want substring %q", err, tt.errSubstr)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	d, err := cfg.FetchTimeout()
	if err != nil {
		t.Fatalf("FetchTimeout() error = %v", err)
	}
	if d != 2*time.Minute {
		t.Errorf("FetchTimeout() = %v, want 2m", d)
	}

	cfg.Fetch.Timeout = ""
	if d, _ := cfg.FetchTimeout(); d != 0 {
		t.Errorf("FetchTimeout() with empty value = %v, want 0", d)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig_FromPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "linux.yaml")
	content := `output:
  dir: /tmp/audio
  audioFormat: wav
tools:
  narrate:
    command: espeak
    args: ["-f", "{input}", "-w", "{output}"]
scan:
  maxLines: 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Output.Dir != "/tmp/audio" || cfg.Output.AudioFormat != "wav" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Tools.Narrate.Command != "espeak" {
		t.Errorf("Tools.Narrate.Command = %q, want espeak", cfg.Tools.Narrate.Command)
	}
	if cfg.Scan.MaxLines != 500 {
		t.Errorf("Scan.MaxLines = %d, want 500", cfg.Scan.MaxLines)
	}
	// Unset fields keep defaults.
	if cfg.Tools.Detex.Command != "detex" {
		t.Errorf("Tools.Detex.Command = %q, want default detex", cfg.Tools.Detex.Command)
	}
	if cfg.Fetch.UserAgent != "Lynx" {
		t.Errorf("Fetch.UserAgent = %q, want default Lynx", cfg.Fetch.UserAgent)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "missing.yaml"), ErrConfigNotFound},
		{"unknown field", write("unknown.yaml", "voice: Samantha\n"), ErrConfigParse},
		{"empty file", write("empty.yaml", ""), ErrConfigParse},
		{"invalid value", write("invalid.yaml", "log:\n  level: loud\n"), ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig("tex2speech-config-that-does-not-exist")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), ".yml") {
		t.Errorf("error %q should list tried paths", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("default")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local candidates", paths)
	}
	if paths[0] != "default.yaml" || paths[1] != "default.yml" {
		t.Errorf("local candidates = %v, want default.yaml then default.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, "go-tex2speech") {
			t.Errorf("user candidate %q should live under go-tex2speech", p)
		}
	}
}
