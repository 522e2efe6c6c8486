package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-tex2speech/internal/fileutil"
	"github.com/alnah/go-tex2speech/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Placeholders substituted in tool argument templates.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// Field limits.
const (
	MaxCommandLength   = 256
	MaxURLLength       = 2048
	MaxUserAgentLength = 200
	MaxAudioExtLength  = 10
	MaxScanLines       = 1_000_000
)

// Config holds all configuration for a narration run.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Work   WorkConfig   `yaml:"work"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Tools  ToolsConfig  `yaml:"tools"`
	Scan   ScanConfig   `yaml:"scan"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig defines where audio files go.
type OutputConfig struct {
	Dir         string `yaml:"dir"`         // Audio output directory (default: ".")
	AudioFormat string `yaml:"audioFormat"` // Audio file extension without dot (default: "aac")
}

// WorkConfig defines where source bundles are unpacked.
type WorkConfig struct {
	Root string `yaml:"root"` // Parent of the {id}_render directory (default: ".")
}

// FetchConfig defines source retrieval options.
type FetchConfig struct {
	BaseURL       string `yaml:"baseURL"`       // e-print endpoint, trailing slash included
	LegacyArchive string `yaml:"legacyArchive"` // archive for bare old-style ids (default: "astro-ph")
	UserAgent     string `yaml:"userAgent"`
	Timeout       string `yaml:"timeout"`  // Go duration, e.g. "2m"
	MaxBytes      int64  `yaml:"maxBytes"` // download cap (default: 512MB)
}

// ToolsConfig defines the external detag and narration commands.
type ToolsConfig struct {
	Detex   ToolConfig `yaml:"detex"`
	Narrate ToolConfig `yaml:"narrate"`
}

// ToolConfig is a command plus an argument template.
// {input} and {output} in Args are replaced per segment.
type ToolConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ScanConfig tunes the section scanner.
type ScanConfig struct {
	MaxLines int `yaml:"maxLines"` // 0 = keep whole sections
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, auto
}

// DefaultConfig returns the configuration used when no file is given.
// It reproduces the classic macOS setup: detex for detagging, say for audio.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: ".", AudioFormat: "aac"},
		Work:   WorkConfig{Root: "."},
		Fetch: FetchConfig{
			BaseURL:       "http://arxiv.org/e-print/",
			LegacyArchive: "astro-ph",
			UserAgent:     "Lynx",
			Timeout:       "2m",
			MaxBytes:      512 << 20,
		},
		Tools: ToolsConfig{
			Detex:   ToolConfig{Command: "detex", Args: []string{InputPlaceholder}},
			Narrate: ToolConfig{Command: "say", Args: []string{"-f", InputPlaceholder, "-o", OutputPlaceholder}},
		},
		Scan: ScanConfig{MaxLines: 0},
		Log:  LogConfig{Level: "info", Format: "auto"},
	}
}

// FetchTimeout parses Fetch.Timeout. Empty means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Fetch.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: fetch.timeout: must be positive, got %s", ErrInvalidConfig, d)
	}
	return d, nil
}

// Validate checks that every field holds a usable value.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Output.AudioFormat == "" {
		return fmt.Errorf("%w: output.audioFormat: required", ErrInvalidConfig)
	}
	if len(c.Output.AudioFormat) > MaxAudioExtLength || strings.ContainsAny(c.Output.AudioFormat, "./\\\x00") {
		return fmt.Errorf("%w: output.audioFormat: invalid extension %q", ErrInvalidConfig, c.Output.AudioFormat)
	}

	if c.Fetch.BaseURL == "" {
		return fmt.Errorf("%w: fetch.baseURL: required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Fetch.BaseURL, "http://") && !strings.HasPrefix(c.Fetch.BaseURL, "https://") {
		return fmt.Errorf("%w: fetch.baseURL: must be an http(s) URL, got %q", ErrInvalidConfig, c.Fetch.BaseURL)
	}
	if len(c.Fetch.BaseURL) > MaxURLLength {
		return fmt.Errorf("%w: fetch.baseURL: %d chars, max %d", ErrInvalidConfig, len(c.Fetch.BaseURL), MaxURLLength)
	}
	if len(c.Fetch.UserAgent) > MaxUserAgentLength {
		return fmt.Errorf("%w: fetch.userAgent: %d chars, max %d", ErrInvalidConfig, len(c.Fetch.UserAgent), MaxUserAgentLength)
	}
	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("%w: fetch.maxBytes: must be >= 0, got %d", ErrInvalidConfig, c.Fetch.MaxBytes)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}

	if err := validateTool("tools.detex", c.Tools.Detex, false); err != nil {
		return err
	}
	if err := validateTool("tools.narrate", c.Tools.Narrate, true); err != nil {
		return err
	}

	if c.Scan.MaxLines < 0 || c.Scan.MaxLines > MaxScanLines {
		return fmt.Errorf("%w: scan.maxLines: must be between 0 and %d, got %d", ErrInvalidConfig, MaxScanLines, c.Scan.MaxLines)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("%w: log.format: invalid value %q (must be auto, text, or json)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// validateTool checks a command template. The narration tool must write to
// {output}; the detag tool writes to stdout.
func validateTool(field string, t ToolConfig, needsOutput bool) error {
	if t.Command == "" {
		return fmt.Errorf("%w: %s.command: required", ErrInvalidConfig, field)
	}
	if len(t.Command) > MaxCommandLength {
		return fmt.Errorf("%w: %s.command: %d chars, max %d", ErrInvalidConfig, field, len(t.Command), MaxCommandLength)
	}
	if !hasPlaceholder(t.Args, InputPlaceholder) {
		return fmt.Errorf("%w: %s.args: must contain %s", ErrInvalidConfig, field, InputPlaceholder)
	}
	if needsOutput && !hasPlaceholder(t.Args, OutputPlaceholder) {
		return fmt.Errorf("%w: %s.args: must contain %s", ErrInvalidConfig, field, OutputPlaceholder)
	}
	return nil
}

func hasPlaceholder(args []string, placeholder string) bool {
	for _, a := range args {
		if strings.Contains(a, placeholder) {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory, then ~/.config/go-tex2speech/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-tex2speech", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
