package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alnah/go-tex2speech/internal/config"
)

// envPrefix is shared by every variable the CLI reads.
const envPrefix = "TEX2SPEECH_"

// envConfig holds configuration from environment variables.
// Lets scripts redirect output or logs without writing a YAML file.
type envConfig struct {
	ConfigPath string // TEX2SPEECH_CONFIG: config file name or path
	OutputDir  string // TEX2SPEECH_OUTPUT_DIR: audio output directory
	WorkDir    string // TEX2SPEECH_WORK_DIR: parent of the work directory
	Timeout    string // TEX2SPEECH_TIMEOUT: download timeout
	LogLevel   string // TEX2SPEECH_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // TEX2SPEECH_LOG_FORMAT: auto, text, json
}

// knownEnvVars lists valid TEX2SPEECH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2SPEECH_CONFIG":     true,
	"TEX2SPEECH_OUTPUT_DIR": true,
	"TEX2SPEECH_WORK_DIR":   true,
	"TEX2SPEECH_TIMEOUT":    true,
	"TEX2SPEECH_LOG_LEVEL":  true,
	"TEX2SPEECH_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("TEX2SPEECH_CONFIG"),
		OutputDir:  os.Getenv("TEX2SPEECH_OUTPUT_DIR"),
		WorkDir:    os.Getenv("TEX2SPEECH_WORK_DIR"),
		Timeout:    os.Getenv("TEX2SPEECH_TIMEOUT"),
		LogLevel:   os.Getenv("TEX2SPEECH_LOG_LEVEL"),
		LogFormat:  os.Getenv("TEX2SPEECH_LOG_FORMAT"),
	}
}

// warnUnknownEnvVars prints a warning for each unrecognized TEX2SPEECH_* variable.
// Helps catch typos like TEX2SPEECH_OUTPUTDIR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Values are not checked here; cfg.Validate reports bad ones.
// Priority: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.WorkDir != "" {
		cfg.Work.Root = env.WorkDir
	}
	if env.Timeout != "" {
		cfg.Fetch.Timeout = env.Timeout
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
