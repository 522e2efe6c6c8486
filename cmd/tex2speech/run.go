package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tex2speech "github.com/alnah/go-tex2speech"
	"github.com/alnah/go-tex2speech/internal/config"
	"github.com/alnah/go-tex2speech/internal/hints"
	"github.com/alnah/go-tex2speech/internal/logging"
)

// run resolves configuration, narrates one article and prints the summary.
func run(ctx context.Context, id string, flags *cliFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := resolveConfig(envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: env.Stderr,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	narrator := tex2speech.NewNarrator(narratorOptions(cfg, logger, env)...)

	result, err := narrator.Narrate(ctx, tex2speech.Input{
		ID:      id,
		Keyword: flags.keyword,
		Debug:   flags.debug,
	})
	if result != nil {
		printResults(env, result)
	}
	if errors.Is(err, tex2speech.ErrWorkDirLocked) {
		return fmt.Errorf("%w%s", err, hints.ForWorkDirLocked(narrator.WorkDir(id)+".lock"))
	}
	return err
}

// resolveConfig loads the file named by TEX2SPEECH_CONFIG, or returns a
// copy of the environment's base config.
func resolveConfig(envCfg *envConfig, env *Environment) (*config.Config, error) {
	if envCfg.ConfigPath != "" {
		return config.LoadConfig(envCfg.ConfigPath)
	}
	if env.Config == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *env.Config
	return &cfg, nil
}

// narratorOptions maps a validated config onto narrator options.
func narratorOptions(cfg *config.Config, logger *slog.Logger, env *Environment) []tex2speech.Option {
	timeout, _ := cfg.FetchTimeout()

	segmenter := tex2speech.DefaultSegmenter()
	segmenter.MaxLines = cfg.Scan.MaxLines

	opts := []tex2speech.Option{
		tex2speech.WithOutputDir(cfg.Output.Dir),
		tex2speech.WithWorkRoot(cfg.Work.Root),
		tex2speech.WithAudioFormat(cfg.Output.AudioFormat),
		tex2speech.WithFetchTimeout(timeout),
		tex2speech.WithDetexTool(tex2speech.Tool(cfg.Tools.Detex)),
		tex2speech.WithNarrateTool(tex2speech.Tool(cfg.Tools.Narrate)),
		tex2speech.WithSegmenter(segmenter),
		tex2speech.WithFetcher(tex2speech.NewFetchClient(cfg.Fetch)),
		tex2speech.WithLogger(logger),
	}
	return append(opts, env.Options...)
}
