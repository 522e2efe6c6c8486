package main

import (
	"io"
	"os"

	tex2speech "github.com/alnah/go-tex2speech"
	"github.com/alnah/go-tex2speech/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // used when TEX2SPEECH_CONFIG is unset

	// Options are applied after the ones derived from configuration.
	Options []tex2speech.Option
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
