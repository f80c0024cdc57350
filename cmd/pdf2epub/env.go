package main

import (
	"context"
	"io"
	"os"
	"os/exec"

	pdf2epub "github.com/alnah/go-pdf2epub"
	"github.com/alnah/go-pdf2epub/internal/config"
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, req pdf2epub.Request) (string, error)
}

// Environment holds injectable dependencies for testability.
// Includes I/O, tool lookup, config, and service construction.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	LookPath   func(file string) (string, error)
	NewService func(opts ...pdf2epub.Option) Converter
	Config     *config.Config // Defaults applied under unset flags
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: exec.LookPath,
		NewService: func(opts ...pdf2epub.Option) Converter {
			return pdf2epub.New(opts...)
		},
		Config: config.DefaultConfig(),
	}
}
