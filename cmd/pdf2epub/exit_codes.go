package main

import (
	"errors"

	"github.com/alnah/go-pdf2epub/internal/config"
)

// Exit codes for the pdf2epub CLI.
// 0 = success, 1 = any conversion failure, 2 = usage/config errors.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitCodeFor returns the appropriate exit code for an error.
// Every pipeline failure (validation, capability, extraction, formatting,
// snapshot) maps to ExitFailure; only flag and config problems are usage
// errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) {
		return ExitUsage
	}
	return ExitFailure
}
