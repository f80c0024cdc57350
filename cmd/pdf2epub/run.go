package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	pdf2epub "github.com/alnah/go-pdf2epub"
	"github.com/alnah/go-pdf2epub/internal/config"
)

// realMain runs the CLI and returns the process exit code.
func realMain(args []string, env *Environment) int {
	if len(args) > 0 && args[0] == "doctor" {
		return runDoctorCmd(args[1:], env)
	}

	flags, fs, positional, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintln(env.Stdout, "pdf2epub "+Version)
		return ExitSuccess
	}

	if len(positional) != 1 {
		printUsage(env.Stderr, fs)
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}
	}

	req := buildRequest(flags, fs, positional[0], cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			fmt.Fprintf(env.Stderr, "invalid timeout %q\n", flags.timeout)
			return ExitUsage
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	svc := env.NewService(serviceOptions(flags, cfg, env)...)

	fmt.Fprintf(env.Stdout, "Converting PDF to EPUB: %s\n", req.InputPath)
	epubPath, err := svc.Convert(ctx, req)
	if err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
		printHint(env.Stderr, err)
		return exitCodeFor(err)
	}

	fmt.Fprintf(env.Stdout, "Conversion complete: %s\n", epubPath)
	return ExitSuccess
}

// buildRequest merges flags over config defaults into a Request.
// Explicit flags always win; config values apply only under unset flags.
func buildRequest(flags *convertFlags, fs *flag.FlagSet, inputPath string, cfg *config.Config) pdf2epub.Request {
	req := pdf2epub.Request{
		InputPath:    inputPath,
		OutputPath:   flags.output,
		Title:        flags.title,
		Author:       flags.author,
		Cover:        flags.cover,
		MathFormat:   flags.mathFormat,
		SaveMarkdown: flags.saveMarkdown,
		Language:     flags.language,
	}

	if req.OutputPath == "" && cfg.Output.DefaultDir != "" {
		base := filepath.Base(inputPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		req.OutputPath = filepath.Join(cfg.Output.DefaultDir, stem+".epub")
	}
	if req.Author == "" {
		req.Author = cfg.Metadata.Author
	}
	if req.Cover == "" {
		req.Cover = cfg.Metadata.Cover
	}
	if !fs.Changed("language") && cfg.Metadata.Language != "" {
		req.Language = cfg.Metadata.Language
	}
	if !fs.Changed("math-format") && cfg.Math.Format != "" {
		req.MathFormat = cfg.Math.Format
	}

	return req
}

// serviceOptions translates flags and config into service options.
func serviceOptions(flags *convertFlags, cfg *config.Config, env *Environment) []pdf2epub.Option {
	var opts []pdf2epub.Option

	if flags.verbose {
		opts = append(opts, pdf2epub.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	}
	if cfg.Cache.ModelRoot != "" {
		opts = append(opts, pdf2epub.WithCacheRoot(cfg.Cache.ModelRoot))
	}
	if cfg.Binaries.Marker != "" {
		opts = append(opts, pdf2epub.WithExtractor(&pdf2epub.MarkerExtractor{
			Runner: &pdf2epub.ExecRunner{},
			Binary: cfg.Binaries.Marker,
		}))
	}
	if cfg.Binaries.Pandoc != "" {
		opts = append(opts, pdf2epub.WithFormatter(&pdf2epub.PandocFormatter{
			Runner: &pdf2epub.ExecRunner{},
			Binary: cfg.Binaries.Pandoc,
		}))
	}

	return opts
}

// printHint adds actionable guidance for capability errors.
func printHint(w io.Writer, err error) {
	switch {
	case errors.Is(err, pdf2epub.ErrExtractorUnavailable):
		fmt.Fprintln(w, "\nmarker_single comes with marker-pdf:")
		fmt.Fprintln(w, "  pip install marker-pdf")
	case errors.Is(err, pdf2epub.ErrFormatterUnavailable):
		fmt.Fprintln(w, "\npandoc is installed separately:")
		fmt.Fprintln(w, "  apt install pandoc   (or: brew install pandoc)")
	}
}
