package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/balsapop/balsapop/pkg/cli"
	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/lexer"
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/balsapop/balsapop/pkg/util"
	"golang.org/x/text/unicode/norm"
)

const version = "0.3.0"

const missingFileHint = "Please provide a valid source file path."

var errLexical = errors.New("lexical errors")

func main() {
	app := cli.NewApp("balsapop")
	app.Synopsis = "[options] <source-path> ..."
	app.Description = "Tokenizes balsapop source files and reports lexical errors with their source location."
	app.Version = version
	app.Authors = []string{"The balsapop authors"}
	app.Repository = "<https://github.com/balsapop/balsapop>"
	app.Since = 2025

	var (
		std         string
		configFiles []string
		dump        bool
		interactive bool
	)

	fs := app.FlagSet
	fs.String(&std, "std", "", "unicode", "Character repertoire (unicode, ascii).", "std")
	fs.List(&configFiles, "config", "c", "Read feature and warning settings from a YAML file. Repeatable; later files win.", "file")
	fs.Bool(&dump, "dump", "d", false, "Print every token, one per line.")
	fs.Bool(&interactive, "interactive", "i", false, "Start an interactive tokenizer session.")

	cfg := config.NewConfig()
	warningFlags, featureFlags := cfg.SetupFlagGroups(fs)
	rep := util.NewReporter(os.Stderr)

	app.Action = func(inputFiles []string) error {
		// Standard first, then config files in order, then explicit flags
		if err := cfg.ApplyStd(std); err != nil {
			rep.Fatal(err.Error(), "")
			return err
		}
		for _, path := range configFiles {
			if err := cfg.LoadFile(path); err != nil {
				rep.Fatal(err.Error(), "")
				return err
			}
		}
		cfg.ApplyFlagGroups(warningFlags, featureFlags)

		if interactive {
			return runREPL(cfg, os.Stdout, os.Stderr)
		}
		if len(inputFiles) == 0 {
			rep.Fatal("file not found: no source path given", missingFileHint)
			return errors.New("no input files")
		}

		failed := false
		for _, path := range inputFiles {
			if err := lexFile(path, cfg, rep, os.Stdout, dump); err != nil {
				if !errors.Is(err, errLexical) {
					return err
				}
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("%d error(s): %w", rep.Errors(), errLexical)
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// prepareSource decodes source text, NFC-normalizing it when enabled.
func prepareSource(data []byte, cfg *config.Config) []rune {
	if cfg.IsFeatureEnabled(config.FeatNFC) {
		data = norm.NFC.Bytes(data)
	}
	return []rune(string(data))
}

func lexFile(path string, cfg *config.Config, rep *util.Reporter, out io.Writer, dump bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		rep.Fatal(fmt.Sprintf("file not found: '%s'", path), missingFileHint)
		return fmt.Errorf("could not read '%s': %w", path, err)
	}
	content := prepareSource(data, cfg)
	fileIndex := rep.AddSourceFile(path, content)
	if n := scan(content, fileIndex, cfg, rep, out, dump); n > 0 {
		return errLexical
	}
	return nil
}

// scan tokenizes one source, reporting errors and warnings as they occur.
// It returns the number of errors.
func scan(content []rune, fileIndex int, cfg *config.Config, rep *util.Reporter, out io.Writer, dump bool) int {
	l := lexer.NewLexer(content, fileIndex, cfg)
	errs := 0
	reported := 0
	for {
		tok, err := l.Next()
		for _, d := range l.Warnings()[reported:] {
			rep.Warn(cfg, d)
		}
		reported = len(l.Warnings())

		if err != nil {
			var e *lexer.Error
			if errors.As(err, &e) {
				rep.Report(e)
			} else {
				rep.Error(tok, "%v", err)
			}
			errs++
			continue
		}
		if tok.Type == token.EOF {
			return errs
		}
		if dump {
			fmt.Fprintln(out, tok)
		}
	}
}
