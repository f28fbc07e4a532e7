package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/balsapop/balsapop/pkg/util"
	"github.com/peterh/liner"
)

const prompt = "λ> "

const replHelp = `REPL commands:
  :help             Show this help
  :features         List lexer features
  :warnings         List warnings
  :set <flags>      Apply -F/-W flags, e.g. ':set -Fno-unicode-aliases -Wpedantic'
  :config           Print the current settings as YAML
  exit, quit        Leave the session`

var replCommands = []string{":help", ":features", ":warnings", ":set ", ":config"}

// completionWords holds keywords, logic literals and constant names.
var completionWords = func() []string {
	seen := make(map[string]bool)
	var words []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	for w := range token.KeywordMap {
		add(w)
	}
	for w := range token.LogicLiterals {
		add(w)
	}
	for w := range token.Constants {
		if w[0] < 0x80 {
			add(w)
		}
	}
	sort.Strings(words)
	return words
}()

func complete(line string) []string {
	if strings.HasPrefix(line, ":") {
		var out []string
		for _, c := range replCommands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	}
	i := strings.LastIndexAny(line, " \t(){}[],;") + 1
	head, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var out []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, word) {
			out = append(out, head+w)
		}
	}
	return out
}

// historyStore is the part of *liner.State that persists history.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// historyPath returns the history file under the user's config directory,
// falling back to a dot file in the home directory.
func historyPath() (string, error) {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "balsapop", "history"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no directory for REPL history: %w", err)
	}
	return filepath.Join(home, ".balsapop_history"), nil
}

// loadHistory reads path into h. A missing file is not an error.
func loadHistory(h historyStore, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = h.ReadHistory(f)
	return err
}

func saveHistory(h historyStore, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := h.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runREPL tokenizes each entered line and prints the tokens. Diagnostics go
// to out; history problems go to errOut.
func runREPL(cfg *config.Config, out, errOut io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	historyFile, err := historyPath()
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
	} else {
		if err := loadHistory(line, historyFile); err != nil {
			fmt.Fprintf(errOut, "warning: could not read history '%s': %v\n", historyFile, err)
		}
		defer func() {
			if err := saveHistory(line, historyFile); err != nil {
				fmt.Fprintf(errOut, "warning: could not save history '%s': %v\n", historyFile, err)
			}
		}()
	}

	rep := util.NewReporter(out)
	fmt.Fprintf(out, "balsapop %s\n", version)
	fmt.Fprintln(out, "Type ':help' for commands, 'exit' or Ctrl+D to quit")

	for n := 1; ; n++ {
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		switch {
		case trimmed == "":
			continue
		case trimmed == "exit" || trimmed == "quit":
			return nil
		case strings.HasPrefix(trimmed, ":"):
			line.AppendHistory(trimmed)
			replCommand(trimmed, cfg, out)
			continue
		}

		line.AppendHistory(input)
		content := prepareSource([]byte(input), cfg)
		fileIndex := rep.AddSourceFile(fmt.Sprintf("<repl:%d>", n), content)
		scan(content, fileIndex, cfg, rep, out, true)
	}
}

func replCommand(cmd string, cfg *config.Config, out io.Writer) {
	name, args, _ := strings.Cut(cmd, " ")
	switch name {
	case ":help":
		fmt.Fprintln(out, replHelp)
	case ":features":
		util.PrintFeatures(out, cfg)
	case ":warnings":
		util.PrintWarnings(out, cfg)
	case ":set":
		if err := cfg.ProcessFlags(args); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	case ":config":
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		out.Write(data)
	default:
		fmt.Fprintf(out, "unknown command '%s', try ':help'\n", name)
	}
}
