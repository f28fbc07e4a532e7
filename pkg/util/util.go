package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/lexer"
	"github.com/balsapop/balsapop/pkg/token"
	"golang.org/x/term"
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

// SourceFileRecord tracks the name and content of a single source file.
type SourceFileRecord struct {
	Name    string
	Content []rune
}

// Reporter prints diagnostics with the offending source line underneath.
type Reporter struct {
	out      io.Writer
	color    bool
	files    []SourceFileRecord
	errors   int
	warnings int
}

// NewReporter writes to out, with colors only when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Reporter{out: out, color: color}
}

// AddSourceFile registers one more file and returns its index.
func (r *Reporter) AddSourceFile(name string, content []rune) int {
	r.files = append(r.files, SourceFileRecord{Name: name, Content: content})
	return len(r.files) - 1
}

func (r *Reporter) Errors() int   { return r.errors }
func (r *Reporter) Warnings() int { return r.warnings }

func (r *Reporter) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + colorReset
}

func (r *Reporter) fileName(fileIndex int) string {
	if fileIndex < 0 || fileIndex >= len(r.files) {
		return "unknown"
	}
	return r.files[fileIndex].Name
}

// SourceLine returns the given 1-based line of a registered file without its
// newline.
func (r *Reporter) SourceLine(fileIndex, line int) (string, bool) {
	if fileIndex < 0 || fileIndex >= len(r.files) || line <= 0 {
		return "", false
	}
	content := r.files[fileIndex].Content
	lineStart := 0
	for i, c := range content {
		if line <= 1 {
			break
		}
		if c == '\n' {
			line--
			lineStart = i + 1
		}
	}
	if line > 1 {
		return "", false
	}
	lineEnd := len(content)
	for i := lineStart; i < len(content); i++ {
		if content[i] == '\n' {
			lineEnd = i
			break
		}
	}
	return strings.TrimSuffix(string(content[lineStart:lineEnd]), "\r"), true
}

// printErrorLine prints the source line and a caret indicating the error position
func (r *Reporter) printErrorLine(fileIndex, line, col, length int) {
	text, ok := r.SourceLine(fileIndex, line)
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "  %s\n", text)

	caret := "^"
	if length > 1 {
		caret += strings.Repeat("~", length-1)
	}
	fmt.Fprintf(r.out, "  %s%s\n", strings.Repeat(" ", max(col-1, 0)), r.paint(colorGreen, caret))
}

func (r *Reporter) header(fileIndex, line, col int, label string) {
	if line > 0 {
		fmt.Fprintf(r.out, "%s:%d:%d: %s ", r.fileName(fileIndex), line, col, label)
		return
	}
	fmt.Fprintf(r.out, "%s: %s ", r.fileName(fileIndex), label)
}

// Error prints a formatted error message at tok.
func (r *Reporter) Error(tok token.Token, format string, args ...any) {
	r.errors++
	r.header(tok.FileIndex, tok.Line, tok.Column, r.paint(colorRed, "error:"))
	fmt.Fprintf(r.out, format, args...)
	fmt.Fprintln(r.out)
	r.printErrorLine(tok.FileIndex, tok.Line, tok.Column, tok.Len)
}

// Report prints a lexical error together with its code and help text.
func (r *Reporter) Report(e *lexer.Error) {
	r.errors++
	r.header(e.FileIndex, e.Line, e.Column, r.paint(colorRed, "error:"))
	fmt.Fprintf(r.out, "%s [%s]\n", e.Msg, e.Kind.Code())
	r.printErrorLine(e.FileIndex, e.Line, e.Column, e.Len)
	if help := e.Help(); help != "" {
		fmt.Fprintf(r.out, "  %s %s\n", r.paint(colorCyan, "help:"), help)
	}
}

// Warn prints a scanner diagnostic tagged with the flag that controls it.
func (r *Reporter) Warn(cfg *config.Config, d lexer.Diagnostic) {
	if !cfg.IsWarningEnabled(d.Warning) {
		return
	}
	r.warnings++
	tok := d.Token
	r.header(tok.FileIndex, tok.Line, tok.Column, r.paint(colorYellow, "warning:"))
	fmt.Fprintf(r.out, "%s [-W%s]\n", d.Msg, cfg.Warnings[d.Warning].Name)
	r.printErrorLine(tok.FileIndex, tok.Line, tok.Column, tok.Len)
}

// Fatal prints a message that is not tied to a source position, with an
// optional hint line.
func (r *Reporter) Fatal(msg, hint string) {
	r.errors++
	fmt.Fprintf(r.out, "%s %s\n", r.paint(colorRed, "error:"), msg)
	if hint != "" {
		fmt.Fprintf(r.out, "  %s %s\n", r.paint(colorCyan, "help:"), hint)
	}
}

// PrintFeatures prints the current status of all features
func PrintFeatures(w io.Writer, cfg *config.Config) {
	for i := config.Feature(0); i < config.FeatCount; i++ {
		info := cfg.Features[i]
		fmt.Fprintf(w, "  - %-22s: %v (%s)\n", info.Name, info.Enabled, info.Description)
	}
}

// PrintWarnings prints the current status of all warnings.
func PrintWarnings(w io.Writer, cfg *config.Config) {
	for i := config.Warning(0); i < config.WarnCount; i++ {
		info := cfg.Warnings[i]
		fmt.Fprintf(w, "  - %-22s: %v (%s)\n", info.Name, info.Enabled, info.Description)
	}
}
