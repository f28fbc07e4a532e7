package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/google/go-cmp/cmp"
)

// memHistory stands in for a liner session.
type memHistory struct{ lines []string }

func (m *memHistory) ReadHistory(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.lines = strings.Fields(string(data))
	return len(m.lines), nil
}

func (m *memHistory) WriteHistory(w io.Writer) (int, error) {
	for _, l := range m.lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return 0, err
		}
	}
	return len(m.lines), nil
}

func TestHistoryPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := historyPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "balsapop", "history"); got != want {
		t.Errorf("historyPath() = %q, want %q", got, want)
	}
	if strings.HasPrefix(got, os.TempDir()+string(filepath.Separator)+".balsapop") {
		t.Errorf("history lands in the shared temp directory: %s", got)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "balsapop", "history")

	fresh := &memHistory{}
	if err := loadHistory(fresh, path); err != nil {
		t.Fatalf("loading a missing history file: %v", err)
	}
	if len(fresh.lines) != 0 {
		t.Errorf("history from nowhere: %q", fresh.lines)
	}

	saved := &memHistory{lines: []string{"fn", "0xffu8", ":features"}}
	if err := saveHistory(saved, path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Errorf("history mode = %v, want 0600", info.Mode().Perm())
	}

	loaded := &memHistory{}
	if err := loadHistory(loaded, path); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(saved.lines, loaded.lines); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestSaveHistoryReportsFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := saveHistory(&memHistory{}, filepath.Join(blocker, "history")); err == nil {
		t.Error("saveHistory under a regular file succeeded")
	}
}

func TestComplete(t *testing.T) {
	if diff := cmp.Diff([]string{":features"}, complete(":fe")); diff != "" {
		t.Errorf("command completion (-want +got):\n%s", diff)
	}
	got := complete("let x = tr")
	if !slices.Contains(got, "let x = true") {
		t.Errorf("complete(%q) = %q, want it to offer true", "let x = tr", got)
	}
	if got := complete("x "); got != nil {
		t.Errorf("complete after a space = %q", got)
	}
}

func TestReplCommand(t *testing.T) {
	cfg := config.NewConfig()
	var out bytes.Buffer
	replCommand(":set -Fno-math-notation", cfg, &out)
	if out.Len() != 0 {
		t.Errorf(":set printed %q", out.String())
	}
	replCommand(":config", cfg, &out)
	if !strings.Contains(out.String(), "math-notation: false") {
		t.Errorf(":config output lacks the change:\n%s", out.String())
	}
	out.Reset()
	replCommand(":bogus", cfg, &out)
	if got := out.String(); got != "unknown command ':bogus', try ':help'\n" {
		t.Errorf("unknown command output %q", got)
	}
}
