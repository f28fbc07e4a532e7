package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// balsapopFlags registers the options cmd/balsapop defines.
func balsapopFlags(fs *FlagSet) (std *string, configs *[]string, dump *bool) {
	std, configs, dump = new(string), new([]string), new(bool)
	fs.String(std, "std", "", "unicode", "Character repertoire (unicode, ascii).", "std")
	fs.List(configs, "config", "c", "Read feature and warning settings from a YAML file.", "file")
	fs.Bool(dump, "dump", "d", false, "Print every token, one per line.")
	return std, configs, dump
}

func TestParse(t *testing.T) {
	fs := NewFlagSet("balsapop")
	std, configs, dump := balsapopFlags(fs)

	args := []string{"--std=ascii", "-c", "base.yaml", "-d", "-clocal.yaml", "--config", "ci.yaml", "in.bal", "--", "-not-a-flag"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if *std != "ascii" || !*dump {
		t.Errorf("std=%q dump=%v", *std, *dump)
	}
	if diff := cmp.Diff([]string{"base.yaml", "local.yaml", "ci.yaml"}, *configs); diff != "" {
		t.Errorf("config files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"in.bal", "-not-a-flag"}, fs.Args()); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestParseSingleDashLongName(t *testing.T) {
	fs := NewFlagSet("balsapop")
	std, configs, dump := balsapopFlags(fs)
	if err := fs.Parse([]string{"-std=ascii", "-config", "a.yaml", "-dump=false", "-"}); err != nil {
		t.Fatal(err)
	}
	if *std != "ascii" || *dump {
		t.Errorf("std=%q dump=%v", *std, *dump)
	}
	if diff := cmp.Diff([]string{"a.yaml"}, *configs); diff != "" {
		t.Errorf("config files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-"}, fs.Args()); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--nope"}, "unknown flag: --nope"},
		{[]string{"-x"}, "unknown shorthand flag: -x"},
		{[]string{"--std"}, "flag needs an argument: --std"},
		{[]string{"-c"}, "flag needs an argument: -c"},
		{[]string{"--dump=maybe"}, "invalid boolean value 'maybe'"},
		{[]string{"--=x"}, "empty flag name"},
	}
	for _, tt := range tests {
		fs := NewFlagSet("balsapop")
		balsapopFlags(fs)
		err := fs.Parse(tt.args)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) = %v, want %q", tt.args, err, tt.want)
		}
	}
}

func TestFlagGroups(t *testing.T) {
	fs := NewFlagSet("balsapop")
	on, off := false, false
	fs.AddFlagGroup("Feature Flags", "features", "feature flag", "Available Features:", []FlagGroupEntry{
		{Name: "nfc", Prefix: "F", Usage: "normalize", Default: true, Enabled: &on, Disabled: &off},
	})
	if err := fs.Parse([]string{"-Fno-nfc"}); err != nil {
		t.Fatal(err)
	}
	if on || !off {
		t.Errorf("enabled=%v disabled=%v", on, off)
	}
	if fs.Lookup("Fnfc") == nil || fs.Lookup("Fno-nfc") == nil {
		t.Error("group flags not registered")
	}
}

func newTestApp(stdout, stderr *bytes.Buffer) *App {
	app := NewApp("balsapop")
	app.Synopsis = "[options] <source-path>"
	app.Description = "Tokenizes source files."
	app.Version = "1.2.3"
	app.Authors = []string{"Tester"}
	app.Since = 2000
	app.Stdout, app.Stderr = stdout, stderr
	balsapopFlags(app.FlagSet)
	on, off := false, false
	app.FlagSet.AddFlagGroup("Warning Flags", "warnings", "warning flag", "Available Warnings:", []FlagGroupEntry{
		{Name: "pedantic", Prefix: "W", Usage: "Issue all warnings.", Default: false, Enabled: &on, Disabled: &off},
	})
	return app
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newTestApp(&stdout, &stderr)
	called := false
	app.Action = func([]string) error { called = true; return nil }
	if err := app.Run([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "balsapop 1.2.3\n" {
		t.Errorf("version output %q", got)
	}
	if called {
		t.Error("action ran after --version")
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newTestApp(&stdout, &stderr)
	if err := app.Run([]string{"-h"}); err != nil {
		t.Fatal(err)
	}
	help := stdout.String()
	for _, want := range []string{
		"Copyright (c) 2000-", "Synopsis", "balsapop <options> <source-path>", "Tokenizes source files.",
		"-d, --dump", "-c <file>, --config <file>", "--std=std", "|unicode|",
		"Warning Flags", "-W<warning flag>", "-Wno-<warning flag>", "pedantic", "|-|",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help page lacks %q:\n%s", want, help)
		}
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newTestApp(&stdout, &stderr)
	if err := app.Run([]string{"--bogus"}); err == nil {
		t.Fatal("Run accepted an unknown flag")
	}
	if !strings.Contains(stderr.String(), "Usage: balsapop [options] <source-path>") {
		t.Errorf("usage page missing from stderr:\n%s", stderr.String())
	}
}

func TestRunAction(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newTestApp(&stdout, &stderr)
	var got []string
	app.Action = func(args []string) error { got = args; return nil }
	if err := app.Run([]string{"-d", "a.bal", "b.bal"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.bal", "b.bal"}, got); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestWrapTextUsesCellWidth(t *testing.T) {
	got := wrapText("変 変 変", 5)
	if diff := cmp.Diff([]string{"変 変", "変"}, got); diff != "" {
		t.Errorf("wrapText (-want +got):\n%s", diff)
	}
	if got := padRight("変", 3); got != "変 " {
		t.Errorf("padRight = %q", got)
	}
}
