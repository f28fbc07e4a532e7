package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Value is the storage behind a flag.
type Value interface {
	String() string
	Set(string) error
	Get() any
}

type stringValue struct{ p *string }

func (v *stringValue) Set(s string) error { *v.p = s; return nil }
func (v *stringValue) String() string     { return *v.p }
func (v *stringValue) Get() any           { return *v.p }

type boolValue struct{ p *bool }

// Set treats an empty string as a bare "--flag".
func (v *boolValue) Set(s string) error {
	if s == "" {
		*v.p = true
		return nil
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean value '%s': %w", s, err)
	}
	*v.p = val
	return nil
}
func (v *boolValue) String() string { return strconv.FormatBool(*v.p) }
func (v *boolValue) Get() any       { return *v.p }

// listValue collects every occurrence of a repeatable flag, in order.
type listValue struct{ p *[]string }

func (v *listValue) Set(s string) error { *v.p = append(*v.p, s); return nil }
func (v *listValue) String() string     { return strings.Join(*v.p, ", ") }
func (v *listValue) Get() any           { return *v.p }

type Flag struct {
	Name         string
	Shorthand    string
	Usage        string
	Value        Value
	DefValue     string
	ExpectedType string
}

func (f *Flag) isBool() bool {
	_, ok := f.Value.(*boolValue)
	return ok
}

// FlagGroupEntry is one -<Prefix><Name> / -<Prefix>no-<Name> pair. Default
// is the state shown on the help page when neither flag is given.
type FlagGroupEntry struct {
	Name     string
	Prefix   string
	Usage    string
	Default  bool
	Enabled  *bool
	Disabled *bool
}

type FlagGroup struct {
	Name                 string
	Description          string
	Flags                []FlagGroupEntry
	GroupType            string
	AvailableFlagsHeader string
}

type FlagSet struct {
	name       string
	flags      map[string]*Flag
	shorthands map[string]*Flag
	groups     []FlagGroup
	args       []string
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{
		name:       name,
		flags:      make(map[string]*Flag),
		shorthands: make(map[string]*Flag),
	}
}

// Args returns the positional arguments left after Parse.
func (f *FlagSet) Args() []string { return f.args }

func (f *FlagSet) Lookup(name string) *Flag { return f.flags[name] }

func (f *FlagSet) String(p *string, name, shorthand, value, usage, expectedType string) {
	*p = value
	f.Var(&stringValue{p}, name, shorthand, usage, value, expectedType)
}

func (f *FlagSet) Bool(p *bool, name, shorthand string, value bool, usage string) {
	*p = value
	f.Var(&boolValue{p}, name, shorthand, usage, strconv.FormatBool(value), "")
}

// List registers a repeatable flag. Each occurrence appends to *p.
func (f *FlagSet) List(p *[]string, name, shorthand, usage, expectedType string) {
	*p = nil
	f.Var(&listValue{p}, name, shorthand, usage, "", expectedType)
}

func (f *FlagSet) Var(value Value, name, shorthand, usage, defValue, expectedType string) {
	if name == "" {
		panic("flag name cannot be empty")
	}
	if _, ok := f.flags[name]; ok {
		panic(fmt.Sprintf("flag redefined: %s", name))
	}
	flag := &Flag{Name: name, Shorthand: shorthand, Usage: usage, Value: value, DefValue: defValue, ExpectedType: expectedType}
	f.flags[name] = flag
	if shorthand == "" {
		return
	}
	if _, ok := f.shorthands[shorthand]; ok {
		panic(fmt.Sprintf("shorthand flag redefined: %s", shorthand))
	}
	f.shorthands[shorthand] = flag
}

// AddFlagGroup registers both spellings of every entry and lists the group
// in its own section of the help page.
func (f *FlagSet) AddFlagGroup(name, description, groupType, availableFlagsHeader string, entries []FlagGroupEntry) {
	for _, e := range entries {
		if e.Enabled != nil {
			f.Bool(e.Enabled, e.Prefix+e.Name, "", *e.Enabled, e.Usage)
		}
		if e.Disabled != nil {
			f.Bool(e.Disabled, e.Prefix+"no-"+e.Name, "", *e.Disabled, "Disable '"+e.Name+"'")
		}
	}
	f.groups = append(f.groups, FlagGroup{
		Name:                 name,
		Description:          description,
		Flags:                entries,
		GroupType:            groupType,
		AvailableFlagsHeader: availableFlagsHeader,
	})
}

func (f *FlagSet) isGroupFlag(name string) bool {
	for _, g := range f.groups {
		for _, e := range g.Flags {
			if name == e.Prefix+e.Name || name == e.Prefix+"no-"+e.Name {
				return true
			}
		}
	}
	return false
}

// match is one flag argument resolved against the set.
type match struct {
	flag    *Flag
	spelled string
	value   string
	inline  bool
}

// resolve looks up the flag named by arg. "--name" and "--name=value" are
// long forms. A single dash first matches a whole flag name ("-Fno-nfc",
// "-std=ascii") and then a shorthand, which may carry its value attached
// ("-cfile.yaml").
func (f *FlagSet) resolve(arg string) (match, error) {
	if body, ok := strings.CutPrefix(arg, "--"); ok {
		name, value, inline := strings.Cut(body, "=")
		if name == "" {
			return match{}, errors.New("empty flag name")
		}
		flag, ok := f.flags[name]
		if !ok {
			return match{}, fmt.Errorf("unknown flag: --%s", name)
		}
		return match{flag, "--" + name, value, inline}, nil
	}

	body := arg[1:]
	if name, value, inline := strings.Cut(body, "="); f.flags[name] != nil {
		return match{f.flags[name], "-" + name, value, inline}, nil
	}
	short := body[:1]
	flag, ok := f.shorthands[short]
	if !ok {
		return match{}, fmt.Errorf("unknown shorthand flag: -%s", short)
	}
	if rest := body[1:]; rest != "" && !flag.isBool() {
		return match{flag, "-" + short, rest, true}, nil
	}
	return match{flag: flag, spelled: "-" + short}, nil
}

// Parse sets flags from arguments. Everything after "--", and every
// argument that does not start with a dash, is positional.
func (f *FlagSet) Parse(arguments []string) error {
	f.args = []string{}
	for i := 0; i < len(arguments); i++ {
		arg := arguments[i]
		if arg == "--" {
			f.args = append(f.args, arguments[i+1:]...)
			return nil
		}
		if len(arg) < 2 || arg[0] != '-' {
			f.args = append(f.args, arg)
			continue
		}

		m, err := f.resolve(arg)
		if err != nil {
			return err
		}
		switch {
		case m.inline:
			err = m.flag.Value.Set(m.value)
		case m.flag.isBool():
			err = m.flag.Value.Set("")
		case i+1 < len(arguments):
			i++
			err = m.flag.Value.Set(arguments[i])
		default:
			err = fmt.Errorf("flag needs an argument: %s", m.spelled)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type App struct {
	Name        string
	Synopsis    string
	Description string
	Version     string
	Authors     []string
	Repository  string
	Since       int
	FlagSet     *FlagSet
	Action      func(args []string) error
	Stdout      io.Writer
	Stderr      io.Writer
}

func NewApp(name string) *App {
	return &App{
		Name:    name,
		FlagSet: NewFlagSet(name),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run registers -h/--help (and -V/--version when Version is set), parses
// arguments and hands the positional ones to Action. A parse error prints
// the short usage page on Stderr.
func (a *App) Run(arguments []string) error {
	var help, version bool
	a.FlagSet.Bool(&help, "help", "h", false, "Display this information")
	if a.Version != "" {
		a.FlagSet.Bool(&version, "version", "V", false, "Print the version and exit")
	}

	if err := a.FlagSet.Parse(arguments); err != nil {
		fmt.Fprintln(a.Stderr, err)
		a.writeUsage(a.Stderr)
		return err
	}
	switch {
	case help:
		a.writeHelp(a.Stdout)
		return nil
	case version:
		fmt.Fprintf(a.Stdout, "%s %s\n", a.Name, a.Version)
		return nil
	case a.Action != nil:
		return a.Action(a.FlagSet.Args())
	}
	return nil
}

// optionFlags returns the flags that are not part of a group, by name.
func (a *App) optionFlags() []*Flag {
	var flags []*Flag
	for name, flag := range a.FlagSet.flags {
		if !a.FlagSet.isGroupFlag(name) {
			flags = append(flags, flag)
		}
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })
	return flags
}

func (a *App) writeUsage(w io.Writer) {
	flags := a.optionFlags()
	h := newHelpWriter(flags, nil)
	fmt.Fprintf(&h.sb, "Usage: %s %s\n", a.Name, a.Synopsis)
	if len(flags) > 0 {
		h.options(flags)
	}
	fmt.Fprintf(&h.sb, "\nRun '%s --help' for all available options and flags.\n", a.Name)
	io.WriteString(w, h.sb.String())
}

func (a *App) writeHelp(w io.Writer) {
	flags := a.optionFlags()
	h := newHelpWriter(flags, a.FlagSet.groups)

	years := strconv.Itoa(time.Now().Year())
	if a.Since > 0 && strconv.Itoa(a.Since) != years {
		years = strconv.Itoa(a.Since) + "-" + years
	}
	h.sb.WriteString("\n")
	fmt.Fprintf(&h.sb, "%sCopyright (c) %s: %s and contributors\n", indentUnit, years, strings.Join(a.Authors, ", "))
	if a.Repository != "" {
		fmt.Fprintf(&h.sb, "%sFor more details refer to %s\n", indentUnit, a.Repository)
	}

	if a.Synopsis != "" {
		h.heading("Synopsis")
		synopsis := strings.NewReplacer("[", "<", "]", ">").Replace(a.Synopsis)
		h.line(a.Name + " " + synopsis)
	}
	if a.Description != "" {
		h.heading("Description")
		h.line(a.Description)
	}
	if len(flags) > 0 {
		h.options(flags)
	}

	groups := append([]FlagGroup(nil), a.FlagSet.groups...)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	for _, g := range groups {
		h.group(g)
	}
	io.WriteString(w, h.sb.String())
}

const indentUnit = "    "

// helpWriter lays out help text in two columns: flag spellings padded to a
// shared width, then usage wrapped to the terminal and an optional marker
// such as |default| or |x|.
type helpWriter struct {
	sb         strings.Builder
	termWidth  int
	leftWidth  int
	usageWidth int
}

func newHelpWriter(flags []*Flag, groups []FlagGroup) *helpWriter {
	h := &helpWriter{termWidth: getTerminalWidth()}
	measure := func(left, usage string) {
		h.leftWidth = max(h.leftWidth, runewidth.StringWidth(left))
		h.usageWidth = max(h.usageWidth, runewidth.StringWidth(usage))
	}
	for _, flag := range flags {
		measure(flagSpelling(flag), flag.Usage)
	}
	for _, g := range groups {
		enable, disable := groupSpellings(g)
		measure(enable, "")
		measure(disable, "")
		for _, e := range g.Flags {
			measure(e.Name, e.Usage)
		}
	}
	return h
}

func (h *helpWriter) heading(title string) {
	fmt.Fprintf(&h.sb, "\n%s%s\n", indentUnit, title)
}

func (h *helpWriter) line(text string) {
	fmt.Fprintf(&h.sb, "%s%s%s\n", indentUnit, indentUnit, text)
}

func (h *helpWriter) row(left, usage, marker string) {
	indent := indentUnit + indentUnit
	room := h.termWidth - len(indent) - h.leftWidth - 1
	if marker != "" {
		room -= 2 + runewidth.StringWidth(marker)
	}
	room = max(room, 10)

	lines := wrapText(usage, room)
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	if marker != "" {
		fmt.Fprintf(&h.sb, "%s%s %s  %s\n", indent, padRight(left, h.leftWidth), padRight(first, min(h.usageWidth, room)), marker)
	} else {
		fmt.Fprintf(&h.sb, "%s%s %s\n", indent, padRight(left, h.leftWidth), first)
	}
	if len(lines) > 1 {
		cont := indent + strings.Repeat(" ", h.leftWidth+1)
		for _, l := range lines[1:] {
			fmt.Fprintf(&h.sb, "%s%s\n", cont, l)
		}
	}
}

func (h *helpWriter) options(flags []*Flag) {
	h.heading("Options")
	for _, flag := range flags {
		marker := ""
		if !flag.isBool() && flag.DefValue != "" {
			marker = "|" + flag.DefValue + "|"
		}
		h.row(flagSpelling(flag), flag.Usage, marker)
	}
}

func (h *helpWriter) group(g FlagGroup) {
	if len(g.Flags) == 0 {
		return
	}
	h.heading(g.Name)
	kind := groupKind(g)
	enable, disable := groupSpellings(g)
	h.line(padRight(enable, h.leftWidth) + " Enable a specific " + kind)
	h.line(padRight(disable, h.leftWidth) + " Disable a specific " + kind)
	if g.AvailableFlagsHeader != "" {
		fmt.Fprintf(&h.sb, "%s%s\n", indentUnit, g.AvailableFlagsHeader)
	}

	entries := append([]FlagGroupEntry(nil), g.Flags...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for _, e := range entries {
		marker := "|-|"
		if e.Default {
			marker = "|x|"
		}
		h.row(e.Name, e.Usage, marker)
	}
}

func groupKind(g FlagGroup) string {
	if g.GroupType == "" {
		return "flag"
	}
	return g.GroupType
}

func groupSpellings(g FlagGroup) (enable, disable string) {
	if len(g.Flags) == 0 {
		return "", ""
	}
	prefix, kind := g.Flags[0].Prefix, groupKind(g)
	return fmt.Sprintf("-%s<%s>", prefix, kind), fmt.Sprintf("-%sno-<%s>", prefix, kind)
}

// flagSpelling renders a flag for the left column: "-c <file>, --config <file>"
// or "--std=std".
func flagSpelling(flag *Flag) string {
	arg := ""
	if !flag.isBool() && flag.ExpectedType != "" {
		arg = "<" + flag.ExpectedType + ">"
	}
	if flag.Shorthand == "" {
		if arg == "" {
			return "--" + flag.Name
		}
		return "--" + flag.Name + "=" + flag.ExpectedType
	}
	if arg == "" {
		return fmt.Sprintf("-%s, --%s", flag.Shorthand, flag.Name)
	}
	return fmt.Sprintf("-%s %s, --%s %s", flag.Shorthand, arg, flag.Name, arg)
}

// padRight pads s with spaces to width terminal cells. Usage strings carry
// glyphs such as '→' that are wider in bytes than on screen.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return max(width, 20)
}

// wrapText breaks text into lines of at most maxWidth cells. A word wider
// than maxWidth gets a line of its own.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	var lines []string
	var cur strings.Builder
	width := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if width > 0 && width+1+w > maxWidth {
			lines = append(lines, cur.String())
			cur.Reset()
			width = 0
		}
		if width > 0 {
			cur.WriteByte(' ')
			width++
		}
		cur.WriteString(word)
		width += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
