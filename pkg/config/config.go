package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/balsapop/balsapop/pkg/cli"
	"gopkg.in/yaml.v3"
)

type Feature int

const (
	FeatMathNotation Feature = iota
	FeatUnicodeAliases
	FeatDocComments
	FeatNFC
	FeatCount
)

type Warning int

const (
	WarnReservedKeyword Warning = iota
	WarnEmptyExponentDigits
	WarnConfusableAlias
	WarnPedantic
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
	StdName    string
}

func NewConfig() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	features := map[Feature]Info{
		FeatMathNotation:   {"math-notation", true, "Recognize superscript powers, roots, constant glyphs and math symbols."},
		FeatUnicodeAliases: {"unicode-aliases", true, "Accept Unicode glyphs such as '→' and '≤' for ASCII operators."},
		FeatDocComments:    {"doc-comments", true, "Distinguish '///', '//!', '/**' and '/*!' doc comments from plain ones."},
		FeatNFC:            {"nfc", true, "NFC-normalize source text before scanning."},
	}

	warnings := map[Warning]Info{
		WarnReservedKeyword:     {"reserved-keyword", true, "Warn when a word reserved for future use appears in source."},
		WarnEmptyExponentDigits: {"empty-exponent-digits", true, "Warn when a float exponent starts with '_' separators."},
		WarnConfusableAlias:     {"unicode-alias", false, "Warn on every Unicode operator alias."},
		WarnPedantic:            {"pedantic", false, "Issue all warnings."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

// IsFeatureEnabled is safe on a nil Config, which has every feature on.
func (c *Config) IsFeatureEnabled(ft Feature) bool {
	if c == nil {
		return true
	}
	return c.Features[ft].Enabled
}

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool {
	if c == nil {
		return false
	}
	return c.Warnings[wt].Enabled || (wt != WarnPedantic && c.Warnings[WarnPedantic].Enabled)
}

// ApplyStd selects a character repertoire. "unicode" is the default;
// "ascii" turns off everything that needs non-ASCII glyphs.
func (c *Config) ApplyStd(stdName string) error {
	c.StdName = stdName

	type stdSettings struct {
		feature      Feature
		unicodeValue bool
		asciiValue   bool
	}

	settings := []stdSettings{
		{FeatMathNotation, true, false},
		{FeatUnicodeAliases, true, false},
		{FeatNFC, true, false},
		{FeatDocComments, true, true},
	}

	switch stdName {
	case "unicode":
		for _, s := range settings {
			c.SetFeature(s.feature, s.unicodeValue)
		}
	case "ascii":
		for _, s := range settings {
			c.SetFeature(s.feature, s.asciiValue)
		}
		c.SetWarning(WarnConfusableAlias, true)
	default:
		return fmt.Errorf("unsupported standard '%s'. Supported: 'unicode', 'ascii'", stdName)
	}
	return nil
}

func (c *Config) applyFlag(flag string) error {
	trimmed := strings.TrimPrefix(flag, "-")
	isNo := strings.HasPrefix(trimmed, "Wno-") || strings.HasPrefix(trimmed, "Fno-")
	enable := !isNo

	var name string
	var isWarning bool

	switch {
	case strings.HasPrefix(trimmed, "W"):
		name = strings.TrimPrefix(trimmed, "W")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
		name = strings.TrimPrefix(trimmed, "F")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
	default:
		name = trimmed
		isWarning = true
	}

	if name == "all" && isWarning {
		for i := Warning(0); i < WarnCount; i++ {
			if i != WarnPedantic {
				c.SetWarning(i, enable)
			}
		}
		return nil
	}

	if isWarning {
		if w, ok := c.WarningMap[name]; ok {
			c.SetWarning(w, enable)
			return nil
		}
		return fmt.Errorf("unknown warning '%s'", name)
	}
	if f, ok := c.FeatureMap[name]; ok {
		c.SetFeature(f, enable)
		return nil
	}
	return fmt.Errorf("unknown feature '%s'", name)
}

// ProcessFlags applies space-separated -F/-W flags, as typed at the REPL.
func (c *Config) ProcessFlags(flagStr string) error {
	for _, flag := range strings.Fields(flagStr) {
		if err := c.applyFlag(flag); err != nil {
			return err
		}
	}
	return nil
}

// SetupFlagGroups registers -F<name>/-Fno-<name> and -W<name>/-Wno-<name>
// for every feature and warning. The returned entries are indexed by
// Warning and Feature respectively.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) (warningFlags, featureFlags []cli.FlagGroupEntry) {
	for i := Warning(0); i < WarnCount; i++ {
		info := c.Warnings[i]
		enabled, disabled := false, false
		warningFlags = append(warningFlags, cli.FlagGroupEntry{
			Name: info.Name, Prefix: "W", Usage: info.Description, Default: info.Enabled,
			Enabled: &enabled, Disabled: &disabled,
		})
	}
	for i := Feature(0); i < FeatCount; i++ {
		info := c.Features[i]
		enabled, disabled := false, false
		featureFlags = append(featureFlags, cli.FlagGroupEntry{
			Name: info.Name, Prefix: "F", Usage: info.Description, Default: info.Enabled,
			Enabled: &enabled, Disabled: &disabled,
		})
	}

	fs.AddFlagGroup("Warning Flags", "Enable or disable specific warnings.", "warning flag", "Available Warnings:", warningFlags)
	fs.AddFlagGroup("Feature Flags", "Enable or disable specific lexer features.", "feature flag", "Available Features:", featureFlags)
	return warningFlags, featureFlags
}

// ApplyFlagGroups applies only the flags given on the command line, so they
// override the standard and the config file. A -Fno-/-Wno- flag wins over
// the positive one.
func (c *Config) ApplyFlagGroups(warningFlags, featureFlags []cli.FlagGroupEntry) {
	for i, entry := range warningFlags {
		if entry.Enabled != nil && *entry.Enabled {
			c.SetWarning(Warning(i), true)
		}
		if entry.Disabled != nil && *entry.Disabled {
			c.SetWarning(Warning(i), false)
		}
	}
	for i, entry := range featureFlags {
		if entry.Enabled != nil && *entry.Enabled {
			c.SetFeature(Feature(i), true)
		}
		if entry.Disabled != nil && *entry.Disabled {
			c.SetFeature(Feature(i), false)
		}
	}
}

// File is the YAML form of a Config.
type File struct {
	Std      string          `yaml:"std,omitempty"`
	Features map[string]bool `yaml:"features,omitempty"`
	Warnings map[string]bool `yaml:"warnings,omitempty"`
}

// Apply applies the standard first and the explicit tables on top of it.
func (c *Config) Apply(f File) error {
	if f.Std != "" {
		if err := c.ApplyStd(f.Std); err != nil {
			return err
		}
	}
	for name, on := range f.Features {
		ft, ok := c.FeatureMap[name]
		if !ok {
			return fmt.Errorf("unknown feature '%s'", name)
		}
		c.SetFeature(ft, on)
	}
	for name, on := range f.Warnings {
		wt, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("unknown warning '%s'", name)
		}
		c.SetWarning(wt, on)
	}
	return nil
}

// Decode parses a YAML config document and applies it.
func (c *Config) Decode(data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Apply(f)
}

func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config '%s': %w", path, err)
	}
	if err := c.Decode(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Snapshot returns the current tables in YAML form.
func (c *Config) Snapshot() File {
	f := File{Std: c.StdName, Features: map[string]bool{}, Warnings: map[string]bool{}}
	for _, info := range c.Features {
		f.Features[info.Name] = info.Enabled
	}
	for _, info := range c.Warnings {
		f.Warnings[info.Name] = info.Enabled
	}
	return f
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c.Snapshot())
}

// EnabledFeatures lists enabled feature names, sorted.
func (c *Config) EnabledFeatures() []string {
	var names []string
	for _, info := range c.Features {
		if info.Enabled {
			names = append(names, info.Name)
		}
	}
	sort.Strings(names)
	return names
}
