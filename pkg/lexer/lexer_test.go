package lexer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/google/go-cmp/cmp"
)

type scanResult struct {
	Tokens   []string
	Errors   []string
	Warnings []string
}

// scanAll runs the Lexer to EOF and renders everything it produced.
func scanAll(t *testing.T, src string, cfg *config.Config) scanResult {
	t.Helper()
	l := NewLexer([]rune(src), 0, cfg)
	var res scanResult
	for i := 0; ; i++ {
		if i > len(src)+1 {
			t.Fatalf("lexer made no progress on %q", src)
		}
		tok, err := l.Next()
		if err != nil {
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Next returned %T, want *Error", err)
			}
			if tok.Type != token.Illegal {
				t.Errorf("error token %v has type %v, want Illegal", tok, tok.Type)
			}
			res.Errors = append(res.Errors, fmt.Sprintf("%d:%d %s", e.Line, e.Column, e.Kind))
			continue
		}
		res.Tokens = append(res.Tokens, tok.String())
		if tok.Type == token.EOF {
			break
		}
	}
	for _, d := range l.Warnings() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d:%d %s", d.Token.Line, d.Token.Column, cfg.Warnings[d.Warning].Name))
	}
	return res
}

func TestScanFunctionHeader(t *testing.T) {
	got := scanAll(t, "fn main() -> i32 { x² ≤ 3u8 }", nil)
	want := scanResult{Tokens: []string{
		`1:1 Keyword Fn "fn"`,
		`1:4 Ident main "main"`,
		`1:8 Delimiter LeftParen "("`,
		`1:9 Delimiter RightParen ")"`,
		`1:11 Punctuation RightArrow "->"`,
		`1:14 Ident i32 "i32"`,
		`1:18 Delimiter LeftBrace "{"`,
		`1:20 Ident x "x"`,
		`1:21 Symbol Power{2} "²"`,
		`1:23 Punctuation LessThanEqual "≤"`,
		`1:25 Integer 3u8 "3u8"`,
		`1:29 Delimiter RightBrace "}"`,
		`1:30 EOF`,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanMultiline(t *testing.T) {
	src := "//! mod\nlet x = 1.5f32..2.e+1;\n/* a\nb */ π"
	got := scanAll(t, src, config.NewConfig())
	want := scanResult{
		Tokens: []string{
			`1:1 Comment InnerLineDocComment "//! mod"`,
			`2:1 Keyword Reserved(let) "let"`,
			`2:5 Ident x "x"`,
			`2:7 Punctuation Equals "="`,
			`2:9 Float 1.5f32 "1.5f32"`,
			`2:15 Punctuation DotDot ".."`,
			`2:17 Float 20f64 "2.e+1"`,
			`2:22 Punctuation Semicolon ";"`,
			`3:1 Comment BlockComment "/* a\nb */"`,
			`4:6 Constant Pi "π"`,
			`4:7 EOF`,
		},
		Warnings: []string{"2:1 reserved-keyword"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanWords(t *testing.T) {
	got := scanAll(t, "not _ true Missing Self self_ ∞ ℯ tau", nil)
	want := scanResult{Tokens: []string{
		`1:1 Punctuation Not "not"`,
		`1:5 Punctuation Underscore "_"`,
		`1:7 Logic True "true"`,
		`1:12 Logic Missing "Missing"`,
		`1:20 Keyword SelfType "Self"`,
		`1:25 Ident self_ "self_"`,
		`1:31 Constant Infinity "∞"`,
		`1:33 Constant Euler "ℯ"`,
		`1:35 Constant Tau "tau"`,
		`1:38 EOF`,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanMathNotation(t *testing.T) {
	got := scanAll(t, "∛8u8 ²√y x⁻¹ a÷b", nil)
	want := scanResult{Tokens: []string{
		`1:1 Symbol Root{3} "∛"`,
		`1:2 Integer 8u8 "8u8"`,
		`1:6 Symbol Root{2} "²√"`,
		`1:8 Ident y "y"`,
		`1:10 Ident x "x"`,
		`1:11 Symbol Power{-1} "⁻¹"`,
		`1:14 Ident a "a"`,
		`1:15 Symbol Division "÷"`,
		`1:16 Ident b "b"`,
		`1:17 EOF`,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNumberBoundaries(t *testing.T) {
	got := scanAll(t, "1u8..=5u8 7.f32 a.b 0xffu8", nil)
	want := scanResult{Tokens: []string{
		`1:1 Integer 1u8 "1u8"`,
		`1:4 Punctuation DotDotEquals "..="`,
		`1:7 Integer 5u8 "5u8"`,
		`1:11 Float 7f32 "7.f32"`,
		`1:17 Ident a "a"`,
		`1:18 Punctuation Dot "."`,
		`1:19 Ident b "b"`,
		`1:21 Integer 255u8 "0xffu8"`,
		`1:27 EOF`,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanRecoversFromErrors(t *testing.T) {
	src := "a @ 256u8 b\n0b12u8 1.0e+ c\n/* open"
	got := scanAll(t, src, nil)
	want := scanResult{
		Tokens: []string{
			`1:1 Ident a "a"`,
			`1:11 Ident b "b"`,
			`2:14 Ident c "c"`,
			`3:8 EOF`,
		},
		Errors: []string{
			"1:3 UnrecognizedLexeme",
			"1:5 LiteralOverflow",
			"2:1 InvalidDigitForRadix",
			"2:8 InvalidFloatExponent",
			"3:1 MalformedComment",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize(t *testing.T) {
	toks, errs := Tokenize([]rune("x @ y"), 3, nil)
	if len(toks) != 3 || toks[2].Type != token.EOF {
		t.Fatalf("Tokenize returned %v", toks)
	}
	for _, tok := range toks {
		if tok.FileIndex != 3 {
			t.Errorf("%v has file index %d", tok, tok.FileIndex)
		}
	}
	if len(errs) != 1 || errs[0].Kind != UnrecognizedLexeme || errs[0].Column != 3 || errs[0].Len != 1 {
		t.Fatalf("Tokenize errors = %v", errs)
	}
	if errs[0].FileIndex != 3 || errs[0].Lexeme != "@" {
		t.Errorf("error %+v", errs[0])
	}

	toks, errs = Tokenize(nil, 0, nil)
	if len(toks) != 1 || toks[0].Type != token.EOF || toks[0].Line != 1 || toks[0].Column != 1 || errs != nil {
		t.Errorf("empty source: %v %v", toks, errs)
	}
}

func TestFeaturesOff(t *testing.T) {
	cfg := config.NewConfig()
	if err := cfg.ProcessFlags("-Fno-math-notation -Fno-unicode-aliases -Fno-doc-comments"); err != nil {
		t.Fatal(err)
	}
	got := scanAll(t, "/// d\nx² → pi /** b */", cfg)
	want := scanResult{
		Tokens: []string{
			`1:1 Comment LineComment "/// d"`,
			`2:1 Ident x "x"`,
			`2:6 Ident pi "pi"`,
			`2:9 Comment BlockComment "/** b */"`,
			`2:17 EOF`,
		},
		Errors: []string{
			"2:2 UnrecognizedLexeme",
			"2:4 UnrecognizedLexeme",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestWarnings(t *testing.T) {
	src := "let a ≠ 1e+_5"

	cfg := config.NewConfig()
	got := scanAll(t, src, cfg).Warnings
	want := []string{"1:1 reserved-keyword", "1:9 empty-exponent-digits"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("default warnings (-want +got):\n%s", diff)
	}

	cfg = config.NewConfig()
	if err := cfg.ProcessFlags("-Wno-reserved-keyword -Wno-empty-exponent-digits"); err != nil {
		t.Fatal(err)
	}
	if got := scanAll(t, src, cfg).Warnings; len(got) != 0 {
		t.Errorf("disabled warnings still raised: %v", got)
	}

	if err := cfg.ProcessFlags("-Wpedantic"); err != nil {
		t.Fatal(err)
	}
	got = scanAll(t, src, cfg).Warnings
	want = []string{"1:1 reserved-keyword", "1:7 unicode-alias", "1:9 empty-exponent-digits"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pedantic warnings (-want +got):\n%s", diff)
	}

	if got := scanAll(t, src, nil).Warnings; len(got) != 0 {
		t.Errorf("nil config raised warnings: %v", got)
	}
}

func TestWhitespace(t *testing.T) {
	got := scanAll(t, "a\t\r\n\u200eb\u2028c", nil)
	want := scanResult{Tokens: []string{
		`1:1 Ident a "a"`,
		`2:2 Ident b "b"`,
		`2:4 Ident c "c"`,
		`2:5 EOF`,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}
