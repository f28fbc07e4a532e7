package lexer

import (
	"errors"
	"testing"

	"github.com/balsapop/balsapop/pkg/token"
)

func TestParseKeyword(t *testing.T) {
	tests := map[string]token.KeywordKind{
		"fn": token.Fn, "as": token.As, "while": token.While, "self": token.SelfValue, "Self": token.SelfType,
		"true": token.TrueKw, "True": token.TrueKw, "false": token.FalseKw, "False": token.FalseKw,
		"missing": token.MissingKw, "Missing": token.MissingKw, "type": token.TypeKw,
	}
	for in, want := range tests {
		got, err := ParseKeyword(in)
		if err != nil || got.Kind != want || got.IsReserved() {
			t.Errorf("ParseKeyword(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	got, err := ParseKeyword("async")
	if err != nil || !got.IsReserved() || got.Reserved != token.Async {
		t.Errorf("ParseKeyword(async) = %v, %v", got, err)
	}
	if got.String() != "Reserved(async)" {
		t.Errorf("Reserved keyword string = %q", got.String())
	}

	for _, in := range []string{"Fn", "FN", "SELF", "TRUE", "fn_", "", "main"} {
		if _, err := ParseKeyword(in); !errors.Is(err, ErrUnrecognizedLexeme) {
			t.Errorf("ParseKeyword(%q) error = %v", in, err)
		}
	}
}

func TestParseReservedKeyword(t *testing.T) {
	for word, want := range token.ReservedKeywords {
		got, err := ParseReservedKeyword(word)
		if err != nil || got != want || got.String() != word {
			t.Errorf("ParseReservedKeyword(%q) = %v, %v", word, got, err)
		}
	}
	if _, err := ParseReservedKeyword("fn"); !errors.Is(err, ErrUnrecognizedLexeme) {
		t.Errorf("ParseReservedKeyword(fn) error = %v", err)
	}
}

func TestKeywordTablesAreDisjoint(t *testing.T) {
	for word := range token.ReservedKeywords {
		if _, ok := token.KeywordMap[word]; ok {
			t.Errorf("%q is both active and reserved", word)
		}
	}
}

func TestParseLogicLiteral(t *testing.T) {
	tests := map[string]token.LogicLiteral{
		"true": token.True, "True": token.True,
		"false": token.False, "False": token.False,
		"missing": token.Missing, "Missing": token.Missing,
	}
	for in, want := range tests {
		got, err := ParseLogicLiteral(in)
		if err != nil || got != want {
			t.Errorf("ParseLogicLiteral(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"TRUE", "yes", "", "nil"} {
		if _, err := ParseLogicLiteral(in); !errors.Is(err, ErrUnrecognizedLexeme) {
			t.Errorf("ParseLogicLiteral(%q) error = %v", in, err)
		}
	}
	if v, ok := token.Missing.Bool(); v || ok {
		t.Errorf("Missing.Bool() = %v, %v", v, ok)
	}
	if v, ok := token.True.Bool(); !v || !ok {
		t.Errorf("True.Bool() = %v, %v", v, ok)
	}
}

func TestParseIdentifier(t *testing.T) {
	for _, in := range []string{"x", "_x", "__", "foo_bar9", "Ωmega", "变量", "naïve", "x_"} {
		got, err := ParseIdentifier(in)
		if err != nil || got.Name != in {
			t.Errorf("ParseIdentifier(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "_", "9x", "a-b", "a b", "x²", "$x"} {
		if _, err := ParseIdentifier(in); !errors.Is(err, ErrUnrecognizedLexeme) {
			t.Errorf("ParseIdentifier(%q) error = %v", in, err)
		}
	}
}

func TestClassifyWord(t *testing.T) {
	tests := []struct {
		in        string
		isKeyword bool
		want      string
	}{
		{"fn", true, "Fn"},
		{"Self", true, "SelfType"},
		{"mut", true, "Reserved(mut)"},
		{"true", true, "True"},
		{"Fn", false, "Fn"},
		{"fnord", false, "fnord"},
		{"_private", false, "_private"},
	}
	for _, tt := range tests {
		got, err := ClassifyWord(tt.in)
		if err != nil {
			t.Errorf("ClassifyWord(%q) error: %v", tt.in, err)
			continue
		}
		if got.IsKeyword != tt.isKeyword || got.String() != tt.want {
			t.Errorf("ClassifyWord(%q) = %v (keyword %v), want %s (keyword %v)",
				tt.in, got, got.IsKeyword, tt.want, tt.isKeyword)
		}
	}
	if _, err := ClassifyWord("1abc"); !errors.Is(err, ErrUnrecognizedLexeme) {
		t.Errorf("ClassifyWord(1abc) error = %v", err)
	}
}
