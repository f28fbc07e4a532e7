package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/balsapop/balsapop/pkg/token"
)

const (
	rootGlyph     = '√'
	cubeRootGlyph = '∛'
	quadRootGlyph = '∜'
)

func ParseConstant(text string) (token.MathematicalConstant, error) {
	if k, ok := token.Constants[text]; ok {
		return token.MathematicalConstant{Kind: k}, nil
	}
	return token.MathematicalConstant{}, unrecognized(text, "mathematical constant")
}

func singleRune(text string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(text)
	return r, size > 0 && size == len(text) && r != utf8.RuneError
}

func ParseSuperscriptDigit(text string) (token.SuperscriptDecimalDigit, error) {
	if r, ok := singleRune(text); ok {
		if d, ok := token.SuperscriptDigits[r]; ok {
			return token.SuperscriptDecimalDigit{Digit: d}, nil
		}
	}
	return token.SuperscriptDecimalDigit{}, unrecognized(text, "superscript digit")
}

func ParseSuperscriptPunctuation(text string) (token.SuperscriptPunctuation, error) {
	if r, ok := singleRune(text); ok {
		if p, ok := token.SuperscriptPunctuations[r]; ok {
			return p, nil
		}
	}
	return 0, unrecognized(text, "superscript punctuation")
}

// ParseSuperscriptInteger folds an optional ⁺/⁻ and one or more superscript
// digits, most significant first, into an int8.
func ParseSuperscriptInteger(text string) (token.SuperscriptIntegerLiteral, error) {
	rs := []rune(text)
	negative := false
	if len(rs) > 0 && isSuperscriptSign(rs[0]) {
		negative = rs[0] == '⁻'
		rs = rs[1:]
	}
	if len(rs) == 0 {
		return token.SuperscriptIntegerLiteral{}, unrecognized(text, "superscript integer")
	}

	// the magnitude of -128 is one past int8's maximum
	limit := 127
	if negative {
		limit = 128
	}
	acc := 0
	for _, r := range rs {
		d, ok := token.SuperscriptDigits[r]
		if !ok {
			return token.SuperscriptIntegerLiteral{}, unrecognized(text, "superscript integer")
		}
		acc = acc*10 + int(d)
		if acc > limit {
			return token.SuperscriptIntegerLiteral{}, newError(LiteralOverflow, text, "superscript exponent %s does not fit i8", text)
		}
	}
	if negative {
		acc = -acc
	}
	return token.SuperscriptIntegerLiteral{N: int8(acc)}, nil
}

// ParseSymbol recognizes mathematical symbols. A superscript integer on its
// own is a Power; followed by √ it is the degree of a Root, which defaults
// to 2. ∛ and ∜ are fixed roots.
func ParseSymbol(text string) (token.MathematicalSymbol, error) {
	if r, ok := singleRune(text); ok {
		switch r {
		case rootGlyph:
			return token.RootOf(2), nil
		case cubeRootGlyph:
			return token.RootOf(3), nil
		case quadRootGlyph:
			return token.RootOf(4), nil
		}
		if k, ok := token.SymbolGlyphs[r]; ok {
			return token.MathematicalSymbol{Kind: k}, nil
		}
	}
	if degree, ok := strings.CutSuffix(text, string(rootGlyph)); ok {
		n, err := ParseSuperscriptInteger(degree)
		if err != nil {
			return token.MathematicalSymbol{}, withLexeme(err, text)
		}
		return token.RootOf(n.N), nil
	}
	n, err := ParseSuperscriptInteger(text)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Kind == UnrecognizedLexeme {
			return token.MathematicalSymbol{}, unrecognized(text, "mathematical symbol")
		}
		return token.MathematicalSymbol{}, err
	}
	return token.PowerOf(n.N), nil
}

func isSuperscriptSign(r rune) bool  { return r == '⁺' || r == '⁻' }
func isSuperscriptDigit(r rune) bool { _, ok := token.SuperscriptDigits[r]; return ok }

// superscriptRun returns the length of an optional sign glyph followed by a
// maximal run of superscript digits, or 0 when no digit is present.
func superscriptRun(src []rune) int {
	n := 0
	if n < len(src) && isSuperscriptSign(src[n]) {
		n++
	}
	start := n
	for n < len(src) && isSuperscriptDigit(src[n]) {
		n++
	}
	if n == start {
		return 0
	}
	return n
}
