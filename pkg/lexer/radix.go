package lexer

import (
	"fmt"
	"math/big"
	"unicode"
)

type Radix int

const (
	Binary      Radix = 2
	Octal       Radix = 8
	Decimal     Radix = 10
	Hexadecimal Radix = 16
)

func (r Radix) String() string {
	switch r {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	}
	return fmt.Sprintf("Radix(%d)", int(r))
}

func (r Radix) valid() bool {
	return r == Binary || r == Octal || r == Decimal || r == Hexadecimal
}

func digitValue(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// IsDigit reports whether c is a digit of the radix.
func IsDigit(radix Radix, c rune) bool {
	v, ok := digitValue(c)
	return ok && radix.valid() && v < int(radix)
}

func IsDigitOrUnderscore(radix Radix, c rune) bool {
	return c == '_' || IsDigit(radix, c)
}

// FilterDigits drops the '_' separators from a digit-or-underscore run. Any
// other letter or digit that is not valid for the radix is an
// InvalidDigitForRadix error; anything else is UnrecognizedLexeme.
func FilterDigits(radix Radix, run []rune) ([]rune, error) {
	if !radix.valid() {
		return nil, newError(UnrecognizedLexeme, string(run), "unsupported radix %d", int(radix))
	}
	digits := make([]rune, 0, len(run))
	for _, c := range run {
		switch {
		case c == '_':
		case IsDigit(radix, c):
			digits = append(digits, c)
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			return nil, newError(InvalidDigitForRadix, string(run), "invalid digit %q in %s literal", c, radix)
		default:
			return nil, newError(UnrecognizedLexeme, string(run), "unexpected character %q in %s literal", c, radix)
		}
	}
	return digits, nil
}

// Fold accumulates already-filtered digits, most significant first. The
// result is unbounded; range checks happen once the suffix is known.
func Fold(radix Radix, digits []rune) *big.Int {
	acc := new(big.Int)
	base := big.NewInt(int64(radix))
	d := new(big.Int)
	for _, c := range digits {
		v, _ := digitValue(c)
		acc.Mul(acc, base)
		acc.Add(acc, d.SetInt64(int64(v)))
	}
	return acc
}

// ParseDigits filters and folds a digit-or-underscore run. The run must hold
// at least one character; a run of only underscores denotes zero.
func ParseDigits(radix Radix, text string) (*big.Int, error) {
	if text == "" {
		return nil, newError(UnrecognizedLexeme, text, "expected %s digits", radix)
	}
	digits, err := FilterDigits(radix, []rune(text))
	if err != nil {
		return nil, err
	}
	return Fold(radix, digits), nil
}
