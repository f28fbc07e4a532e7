package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/balsapop/balsapop/pkg/token"
)

// ParseRadixPrefix recognizes 0b, 0o and 0x in either case.
func ParseRadixPrefix(text string) (Radix, error) {
	if len(text) == 2 && text[0] == '0' {
		switch text[1] {
		case 'b', 'B':
			return Binary, nil
		case 'o', 'O':
			return Octal, nil
		case 'x', 'X':
			return Hexadecimal, nil
		}
	}
	return 0, unrecognized(text, "radix prefix")
}

func ParseIntegerSuffix(text string) (token.IntegerKind, error) {
	if k, ok := token.IntegerSuffixes[text]; ok {
		return k, nil
	}
	return 0, unrecognized(text, "integer suffix")
}

func ParseFloatSuffix(text string) (token.FloatKind, error) {
	if k, ok := token.FloatSuffixes[text]; ok {
		return k, nil
	}
	return 0, unrecognized(text, "float suffix")
}

func splitRadixPrefix(text string) (Radix, string) {
	if len(text) >= 2 {
		if radix, err := ParseRadixPrefix(text[:2]); err == nil {
			return radix, text[2:]
		}
	}
	return Decimal, text
}

// splitIntegerSuffix separates the trailing width suffix. Neither 'u' nor
// 'i' is a digit in any radix, so the suffix starts at the first of them.
func splitIntegerSuffix(text string) (body, suffix string) {
	if i := strings.IndexAny(text, "ui"); i >= 0 {
		return text[:i], text[i:]
	}
	return text, ""
}

// ParseIntegerLiteral parses [radix-prefix] digit-or-underscore+ suffix.
// Decimal literals must start with a digit; digit groups after a radix
// prefix may start with '_'.
func ParseIntegerLiteral(text string) (token.Integer, error) {
	radix, rest := splitRadixPrefix(text)
	body, suffix := splitIntegerSuffix(rest)

	if body == "" {
		return token.Integer{}, newError(UnrecognizedLexeme, text, "integer literal %q has no digits", text)
	}
	if radix == Decimal && body[0] == '_' {
		return token.Integer{}, newError(UnrecognizedLexeme, text, "decimal literal %q must start with a digit", text)
	}
	digits, err := FilterDigits(radix, []rune(body))
	if err != nil {
		return token.Integer{}, withLexeme(err, text)
	}
	if suffix == "" {
		e := newError(UnrecognizedLexeme, text, "integer literal %q is missing a width suffix", text)
		e.Hint = "Add a suffix such as i32, u8 or usize."
		return token.Integer{}, e
	}
	kind, err := ParseIntegerSuffix(suffix)
	if err != nil {
		return token.Integer{}, withLexeme(err, text)
	}

	value := Fold(radix, digits)
	if !kind.Fits(value) {
		return token.Integer{}, newError(LiteralOverflow, text,
			"literal %s does not fit %s (range %s..=%s)", value, kind, kind.Min(), kind.Max())
	}
	return token.MakeInteger(kind, value), nil
}

// ParseFloatExponent parses ('e'|'E') ('+'|'-') digit-or-underscore+ and
// returns the exponent text unchanged. At least one digit is required.
func ParseFloatExponent(text string) (string, error) {
	if len(text) < 2 || (text[0] != 'e' && text[0] != 'E') || (text[1] != '+' && text[1] != '-') {
		return "", unrecognized(text, "float exponent")
	}
	digits, err := FilterDigits(Decimal, []rune(text[2:]))
	if err != nil {
		return "", withLexeme(err, text)
	}
	if len(digits) == 0 {
		return "", newError(InvalidFloatExponent, text, "exponent %q has no digits", text)
	}
	return text, nil
}

func isDecimalDigit(c byte) bool { return c >= '0' && c <= '9' }

// decimalRun returns the length of a digit-or-underscore run that starts
// with a digit.
func decimalRun(s string) int {
	if s == "" || !isDecimalDigit(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && (isDecimalDigit(s[n]) || s[n] == '_') {
		n++
	}
	return n
}

// ParseFloatLiteral parses decimal-digits '.' decimal-digits? exponent? suffix?.
// The dot may be left out when an exponent follows. A trailing dot denotes
// a zero fraction.
func ParseFloatLiteral(text string) (token.Float, error) {
	var clean strings.Builder
	rest := text

	n := decimalRun(rest)
	if n == 0 {
		return token.Float{}, unrecognized(text, "float literal")
	}
	clean.WriteString(rest[:n])
	rest = rest[n:]

	hasDot := strings.HasPrefix(rest, ".")
	if hasDot {
		rest = rest[1:]
		clean.WriteByte('.')
		if n := decimalRun(rest); n > 0 {
			clean.WriteString(rest[:n])
			rest = rest[n:]
		} else {
			clean.WriteByte('0')
		}
	}

	hasExp := rest != "" && (rest[0] == 'e' || rest[0] == 'E')
	if hasExp {
		end := strings.IndexByte(rest, 'f')
		if end < 0 {
			end = len(rest)
		}
		exp, err := ParseFloatExponent(rest[:end])
		if err != nil {
			return token.Float{}, withLexeme(err, text)
		}
		clean.WriteString(exp)
		rest = rest[end:]
	}
	if !hasDot && !hasExp {
		return token.Float{}, newError(UnrecognizedLexeme, text, "float literal %q needs a '.' or an exponent", text)
	}

	kind := token.F64
	if rest != "" {
		k, err := ParseFloatSuffix(rest)
		if err != nil {
			return token.Float{}, withLexeme(err, text)
		}
		kind = k
	}

	bitSize := 64
	if kind == token.F32 {
		bitSize = 32
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(clean.String(), "_", ""), bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return token.Float{}, newError(LiteralOverflow, text, "float literal %q is out of range for %s", text, kind)
		}
		return token.Float{}, unrecognized(text, "float literal")
	}
	return token.MakeFloat(kind, v), nil
}

// ParseNumericLiteral parses an integer, float or mathematical constant.
func ParseNumericLiteral(text string) (token.NumericLiteral, error) {
	if c, err := ParseConstant(text); err == nil {
		return c, nil
	}
	if isFloatShaped(text) {
		f, err := ParseFloatLiteral(text)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	i, err := ParseIntegerLiteral(text)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func isFloatShaped(text string) bool {
	radix, rest := splitRadixPrefix(text)
	if radix != Decimal {
		return false
	}
	n := decimalRun(rest)
	if n == 0 {
		return false
	}
	rest = rest[n:]
	return rest != "" && (rest[0] == '.' || rest[0] == 'e' || rest[0] == 'E' || rest[0] == 'f')
}

// withLexeme widens a sub-lexeme error to the whole literal.
func withLexeme(err error, lexeme string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Lexeme = lexeme
	}
	return err
}
