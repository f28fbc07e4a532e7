package lexer

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	InvalidFloatExponent ErrorKind = iota + 1
	LiteralOverflow
	InvalidDigitForRadix
	UnrecognizedLexeme
	MalformedComment
)

type kindInfo struct {
	name string
	code string
	help string
}

var kinds = map[ErrorKind]kindInfo{
	InvalidFloatExponent: {"InvalidFloatExponent", "balsapop::parser::invalid_float_exponent", "Float exponents must contain at least one digit (0-9)."},
	LiteralOverflow:      {"LiteralOverflow", "balsapop::parser::literal_overflow", "The value does not fit the width of its suffix; use a wider suffix."},
	InvalidDigitForRadix: {"InvalidDigitForRadix", "balsapop::parser::invalid_digit_for_radix", "Binary literals use 0-1, octal 0-7, decimal 0-9 and hexadecimal 0-9, a-f, A-F."},
	UnrecognizedLexeme:   {"UnrecognizedLexeme", "balsapop::parser::unrecognized_lexeme", ""},
	MalformedComment:     {"MalformedComment", "balsapop::parser::malformed_comment", "Line comments end at the newline and block comments need a closing '*/'."},
}

func (k ErrorKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code is the stable diagnostic code of the kind.
func (k ErrorKind) Code() string { return kinds[k].code }

// Error is a lexical error. Position fields are zero when the error comes
// from a Parse function rather than the Lexer.
type Error struct {
	Kind      ErrorKind
	Msg       string
	Lexeme    string
	Hint      string
	FileIndex int
	Line      int
	Column    int
	Len       int
}

// Sentinels for errors.Is.
var (
	ErrInvalidFloatExponent = &Error{Kind: InvalidFloatExponent}
	ErrLiteralOverflow      = &Error{Kind: LiteralOverflow}
	ErrInvalidDigitForRadix = &Error{Kind: InvalidDigitForRadix}
	ErrUnrecognizedLexeme   = &Error{Kind: UnrecognizedLexeme}
	ErrMalformedComment     = &Error{Kind: MalformedComment}
)

func newError(kind ErrorKind, lexeme, format string, args ...any) *Error {
	return &Error{Kind: kind, Lexeme: lexeme, Msg: fmt.Sprintf(format, args...)}
}

func unrecognized(lexeme, what string) *Error {
	return newError(UnrecognizedLexeme, lexeme, "%q is not a valid %s", lexeme, what)
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "%d:%d: ", e.Line, e.Column)
	}
	sb.WriteString(e.Kind.String())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	return sb.String()
}

// Help returns the error-specific hint, falling back to the kind's help text.
func (e *Error) Help() string {
	if e.Hint != "" {
		return e.Hint
	}
	return kinds[e.Kind].help
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) at(fileIndex, line, col, length int) *Error {
	e.FileIndex, e.Line, e.Column, e.Len = fileIndex, line, col, length
	return e
}
