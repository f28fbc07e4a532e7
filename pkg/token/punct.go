package token

import "fmt"

type Punctuation int

const (
	Plus Punctuation = iota
	Minus
	Star
	Slash
	Backslash
	Percent
	Caret
	Not
	And
	Or
	AndAnd
	OrOr
	PlusEquals
	MinusEquals
	StarEquals
	SlashEquals
	PercentEquals
	CaretEquals
	AndEquals
	OrEquals
	Equals
	DoubleEquals
	NotEqual
	LessThan
	LessThanEqual
	GreaterThan
	GreaterThanEqual
	Underscore
	Dot
	DotDot
	DotDotDot
	DotDotEquals
	Comma
	Semicolon
	Colon
	PathSeparator
	RightArrow
	LeftArrow
	FatRightArrow
	FatLeftArrow
	Pound
	Dollar
	Question
	Apostrophe
	Quote
	punctuationCount
)

var punctuationNames = [...]string{
	Plus: "Plus", Minus: "Minus", Star: "Star", Slash: "Slash", Backslash: "Backslash",
	Percent: "Percent", Caret: "Caret", Not: "Not", And: "And", Or: "Or",
	AndAnd: "AndAnd", OrOr: "OrOr",
	PlusEquals: "PlusEquals", MinusEquals: "MinusEquals", StarEquals: "StarEquals",
	SlashEquals: "SlashEquals", PercentEquals: "PercentEquals", CaretEquals: "CaretEquals",
	AndEquals: "AndEquals", OrEquals: "OrEquals",
	Equals: "Equals", DoubleEquals: "DoubleEquals", NotEqual: "NotEqual",
	LessThan: "LessThan", LessThanEqual: "LessThanEqual",
	GreaterThan: "GreaterThan", GreaterThanEqual: "GreaterThanEqual",
	Underscore: "Underscore", Dot: "Dot", DotDot: "DotDot", DotDotDot: "DotDotDot",
	DotDotEquals: "DotDotEquals", Comma: "Comma", Semicolon: "Semicolon", Colon: "Colon",
	PathSeparator: "PathSeparator", RightArrow: "RightArrow", LeftArrow: "LeftArrow",
	FatRightArrow: "FatRightArrow", FatLeftArrow: "FatLeftArrow",
	Pound: "Pound", Dollar: "Dollar", Question: "Question",
	Apostrophe: "Apostrophe", Quote: "Quote",
}

// PunctuationSpellings holds the ASCII spelling of every operator.
// FatLeftArrow has none.
var PunctuationSpellings = map[string]Punctuation{
	"+": Plus, "-": Minus, "*": Star, "/": Slash, "\\": Backslash,
	"%": Percent, "^": Caret, "!": Not, "not": Not, "&": And, "|": Or,
	"&&": AndAnd, "||": OrOr,
	"+=": PlusEquals, "-=": MinusEquals, "*=": StarEquals, "/=": SlashEquals,
	"%=": PercentEquals, "^=": CaretEquals, "&=": AndEquals, "|=": OrEquals,
	"=": Equals, "==": DoubleEquals, "!=": NotEqual,
	"<": LessThan, "<=": LessThanEqual, ">": GreaterThan, ">=": GreaterThanEqual,
	"_": Underscore, ".": Dot, "..": DotDot, "...": DotDotDot, "..=": DotDotEquals,
	",": Comma, ";": Semicolon, ":": Colon, "::": PathSeparator,
	"->": RightArrow, "<-": LeftArrow, "=>": FatRightArrow,
	"#": Pound, "$": Dollar, "?": Question, "'": Apostrophe, "\"": Quote,
}

// PunctuationAliases holds the Unicode glyph spellings.
var PunctuationAliases = map[string]Punctuation{
	"→": RightArrow,
	"←": LeftArrow,
	"⇒": FatRightArrow,
	"⇐": FatLeftArrow,
	"≠": NotEqual,
	"≤": LessThanEqual,
	"≥": GreaterThanEqual,
}

func (p Punctuation) String() string {
	if p >= 0 && p < punctuationCount {
		return punctuationNames[p]
	}
	return fmt.Sprintf("Punctuation(%d)", int(p))
}

// AllPunctuation lists every variant in declaration order.
func AllPunctuation() []Punctuation {
	out := make([]Punctuation, 0, punctuationCount)
	for p := Punctuation(0); p < punctuationCount; p++ {
		out = append(out, p)
	}
	return out
}

type Delimiter int

const (
	LeftParen Delimiter = iota
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
)

var Delimiters = map[rune]Delimiter{
	'(': LeftParen, ')': RightParen,
	'[': LeftBracket, ']': RightBracket,
	'{': LeftBrace, '}': RightBrace,
}

func (d Delimiter) String() string {
	switch d {
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case LeftBracket:
		return "LeftBracket"
	case RightBracket:
		return "RightBracket"
	case LeftBrace:
		return "LeftBrace"
	case RightBrace:
		return "RightBrace"
	}
	return fmt.Sprintf("Delimiter(%d)", int(d))
}
