package token

import "fmt"

type Type int

const (
	EOF    Type = iota
	Remark      // comment or doc comment
	Ident
	Kw
	Logic
	Number
	FloatNumber
	Constant
	Sym
	Punct
	Delim
	Illegal // lexeme that failed to scan
)

var typeNames = [...]string{
	EOF:         "EOF",
	Remark:      "Comment",
	Ident:       "Ident",
	Kw:          "Keyword",
	Logic:       "Logic",
	Number:      "Integer",
	FloatNumber: "Float",
	Constant:    "Constant",
	Sym:         "Symbol",
	Punct:       "Punctuation",
	Delim:       "Delimiter",
	Illegal:     "Illegal",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is a scanned lexeme and its position. Lit holds the recognized value:
// Comment, Identifier, Keyword, LogicLiteral, Integer, Float,
// MathematicalConstant, MathematicalSymbol, Punctuation or Delimiter.
type Token struct {
	Type      Type
	Value     string
	Lit       any
	FileIndex int
	Line      int
	Column    int
	Len       int
}

func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("%d:%d EOF", t.Line, t.Column)
	}
	if t.Lit != nil {
		return fmt.Sprintf("%d:%d %s %v %q", t.Line, t.Column, t.Type, t.Lit, t.Value)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Value)
}
