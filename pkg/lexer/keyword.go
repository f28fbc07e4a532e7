package lexer

import (
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/balsapop/balsapop/pkg/xid"
)

// Word is a classified identifier-shaped lexeme: exactly one of Keyword and
// Identifier is meaningful, selected by IsKeyword.
type Word struct {
	IsKeyword  bool
	Keyword    token.Keyword
	Identifier token.Identifier
}

func (w Word) String() string {
	if w.IsKeyword {
		return w.Keyword.String()
	}
	return w.Identifier.Name
}

func ParseKeyword(text string) (token.Keyword, error) {
	if k, ok := token.KeywordMap[text]; ok {
		return token.Keyword{Kind: k}, nil
	}
	if r, ok := token.ReservedKeywords[text]; ok {
		return token.Keyword{Kind: token.Reserved, Reserved: r}, nil
	}
	return token.Keyword{}, unrecognized(text, "keyword")
}

func ParseReservedKeyword(text string) (token.ReservedKeyword, error) {
	if r, ok := token.ReservedKeywords[text]; ok {
		return r, nil
	}
	return 0, unrecognized(text, "reserved keyword")
}

func ParseLogicLiteral(text string) (token.LogicLiteral, error) {
	if l, ok := token.LogicLiterals[text]; ok {
		return l, nil
	}
	return 0, unrecognized(text, "logic literal")
}

// ParseIdentifier accepts XID_Start or '_' followed by XID_Continue. A lone
// '_' is the Underscore punctuation, not an identifier.
func ParseIdentifier(text string) (token.Identifier, error) {
	if !xid.IsIdentifier(text) {
		return token.Identifier{}, unrecognized(text, "identifier")
	}
	return token.Identifier{Name: text}, nil
}

// ClassifyWord resolves an identifier-shaped word. Keywords always win over
// identifiers; case variants are only those the keyword table lists.
func ClassifyWord(text string) (Word, error) {
	if k, err := ParseKeyword(text); err == nil {
		return Word{IsKeyword: true, Keyword: k}, nil
	}
	id, err := ParseIdentifier(text)
	if err != nil {
		return Word{}, err
	}
	return Word{Identifier: id}, nil
}
