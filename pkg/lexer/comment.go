package lexer

import (
	"strings"

	"github.com/balsapop/balsapop/pkg/token"
)

func checkLine(text string) error {
	if strings.ContainsRune(text, '\n') {
		return newError(MalformedComment, text, "line comment contains a newline")
	}
	return nil
}

func isOuterLineDoc(text string) bool {
	return strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
}

func isInnerLineDoc(text string) bool { return strings.HasPrefix(text, "//!") }

// ParseLineComment accepts // comments that are not doc comments. Four or
// more slashes make a plain comment.
func ParseLineComment(text string) (token.Comment, error) {
	if !strings.HasPrefix(text, "//") || isOuterLineDoc(text) || isInnerLineDoc(text) {
		return token.Comment{}, unrecognized(text, "line comment")
	}
	if err := checkLine(text); err != nil {
		return token.Comment{}, err
	}
	return token.Comment{Kind: token.LineComment, Text: text}, nil
}

// ParseOuterLineDocComment accepts exactly three slashes.
func ParseOuterLineDocComment(text string) (token.Comment, error) {
	if !isOuterLineDoc(text) {
		return token.Comment{}, unrecognized(text, "outer line doc comment")
	}
	if err := checkLine(text); err != nil {
		return token.Comment{}, err
	}
	return token.Comment{Kind: token.OuterLineDocComment, Text: text}, nil
}

func ParseInnerLineDocComment(text string) (token.Comment, error) {
	if !isInnerLineDoc(text) {
		return token.Comment{}, unrecognized(text, "inner line doc comment")
	}
	if err := checkLine(text); err != nil {
		return token.Comment{}, err
	}
	return token.Comment{Kind: token.InnerLineDocComment, Text: text}, nil
}

// blockBody checks that text is one /* ... */ comment closed by the first
// */ and returns the text between the markers.
func blockBody(text string) (string, error) {
	if !strings.HasPrefix(text, "/*") {
		return "", unrecognized(text, "block comment")
	}
	end := strings.Index(text[2:], "*/")
	if end < 0 {
		return "", newError(MalformedComment, text, "unterminated block comment")
	}
	end += 2
	if end+2 != len(text) {
		return "", newError(UnrecognizedLexeme, text, "text after the block comment closes: %q", text[end+2:])
	}
	return text[2:end], nil
}

func blockKind(body string) token.CommentKind {
	switch {
	case strings.HasPrefix(body, "!"):
		return token.InnerBlockDocComment
	// "/**/" and "/***" are plain comments
	case strings.HasPrefix(body, "*") && !strings.HasPrefix(body, "**") && body != "*":
		return token.OuterBlockDocComment
	}
	return token.BlockComment
}

func parseBlock(text string, want token.CommentKind, what string) (token.Comment, error) {
	body, err := blockBody(text)
	if err != nil {
		return token.Comment{}, err
	}
	if blockKind(body) != want {
		return token.Comment{}, unrecognized(text, what)
	}
	return token.Comment{Kind: want, Text: text}, nil
}

func ParseBlockComment(text string) (token.Comment, error) {
	return parseBlock(text, token.BlockComment, "block comment")
}

func ParseOuterBlockDocComment(text string) (token.Comment, error) {
	return parseBlock(text, token.OuterBlockDocComment, "outer block doc comment")
}

func ParseInnerBlockDocComment(text string) (token.Comment, error) {
	return parseBlock(text, token.InnerBlockDocComment, "inner block doc comment")
}

// ClassifyComment sorts a complete comment into one of the six kinds.
// Block comments do not nest: the first */ closes the comment.
func ClassifyComment(text string) (token.Comment, error) {
	switch {
	case strings.HasPrefix(text, "//"):
		if err := checkLine(text); err != nil {
			return token.Comment{}, err
		}
		switch {
		case isOuterLineDoc(text):
			return token.Comment{Kind: token.OuterLineDocComment, Text: text}, nil
		case isInnerLineDoc(text):
			return token.Comment{Kind: token.InnerLineDocComment, Text: text}, nil
		}
		return token.Comment{Kind: token.LineComment, Text: text}, nil
	case strings.HasPrefix(text, "/*"):
		body, err := blockBody(text)
		if err != nil {
			return token.Comment{}, err
		}
		return token.Comment{Kind: blockKind(body), Text: text}, nil
	}
	return token.Comment{}, unrecognized(text, "comment")
}
