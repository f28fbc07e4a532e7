package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/balsapop/balsapop/pkg/xid"
)

// Diagnostic is a warning raised while scanning. The Lexer only records
// them; reporting is up to the caller.
type Diagnostic struct {
	Warning config.Warning
	Token   token.Token
	Msg     string
}

type Lexer struct {
	source    []rune
	fileIndex int
	pos       int
	line      int
	column    int
	cfg       *config.Config
	warnings  []Diagnostic
}

// NewLexer scans source. A nil cfg enables every feature and no warnings.
func NewLexer(source []rune, fileIndex int, cfg *config.Config) *Lexer {
	return &Lexer{
		source: source, fileIndex: fileIndex, line: 1, column: 1, cfg: cfg,
	}
}

// Warnings returns the diagnostics recorded so far.
func (l *Lexer) Warnings() []Diagnostic { return l.warnings }

// Next returns the next token. On error the returned token still carries
// the position and text of the offending lexeme, and the Lexer has already
// moved past it, so scanning can continue.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	startPos, startCol, startLine := l.pos, l.column, l.line

	if l.isAtEnd() {
		return l.makeToken(token.EOF, nil, startPos, startCol, startLine), nil
	}

	mathNotation := l.cfg.IsFeatureEnabled(config.FeatMathNotation)
	ch := l.peek()
	switch {
	case ch == '/' && (l.peekNext() == '/' || l.peekNext() == '*'):
		return l.comment(startPos, startCol, startLine)
	case ch >= '0' && ch <= '9':
		return l.number(startPos, startCol, startLine)
	case mathNotation && l.atSymbol():
		return l.symbol(startPos, startCol, startLine)
	case xid.IsIdentifierStart(ch):
		return l.word(startPos, startCol, startLine)
	}

	if mathNotation {
		if k, ok := token.Constants[string(ch)]; ok {
			l.advance()
			return l.makeToken(token.Constant, token.MathematicalConstant{Kind: k}, startPos, startCol, startLine), nil
		}
		if k, ok := token.SymbolGlyphs[ch]; ok {
			l.advance()
			return l.makeToken(token.Sym, token.MathematicalSymbol{Kind: k}, startPos, startCol, startLine), nil
		}
	}
	if d, ok := token.Delimiters[ch]; ok {
		l.advance()
		return l.makeToken(token.Delim, d, startPos, startCol, startLine), nil
	}
	aliases := l.cfg.IsFeatureEnabled(config.FeatUnicodeAliases)
	if p, n, ok := MatchPunctuation(l.source[l.pos:], aliases); ok {
		for i := 0; i < n; i++ {
			l.advance()
		}
		tok := l.makeToken(token.Punct, p, startPos, startCol, startLine)
		if _, isAlias := token.PunctuationAliases[tok.Value]; isAlias {
			l.warn(config.WarnConfusableAlias, tok, "Unicode alias '%s' used for %s", tok.Value, p)
		}
		return tok, nil
	}

	l.advance()
	tok := l.makeToken(token.Illegal, nil, startPos, startCol, startLine)
	e := unrecognized(tok.Value, "token")
	e.Msg = fmt.Sprintf("unexpected character %q", ch)
	err := l.fail(e, &tok)
	return tok, err
}

// Tokenize scans the whole source. Tokens that failed to scan are left out
// and their errors returned in source order. The last token is EOF.
func Tokenize(source []rune, fileIndex int, cfg *config.Config) ([]token.Token, []*Error) {
	l := NewLexer(source, fileIndex, cfg)
	var toks []token.Token
	var errs []*Error
	for {
		tok, err := l.Next()
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				errs = append(errs, e)
			}
			continue
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, errs
		}
	}
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() rune { return l.peekAt(1) }

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.source) {
		return 0
	}
	return l.source[l.pos+offset]
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	return ch
}

func (l *Lexer) advanceWhile(pred func(rune) bool) {
	for !l.isAtEnd() && pred(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.source) }

func (l *Lexer) makeToken(tokType token.Type, lit any, startPos, startCol, startLine int) token.Token {
	return token.Token{
		Type: tokType, Value: string(l.source[startPos:l.pos]), Lit: lit, FileIndex: l.fileIndex,
		Line: startLine, Column: startCol, Len: l.pos - startPos,
	}
}

// fail marks tok Illegal and positions err at it. Recognizers only return
// *Error, anything else is reported as an unrecognized lexeme.
func (l *Lexer) fail(err error, tok *token.Token) *Error {
	tok.Type, tok.Lit = token.Illegal, nil
	var e *Error
	if !errors.As(err, &e) {
		e = unrecognized(tok.Value, "token")
		e.Msg = err.Error()
	}
	return e.at(l.fileIndex, tok.Line, tok.Column, tok.Len)
}

func (l *Lexer) warn(w config.Warning, tok token.Token, format string, args ...any) {
	if !l.cfg.IsWarningEnabled(w) {
		return
	}
	l.warnings = append(l.warnings, Diagnostic{Warning: w, Token: tok, Msg: fmt.Sprintf(format, args...)})
}

func (l *Lexer) skipWhitespace() {
	l.advanceWhile(func(r rune) bool { return unicode.Is(unicode.Pattern_White_Space, r) })
}

func (l *Lexer) comment(startPos, startCol, startLine int) (token.Token, error) {
	if l.peekNext() == '/' {
		l.advanceWhile(func(r rune) bool { return r != '\n' })
	} else {
		l.advance()
		l.advance()
		for !l.isAtEnd() && !(l.peek() == '*' && l.peekNext() == '/') {
			l.advance()
		}
		l.advance()
		l.advance()
	}
	tok := l.makeToken(token.Remark, nil, startPos, startCol, startLine)
	c, err := ClassifyComment(tok.Value)
	if err != nil {
		e := l.fail(err, &tok)
		return tok, e
	}
	if !l.cfg.IsFeatureEnabled(config.FeatDocComments) {
		if c.IsBlock() {
			c.Kind = token.BlockComment
		} else {
			c.Kind = token.LineComment
		}
	}
	tok.Lit = c
	return tok, nil
}

func isDigitOrUnderscore(r rune) bool { return r == '_' || (r >= '0' && r <= '9') }

func isAlnum(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// floatSuffixAt reports whether f32 or f64 starts at offset and is not
// followed by more identifier characters.
func (l *Lexer) floatSuffixAt(offset int) bool {
	if l.peekAt(offset) != 'f' {
		return false
	}
	a, b := l.peekAt(offset+1), l.peekAt(offset+2)
	if !(a == '3' && b == '2') && !(a == '6' && b == '4') {
		return false
	}
	return !xid.IsContinue(l.peekAt(offset + 3))
}

func (l *Lexer) exponentAt(offset int) bool {
	e, sign := l.peekAt(offset), l.peekAt(offset+1)
	return (e == 'e' || e == 'E') && (sign == '+' || sign == '-')
}

// number takes the longest run that could be a numeric literal and leaves
// validation to the recognizers. A '.' belongs to the literal unless it
// starts a range or a member access.
func (l *Lexer) number(startPos, startCol, startLine int) (token.Token, error) {
	if l.peek() == '0' && strings.ContainsRune("bBoOxX", l.peekNext()) {
		l.advance()
		l.advance()
		l.advanceWhile(isAlnum)
	} else {
		l.advanceWhile(isDigitOrUnderscore)
		next := l.peekNext()
		if l.peek() == '.' && next != '.' && (!xid.IsIdentifierStart(next) || l.floatSuffixAt(1) || l.exponentAt(1)) {
			l.advance()
			l.advanceWhile(isDigitOrUnderscore)
		}
		if l.exponentAt(0) {
			l.advance()
			l.advance()
			l.advanceWhile(isDigitOrUnderscore)
		}
		l.advanceWhile(xid.IsContinue)
	}

	tok := l.makeToken(token.Number, nil, startPos, startCol, startLine)
	if isFloatShaped(tok.Value) {
		f, err := ParseFloatLiteral(tok.Value)
		if err != nil {
			e := l.fail(err, &tok)
			return tok, e
		}
		tok.Type, tok.Lit = token.FloatNumber, f
		if i := strings.IndexAny(tok.Value, "eE"); i >= 0 && strings.HasPrefix(tok.Value[i+2:], "_") {
			l.warn(config.WarnEmptyExponentDigits, tok, "exponent of '%s' starts with '_'", tok.Value)
		}
		return tok, nil
	}
	n, err := ParseIntegerLiteral(tok.Value)
	if err != nil {
		e := l.fail(err, &tok)
		return tok, e
	}
	tok.Lit = n
	return tok, nil
}

func (l *Lexer) atSymbol() bool {
	switch l.peek() {
	case rootGlyph, cubeRootGlyph, quadRootGlyph:
		return true
	}
	return superscriptRun(l.source[l.pos:]) > 0
}

// symbol scans a superscript power, or a root with an optional superscript
// degree.
func (l *Lexer) symbol(startPos, startCol, startLine int) (token.Token, error) {
	n := superscriptRun(l.source[l.pos:])
	for i := 0; i < n; i++ {
		l.advance()
	}
	if n == 0 || l.peek() == rootGlyph {
		l.advance()
	}
	tok := l.makeToken(token.Sym, nil, startPos, startCol, startLine)
	s, err := ParseSymbol(tok.Value)
	if err != nil {
		e := l.fail(err, &tok)
		return tok, e
	}
	tok.Lit = s
	return tok, nil
}

func (l *Lexer) word(startPos, startCol, startLine int) (token.Token, error) {
	l.advance()
	l.advanceWhile(xid.IsContinue)
	tok := l.makeToken(token.Ident, nil, startPos, startCol, startLine)
	text := tok.Value

	if p, ok := token.PunctuationSpellings[text]; ok {
		tok.Type, tok.Lit = token.Punct, p
		return tok, nil
	}
	if l.cfg.IsFeatureEnabled(config.FeatMathNotation) {
		if k, ok := token.Constants[text]; ok {
			tok.Type, tok.Lit = token.Constant, token.MathematicalConstant{Kind: k}
			return tok, nil
		}
	}
	if v, ok := token.LogicLiterals[text]; ok {
		tok.Type, tok.Lit = token.Logic, v
		return tok, nil
	}

	w, err := ClassifyWord(text)
	if err != nil {
		e := l.fail(err, &tok)
		return tok, e
	}
	if !w.IsKeyword {
		tok.Lit = w.Identifier
		return tok, nil
	}
	tok.Type, tok.Lit = token.Kw, w.Keyword
	if w.Keyword.IsReserved() {
		l.warn(config.WarnReservedKeyword, tok, "'%s' is reserved for future use", text)
	}
	return tok, nil
}
