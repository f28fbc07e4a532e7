package lexer

import (
	"sort"
	"unicode/utf8"

	"github.com/balsapop/balsapop/pkg/token"
)

type punctSpelling struct {
	text  []rune
	punct token.Punctuation
	alias bool
}

// punctTable holds every symbolic spelling, longest first, so the first
// prefix match is the maximal munch. Word spellings ("not", "_") are left
// to the word scanner.
var punctTable = buildPunctTable()

func buildPunctTable() []punctSpelling {
	var table []punctSpelling
	add := func(spellings map[string]token.Punctuation, alias bool) {
		for s, p := range spellings {
			if r, _ := utf8.DecodeRuneInString(s); r == '_' || (r >= 'a' && r <= 'z') {
				continue
			}
			table = append(table, punctSpelling{text: []rune(s), punct: p, alias: alias})
		}
	}
	add(token.PunctuationSpellings, false)
	add(token.PunctuationAliases, true)
	sort.Slice(table, func(i, j int) bool {
		if len(table[i].text) != len(table[j].text) {
			return len(table[i].text) > len(table[j].text)
		}
		return string(table[i].text) < string(table[j].text)
	})
	return table
}

// ParsePunctuation maps a complete lexeme to its operator. ASCII spellings
// and their Unicode glyphs yield the same variant.
func ParsePunctuation(text string) (token.Punctuation, error) {
	if p, ok := token.PunctuationSpellings[text]; ok {
		return p, nil
	}
	if p, ok := token.PunctuationAliases[text]; ok {
		return p, nil
	}
	return 0, unrecognized(text, "punctuation")
}

func ParseDelimiter(text string) (token.Delimiter, error) {
	if r, ok := singleRune(text); ok {
		if d, ok := token.Delimiters[r]; ok {
			return d, nil
		}
	}
	return 0, unrecognized(text, "delimiter")
}

// MatchPunctuation returns the longest operator spelled at the start of src
// and its length in runes. Unicode glyphs are only considered when aliases
// is set.
func MatchPunctuation(src []rune, aliases bool) (token.Punctuation, int, bool) {
	for _, sp := range punctTable {
		if sp.alias && !aliases {
			continue
		}
		if hasRunePrefix(src, sp.text) {
			return sp.punct, len(sp.text), true
		}
	}
	return 0, 0, false
}

func hasRunePrefix(src, prefix []rune) bool {
	if len(src) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if src[i] != r {
			return false
		}
	}
	return true
}
