// Package xid classifies code points by the Unicode XID_Start and
// XID_Continue properties (UAX #31).
//
// The tables are derived once from the Unicode Character Database shipped
// with the Go runtime:
//
//	ID_Start    = L + Nl + Other_ID_Start - Pattern_Syntax - Pattern_White_Space
//	ID_Continue = ID_Start + Mn + Mc + Nd + Pc + Other_ID_Continue
//	              - Pattern_Syntax - Pattern_White_Space
//
// and the XID variants drop the code points that are not closed under NFKC.
// Lookups are binary searches over sorted, disjoint, inclusive ranges.
package xid

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Code points in ID_Start but not XID_Start.
var startExclusions = []rune{
	0x037A, 0x0E33, 0x0EB3, 0x309B, 0x309C,
	0xFC5E, 0xFC5F, 0xFC60, 0xFC61, 0xFC62, 0xFC63,
	0xFDFA, 0xFDFB,
	0xFE70, 0xFE72, 0xFE74, 0xFE76, 0xFE78, 0xFE7A, 0xFE7C, 0xFE7E,
	0xFF9E, 0xFF9F,
}

// Code points in ID_Continue but not XID_Continue.
var continueExclusions = []rune{
	0x037A, 0x309B, 0x309C,
	0xFC5E, 0xFC5F, 0xFC60, 0xFC61, 0xFC62, 0xFC63,
	0xFDFA, 0xFDFB,
	0xFE70, 0xFE72, 0xFE74, 0xFE76, 0xFE78, 0xFE7A, 0xFE7C, 0xFE7E,
}

var (
	buildOnce     sync.Once
	startTable    *unicode.RangeTable
	continueTable *unicode.RangeTable
)

func excluded(set []rune) func(rune) bool {
	m := make(map[rune]struct{}, len(set))
	for _, r := range set {
		m[r] = struct{}{}
	}
	return func(r rune) bool {
		_, ok := m[r]
		return ok
	}
}

func isPattern(r rune) bool {
	return unicode.Is(unicode.Pattern_Syntax, r) || unicode.Is(unicode.Pattern_White_Space, r)
}

func collect(dst []rune, skip func(rune) bool, tables ...*unicode.RangeTable) []rune {
	for _, rt := range tables {
		rangetable.Visit(rt, func(r rune) {
			if !isPattern(r) && !skip(r) {
				dst = append(dst, r)
			}
		})
	}
	return dst
}

func build() {
	skipStart := excluded(startExclusions)
	skipContinue := excluded(continueExclusions)

	idStart := []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Other_ID_Start}
	starts := collect(nil, skipStart, idStart...)
	startTable = rangetable.New(starts...)

	leading := collect(nil, skipContinue, idStart...)
	trailing := collect(nil, skipContinue,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
	continueTable = rangetable.Merge(rangetable.New(leading...), rangetable.New(trailing...))
}

// Tables returns the XID_Start and XID_Continue tables. They must not be
// modified.
func Tables() (start, cont *unicode.RangeTable) {
	buildOnce.Do(build)
	return startTable, continueTable
}

func IsStart(r rune) bool {
	if r < 0x80 {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
	}
	start, _ := Tables()
	return unicode.Is(start, r)
}

func IsContinue(r rune) bool {
	if r < 0x80 {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_'
	}
	_, cont := Tables()
	return unicode.Is(cont, r)
}

// IsIdentifierStart accepts XID_Start code points and '_'.
func IsIdentifierStart(r rune) bool { return r == '_' || IsStart(r) }

// IsIdentifier reports whether s is an identifier: an XID_Start code point
// or '_' followed by XID_Continue code points. A lone "_" is not an
// identifier.
func IsIdentifier(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !IsIdentifierStart(r) {
				return false
			}
			continue
		}
		if !IsContinue(r) {
			return false
		}
	}
	return true
}
