package token

import (
	"fmt"
	"math"
)

type ConstantKind int

const (
	Pi ConstantKind = iota
	Euler
	EulerMascheroni
	Tau
	Catalan
	GoldenRatio
	Infinity
	NotANumber
)

var constantNames = [...]string{
	Pi:              "Pi",
	Euler:           "Euler",
	EulerMascheroni: "EulerMascheroni",
	Tau:             "Tau",
	Catalan:         "Catalan",
	GoldenRatio:     "GoldenRatio",
	Infinity:        "Infinity",
	NotANumber:      "NotANumber",
}

var constantValues = [...]float64{
	Pi:              math.Pi,
	Euler:           math.E,
	EulerMascheroni: 0.5772156649015329,
	Tau:             2 * math.Pi,
	Catalan:         0.91596559417721901505460351493238411077414937428167,
	GoldenRatio:     math.Phi,
	Infinity:        math.Inf(1),
}

// Constants maps every ASCII and Unicode spelling to its constant.
var Constants = map[string]ConstantKind{
	"pi": Pi, "π": Pi, "𝜋": Pi,
	"euler": Euler, "ℯ": Euler,
	"tau": Tau, "τ": Tau, "𝜏": Tau,
	"catalan": Catalan,
	"golden":  GoldenRatio, "φ": GoldenRatio, "𝜙": GoldenRatio,
	"eulermascheroni": EulerMascheroni, "eulergamma": EulerMascheroni, "γ": EulerMascheroni, "𝛾": EulerMascheroni,
	"Inf": Infinity, "∞": Infinity,
	"NaN": NotANumber,
}

func (k ConstantKind) String() string {
	if k >= 0 && int(k) < len(constantNames) {
		return constantNames[k]
	}
	return fmt.Sprintf("ConstantKind(%d)", int(k))
}

type MathematicalConstant struct {
	Kind ConstantKind
}

// Value returns the canonical value. NotANumber has none.
func (c MathematicalConstant) Value() (float64, bool) {
	if c.Kind == NotANumber || c.Kind < 0 || int(c.Kind) >= len(constantValues) {
		return 0, false
	}
	return constantValues[c.Kind], true
}

func (c MathematicalConstant) String() string { return c.Kind.String() }

func (MathematicalConstant) numericLiteral() {}

// SuperscriptDigits maps ⁰..⁹ to their values.
var SuperscriptDigits = map[rune]uint8{
	'⁰': 0, '¹': 1, '²': 2, '³': 3, '⁴': 4,
	'⁵': 5, '⁶': 6, '⁷': 7, '⁸': 8, '⁹': 9,
}

type SuperscriptDecimalDigit struct {
	Digit uint8
}

type SuperscriptPunctuation int

const (
	SuperPlus SuperscriptPunctuation = iota
	SuperMinus
	SuperLeftParen
	SuperRightParen
)

var SuperscriptPunctuations = map[rune]SuperscriptPunctuation{
	'⁺': SuperPlus, '⁻': SuperMinus, '⁽': SuperLeftParen, '⁾': SuperRightParen,
}

func (p SuperscriptPunctuation) String() string {
	switch p {
	case SuperPlus:
		return "Plus"
	case SuperMinus:
		return "Minus"
	case SuperLeftParen:
		return "LeftParen"
	case SuperRightParen:
		return "RightParen"
	}
	return fmt.Sprintf("SuperscriptPunctuation(%d)", int(p))
}

// SuperscriptIntegerLiteral is a signed integer written in superscript glyphs.
type SuperscriptIntegerLiteral struct {
	N int8
}

type SymbolKind int

const (
	Root SymbolKind = iota
	Power
	Division
	ProportionalTo
	Intersection
	Union
	Integral
	Therefore
	Because
	ApproximatelyEqual
	NotApproximatelyEqual
	IdenticalTo
	NotIdenticalTo
	SubsetOf
	SupersetOf
	SubsetOfOrEqualTo
	SupersetOfOrEqualTo
)

var symbolNames = [...]string{
	Root:                  "Root",
	Power:                 "Power",
	Division:              "Division",
	ProportionalTo:        "ProportionalTo",
	Intersection:          "Intersection",
	Union:                 "Union",
	Integral:              "Integral",
	Therefore:             "Therefore",
	Because:               "Because",
	ApproximatelyEqual:    "ApproximatelyEqual",
	NotApproximatelyEqual: "NotApproximatelyEqual",
	IdenticalTo:           "IdenticalTo",
	NotIdenticalTo:        "NotIdenticalTo",
	SubsetOf:              "SubsetOf",
	SupersetOf:            "SupersetOf",
	SubsetOfOrEqualTo:     "SubsetOfOrEqualTo",
	SupersetOfOrEqualTo:   "SupersetOfOrEqualTo",
}

// SymbolGlyphs holds the single-glyph symbols without an exponent.
var SymbolGlyphs = map[rune]SymbolKind{
	'÷': Division,
	'∝': ProportionalTo,
	'∩': Intersection,
	'∪': Union,
	'∫': Integral,
	'∴': Therefore,
	'∵': Because,
	'≈': ApproximatelyEqual,
	'≉': NotApproximatelyEqual,
	'≡': IdenticalTo,
	'≢': NotIdenticalTo,
	'⊂': SubsetOf,
	'⊃': SupersetOf,
	'⊆': SubsetOfOrEqualTo,
	'⊇': SupersetOfOrEqualTo,
}

func (k SymbolKind) String() string {
	if k >= 0 && int(k) < len(symbolNames) {
		return symbolNames[k]
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// MathematicalSymbol is a mathematical operator. Exponent is only
// meaningful for Root and Power.
type MathematicalSymbol struct {
	Kind     SymbolKind
	Exponent int8
}

func RootOf(n int8) MathematicalSymbol  { return MathematicalSymbol{Kind: Root, Exponent: n} }
func PowerOf(n int8) MathematicalSymbol { return MathematicalSymbol{Kind: Power, Exponent: n} }

func (s MathematicalSymbol) String() string {
	if s.Kind == Root || s.Kind == Power {
		return fmt.Sprintf("%s{%d}", s.Kind, s.Exponent)
	}
	return s.Kind.String()
}
