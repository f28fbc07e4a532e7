package token

import (
	"math/big"
	"testing"
)

func TestIntegerKindRange(t *testing.T) {
	tests := []struct {
		kind     IntegerKind
		min, max string
	}{
		{U8, "0", "255"},
		{I8, "-128", "127"},
		{U16, "0", "65535"},
		{I32, "-2147483648", "2147483647"},
		{U64, "0", "18446744073709551615"},
		{USize, "0", "18446744073709551615"},
		{ISize, "-9223372036854775808", "9223372036854775807"},
		{I128, "-170141183460469231731687303715884105728", "170141183460469231731687303715884105727"},
	}
	for _, tt := range tests {
		if got := tt.kind.Min().String(); got != tt.min {
			t.Errorf("%s.Min() = %s, want %s", tt.kind, got, tt.min)
		}
		if got := tt.kind.Max().String(); got != tt.max {
			t.Errorf("%s.Max() = %s, want %s", tt.kind, got, tt.max)
		}
	}
}

func TestIntegerKindFits(t *testing.T) {
	if !U8.Fits(big.NewInt(255)) || U8.Fits(big.NewInt(256)) || U8.Fits(big.NewInt(-1)) {
		t.Error("U8.Fits wrong at its bounds")
	}
	if !I8.Fits(big.NewInt(-128)) || I8.Fits(big.NewInt(-129)) {
		t.Error("I8.Fits wrong at its lower bound")
	}
	m := U8.Max()
	m.SetInt64(0)
	if U8.Max().Int64() != 255 {
		t.Error("Max shares storage between calls")
	}
}

func TestIntegerIsImmutable(t *testing.T) {
	v := big.NewInt(7)
	i := MakeInteger(U8, v)
	v.SetInt64(9)
	i.Value().SetInt64(11)
	if i.Value().Int64() != 7 || i.String() != "7u8" {
		t.Errorf("Integer changed to %s", i)
	}
	if (Integer{}).String() != "0u8" {
		t.Errorf("zero Integer = %s", Integer{})
	}
	if !i.Equal(MakeInteger(U8, big.NewInt(7))) || i.Equal(MakeInteger(U16, big.NewInt(7))) {
		t.Error("Equal ignores kind or value")
	}
}

func TestMakeFloat(t *testing.T) {
	if f := MakeFloat(F32, 0.1); f.Value != float64(float32(0.1)) || f.Kind != F32 {
		t.Errorf("MakeFloat(F32, 0.1) = %v", f.Value)
	}
	if f := MakeFloat(F32, 1.5); f.String() != "1.5f32" {
		t.Errorf("MakeFloat(F32, 1.5) = %s", f)
	}
	if g := MakeFloat(F64, 0.1); g.Value != 0.1 || g.String() != "0.1f64" {
		t.Errorf("MakeFloat(F64, 0.1) = %v", g)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: EOF, Line: 3, Column: 1}, "3:1 EOF"},
		{Token{Type: Kw, Value: "fn", Lit: Keyword{Kind: Fn}, Line: 1, Column: 1}, `1:1 Keyword Fn "fn"`},
		{Token{Type: Punct, Value: "→", Lit: RightArrow, Line: 2, Column: 5}, `2:5 Punctuation RightArrow "→"`},
		{Token{Type: Sym, Value: "³√", Lit: RootOf(3), Line: 1, Column: 7}, `1:7 Symbol Root{3} "³√"`},
		{Token{Type: Illegal, Value: "@", Line: 1, Column: 2}, `1:2 Illegal "@"`},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if Type(99).String() != "Type(99)" {
		t.Errorf("unknown type = %s", Type(99))
	}
}

func TestNames(t *testing.T) {
	if Async.String() != "async" || ReservedKeyword(99).String() != "ReservedKeyword(99)" {
		t.Error("reserved keyword names")
	}
	if (Keyword{Kind: Reserved, Reserved: Yield}).String() != "Reserved(yield)" {
		t.Error("reserved keyword String")
	}
	if len(AllPunctuation()) != 45 {
		t.Errorf("AllPunctuation has %d entries", len(AllPunctuation()))
	}
	for _, p := range AllPunctuation() {
		if p.String() == "" {
			t.Errorf("Punctuation(%d) has no name", int(p))
		}
	}
	if Missing.String() != "Missing" || NotANumber.String() != "NotANumber" {
		t.Error("literal names")
	}
}
