package token

import (
	"fmt"
	"math/big"
)

// NumericLiteral is implemented by Integer, Float and MathematicalConstant.
type NumericLiteral interface {
	fmt.Stringer
	numericLiteral()
}

type IntegerKind int

const (
	U8 IntegerKind = iota
	U16
	U32
	U64
	U128
	USize
	I8
	I16
	I32
	I64
	I128
	ISize
)

var integerKindNames = [...]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128", USize: "usize",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", ISize: "isize",
}

// IntegerSuffixes maps a literal suffix to its integer kind.
var IntegerSuffixes = map[string]IntegerKind{}

func init() {
	for k, name := range integerKindNames {
		IntegerSuffixes[name] = IntegerKind(k)
	}
}

func (k IntegerKind) String() string {
	if k >= 0 && int(k) < len(integerKindNames) {
		return integerKindNames[k]
	}
	return fmt.Sprintf("IntegerKind(%d)", int(k))
}

func (k IntegerKind) Signed() bool { return k >= I8 }

// Bits reports the storage width. usize and isize are 64 bits wide.
func (k IntegerKind) Bits() int {
	switch k {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U128, I128:
		return 128
	default:
		return 64
	}
}

// Min returns a fresh copy of the smallest value of k.
func (k IntegerKind) Min() *big.Int {
	if !k.Signed() {
		return new(big.Int)
	}
	m := new(big.Int).Lsh(big.NewInt(1), uint(k.Bits()-1))
	return m.Neg(m)
}

// Max returns a fresh copy of the largest value of k.
func (k IntegerKind) Max() *big.Int {
	bits := k.Bits()
	if k.Signed() {
		bits--
	}
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return m.Sub(m, big.NewInt(1))
}

// Fits reports whether v lies inside the range of k.
func (k IntegerKind) Fits(v *big.Int) bool {
	return v.Cmp(k.Min()) >= 0 && v.Cmp(k.Max()) <= 0
}

// Integer is a width-tagged integer value. The zero Integer is u8 0.
type Integer struct {
	Kind  IntegerKind
	value *big.Int
}

// MakeInteger copies v into a new Integer of kind k. The caller guarantees
// that k.Fits(v).
func MakeInteger(k IntegerKind, v *big.Int) Integer {
	return Integer{Kind: k, value: new(big.Int).Set(v)}
}

// Value returns a copy of the integer's magnitude.
func (i Integer) Value() *big.Int {
	if i.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.value)
}

func (i Integer) Equal(o Integer) bool {
	return i.Kind == o.Kind && i.Value().Cmp(o.Value()) == 0
}

func (i Integer) String() string { return i.Value().String() + i.Kind.String() }

func (Integer) numericLiteral() {}

type FloatKind int

const (
	F32 FloatKind = iota
	F64
)

func (k FloatKind) String() string {
	if k == F32 {
		return "f32"
	}
	return "f64"
}

// FloatSuffixes maps a literal suffix to its float kind.
var FloatSuffixes = map[string]FloatKind{"f32": F32, "f64": F64}

// Float is a precision-tagged IEEE-754 value. F32 values are stored rounded
// to single precision.
type Float struct {
	Kind  FloatKind
	Value float64
}

func MakeFloat(k FloatKind, v float64) Float {
	if k == F32 {
		v = float64(float32(v))
	}
	return Float{Kind: k, Value: v}
}

func (f Float) String() string { return fmt.Sprintf("%g%s", f.Value, f.Kind) }

func (Float) numericLiteral() {}

type Identifier struct {
	Name string
}

func (i Identifier) String() string { return i.Name }

// LogicLiteral is the tri-state truth value of the language.
type LogicLiteral int

const (
	True LogicLiteral = iota
	False
	Missing
)

// LogicLiterals maps every accepted spelling to its value.
var LogicLiterals = map[string]LogicLiteral{
	"true": True, "True": True,
	"false": False, "False": False,
	"missing": Missing, "Missing": Missing,
}

func (l LogicLiteral) String() string {
	switch l {
	case True:
		return "True"
	case False:
		return "False"
	case Missing:
		return "Missing"
	}
	return fmt.Sprintf("LogicLiteral(%d)", int(l))
}

// Bool returns the boolean value and false for Missing.
func (l LogicLiteral) Bool() (value, ok bool) {
	switch l {
	case True:
		return true, true
	case False:
		return false, true
	}
	return false, false
}
