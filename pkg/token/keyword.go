package token

import "fmt"

type KeywordKind int

const (
	As KeywordKind = iota
	Break
	Const
	Continue
	Else
	Enum
	FalseKw
	Fn
	For
	If
	Impl
	In
	Loop
	Match
	MissingKw
	Mod
	Pub
	Return
	SelfValue
	SelfType
	Static
	Struct
	Super
	Trait
	TrueKw
	TypeKw
	Use
	Where
	While
	Reserved
)

var keywordNames = [...]string{
	As: "As", Break: "Break", Const: "Const", Continue: "Continue", Else: "Else",
	Enum: "Enum", FalseKw: "False", Fn: "Fn", For: "For", If: "If", Impl: "Impl",
	In: "In", Loop: "Loop", Match: "Match", MissingKw: "Missing", Mod: "Mod",
	Pub: "Pub", Return: "Return", SelfValue: "SelfValue", SelfType: "SelfType",
	Static: "Static", Struct: "Struct", Super: "Super", Trait: "Trait",
	TrueKw: "True", TypeKw: "Type", Use: "Use", Where: "Where", While: "While",
	Reserved: "Reserved",
}

func (k KeywordKind) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("KeywordKind(%d)", int(k))
}

type ReservedKeyword int

const (
	Abstract ReservedKeyword = iota
	Async
	Await
	Crate
	Do
	Dyn
	Export
	Extern
	Final
	Import
	Let
	Macro
	Move
	Mut
	Override
	Priv
	Proc
	Ref
	Typeof
	Unsafe
	Unsized
	Virtual
	Yield
)

// ReservedKeywords maps words kept back for future use.
var ReservedKeywords = map[string]ReservedKeyword{
	"abstract": Abstract, "async": Async, "await": Await, "crate": Crate,
	"do": Do, "dyn": Dyn, "export": Export, "extern": Extern, "final": Final,
	"import": Import, "let": Let, "macro": Macro, "move": Move, "mut": Mut,
	"override": Override, "priv": Priv, "proc": Proc, "ref": Ref,
	"typeof": Typeof, "unsafe": Unsafe, "unsized": Unsized,
	"virtual": Virtual, "yield": Yield,
}

// Reverse mapping from ReservedKeyword to its spelling
var reservedStrings = make(map[ReservedKeyword]string)

func (r ReservedKeyword) String() string {
	if s, ok := reservedStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("ReservedKeyword(%d)", int(r))
}

// Keyword is an active keyword, or Reserved together with the reserved word.
type Keyword struct {
	Kind     KeywordKind
	Reserved ReservedKeyword
}

func (k Keyword) IsReserved() bool { return k.Kind == Reserved }

func (k Keyword) String() string {
	if k.Kind == Reserved {
		return fmt.Sprintf("Reserved(%s)", k.Reserved)
	}
	return k.Kind.String()
}

// KeywordMap maps active keyword spellings. Case variants are listed
// explicitly; there is no global case folding.
var KeywordMap = map[string]KeywordKind{
	"as": As, "break": Break, "const": Const, "continue": Continue,
	"else": Else, "enum": Enum, "false": FalseKw, "False": FalseKw,
	"fn": Fn, "for": For, "if": If, "impl": Impl, "in": In, "loop": Loop,
	"match": Match, "missing": MissingKw, "Missing": MissingKw, "mod": Mod,
	"pub": Pub, "return": Return, "self": SelfValue, "Self": SelfType,
	"static": Static, "struct": Struct, "super": Super, "trait": Trait,
	"true": TrueKw, "True": TrueKw, "type": TypeKw, "use": Use,
	"where": Where, "while": While,
}

func init() {
	for str, r := range ReservedKeywords {
		reservedStrings[r] = str
	}
}
