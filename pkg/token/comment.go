package token

import "fmt"

type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
	InnerLineDocComment
	InnerBlockDocComment
	OuterLineDocComment
	OuterBlockDocComment
)

func (k CommentKind) String() string {
	switch k {
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case InnerLineDocComment:
		return "InnerLineDocComment"
	case InnerBlockDocComment:
		return "InnerBlockDocComment"
	case OuterLineDocComment:
		return "OuterLineDocComment"
	case OuterBlockDocComment:
		return "OuterBlockDocComment"
	}
	return fmt.Sprintf("CommentKind(%d)", int(k))
}

// Comment keeps the full comment text, markers included.
type Comment struct {
	Kind CommentKind
	Text string
}

func (c Comment) IsDoc() bool { return c.Kind >= InnerLineDocComment }

func (c Comment) IsBlock() bool {
	return c.Kind == BlockComment || c.Kind == InnerBlockDocComment || c.Kind == OuterBlockDocComment
}

func (c Comment) String() string { return c.Kind.String() }
