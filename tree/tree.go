// Package tree holds the labeled parse trees produced for a clue. Internal
// nodes carry a grammar label; leaves carry the literal clue token.
package tree

import (
	"strings"
)

type Label string

const (
	Root Label = "S"

	DoubleSyn Label = "DOUBLE_SYN"
	Anag      Label = "ANAG"
	Reverse   Label = "REVERSE"
	Enclose   Label = "ENCLOSE"
	Insert    Label = "INSERT"
	Hidden    Label = "HIDDEN"

	Syn      Label = "SYN"
	Equ      Label = "EQU"
	Word     Label = "WORD"
	Abbr     Label = "ABBR"
	WordAbbr Label = "WORDABBR"

	AnagSen  Label = "ANAG_SEN"
	AnagIdt  Label = "ANAG_IDT"
	AnagWord Label = "ANAG_WORD"
	RevSen   Label = "REV_SEN"
	RevIdt   Label = "REV_IDT"
	RevWord  Label = "REV_WORD"
	EncSen   Label = "ENC_SEN"
	EncIdt   Label = "ENC_IDT"
	EncWord  Label = "ENC_WORD"
	InsSen   Label = "INS_SEN"
	InsIdt   Label = "INS_IDT"
	InsWord  Label = "INS_WORD"
	HidSen   Label = "HID_SEN"
	HidIdt   Label = "HID_IDT"
	HidWord  Label = "HID_WORD"
)

// Node is a parse tree node. A node without children is a leaf and Word holds
// its token.
type Node struct {
	Label    Label
	Word     string
	Children []*Node
}

// Leaf makes a terminal node.
func Leaf(label Label, word string) *Node {
	return &Node{Label: label, Word: word}
}

// New makes an internal node.
func New(label Label, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the tokens under n, depth first, left to right.
func (n *Node) Leaves() []string {
	var out []string
	var walk func(*Node)
	walk = func(m *Node) {
		if m.IsLeaf() {
			if m.Word != "" {
				out = append(out, m.Word)
			}
			return
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Text joins the leaves of n with sep.
func (n *Node) Text(sep string) string {
	return strings.Join(n.Leaves(), sep)
}

// Sentence is the space-joined text of n, used as oracle context.
func (n *Node) Sentence() string {
	return n.Text(" ")
}

// Letters is the text of n with no separators, the raw material for wordplay.
func (n *Node) Letters() string {
	return n.Text("")
}

// Child returns the first direct child with the given label, or nil.
func (n *Node) Child(label Label) *Node {
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// Parts splits a clue-type node into its two meaningful parts, skipping an
// optional EQU link in the middle. For every clue type but DOUBLE_SYN, syn is
// the synonym part and other the wordplay part; for DOUBLE_SYN they are the
// first and second synonyms.
func (n *Node) Parts() (other, syn *Node) {
	if len(n.Children) < 2 {
		return nil, nil
	}
	first, second := n.Children[0], n.Children[1]
	if second.Label == Equ && len(n.Children) > 2 {
		second = n.Children[2]
	}
	if n.Label == DoubleSyn {
		return first, second
	}
	if first.Label == Syn {
		return second, first
	}
	return first, second
}

// Copy returns a deep copy of n.
func (n *Node) Copy() *Node {
	c := &Node{Label: n.Label, Word: n.Word}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Copy()
		}
	}
	return c
}

// String renders n in bracketed form, e.g. (S (ANAG (SYN (WORD sailor)) ...)).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	sb.WriteString("(")
	sb.WriteString(string(n.Label))
	if n.IsLeaf() {
		sb.WriteString(" ")
		sb.WriteString(n.Word)
	}
	for _, c := range n.Children {
		sb.WriteString(" ")
		c.write(sb)
	}
	sb.WriteString(")")
}
