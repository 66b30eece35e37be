package tree

import "errors"

// ClueType is the wordplay mechanism of a parse.
type ClueType int

const (
	DoubleSynonym ClueType = iota
	Anagram
	Reversal
	Enclosure
	Insertion
	HiddenWord

	NumClueTypes int = iota
)

var (
	ErrNoClueType = errors.New("parse tree has no clue-type node")

	clueTypeLabels = [NumClueTypes]Label{
		DoubleSynonym: DoubleSyn,
		Anagram:       Anag,
		Reversal:      Reverse,
		Enclosure:     Enclose,
		Insertion:     Insert,
		HiddenWord:    Hidden,
	}
)

// AllClueTypes lists every clue type in declaration order.
func AllClueTypes() []ClueType {
	out := make([]ClueType, NumClueTypes)
	for i := range out {
		out[i] = ClueType(i)
	}
	return out
}

func (c ClueType) Label() Label {
	if c < 0 || int(c) >= NumClueTypes {
		return ""
	}
	return clueTypeLabels[c]
}

func (c ClueType) String() string {
	return string(c.Label())
}

// ClueTypeOf maps a clue-type tag to its ClueType.
func ClueTypeOf(l Label) (ClueType, bool) {
	for i, cl := range clueTypeLabels {
		if cl == l {
			return ClueType(i), true
		}
	}
	return 0, false
}

// ClueNode returns the single clue-type child of a root node along with its
// type.
func ClueNode(root *Node) (*Node, ClueType, error) {
	if root == nil || len(root.Children) != 1 {
		return nil, 0, ErrNoClueType
	}
	child := root.Children[0]
	ct, ok := ClueTypeOf(child.Label)
	if !ok {
		return nil, 0, ErrNoClueType
	}
	return child, ct, nil
}
