package tree

// MissingAbbreviationError is returned when a word tagged as an abbreviation
// site has no known abbreviation.
type MissingAbbreviationError struct {
	Word string
}

func (e *MissingAbbreviationError) Error() string {
	return "no abbreviation known for " + e.Word
}

// ResolveAbbreviations returns a copy of root in which every ABBR node has
// been replaced by a WORD node holding the abbreviation of its token. root is
// left untouched; subtrees without abbreviation sites are shared with it.
func ResolveAbbreviations(root *Node, abbrs map[string]string) (*Node, error) {
	out, _, err := resolve(root, abbrs)
	return out, err
}

func resolve(n *Node, abbrs map[string]string) (*Node, bool, error) {
	if n.Label == Abbr {
		a, ok := abbrs[n.Word]
		if !ok {
			return nil, false, &MissingAbbreviationError{Word: n.Word}
		}
		return Leaf(Word, a), true, nil
	}
	if n.IsLeaf() {
		return n, false, nil
	}
	var children []*Node
	for i, c := range n.Children {
		rc, changed, err := resolve(c, abbrs)
		if err != nil {
			return nil, false, err
		}
		if changed && children == nil {
			children = make([]*Node, len(n.Children))
			copy(children, n.Children[:i])
		}
		if children != nil {
			children[i] = rc
		}
	}
	if children == nil {
		return n, false, nil
	}
	return &Node{Label: n.Label, Word: n.Word, Children: children}, true, nil
}
