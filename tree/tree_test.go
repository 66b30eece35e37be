package tree

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func wordChain(label Label, words ...string) *Node {
	n := New(label, Leaf(Word, words[len(words)-1]))
	for i := len(words) - 2; i >= 0; i-- {
		n = New(label, Leaf(Word, words[i]), n)
	}
	return n
}

func reversalTree() *Node {
	// (S (REVERSE (SYN sweets) (REV_SEN (REV_WORD north (REV_WORD tide)) (REV_IDT back))))
	revWord := New(RevWord,
		New(WordAbbr, Leaf(Abbr, "north")),
		New(RevWord, New(WordAbbr, Leaf(Word, "tide"))))
	return New(Root, New(Reverse,
		wordChain(Syn, "sweets"),
		New(RevSen, revWord, Leaf(RevIdt, "back"))))
}

func TestTextAndLeaves(t *testing.T) {
	is := is.New(t)
	syn := wordChain(Syn, "big", "ship")
	is.Equal(syn.Leaves(), []string{"big", "ship"})
	is.Equal(syn.Sentence(), "big ship")
	is.Equal(syn.Letters(), "bigship")
}

func TestParts(t *testing.T) {
	is := is.New(t)
	mech := New(AnagSen, Leaf(AnagIdt, "jumbled"), wordChain(AnagWord, "boat"))
	syn := wordChain(Syn, "sailor")

	n := New(Anag, syn, mech)
	other, s := n.Parts()
	is.Equal(other, mech)
	is.Equal(s, syn)

	n = New(Anag, mech, Leaf(Equ, "for"), syn)
	other, s = n.Parts()
	is.Equal(other, mech)
	is.Equal(s, syn)

	a, b := wordChain(Syn, "ship"), wordChain(Syn, "send")
	other, s = New(DoubleSyn, a, Leaf(Equ, "is"), b).Parts()
	is.Equal(other, a)
	is.Equal(s, b)
}

func TestClueNode(t *testing.T) {
	is := is.New(t)
	root := reversalTree()
	n, ct, err := ClueNode(root)
	is.NoErr(err)
	is.Equal(ct, Reversal)
	is.Equal(n.Label, Reverse)

	_, _, err = ClueNode(New(Root, wordChain(Syn, "x")))
	is.Equal(err, ErrNoClueType)

	for _, c := range AllClueTypes() {
		back, ok := ClueTypeOf(c.Label())
		is.True(ok)
		is.Equal(back, c)
	}
}

func TestResolveAbbreviations(t *testing.T) {
	is := is.New(t)
	root := reversalTree()
	before := root.String()

	out, err := ResolveAbbreviations(root, map[string]string{"north": "n"})
	is.NoErr(err)
	is.Equal(root.String(), before) // input untouched

	n, _, err := ClueNode(out)
	is.NoErr(err)
	mech, _ := n.Parts()
	is.Equal(mech.Child(RevWord).Letters(), "ntide")
	is.Equal(mech.Child(RevWord).Children[0].Children[0].Label, Word)
}

func TestResolveMissingAbbreviation(t *testing.T) {
	is := is.New(t)
	_, err := ResolveAbbreviations(reversalTree(), map[string]string{"south": "s"})
	var me *MissingAbbreviationError
	is.True(errors.As(err, &me))
	is.Equal(me.Word, "north")
}

func TestResolveWithoutSitesSharesTree(t *testing.T) {
	is := is.New(t)
	root := New(Root, New(DoubleSyn, wordChain(Syn, "ship"), wordChain(Syn, "send")))
	out, err := ResolveAbbreviations(root, nil)
	is.NoErr(err)
	is.True(out == root)
}

func TestString(t *testing.T) {
	is := is.New(t)
	n := New(Syn, Leaf(Word, "big"))
	is.Equal(n.String(), "(SYN (WORD big))")
}
