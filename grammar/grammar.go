// Package grammar enumerates every parse of a clue under the cryptic clue
// grammar:
//
//	S          -> DOUBLE_SYN | ANAG | REVERSE | ENCLOSE | INSERT | HIDDEN
//	DOUBLE_SYN -> SYN EQU SYN | SYN SYN
//	ANAG       -> SYN EQU ANAG_SEN | SYN ANAG_SEN | ANAG_SEN EQU SYN | ANAG_SEN SYN
//	ANAG_SEN   -> ANAG_IDT ANAG_WORD | ANAG_WORD ANAG_IDT
//	REV_SEN    -> REV_IDT REV_WORD | REV_WORD REV_IDT
//	ENC_SEN    -> ENC_WORD ENC_IDT INS_WORD
//	INS_SEN    -> INS_WORD INS_IDT ENC_WORD
//	HID_SEN    -> HID_IDT HID_WORD | HID_WORD HID_IDT
//	SYN        -> WORD SYN | WORD
//	WORDABBR   -> WORD | ABBR
//
// REVERSE, ENCLOSE, INSERT and HIDDEN wrap their sentence like ANAG does.
// Word runs are right-recursive chains (ANAG_WORD -> WORD ANAG_WORD | WORD);
// REV_WORD, ENC_WORD and INS_WORD chain over WORDABBR. Indicators and links
// come from a vocabulary and may span several tokens.
package grammar

import (
	"strings"

	"github.com/domino14/cryptic/tree"
	"github.com/domino14/cryptic/vocab"
)

type Parser struct {
	vocab *vocab.Vocabulary
}

func NewParser(v *vocab.Vocabulary) *Parser {
	return &Parser{vocab: v}
}

type mechFunc func(toks []string) []*tree.Node

// Parse returns every parse tree of tokens. Each root is labeled S and has a
// single clue-type child.
func (p *Parser) Parse(tokens []string) []*tree.Node {
	if len(tokens) < 2 {
		return nil
	}
	var clues []*tree.Node
	clues = append(clues, p.doubleSyn(tokens)...)
	clues = append(clues, p.withSynonym(tree.Anag, tokens, p.anagSen)...)
	clues = append(clues, p.withSynonym(tree.Reverse, tokens, p.revSen)...)
	clues = append(clues, p.withSynonym(tree.Enclose, tokens, p.encSen)...)
	clues = append(clues, p.withSynonym(tree.Insert, tokens, p.insSen)...)
	clues = append(clues, p.withSynonym(tree.Hidden, tokens, p.hidSen)...)

	roots := make([]*tree.Node, len(clues))
	for i, c := range clues {
		roots[i] = tree.New(tree.Root, c)
	}
	return roots
}

// indicator returns a leaf for toks if they form an indicator of kind label.
func (p *Parser) indicator(label tree.Label, toks []string) *tree.Node {
	if len(toks) == 0 || len(toks) > p.vocab.MaxIndicatorWords() {
		return nil
	}
	phrase := strings.Join(toks, " ")
	if !p.vocab.IsIndicator(label, phrase) {
		return nil
	}
	return tree.Leaf(label, phrase)
}

// chain builds label -> WORD label | WORD over toks.
func chain(label tree.Label, toks []string) *tree.Node {
	n := tree.New(label, tree.Leaf(tree.Word, toks[len(toks)-1]))
	for i := len(toks) - 2; i >= 0; i-- {
		n = tree.New(label, tree.Leaf(tree.Word, toks[i]), n)
	}
	return n
}

// abbrChains builds every label -> WORDABBR label | WORDABBR chain over toks,
// reading each token either as itself or, when it has one, as an
// abbreviation.
func (p *Parser) abbrChains(label tree.Label, toks []string) []*tree.Node {
	heads := []*tree.Node{tree.New(tree.WordAbbr, tree.Leaf(tree.Word, toks[0]))}
	if p.vocab.IsAbbreviation(toks[0]) {
		heads = append(heads, tree.New(tree.WordAbbr, tree.Leaf(tree.Abbr, toks[0])))
	}
	if len(toks) == 1 {
		out := make([]*tree.Node, len(heads))
		for i, h := range heads {
			out[i] = tree.New(label, h)
		}
		return out
	}
	var out []*tree.Node
	for _, rest := range p.abbrChains(label, toks[1:]) {
		for _, h := range heads {
			out = append(out, tree.New(label, h, rest))
		}
	}
	return out
}

func (p *Parser) doubleSyn(toks []string) []*tree.Node {
	var out []*tree.Node
	n := len(toks)
	for a := 1; a < n; a++ {
		first := chain(tree.Syn, toks[:a])
		out = append(out, tree.New(tree.DoubleSyn, first, chain(tree.Syn, toks[a:])))
		for b := a + 1; b < n; b++ {
			if equ := p.indicator(tree.Equ, toks[a:b]); equ != nil {
				out = append(out, tree.New(tree.DoubleSyn, first, equ, chain(tree.Syn, toks[b:])))
			}
		}
	}
	return out
}

// withSynonym expands label -> SYN [EQU] MECH | MECH [EQU] SYN.
func (p *Parser) withSynonym(label tree.Label, toks []string, mech mechFunc) []*tree.Node {
	var out []*tree.Node
	n := len(toks)
	for a := 1; a < n; a++ {
		// Synonym first.
		syn := chain(tree.Syn, toks[:a])
		for _, m := range mech(toks[a:]) {
			out = append(out, tree.New(label, syn, m))
		}
		for b := a + 1; b < n; b++ {
			if equ := p.indicator(tree.Equ, toks[a:b]); equ != nil {
				for _, m := range mech(toks[b:]) {
					out = append(out, tree.New(label, syn, equ, m))
				}
			}
		}
		// Wordplay first.
		ms := mech(toks[:a])
		if len(ms) == 0 {
			continue
		}
		syn = chain(tree.Syn, toks[a:])
		for _, m := range ms {
			out = append(out, tree.New(label, m, syn))
		}
		for b := a + 1; b < n; b++ {
			if equ := p.indicator(tree.Equ, toks[a:b]); equ != nil {
				syn := chain(tree.Syn, toks[b:])
				for _, m := range ms {
					out = append(out, tree.New(label, m, equ, syn))
				}
			}
		}
	}
	return out
}

// indicated expands sen -> IDT WORDS | WORDS IDT.
func (p *Parser) indicated(sen, idt tree.Label, toks []string, words func([]string) []*tree.Node) []*tree.Node {
	var out []*tree.Node
	n := len(toks)
	for k := 1; k < n; k++ {
		if ind := p.indicator(idt, toks[:k]); ind != nil {
			for _, w := range words(toks[k:]) {
				out = append(out, tree.New(sen, ind, w))
			}
		}
		if ind := p.indicator(idt, toks[n-k:]); ind != nil {
			for _, w := range words(toks[:n-k]) {
				out = append(out, tree.New(sen, w, ind))
			}
		}
	}
	return out
}

func single(label tree.Label) func([]string) []*tree.Node {
	return func(toks []string) []*tree.Node {
		return []*tree.Node{chain(label, toks)}
	}
}

func (p *Parser) anagSen(toks []string) []*tree.Node {
	return p.indicated(tree.AnagSen, tree.AnagIdt, toks, single(tree.AnagWord))
}

func (p *Parser) hidSen(toks []string) []*tree.Node {
	return p.indicated(tree.HidSen, tree.HidIdt, toks, single(tree.HidWord))
}

func (p *Parser) revSen(toks []string) []*tree.Node {
	return p.indicated(tree.RevSen, tree.RevIdt, toks, func(t []string) []*tree.Node {
		return p.abbrChains(tree.RevWord, t)
	})
}

// spliced expands sen -> OUTER IDT INNER, where outer and inner are the
// labels of the first and last operands.
func (p *Parser) spliced(sen, idt, first, last tree.Label, toks []string) []*tree.Node {
	var out []*tree.Node
	n := len(toks)
	for a := 1; a < n-1; a++ {
		for b := a + 1; b < n; b++ {
			ind := p.indicator(idt, toks[a:b])
			if ind == nil {
				continue
			}
			for _, f := range p.abbrChains(first, toks[:a]) {
				for _, l := range p.abbrChains(last, toks[b:]) {
					out = append(out, tree.New(sen, f, ind, l))
				}
			}
		}
	}
	return out
}

func (p *Parser) encSen(toks []string) []*tree.Node {
	return p.spliced(tree.EncSen, tree.EncIdt, tree.EncWord, tree.InsWord, toks)
}

func (p *Parser) insSen(toks []string) []*tree.Node {
	return p.spliced(tree.InsSen, tree.InsIdt, tree.InsWord, tree.EncWord, toks)
}
