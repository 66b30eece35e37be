package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// secondOrderWeight scales the neighbourhood overlap of two words that are
// not directly related.
const secondOrderWeight = 0.5

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "to": {}, "in": {}, "on": {},
	"at": {}, "by": {}, "for": {}, "with": {}, "and": {}, "or": {}, "is": {},
	"it": {}, "its": {}, "be": {}, "as": {}, "from": {}, "that": {}, "this": {},
	"i": {}, "my": {}, "one": {}, "s": {}, "are": {}, "was": {}, "his": {}, "her": {},
}

// Thesaurus is an Oracle over a weighted, symmetric graph of related words.
// A candidate scores the weight of its direct link to a context word, or, if
// there is none, a fraction of how much their neighbourhoods overlap.
// Build it with Add before sharing it between goroutines.
type Thesaurus struct {
	related map[string]map[string]float64
	words   []string
}

func NewThesaurus() *Thesaurus {
	return &Thesaurus{related: make(map[string]map[string]float64)}
}

func (t *Thesaurus) addHeadword(w string) map[string]float64 {
	m, ok := t.related[w]
	if !ok {
		m = make(map[string]float64)
		t.related[w] = m
		idx := sort.SearchStrings(t.words, w)
		t.words = append(t.words, "")
		copy(t.words[idx+1:], t.words[idx:])
		t.words[idx] = w
	}
	return m
}

// Add links a and b with the given weight. Links are symmetric; adding the
// same pair twice keeps the larger weight.
func (t *Thesaurus) Add(a, b string, weight float64) {
	a, b = NormalizeWord(a), NormalizeWord(b)
	if a == "" || b == "" || a == b || weight <= 0 {
		return
	}
	ma, mb := t.addHeadword(a), t.addHeadword(b)
	if weight > ma[b] {
		ma[b] = weight
		mb[a] = weight
	}
}

// Len is the number of headwords.
func (t *Thesaurus) Len() int {
	return len(t.words)
}

// Edge is one undirected link.
type Edge struct {
	A, B   string
	Weight float64
}

// Edges returns every link once, with A < B, sorted.
func (t *Thesaurus) Edges() []Edge {
	var edges []Edge
	for _, a := range t.words {
		for b, w := range t.related[a] {
			if a < b {
				edges = append(edges, Edge{a, b, w})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

func contentWords(phrase string) []string {
	words := strings.Fields(NormalizeWord(phrase))
	content := lo.Filter(words, func(w string, _ int) bool {
		_, stop := stopWords[w]
		return !stop
	})
	if len(content) == 0 {
		return words
	}
	return content
}

func (t *Thesaurus) similarity(a, b string) float64 {
	if a == b {
		return 0
	}
	na, nb := t.related[a], t.related[b]
	if w, ok := na[b]; ok {
		return w
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}
	if len(na) > len(nb) {
		na, nb = nb, na
	}
	shared := 0
	for w := range na {
		if _, ok := nb[w]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	union := len(na) + len(nb) - shared
	return secondOrderWeight * float64(shared) / float64(union)
}

// keys are the headwords a context phrase is looked up by: the whole phrase
// (for multi-word entries) and each content word.
func keys(contextPhrase string) []string {
	whole := NormalizeWord(contextPhrase)
	return lo.Uniq(append([]string{whole}, contentWords(contextPhrase)...))
}

func (t *Thesaurus) score(keys []string, candidate string) float64 {
	best := 0.0
	for _, k := range keys {
		if s := t.similarity(k, candidate); s > best {
			best = s
		}
	}
	return best
}

func (t *Thesaurus) Score(ctx context.Context, contextPhrase, candidate string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return t.score(keys(contextPhrase), NormalizeWord(candidate)), nil
}

func (t *Thesaurus) Rank(ctx context.Context, contextPhrase string, length int) ([]WordScore, error) {
	ks := keys(contextPhrase)
	var ranked []WordScore
	for i, w := range t.words {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if length > 0 && len([]rune(w)) != length {
			continue
		}
		if s := t.score(ks, w); s > 0 {
			ranked = append(ranked, WordScore{Word: w, Score: s})
		}
	}
	return sortRanked(ranked), nil
}

// ReadThesaurus parses the text form: one headword per line followed by a
// colon and a comma-separated list of related words, each optionally
// weighted with "=w". Blank lines and lines starting with # are skipped.
//
//	boat: ship, vessel, craft=0.6
func ReadThesaurus(r io.Reader) (*Thesaurus, error) {
	t := NewThesaurus()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		head, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("thesaurus line %d: missing colon", lineNo)
		}
		for _, item := range strings.Split(rest, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			weight := 1.0
			if word, ws, ok := strings.Cut(item, "="); ok {
				w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
				if err != nil {
					return nil, fmt.Errorf("thesaurus line %d: bad weight %q", lineNo, ws)
				}
				item, weight = word, w
			}
			t.Add(head, item, weight)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadThesaurusFile reads a thesaurus in text form from path.
func LoadThesaurusFile(path string) (*Thesaurus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadThesaurus(f)
}
