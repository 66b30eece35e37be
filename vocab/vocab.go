// Package vocab loads the word lists that drive clue parsing: abbreviations
// and the indicator words that signal each kind of wordplay.
package vocab

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/cryptic/cache"
	"github.com/domino14/cryptic/config"
	"github.com/domino14/cryptic/tree"
)

const (
	AbbreviationFile = "ABBR.txt"
	AbbreviationSep  = "---"
)

//go:embed default.yaml
var defaultVocab []byte

// IndicatorLabels are the labels that match a fixed set of words.
var IndicatorLabels = []tree.Label{
	tree.AnagIdt, tree.RevIdt, tree.EncIdt, tree.InsIdt, tree.HidIdt, tree.Equ,
}

var ErrUnknownIndicator = errors.New("unknown indicator kind")

// Vocabulary is read-only once loaded.
type Vocabulary struct {
	Abbreviations map[string]string
	indicators    map[tree.Label]map[string]struct{}
	maxWords      int
}

type yamlVocab struct {
	Abbreviations map[string]string   `yaml:"abbreviations"`
	Indicators    map[string][]string `yaml:"indicators"`
}

func newVocabulary() *Vocabulary {
	v := &Vocabulary{
		Abbreviations: map[string]string{},
		indicators:    map[tree.Label]map[string]struct{}{},
		maxWords:      1,
	}
	for _, l := range IndicatorLabels {
		v.indicators[l] = map[string]struct{}{}
	}
	return v
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

func (v *Vocabulary) addIndicator(label tree.Label, phrase string) error {
	set, ok := v.indicators[label]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIndicator, label)
	}
	phrase = normalize(phrase)
	if phrase == "" {
		return nil
	}
	set[phrase] = struct{}{}
	if n := len(strings.Fields(phrase)); n > v.maxWords {
		v.maxWords = n
	}
	return nil
}

// IsIndicator reports whether phrase (space-separated tokens) is an indicator
// of the given kind.
func (v *Vocabulary) IsIndicator(label tree.Label, phrase string) bool {
	_, ok := v.indicators[label][phrase]
	return ok
}

// IsAbbreviation reports whether word has a known abbreviation.
func (v *Vocabulary) IsAbbreviation(word string) bool {
	_, ok := v.Abbreviations[word]
	return ok
}

// MaxIndicatorWords is the length in tokens of the longest indicator.
func (v *Vocabulary) MaxIndicatorWords() int {
	return v.maxWords
}

// Indicators returns the number of indicators of each kind.
func (v *Vocabulary) Indicators(label tree.Label) int {
	return len(v.indicators[label])
}

// ParseYAML reads a vocabulary in yaml form.
func ParseYAML(data []byte) (*Vocabulary, error) {
	var yv yamlVocab
	if err := yaml.Unmarshal(data, &yv); err != nil {
		return nil, err
	}
	v := newVocabulary()
	for w, a := range yv.Abbreviations {
		v.Abbreviations[normalize(w)] = strings.ToLower(strings.TrimSpace(a))
	}
	for kind, words := range yv.Indicators {
		for _, w := range words {
			if err := v.addIndicator(tree.Label(strings.ToUpper(kind)), w); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	v, err := ParseYAML(defaultVocab)
	if err != nil {
		panic("bad built-in vocabulary: " + err.Error())
	}
	return v
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// LoadDir reads a word-list directory: ABBR.txt with one "word---abbr" per
// line, and one file per indicator kind named after its label (ANAG_IDT.txt,
// REV_IDT.txt, ..., EQU.txt) with one phrase per line. Missing indicator files
// leave that kind empty.
func LoadDir(dir string) (*Vocabulary, error) {
	v := newVocabulary()

	f, err := os.Open(filepath.Join(dir, AbbreviationFile))
	if err != nil {
		return nil, err
	}
	lines, err := readLines(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		word, abbr, ok := strings.Cut(line, AbbreviationSep)
		if !ok {
			return nil, fmt.Errorf("%s line %d: missing %q separator", AbbreviationFile, i+1, AbbreviationSep)
		}
		v.Abbreviations[normalize(word)] = strings.ToLower(strings.TrimSpace(abbr))
	}

	for _, label := range IndicatorLabels {
		path := filepath.Join(dir, string(label)+".txt")
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", path).Msg("indicator-file-missing")
			continue
		} else if err != nil {
			return nil, err
		}
		lines, err := readLines(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if err := v.addIndicator(label, line); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// LoadPath loads a yaml file or a word-list directory.
func LoadPath(path string) (*Vocabulary, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return LoadDir(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// Evict forgets the vocabulary loaded for the current settings.
func Evict(cfg *config.Config) {
	cache.Evict("vocab:" + cfg.GetString(config.ConfigVocabPath))
}

// Load returns the configured vocabulary, loading it at most once per process.
func Load(cfg *config.Config) (*Vocabulary, error) {
	path := cfg.GetString(config.ConfigVocabPath)
	obj, err := cache.Load(cfg, "vocab:"+path, func(cfg *config.Config, key string) (any, error) {
		if path == "" {
			return Default(), nil
		}
		return LoadPath(path)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*Vocabulary), nil
}
