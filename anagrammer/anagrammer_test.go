package anagrammer

import (
	"testing"

	"github.com/matryer/is"
)

type testpair struct {
	letters string
	num     int
}

var countTests = []testpair{
	{"owl", 6},
	{"boat", 24},
	{"aab", 3},
	{"aaaa", 1},
	{"letter", 180},
	{"aehilort", 40320},
	{"", 1},
}

func wordlistToSet(wl []string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range wl {
		m[w] = struct{}{}
	}
	return m
}

func TestPermutationsOwl(t *testing.T) {
	is := is.New(t)
	answers := Permutations("owl")
	is.Equal(answers, []string{"low", "lwo", "olw", "owl", "wlo", "wol"})
}

func TestPermutationsAreDistinct(t *testing.T) {
	is := is.New(t)
	for _, pair := range countTests {
		if pair.letters == "" {
			continue
		}
		answers := Permutations(pair.letters)
		is.Equal(len(answers), pair.num)
		is.Equal(len(wordlistToSet(answers)), pair.num)
	}
}

func TestPermutationsEmpty(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Permutations("")), 0)
}

func TestCount(t *testing.T) {
	is := is.New(t)
	for _, pair := range countTests {
		is.Equal(Count(pair.letters), pair.num)
	}
}
