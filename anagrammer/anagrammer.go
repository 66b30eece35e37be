// Package anagrammer generates rearrangements of a set of letters.
package anagrammer

import (
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// rack is a multiset of letters: letters[i] appears counts[i] times.
type rack struct {
	letters []rune
	counts  []int
}

func newRack(word string) *rack {
	tally := map[rune]int{}
	for _, r := range word {
		tally[r]++
	}
	rk := &rack{}
	for r := range tally {
		rk.letters = append(rk.letters, r)
	}
	sort.Slice(rk.letters, func(i, j int) bool { return rk.letters[i] < rk.letters[j] })
	rk.counts = make([]int, len(rk.letters))
	for i, r := range rk.letters {
		rk.counts[i] = tally[r]
	}
	return rk
}

// Count returns the number of distinct arrangements of the letters in word,
// i.e. the multinomial n! / (c1! c2! ... ck!).
func Count(word string) int {
	rk := newRack(word)
	remaining := 0
	for _, c := range rk.counts {
		remaining += c
	}
	total := 1
	for _, c := range rk.counts {
		total *= combin.Binomial(remaining, c)
		remaining -= c
	}
	return total
}

// Permutations returns every distinct arrangement of the letters in word, in
// lexicographic order. Repeated letters never produce duplicate answers,
// since each step draws from the rack by letter rather than by position.
func Permutations(word string) []string {
	n := len([]rune(word))
	if n == 0 {
		return nil
	}
	rk := newRack(word)
	answers := make([]string, 0, Count(word))
	answerChan := make(chan string, 256)

	go func() {
		anagram(rk, make([]rune, 0, n), n, answerChan)
		close(answerChan)
	}()

	for answer := range answerChan {
		answers = append(answers, answer)
	}
	return answers
}

func anagram(rk *rack, answerSoFar []rune, n int, answers chan string) {
	if len(answerSoFar) == n {
		answers <- string(answerSoFar)
		return
	}
	for idx, val := range rk.counts {
		if val == 0 {
			continue
		}
		rk.counts[idx]--
		anagram(rk, append(answerSoFar, rk.letters[idx]), n, answers)
		rk.counts[idx]++
	}
}
