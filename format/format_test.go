package format

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestNewRejectsBadPatterns(t *testing.T) {
	is := is.New(t)
	type tc struct {
		lengths []int
		pattern string
	}
	cases := []tc{
		{[]int{3, 4}, "___"},
		{[]int{3, 4}, "___ ___"},
		{[]int{3}, "a1_"},
		{[]int{3}, "a-_"},
		{[]int{}, ""},
		{[]int{0}, ""},
		{[]int{3, 4}, "___  ____"},
	}
	for _, c := range cases {
		f, err := New(c.lengths, c.pattern)
		is.True(f == nil)
		var fe *FormatError
		is.True(errors.As(err, &fe))
	}
}

func TestEmptyPatternAcceptsAnyShape(t *testing.T) {
	is := is.New(t)
	f, err := New([]int{3, 5}, "")
	is.NoErr(err)
	for _, w := range []string{"icecream", "ice cream", "zzzqqqqq", "abc defgh"} {
		is.True(f.Check(w))
	}
	is.True(!f.Check("icecreams"))
	is.True(!f.Check("icec ream"))
	is.True(!f.Check("ice"))
}

func TestKnownLetters(t *testing.T) {
	is := is.New(t)
	f, err := New([]int{3, 5}, "i_e __e_M")
	is.NoErr(err)
	is.True(f.Check("icecream"))
	is.True(f.Check("ICE CREAM"))
	is.True(!f.Check("icecrean"))
	is.True(!f.Check("acecream"))
	is.Equal(f.String(), "i_e __e_m")
}

func TestAddSpaces(t *testing.T) {
	is := is.New(t)
	f, err := New([]int{2, 3, 1}, "")
	is.NoErr(err)
	is.Equal(f.AddSpaces("abcdef"), "ab cde f")
	is.Equal(f.AddSpaces("abcde"), "abcde")
	is.Equal(f.AddSpaces("ab cde f"), "ab cde f")

	for _, w := range []string{"abcdef", "abc", "", "ab cde f", "xyzxyz"} {
		once := f.AddSpaces(w)
		is.Equal(f.AddSpaces(once), once)
	}

	single, err := New([]int{4}, "")
	is.NoErr(err)
	is.Equal(single.AddSpaces("boat"), "boat")
}

func TestTotalLength(t *testing.T) {
	is := is.New(t)
	f, err := New([]int{3, 5, 2}, "")
	is.NoErr(err)
	is.Equal(f.TotalLength(false), 10)
	is.Equal(f.TotalLength(true), 12)
	is.Equal(f.NumWords(), 3)
	is.Equal(f.Lengths(), []int{3, 5, 2})
}

func TestParseLengths(t *testing.T) {
	is := is.New(t)
	l, err := ParseLengths("5, 3,1")
	is.NoErr(err)
	is.Equal(l, []int{5, 3, 1})
	_, err = ParseLengths("5,x")
	is.True(err != nil)
}
