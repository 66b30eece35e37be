package oracle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const sampleThesaurus = `
# test corpus
boat: ship, vessel, craft=0.6
ship: send=0.8, vessel
sailor: tar, salt, ab, seaman
seaman: tar, salt
ice cream: dessert, sundae
desserts: sweets, puddings
`

func loadSample(t *testing.T) *Thesaurus {
	th, err := ReadThesaurus(strings.NewReader(sampleThesaurus))
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func TestThesaurusDirect(t *testing.T) {
	is := is.New(t)
	th := loadSample(t)
	ctx := context.Background()

	s, err := th.Score(ctx, "boat", "ship")
	is.NoErr(err)
	is.Equal(s, 1.0)

	s, _ = th.Score(ctx, "ship", "boat")
	is.Equal(s, 1.0)

	s, _ = th.Score(ctx, "a boat", "craft")
	is.Equal(s, 0.6)

	s, _ = th.Score(ctx, "boat", "boat")
	is.Equal(s, 0.0)

	s, _ = th.Score(ctx, "boat", "zebra")
	is.Equal(s, 0.0)
}

func TestThesaurusMultiWord(t *testing.T) {
	is := is.New(t)
	th := loadSample(t)
	s, err := th.Score(context.Background(), "dessert", "ice_cream")
	is.NoErr(err)
	is.Equal(s, 1.0)
}

func TestThesaurusSecondOrder(t *testing.T) {
	is := is.New(t)
	th := loadSample(t)
	// sailor and seaman are linked directly; tar and salt share two
	// neighbours (sailor, seaman) out of two each.
	s, _ := th.Score(context.Background(), "tar", "salt")
	is.Equal(s, secondOrderWeight)
}

func TestThesaurusRank(t *testing.T) {
	is := is.New(t)
	th := loadSample(t)
	ctx := context.Background()

	ranked, err := th.Rank(ctx, "boat", 0)
	is.NoErr(err)
	is.True(len(ranked) >= 3)
	is.Equal(ranked[0], WordScore{Word: "ship", Score: 1})
	is.Equal(ranked[1], WordScore{Word: "vessel", Score: 1})
	for i := 1; i < len(ranked); i++ {
		is.True(ranked[i-1].Score >= ranked[i].Score)
	}

	ranked, err = th.Rank(ctx, "boat", 4)
	is.NoErr(err)
	for _, r := range ranked {
		is.Equal(len(r.Word), 4)
	}

	ranked, err = th.Rank(ctx, "dessert", 9)
	is.NoErr(err)
	is.Equal(ranked[0].Word, "ice cream")
}

func TestThesaurusRankLimit(t *testing.T) {
	is := is.New(t)
	th := NewThesaurus()
	for i := 0; i < RankLimit+50; i++ {
		th.Add("hub", fmt.Sprintf("spoke%04d", i), 1)
	}
	ranked, err := th.Rank(context.Background(), "hub", 0)
	is.NoErr(err)
	is.Equal(len(ranked), RankLimit)
}

func TestThesaurusCanceled(t *testing.T) {
	is := is.New(t)
	th := loadSample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := th.Score(ctx, "boat", "ship")
	is.Equal(err, context.Canceled)
	_, err = th.Rank(ctx, "boat", 0)
	is.Equal(err, context.Canceled)
}

func TestReadThesaurusErrors(t *testing.T) {
	is := is.New(t)
	_, err := ReadThesaurus(strings.NewReader("boat ship\n"))
	is.True(err != nil)
	_, err = ReadThesaurus(strings.NewReader("boat: ship=x\n"))
	is.True(err != nil)
}

func TestThesaurusDB(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	th := loadSample(t)
	path := filepath.Join(t.TempDir(), "thesaurus.db")

	is.NoErr(SaveThesaurusDB(ctx, path, th))
	// Saving twice replaces rather than duplicates.
	is.NoErr(SaveThesaurusDB(ctx, path, th))

	loaded, err := LoadThesaurusDB(ctx, path)
	is.NoErr(err)
	is.Equal(loaded.Len(), th.Len())
	is.Equal(loaded.Edges(), th.Edges())

	s, err := loaded.Score(ctx, "boat", "craft")
	is.NoErr(err)
	is.Equal(s, 0.6)
}
