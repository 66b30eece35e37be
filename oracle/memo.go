package oracle

import (
	"context"
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"golang.org/x/sync/singleflight"
)

// Memo wraps an Oracle and remembers its answers. It is meant to live for a
// single solve: the same (context, candidate) pair comes up again and again
// across the parses of one clue. Errors are not remembered.
type Memo struct {
	oracle Oracle

	mu     sync.Mutex
	scores map[uint64]float64
	ranks  map[uint64][]WordScore
	flight singleflight.Group

	hits, misses int
}

func NewMemo(o Oracle) *Memo {
	return &Memo{
		oracle: o,
		scores: make(map[uint64]float64),
		ranks:  make(map[uint64][]WordScore),
	}
}

func memoKey(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		d.Write([]byte(p))
		d.Write([]byte{0})
	}
	return d.Sum64()
}

func (m *Memo) Score(ctx context.Context, contextPhrase, candidate string) (float64, error) {
	k := memoKey("score", contextPhrase, candidate)
	m.mu.Lock()
	if s, ok := m.scores[k]; ok {
		m.hits++
		m.mu.Unlock()
		return s, nil
	}
	m.misses++
	m.mu.Unlock()

	v, err, _ := m.flight.Do(strconv.FormatUint(k, 16), func() (any, error) {
		s, err := m.oracle.Score(ctx, contextPhrase, candidate)
		if err != nil {
			return 0.0, err
		}
		m.mu.Lock()
		m.scores[k] = s
		m.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (m *Memo) Rank(ctx context.Context, contextPhrase string, length int) ([]WordScore, error) {
	k := memoKey("rank", contextPhrase, strconv.Itoa(length))
	m.mu.Lock()
	if r, ok := m.ranks[k]; ok {
		m.hits++
		m.mu.Unlock()
		return r, nil
	}
	m.misses++
	m.mu.Unlock()

	v, err, _ := m.flight.Do(strconv.FormatUint(k, 16), func() (any, error) {
		r, err := m.oracle.Rank(ctx, contextPhrase, length)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.ranks[k] = r
		m.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]WordScore), nil
}

// Stats returns the number of calls answered from memory and the number
// passed through.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
