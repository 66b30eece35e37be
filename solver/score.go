package solver

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/cryptic/oracle"
)

type scorer struct {
	oracle  oracle.Oracle
	threads int
}

// scoreAll rates every word against the definition concurrently. A failed
// oracle call costs only its own word, which scores 0; cancellation of ctx
// stops the whole batch.
func (sc *scorer) scoreAll(ctx context.Context, definition string, words []string) ([]Candidate, error) {
	if len(words) == 0 {
		return nil, nil
	}
	logger := zerolog.Ctx(ctx)
	cands := make([]Candidate, len(words))

	g := errgroup.Group{}
	g.SetLimit(sc.threads)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			s, err := sc.oracle.Score(ctx, definition, oracle.JoinWords(w))
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn().Err(err).Str("definition", definition).Str("candidate", w).
					Msg("oracle-score-failed")
				s = 0
			}
			cands[i] = Candidate{Text: w, Score: s}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cands, nil
}
