package frequency

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/metrics"
	"github.com/BackendStack21/cryptolab-go/vigenere"
)

// Baseline is subtracted from the raw coincidence sum. It is 1/16, not the
// 1/26 of a flat 26-letter alphabet, so flat text scores slightly below zero.
const Baseline = 1.0 / 16

// IndexOfCoincidence normalizes text and returns Σ (count/N)^2 - Baseline over
// its distinct letters, where N is the normalized length. Texts with fewer
// than two letters score 0.
func IndexOfCoincidence(text string) float64 {
	return indexOfCoincidence(vigenere.Normalize(text))
}

func indexOfCoincidence(normalized string) float64 {
	n := len(normalized)
	if n <= 1 {
		return 0
	}

	t := newTable(normalized)
	var sum float64
	for _, r := range t.order {
		f := float64(t.counts[r]) / float64(n)
		sum += f * f
	}
	return sum - Baseline
}

// PeriodScore is the average column index of coincidence for one candidate period.
type PeriodScore struct {
	Period int
	Score  float64
}

// PeriodEstimate is the outcome of EstimatePeriod. Found is false when the
// candidate range was empty.
type PeriodEstimate struct {
	Found  bool
	Period int
	Score  float64
	Scores []PeriodScore
}

// EstimatePeriod guesses the key length of a Vigenère ciphertext.
//
// Each candidate p in [minPeriod, min(maxPeriod, N-1)] splits the normalized
// text into p columns (column i holds positions i, i+p, i+2p, ...) and scores
// the mean index of coincidence of those columns. The highest score wins;
// ties go to the smaller period. Candidates are scored concurrently. The only
// error is ctx's.
func EstimatePeriod(ctx context.Context, ciphertext string, minPeriod, maxPeriod int) (PeriodEstimate, error) {
	logger := log.FromContextOrDefault(ctx).Named("frequency")
	metrics.PeriodEstimations.Inc()

	text := vigenere.Normalize(ciphertext)
	lo, hi := minPeriod, maxPeriod
	if lo < 1 {
		lo = 1
	}
	if hi > len(text)-1 {
		hi = len(text) - 1
	}
	if lo > hi {
		logger.Debugw("empty period range", "min", minPeriod, "max", maxPeriod, "length", len(text))
		return PeriodEstimate{}, nil
	}

	scores := make([]PeriodScore, hi-lo+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for p := lo; p <= hi; p++ {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[p-lo] = PeriodScore{Period: p, Score: averageColumnIC(text, p)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PeriodEstimate{}, fmt.Errorf("estimate period: %w", err)
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	logger.Debugw("estimated period", "period", best.Period, "score", best.Score, "candidates", len(scores))

	return PeriodEstimate{Found: true, Period: best.Period, Score: best.Score, Scores: scores}, nil
}

// averageColumnIC is the mean index of coincidence over the non-empty
// columns of text taken with stride period.
func averageColumnIC(text string, period int) float64 {
	var sum float64
	var columns int
	buf := make([]byte, 0, len(text)/period+1)
	for i := 0; i < period && i < len(text); i++ {
		buf = buf[:0]
		for j := i; j < len(text); j += period {
			buf = append(buf, text[j])
		}
		sum += indexOfCoincidence(string(buf))
		columns++
	}
	if columns == 0 {
		return 0
	}
	return sum / float64(columns)
}
