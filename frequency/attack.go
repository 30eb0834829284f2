package frequency

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/BackendStack21/cryptolab-go/vigenere"
)

// englishFrequencies are relative letter frequencies of English text, a-z.
var englishFrequencies = [vigenere.AlphabetSize]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
}

// ErrPeriodNotFound is returned by Analyze when no candidate period fits the text.
var ErrPeriodNotFound = errors.New("no candidate period")

// RecoverKey finds the most likely key of the given length for ciphertext.
//
// Column c of the text was shifted by key[(c+1) mod period]. For each column
// every shift is tried and the one whose un-shifted letters have the lowest
// chi-squared distance to English letter frequencies is kept.
func RecoverKey(ciphertext string, period int) (vigenere.Key, error) {
	text := vigenere.Normalize(ciphertext)
	if period < 1 || period > len(text) {
		return nil, fmt.Errorf("recover key: period %d outside [1, %d]", period, len(text))
	}

	key := make(vigenere.Key, period)
	for c := 0; c < period; c++ {
		var counts [vigenere.AlphabetSize]int
		total := 0
		for j := c; j < len(text); j += period {
			counts[text[j]-'a']++
			total++
		}
		key[(c+1)%period] = bestShift(counts, total)
	}
	return key, nil
}

// bestShift returns the shift minimising chi-squared against English.
func bestShift(counts [vigenere.AlphabetSize]int, total int) int {
	best, bestChi := 0, math.Inf(1)
	for s := 0; s < vigenere.AlphabetSize; s++ {
		var chi float64
		for plain := 0; plain < vigenere.AlphabetSize; plain++ {
			expected := englishFrequencies[plain] * float64(total)
			observed := float64(counts[(plain+s)%vigenere.AlphabetSize])
			diff := observed - expected
			chi += diff * diff / expected
		}
		if chi < bestChi {
			best, bestChi = s, chi
		}
	}
	return best
}

// Analysis is the outcome of a full ciphertext-only attack.
type Analysis struct {
	Period    PeriodEstimate
	Key       vigenere.Key
	Plaintext string
}

// Analyze estimates the period, recovers the key and decrypts.
func Analyze(ctx context.Context, ciphertext string, minPeriod, maxPeriod int) (Analysis, error) {
	est, err := EstimatePeriod(ctx, ciphertext, minPeriod, maxPeriod)
	if err != nil {
		return Analysis{}, err
	}
	if !est.Found {
		return Analysis{Period: est}, ErrPeriodNotFound
	}

	key, err := RecoverKey(ciphertext, est.Period)
	if err != nil {
		return Analysis{}, err
	}
	plaintext, err := vigenere.Decrypt(ciphertext, key)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{Period: est, Key: key, Plaintext: plaintext}, nil
}
