// Package frequency implements letter-frequency cryptanalysis of Vigenère
// ciphertext: frequency tables, the index of coincidence, period estimation
// and per-column key recovery.
package frequency

import (
	"github.com/BackendStack21/cryptolab-go/vigenere"
)

// Table maps each letter of a normalized text to its number of occurrences.
// Letters are kept in order of first appearance. A Table is built fresh per
// call and is never cached.
type Table struct {
	order  []rune
	counts map[rune]int
	total  int
}

// NewTable normalizes text and counts every distinct letter.
func NewTable(text string) *Table {
	return newTable(vigenere.Normalize(text))
}

func newTable(normalized string) *Table {
	t := &Table{counts: make(map[rune]int)}
	for _, r := range normalized {
		if _, seen := t.counts[r]; !seen {
			t.order = append(t.order, r)
		}
		t.counts[r]++
		t.total++
	}
	return t
}

// Count returns the occurrences of r, zero if absent.
func (t *Table) Count(r rune) int { return t.counts[r] }

// Letters returns the distinct letters in order of first appearance.
func (t *Table) Letters() []rune {
	return append([]rune(nil), t.order...)
}

// Len is the number of distinct letters.
func (t *Table) Len() int { return len(t.order) }

// Total is the length of the normalized text.
func (t *Table) Total() int { return t.total }
