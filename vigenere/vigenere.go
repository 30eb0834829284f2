// Package vigenere implements the Vigenère polyalphabetic cipher over the 26
// lowercase letters.
//
// The character at position i is shifted by key[(i+1) mod len(key)], so the
// key is applied starting from its second element. Ciphertexts produced here
// only decrypt with this package.
package vigenere

import (
	"fmt"
	"strings"
	"unicode"

	cryptolab "github.com/BackendStack21/cryptolab-go"
)

// AlphabetSize is the number of letters shifts wrap around.
const AlphabetSize = 26

// Key is an ordered, non-empty sequence of shifts in [0, 26).
type Key []int

// NewKey validates shifts and returns them as a Key.
func NewKey(shifts ...int) (Key, error) {
	k := Key(append([]int(nil), shifts...))
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// KeyFromWord turns a keyword into shifts, a=0 through z=25. Characters other
// than letters are dropped.
func KeyFromWord(word string) (Key, error) {
	letters := Normalize(word)
	shifts := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		shifts[i] = int(letters[i] - 'a')
	}
	return NewKey(shifts...)
}

// Validate reports ErrInvalidKeyShape for an empty key or a shift outside [0, 26).
func (k Key) Validate() error {
	if len(k) == 0 {
		return fmt.Errorf("vigenere: %w: key is empty", cryptolab.ErrInvalidKeyShape)
	}
	for i, s := range k {
		if s < 0 || s >= AlphabetSize {
			return fmt.Errorf("vigenere: %w: shift %d at index %d outside [0, %d)",
				cryptolab.ErrInvalidKeyShape, s, i, AlphabetSize)
		}
	}
	return nil
}

// Negate returns the key that undoes k.
func (k Key) Negate() Key {
	neg := make(Key, len(k))
	for i, s := range k {
		neg[i] = (AlphabetSize - s) % AlphabetSize
	}
	return neg
}

// String renders the key as letters.
func (k Key) String() string {
	var b strings.Builder
	for _, s := range k {
		b.WriteByte(byte('a' + s))
	}
	return b.String()
}

// Normalize lowercases text and drops everything outside a-z.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		r = unicode.ToLower(r)
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Encrypt normalizes message and shifts the letter at position i forward by
// key[(i+1) mod len(key)], wrapping within the alphabet.
func Encrypt(message string, key Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	text := Normalize(message)
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		shift := key[(i+1)%len(key)]
		out[i] = 'a' + byte((int(text[i]-'a')+shift)%AlphabetSize)
	}
	return string(out), nil
}

// Decrypt reverses Encrypt by encrypting with the negated key.
func Decrypt(ciphertext string, key Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	return Encrypt(ciphertext, key.Negate())
}
