// Package wordlist provides word list validation helpers.
package wordlist

import (
	"fmt"

	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/tokenize"
)

// Matchable reports whether word can ever equal a single token.
func Matchable(word string) bool {
	return word != "" && !tokenize.HasDelimiter(word)
}

// Validate rejects words that could never match a token.
func Validate(words []string) error {
	for _, word := range words {
		if !Matchable(word) {
			return fmt.Errorf("%w: word %q contains separators and can never match", model.ErrInvalidConfig, word)
		}
	}
	return nil
}
