// Package scrape computes the statistics of a single text file.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/tokenize"
)

// ErrInvalidUTF8 is wrapped by ReadError when a file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// ReadError reports a file that could not be opened, read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// File loads path and scrapes its content.
// A ReadError is returned instead of stats when the file cannot be loaded.
func File(ctx context.Context, path string, words []string, features model.Features) (*model.FileStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: path, Err: ErrInvalidUTF8}
	}
	return Text(path, string(data), words, features), nil
}

// Text computes statistics for text. Only the fields enabled in features are set.
func Text(filename, text string, words []string, features model.Features) *model.FileStats {
	start := time.Now()
	targets := uniqueWords(words)
	stats := model.NewFileStats(filename, features, targets)

	if features.Has(model.CountChars) {
		stats.SetCharactersCount(int64(utf8.RuneCountInString(text)))
	}

	if features.NeedsTokens() {
		for _, sentence := range tokenize.SplitSentences(text) {
			tokens := tokenize.SplitWords(sentence)
			for _, word := range targets {
				n := countToken(tokens, word)
				if n == 0 {
					continue
				}
				stats.AppendSentences(word, sentence)
				stats.AddWordCount(word, n)
			}
		}
	}

	stats.SetTimeSpentMs(time.Since(start).Milliseconds())
	return stats
}

func countToken(tokens []string, word string) int64 {
	var n int64
	for _, token := range tokens {
		if strings.EqualFold(token, word) {
			n++
		}
	}
	return n
}

// uniqueWords drops repeated words so a duplicate never doubles a count.
func uniqueWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
