// Package tokenize splits text into sentences and sentences into word tokens.
package tokenize

import (
	"regexp"
	"strings"
)

const (
	spaceClass  = "[ \t\n\v\f\r]"
	spaceCutset = " \t\n\v\f\r"

	// WordDelimiters are the punctuation characters that separate tokens besides whitespace.
	WordDelimiters = ",;:(){}<>'`\""
)

var (
	// A terminator run only ends a sentence when whitespace or the end of text follows it.
	sentenceDelimiter = regexp.MustCompile(spaceClass + `*[.?!]+(?:` + spaceClass + `+|$)`)
	wordDelimiter     = regexp.MustCompile(`[` + regexp.QuoteMeta(WordDelimiters) + ` \t\n\v\f\r]+`)
)

// SplitSentences returns the non-empty sentences of text with terminators removed.
func SplitSentences(text string) []string {
	parts := sentenceDelimiter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, spaceCutset)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// SplitWords returns the tokens of sentence. Tokens are not case-normalized.
func SplitWords(sentence string) []string {
	parts := wordDelimiter.Split(sentence, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// HasDelimiter reports whether word contains a character that SplitWords or
// SplitSentences would split on, meaning it can never equal a single token.
func HasDelimiter(word string) bool {
	if strings.ContainsAny(word, WordDelimiters+spaceCutset) {
		return true
	}
	return sentenceDelimiter.MatchString(word)
}
