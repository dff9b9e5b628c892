package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminators consumed",
			text: "The quick fox jumps. The lazy dog sleeps. The fox and dog play.",
			want: []string{"The quick fox jumps", "The lazy dog sleeps", "The fox and dog play"},
		},
		{
			name: "mixed terminator runs",
			text: "Really?! Yes... no!\nMaybe",
			want: []string{"Really", "Yes", "no", "Maybe"},
		},
		{
			name: "whitespace before terminator",
			text: "Spaced out .  Next one",
			want: []string{"Spaced out", "Next one"},
		},
		{
			name: "terminator inside a token does not split",
			text: "Version 1.2 shipped",
			want: []string{"Version 1.2 shipped"},
		},
		{
			name: "leading and trailing noise suppressed",
			text: "  \n. Hello world.  \n\n",
			want: []string{"Hello world"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestSplitSentencesIdempotentOnSingleSentence(t *testing.T) {
	text := "First one here. Second (with parens), and quotes! Third?\tFourth 3.14"
	for _, sentence := range SplitSentences(text) {
		assert.Equal(t, []string{sentence}, SplitSentences(sentence))
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{
			name:     "whitespace",
			sentence: "The  quick\tfox",
			want:     []string{"The", "quick", "fox"},
		},
		{
			name:     "punctuation collapses",
			sentence: `fox, "dog"; (cat) {owl} <bee> 'ant' ` + "`yak`" + `: end`,
			want:     []string{"fox", "dog", "cat", "owl", "bee", "ant", "yak", "end"},
		},
		{
			name:     "leading delimiter",
			sentence: `"Quoted start`,
			want:     []string{"Quoted", "start"},
		},
		{
			name:     "hyphen and dot are kept",
			sentence: "co-op e.g",
			want:     []string{"co-op", "e.g"},
		},
		{
			name:     "case preserved",
			sentence: "CAT Cat cat",
			want:     []string{"CAT", "Cat", "cat"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWords(tt.sentence))
		})
	}
}

func TestHasDelimiter(t *testing.T) {
	for _, word := range []string{"fox", "co-op", "e.g", "naïve"} {
		assert.False(t, HasDelimiter(word), word)
	}
	for _, word := range []string{"two words", "fox,", "(fox)", "fox.", "why?", `"q"`} {
		assert.True(t, HasDelimiter(word), word)
	}
}
