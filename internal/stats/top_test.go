package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/wordscan/internal/model"
)

func TestTopWords(t *testing.T) {
	fs := model.NewFileStats(model.AggregateLabel, model.CountWords, []string{"b", "a", "c"})
	fs.AddWordCount("b", 4)
	fs.AddWordCount("a", 4)
	fs.AddWordCount("c", 1)
	words := []string{"b", "a", "c"}

	assert.Equal(t, []string{"a", "b"}, TopWords(fs, words, 2))
	assert.Equal(t, words, TopWords(fs, words, 0), "unlimited keeps configured order")
}
