package stats

import (
	"sort"

	"github.com/verte-zerg/wordscan/internal/model"
)

// TopWords returns the n words with the highest value in fs, keeping every
// word when n <= 0. Ties are broken alphabetically.
func TopWords(fs *model.FileStats, words []string, n int) []string {
	if len(words) == 0 || fs == nil {
		return nil
	}
	if n <= 0 || n >= len(words) {
		return words
	}
	type item struct {
		word  string
		total int64
	}
	items := make([]item, 0, len(words))
	for _, word := range words {
		total, _ := WordValue(fs, word)
		items = append(items, item{word: word, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].word < items[j].word
		}
		return items[i].total > items[j].total
	})
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].word)
	}
	return out
}
