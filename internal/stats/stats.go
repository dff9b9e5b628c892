package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/wordscan/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WordValue returns the per-word figure shown in tables: the token count when
// counting is enabled, otherwise the number of extracted sentences.
func WordValue(fs *model.FileStats, word string) (int64, bool) {
	if counts, ok := fs.WordsCount(); ok {
		return counts[word], true
	}
	if sentences, ok := fs.SentencesExtracted(); ok {
		return int64(len(sentences[word])), true
	}
	return 0, false
}
