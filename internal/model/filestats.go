package model

import (
	"encoding/json"
	"fmt"
)

// AggregateLabel is the filename carried by the combined result of a run.
const AggregateLabel = "all files"

// FileStats holds the statistics of one file or of a whole run.
//
// Which fields exist is fixed by the Features passed to NewFileStats. Setters
// for a disabled feature are no-ops, so an absent field can never be confused
// with a zero value.
type FileStats struct {
	filename  string
	features  Features
	chars     int64
	words     map[string]int64
	sentences map[string][]string
	timeSpent int64
}

// NewFileStats returns stats for filename with every enabled map seeded from words.
func NewFileStats(filename string, features Features, words []string) *FileStats {
	fs := &FileStats{filename: filename, features: features}
	if features.Has(CountWords) {
		fs.words = make(map[string]int64, len(words))
		for _, w := range words {
			fs.words[w] = 0
		}
	}
	if features.Has(ExtractSentences) {
		fs.sentences = make(map[string][]string, len(words))
		for _, w := range words {
			if _, ok := fs.sentences[w]; !ok {
				fs.sentences[w] = []string{}
			}
		}
	}
	return fs
}

// Filename returns the file path or AggregateLabel.
func (fs *FileStats) Filename() string { return fs.filename }

// Features returns the feature set the stats were built with.
func (fs *FileStats) Features() Features { return fs.features }

// CharactersCount returns the code point count when character counting is enabled.
func (fs *FileStats) CharactersCount() (int64, bool) {
	return fs.chars, fs.features.Has(CountChars)
}

// WordsCount returns per-word token counts. The map must not be modified.
func (fs *FileStats) WordsCount() (map[string]int64, bool) {
	return fs.words, fs.features.Has(CountWords)
}

// SentencesExtracted returns per-word sentence lists. The map must not be modified.
func (fs *FileStats) SentencesExtracted() (map[string][]string, bool) {
	return fs.sentences, fs.features.Has(ExtractSentences)
}

// TimeSpentMs returns the processing time in milliseconds when recorded.
func (fs *FileStats) TimeSpentMs() (int64, bool) {
	return fs.timeSpent, fs.features.Has(RecordTime)
}

// SetCharactersCount stores the code point count.
func (fs *FileStats) SetCharactersCount(n int64) {
	if fs.features.Has(CountChars) {
		fs.chars = n
	}
}

// AddWordCount adds n occurrences to word.
func (fs *FileStats) AddWordCount(word string, n int64) {
	if fs.features.Has(CountWords) {
		fs.words[word] += n
	}
}

// AppendSentences appends sentences to the list of word.
func (fs *FileStats) AppendSentences(word string, sentences ...string) {
	if !fs.features.Has(ExtractSentences) {
		return
	}
	list, ok := fs.sentences[word]
	if !ok {
		list = []string{}
	}
	fs.sentences[word] = append(list, sentences...)
}

// SetTimeSpentMs stores the processing time.
func (fs *FileStats) SetTimeSpentMs(ms int64) {
	if fs.features.Has(RecordTime) {
		fs.timeSpent = ms
	}
}

// Merge combines two results into a new one labelled AggregateLabel.
//
// Counts, character totals and times are summed; sentence lists are
// concatenated with a's entries first. Neither input is modified.
func Merge(a, b *FileStats) (*FileStats, error) {
	if a.features != b.features {
		return nil, fmt.Errorf("merge %q with %q: feature mismatch (%s vs %s)", a.filename, b.filename, a.features, b.features)
	}
	out := NewFileStats(AggregateLabel, a.features, nil)
	out.SetCharactersCount(a.chars + b.chars)
	out.SetTimeSpentMs(a.timeSpent + b.timeSpent)
	for _, src := range []*FileStats{a, b} {
		for word, n := range src.words {
			out.AddWordCount(word, n)
		}
		for word, list := range src.sentences {
			out.AppendSentences(word, list...)
		}
	}
	return out, nil
}

type fileStatsJSON struct {
	Filename           string               `json:"filename,omitempty"`
	CharactersCount    *int64               `json:"charactersCount,omitempty"`
	WordsCount         *map[string]int64    `json:"wordsCount,omitempty"`
	SentencesExtracted *map[string][]string `json:"sentencesExtracted,omitempty"`
	TimeSpent          *int64               `json:"timeSpent,omitempty"`
}

// MarshalJSON emits only the fields enabled for this result.
func (fs *FileStats) MarshalJSON() ([]byte, error) {
	out := fileStatsJSON{Filename: fs.filename}
	if n, ok := fs.CharactersCount(); ok {
		out.CharactersCount = &n
	}
	if m, ok := fs.WordsCount(); ok {
		out.WordsCount = &m
	}
	if m, ok := fs.SentencesExtracted(); ok {
		out.SentencesExtracted = &m
	}
	if ms, ok := fs.TimeSpentMs(); ok {
		out.TimeSpent = &ms
	}
	return json.Marshal(out)
}
