// Package stats contains report building and rendering.
package stats

import (
	"time"

	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/pipeline"
)

// Entry is one per-file line of a report: either stats or a failure.
type Entry struct {
	Stats   *model.FileStats
	Failure *model.Failure
}

// Report contains precomputed data for rendering.
type Report struct {
	// Entries are in completion order.
	Entries   []Entry
	Aggregate *model.FileStats
	Words     []string
	Features  model.Features
	Elapsed   time.Duration
	// Top limits table rows to the highest ranked words; 0 keeps all.
	Top int
}

// BuildReport prepares a pipeline result for rendering.
func BuildReport(result pipeline.Result, cfg model.ScanConfig) Report {
	entries := make([]Entry, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		if o.Failed() {
			entries = append(entries, Entry{Failure: &model.Failure{Path: o.Path, Reason: o.Err.Error()}})
			continue
		}
		entries = append(entries, Entry{Stats: o.Stats})
	}
	return Report{
		Entries:   entries,
		Aggregate: result.Aggregate,
		Words:     uniqueWords(cfg.Words),
		Features:  cfg.Features,
		Elapsed:   result.Elapsed,
	}
}

// Files returns the successful per-file stats.
func (r Report) Files() []*model.FileStats {
	out := make([]*model.FileStats, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Stats != nil {
			out = append(out, e.Stats)
		}
	}
	return out
}

// Failures returns the failed files.
func (r Report) Failures() []model.Failure {
	out := make([]model.Failure, 0)
	for _, e := range r.Entries {
		if e.Failure != nil {
			out = append(out, *e.Failure)
		}
	}
	return out
}

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
