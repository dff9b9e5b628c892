package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wordscan/internal/model"
)

// Formats accepted by Render.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// ValidFormat reports whether format names a known renderer.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatTable:
		return true
	}
	return false
}

// Render writes the report in the given format.
func Render(w io.Writer, rep Report, format string, useColor bool) error {
	switch format {
	case FormatText, "":
		return RenderText(w, rep, useColor)
	case FormatJSON:
		return RenderJSON(w, rep)
	case FormatTable:
		return RenderTable(w, rep, useColor)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// RenderText prints each per-file summary followed by the aggregate summary.
func RenderText(w io.Writer, rep Report, useColor bool) error {
	p := painter{enabled: useColor}
	for _, e := range rep.Entries {
		if e.Failure != nil {
			line := fmt.Sprintf("File '%s' skipped: %s", e.Failure.Path, e.Failure.Reason)
			if _, err := fmt.Fprintln(w, p.paint(failureStyle, line)); err != nil {
				return err
			}
			continue
		}
		if err := writeSummary(w, p, fmt.Sprintf("File '%s' scrap summary:", e.Stats.Filename()), e.Stats); err != nil {
			return err
		}
	}
	if rep.Aggregate == nil {
		_, err := fmt.Fprintln(w, p.paint(mutedStyle, "No files scanned successfully."))
		return err
	}
	if err := writeSummary(w, p, "All files scrap summary:", rep.Aggregate); err != nil {
		return err
	}
	return writeRunLine(w, p, rep)
}

func writeSummary(w io.Writer, p painter, heading string, fs *model.FileStats) error {
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", fs.Filename(), err)
	}
	if _, err := fmt.Fprintln(w, p.paint(headingStyle, heading)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeRunLine(w io.Writer, p painter, rep Report) error {
	total := len(rep.Entries)
	ok := len(rep.Files())
	line := fmt.Sprintf("Scanned %d of %d files", ok, total)
	if rep.Features.Has(model.RecordTime) {
		line += fmt.Sprintf(" in %s ms", humanize.Comma(rep.Elapsed.Milliseconds()))
	}
	_, err := fmt.Fprintln(w, p.paint(mutedStyle, line))
	return err
}

type jsonReport struct {
	Files     []*model.FileStats `json:"files"`
	Failures  []model.Failure    `json:"failures"`
	Aggregate *model.FileStats   `json:"aggregate,omitempty"`
	ElapsedMs *int64             `json:"elapsedMs,omitempty"`
}

// RenderJSON writes the report as one indented JSON document.
func RenderJSON(w io.Writer, rep Report) error {
	out := jsonReport{
		Files:     rep.Files(),
		Failures:  rep.Failures(),
		Aggregate: rep.Aggregate,
	}
	if rep.Features.Has(model.RecordTime) {
		ms := rep.Elapsed.Milliseconds()
		out.ElapsedMs = &ms
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderTable prints one row per word with a column per file, the aggregate
// total and a sparkline of the per-file values.
func RenderTable(w io.Writer, rep Report, useColor bool) error {
	p := painter{enabled: useColor}
	files := rep.Files()
	if len(files) == 0 || rep.Aggregate == nil {
		_, err := fmt.Fprintln(w, p.paint(mutedStyle, "No files scanned successfully."))
		return err
	}

	columns := []column{{header: "Word"}}
	for _, fs := range files {
		columns = append(columns, column{header: filepath.Base(fs.Filename()), rightAlign: true})
	}
	columns = append(columns, column{header: "Total", rightAlign: true}, column{header: "Trend"})
	g := newGrid(columns...)

	for _, word := range TopWords(rep.Aggregate, rep.Words, rep.Top) {
		total, ok := WordValue(rep.Aggregate, word)
		if !ok {
			break
		}
		g.addRow(valueRow(word, files, total, func(fs *model.FileStats) int64 {
			v, _ := WordValue(fs, word)
			return v
		}))
	}
	if total, ok := rep.Aggregate.CharactersCount(); ok {
		g.addRow(valueRow("<chars>", files, total, func(fs *model.FileStats) int64 {
			v, _ := fs.CharactersCount()
			return v
		}))
	}
	if total, ok := rep.Aggregate.TimeSpentMs(); ok {
		g.addRow(valueRow("<ms>", files, total, func(fs *model.FileStats) int64 {
			v, _ := fs.TimeSpentMs()
			return v
		}))
	}

	lines := g.lines()
	for i, line := range lines {
		if i == 0 {
			line = p.paint(headingStyle, line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, f := range rep.Failures() {
		line := fmt.Sprintf("skipped %s: %s", f.Path, f.Reason)
		if _, err := fmt.Fprintln(w, p.paint(failureStyle, line)); err != nil {
			return err
		}
	}
	return nil
}

func valueRow(label string, files []*model.FileStats, total int64, value func(*model.FileStats) int64) []string {
	row := make([]string, 0, len(files)+3)
	row = append(row, label)
	series := make([]float64, 0, len(files))
	for _, fs := range files {
		v := value(fs)
		row = append(row, humanize.Comma(v))
		series = append(series, float64(v))
	}
	return append(row, humanize.Comma(total), "|"+Sparkline(series)+"|")
}
