package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/pipeline"
)

func fileStats(name string, features model.Features, fox, dog int64) *model.FileStats {
	fs := model.NewFileStats(name, features, []string{"fox", "dog"})
	fs.AddWordCount("fox", fox)
	fs.AddWordCount("dog", dog)
	fs.SetCharactersCount(fox*100 + dog)
	fs.SetTimeSpentMs(3)
	if fox > 0 {
		fs.AppendSentences("fox", "a fox in "+name)
	}
	return fs
}

func buildSample(t *testing.T, features model.Features) Report {
	t.Helper()
	a := fileStats("dir/a.txt", features, 2, 2)
	b := fileStats("dir/b.txt", features, 1, 0)
	agg, err := pipeline.Aggregate([]*model.FileStats{a, b})
	require.NoError(t, err)

	result := pipeline.Result{
		Outcomes: []pipeline.Outcome{
			{Index: 1, Path: "dir/b.txt", Stats: b},
			{Index: 2, Path: "dir/missing.txt", Err: errors.New("no such file")},
			{Index: 0, Path: "dir/a.txt", Stats: a},
		},
		Aggregate: agg,
		Elapsed:   1500 * time.Millisecond,
	}
	cfg := model.ScanConfig{Features: features, Words: []string{"fox", "dog", "fox"}}
	return BuildReport(result, cfg)
}

func TestBuildReport(t *testing.T) {
	rep := buildSample(t, model.CountWords)

	require.Len(t, rep.Entries, 3)
	assert.Equal(t, []string{"fox", "dog"}, rep.Words)
	files := rep.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "dir/b.txt", files[0].Filename())
	assert.Equal(t, []model.Failure{{Path: "dir/missing.txt", Reason: "no such file"}}, rep.Failures())
}

func TestRenderJSONOmitsDisabledFields(t *testing.T) {
	rep := buildSample(t, model.CountWords|model.ExtractSentences)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, rep))

	var doc struct {
		Files     []map[string]json.RawMessage `json:"files"`
		Failures  []model.Failure              `json:"failures"`
		Aggregate map[string]json.RawMessage   `json:"aggregate"`
		ElapsedMs *int64                       `json:"elapsedMs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Files, 2)
	require.Len(t, doc.Failures, 1)
	assert.Nil(t, doc.ElapsedMs)
	assert.NotContains(t, doc.Aggregate, "charactersCount")
	assert.NotContains(t, doc.Aggregate, "timeSpent")
	assert.JSONEq(t, `"all files"`, string(doc.Aggregate["filename"]))
	assert.JSONEq(t, `{"fox":3,"dog":2}`, string(doc.Aggregate["wordsCount"]))
	assert.JSONEq(t, `{"fox":["a fox in dir/a.txt","a fox in dir/b.txt"],"dog":[]}`, string(doc.Aggregate["sentencesExtracted"]))
}

func TestRenderJSONWithoutAggregate(t *testing.T) {
	rep := Report{
		Entries:  []Entry{{Failure: &model.Failure{Path: "x", Reason: "boom"}}},
		Features: model.CountWords | model.RecordTime,
		Elapsed:  42 * time.Millisecond,
	}
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, rep))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.NotContains(t, doc, "aggregate")
	assert.JSONEq(t, `[]`, string(doc["files"]))
	assert.JSONEq(t, `42`, string(doc["elapsedMs"]))
}

func TestRenderText(t *testing.T) {
	rep := buildSample(t, model.CountWords|model.RecordTime)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, rep, false))
	out := buf.String()

	assert.Contains(t, out, "File 'dir/b.txt' scrap summary:")
	assert.Contains(t, out, "File 'dir/missing.txt' skipped: no such file")
	assert.Contains(t, out, "All files scrap summary:")
	assert.Contains(t, out, `"filename": "all files"`)
	assert.Contains(t, out, `"timeSpent": 6`)
	assert.Contains(t, out, "Scanned 2 of 3 files in 1,500 ms")
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "dir/b.txt"), strings.Index(out, "dir/a.txt"))
}

func TestRenderTextWithoutAggregate(t *testing.T) {
	rep := Report{Entries: []Entry{{Failure: &model.Failure{Path: "x", Reason: "boom"}}}}
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, rep, false))
	assert.Contains(t, buf.String(), "No files scanned successfully.")
	assert.NotContains(t, buf.String(), "All files")
}

func TestRenderTable(t *testing.T) {
	rep := buildSample(t, model.CountWords|model.CountChars)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, rep, false))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "Word    b.txt a.txt Total Trend", lines[0])
	assert.Equal(t, "fox         1     2     3 | @|", lines[1])
	assert.Equal(t, "dog         0     2     2 | @|", lines[2])
	assert.Equal(t, "<chars>   100   202   302 | @|", lines[3])
	assert.Equal(t, "skipped dir/missing.txt: no such file", lines[4])
}

func TestRenderTableUsesSentenceCountsWithoutCounting(t *testing.T) {
	rep := buildSample(t, model.ExtractSentences)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, rep, false))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "Word b.txt a.txt Total Trend", lines[0])
	assert.Equal(t, "fox      1     1     2 |++|", lines[1])
	assert.Equal(t, "dog      0     0     0 |++|", lines[2])
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, Report{}, "xml", false))
	assert.True(t, ValidFormat(FormatTable))
	assert.False(t, ValidFormat("xml"))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{2, 2, 2}))
	assert.Equal(t, " @", Sparkline([]float64{0, 10}))
}

func TestRenderTableTop(t *testing.T) {
	rep := buildSample(t, model.CountWords)
	rep.Top = 1

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, rep, false))
	out := buf.String()
	assert.Contains(t, out, "fox ")
	assert.NotContains(t, out, "dog ")
}
