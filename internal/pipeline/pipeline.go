// Package pipeline scans files concurrently and reduces their statistics.
//
// Each file is scraped by an independent task on a bounded Pool. A failing
// file only produces a failed Outcome; it never cancels the other tasks.
// Successful results are folded with model.Merge into one aggregate once all
// tasks are done.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/scrape"
)

// DefaultWorkersMultiplier scales the pool above the processor count since tasks are I/O bound.
const DefaultWorkersMultiplier = 4

// DefaultShutdownGrace bounds how long Shutdown waits for in-flight tasks.
const DefaultShutdownGrace = 5 * time.Second

// ScrapeFunc produces the stats of one file.
type ScrapeFunc func(ctx context.Context, path string, words []string, features model.Features) (*model.FileStats, error)

// Outcome is the terminal state of one file task.
type Outcome struct {
	Index int
	Path  string
	Stats *model.FileStats
	Err   error
}

// Failed reports whether the task produced no stats.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Result is everything a run produced.
type Result struct {
	// Outcomes are in completion order.
	Outcomes []Outcome
	// Aggregate is nil when no file succeeded.
	Aggregate *model.FileStats
	// Elapsed is the wall-clock span of the whole batch.
	Elapsed time.Duration
	Workers int
}

// Succeeded returns the stats of successful tasks in completion order.
func (r Result) Succeeded() []*model.FileStats {
	out := make([]*model.FileStats, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if !o.Failed() {
			out = append(out, o.Stats)
		}
	}
	return out
}

// Failures returns the failed tasks in completion order.
func (r Result) Failures() []model.Failure {
	var out []model.Failure
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, model.Failure{Path: o.Path, Reason: o.Err.Error()})
		}
	}
	return out
}

// Scheduler runs one scrape per configured file.
type Scheduler struct {
	cfg         model.ScanConfig
	logger      *slog.Logger
	scrape      ScrapeFunc
	parallelism func() int
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for per-file and shutdown messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithScrapeFunc replaces the file scraper.
func WithScrapeFunc(fn ScrapeFunc) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.scrape = fn
		}
	}
}

// WithParallelism overrides the processor count used to size the pool.
func WithParallelism(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.parallelism = func() int { return n }
		}
	}
}

// New validates cfg and returns a Scheduler for it.
func New(cfg model.ScanConfig, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		cfg:         cfg,
		logger:      slog.New(slog.DiscardHandler),
		scrape:      scrape.File,
		parallelism: func() int { return runtime.GOMAXPROCS(0) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PoolSize bounds the number of concurrent tasks to min(files, multiplier*procs).
func PoolSize(files, multiplier, procs int) int {
	if procs < 1 {
		procs = 1
	}
	if multiplier < 1 {
		multiplier = 1
	}
	size := min(files, multiplier*procs)
	if size < 1 {
		return 1
	}
	return size
}

// Run scans every file and returns once each task has completed or failed.
// Canceling ctx stops collection early; files without an outcome are then
// reported as failed with the context error.
func (s *Scheduler) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	files := s.cfg.Files
	workers := PoolSize(len(files), s.cfg.WorkersMultiplier, s.parallelism())
	pool := NewPool(ctx, workers, s.cfg.ShutdownGrace)

	s.logger.Debug("scan started", "files", len(files), "workers", workers, "features", s.cfg.Features.String())

	outcomes := make(chan Outcome, len(files))
	go func() {
		defer pool.Close()
		for i, path := range files {
			if ctx.Err() != nil {
				return
			}
			pool.Go(func(taskCtx context.Context) {
				stats, err := s.scrape(taskCtx, path, s.cfg.Words, s.cfg.Features)
				if err == nil && stats == nil {
					err = errors.New("scraper returned no stats")
				}
				outcomes <- Outcome{Index: i, Path: path, Stats: stats, Err: err}
			})
		}
	}()

	collected := s.collect(ctx, files, outcomes)

	if err := pool.Shutdown(); err != nil {
		s.logger.Warn("worker pool did not drain", "error", err)
	}

	result := Result{Outcomes: collected, Workers: workers}
	aggregate, err := Aggregate(inSubmissionOrder(collected))
	if err != nil {
		return Result{}, fmt.Errorf("aggregate results: %w", err)
	}
	result.Aggregate = aggregate
	result.Elapsed = time.Since(start)

	s.logger.Info("scan finished",
		"files", len(files),
		"succeeded", len(collected)-len(result.Failures()),
		"failed", len(result.Failures()),
		"elapsed_ms", result.Elapsed.Milliseconds(),
	)
	return result, nil
}

func (s *Scheduler) collect(ctx context.Context, files []string, outcomes <-chan Outcome) []Outcome {
	collected := make([]Outcome, 0, len(files))
	seen := make([]bool, len(files))
	for len(collected) < len(files) {
		select {
		case o := <-outcomes:
			seen[o.Index] = true
			collected = append(collected, o)
			s.logOutcome(o)
		case <-ctx.Done():
			collected = s.drain(collected, seen, outcomes)
			for i, path := range files {
				if seen[i] {
					continue
				}
				o := Outcome{Index: i, Path: path, Err: ctx.Err()}
				collected = append(collected, o)
				s.logOutcome(o)
			}
			return collected
		}
	}
	return collected
}

// drain keeps outcomes that finished before cancellation was observed.
func (s *Scheduler) drain(collected []Outcome, seen []bool, outcomes <-chan Outcome) []Outcome {
	for {
		select {
		case o := <-outcomes:
			seen[o.Index] = true
			collected = append(collected, o)
			s.logOutcome(o)
		default:
			return collected
		}
	}
}

func (s *Scheduler) logOutcome(o Outcome) {
	if o.Failed() {
		s.logger.Warn("file skipped", "file", o.Path, "error", o.Err)
		return
	}
	s.logger.Debug("file scanned", "file", o.Path)
}

func inSubmissionOrder(outcomes []Outcome) []*model.FileStats {
	ordered := make([]Outcome, len(outcomes))
	copy(ordered, outcomes)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})
	out := make([]*model.FileStats, 0, len(ordered))
	for _, o := range ordered {
		if !o.Failed() {
			out = append(out, o.Stats)
		}
	}
	return out
}

// Aggregate folds stats with model.Merge. It returns nil for an empty input.
func Aggregate(stats []*model.FileStats) (*model.FileStats, error) {
	if len(stats) == 0 {
		return nil, nil
	}
	acc := model.NewFileStats(model.AggregateLabel, stats[0].Features(), nil)
	for _, fs := range stats {
		merged, err := model.Merge(acc, fs)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}
