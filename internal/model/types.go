// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig marks configuration problems detected before any file is scanned.
var ErrInvalidConfig = errors.New("invalid configuration")

// Features is a bitset of the statistics a scan produces.
type Features uint8

const (
	// CountWords counts token occurrences of every target word.
	CountWords Features = 1 << iota
	// CountChars counts Unicode code points in each file.
	CountChars
	// ExtractSentences collects sentences containing each target word.
	ExtractSentences
	// RecordTime records milliseconds spent processing each file.
	RecordTime
)

// Has reports whether every feature in f is enabled.
func (fs Features) Has(f Features) bool {
	return f != 0 && fs&f == f
}

// NeedsTokens reports whether the sentence/word scan has to run at all.
func (fs Features) NeedsTokens() bool {
	return fs&(CountWords|ExtractSentences) != 0
}

func (fs Features) String() string {
	names := make([]string, 0, 4)
	if fs.Has(CountWords) {
		names = append(names, "count-words")
	}
	if fs.Has(CountChars) {
		names = append(names, "count-chars")
	}
	if fs.Has(ExtractSentences) {
		names = append(names, "extract")
	}
	if fs.Has(RecordTime) {
		names = append(names, "verbose")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ScanConfig is the immutable input of one run.
type ScanConfig struct {
	Features          Features
	Words             []string
	Files             []string
	WorkersMultiplier int
	ShutdownGrace     time.Duration
}

// Validate checks the invariants that must hold before scheduling.
func (c ScanConfig) Validate() error {
	if len(c.Words) == 0 {
		return fmt.Errorf("%w: word list must not be empty", ErrInvalidConfig)
	}
	for _, w := range c.Words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("%w: word list contains a blank word", ErrInvalidConfig)
		}
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("%w: at least one file is required", ErrInvalidConfig)
	}
	if c.Features == 0 {
		return fmt.Errorf("%w: no statistics enabled (use -w, -c, -e or -v)", ErrInvalidConfig)
	}
	if c.WorkersMultiplier <= 0 {
		return fmt.Errorf("%w: workers multiplier must be > 0", ErrInvalidConfig)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("%w: shutdown grace must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Failure describes a file that could not be scanned.
type Failure struct {
	Path   string `json:"file"`
	Reason string `json:"reason"`
}
