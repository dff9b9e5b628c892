// Package main provides the CLI entrypoint for wordscan.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordscan/internal/config"
	"github.com/verte-zerg/wordscan/internal/logging"
	"github.com/verte-zerg/wordscan/internal/model"
	"github.com/verte-zerg/wordscan/internal/pipeline"
	"github.com/verte-zerg/wordscan/internal/stats"
	"github.com/verte-zerg/wordscan/internal/wordlist"
)

const (
	defaultFormat    = stats.FormatText
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	scanCountWords bool
	scanCountChars bool
	scanExtract    bool
	scanVerbose    bool
	scanFormat     string
	scanWorkers    int
	scanGrace      time.Duration
	scanStrict     bool
	scanTop        int
	scanWordsFile  string
	scanColor      bool
	scanLogLevel   string
	scanLogFormat  string
	configPath     string
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var errFilesFailed = errors.New("some files could not be scanned")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordscan WORDS FILE...",
		Short: "Count and extract target words across text files",
		Long: `Scan text files in parallel for a comma-separated list of target words.

Per-file statistics are printed as each file's summary, followed by the
aggregate over every file that could be read. With --words-file all
positional arguments are files.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          validateArgs,
		RunE:          runScanCmd,
	}

	rootCmd.Flags().BoolVarP(&scanCountWords, "count-words", "w", false, "count occurrences of each word")
	rootCmd.Flags().BoolVarP(&scanCountChars, "count-chars", "c", false, "count characters of each file")
	rootCmd.Flags().BoolVarP(&scanExtract, "extract", "e", false, "extract sentences containing each word")
	rootCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "record time spent scanning each file")
	rootCmd.Flags().StringVar(&scanFormat, "format", defaultFormat, "output format: text, json or table")
	rootCmd.Flags().IntVar(&scanWorkers, "workers-multiplier", pipeline.DefaultWorkersMultiplier, "concurrent files per available CPU")
	rootCmd.Flags().DurationVar(&scanGrace, "shutdown-grace", pipeline.DefaultShutdownGrace, "time allowed for in-flight files after the scan")
	rootCmd.Flags().IntVar(&scanTop, "top", 0, "table output: only show the N most frequent words")
	rootCmd.Flags().BoolVar(&scanStrict, "strict", false, "exit with status 2 when any file fails")
	rootCmd.Flags().StringVar(&scanWordsFile, "words-file", "", "read target words from a file, one per line")
	rootCmd.Flags().BoolVar(&scanColor, "color", false, "force colored output")
	rootCmd.Flags().StringVar(&scanLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&scanLogFormat, "log-format", defaultLogFormat, "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("words-file") {
		if len(args) < 1 {
			return fmt.Errorf("requires at least one FILE")
		}
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("requires WORDS and at least one FILE")
	}
	return nil
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "count-words", &scanCountWords, fileCfg.Scan.CountWords)
	applyBoolConfig(cmd, "count-chars", &scanCountChars, fileCfg.Scan.CountChars)
	applyBoolConfig(cmd, "extract", &scanExtract, fileCfg.Scan.Extract)
	applyBoolConfig(cmd, "verbose", &scanVerbose, fileCfg.Scan.Verbose)
	applyStringConfig(cmd, "format", &scanFormat, fileCfg.Scan.Format)
	applyIntConfig(cmd, "workers-multiplier", &scanWorkers, fileCfg.Scan.WorkersMultiplier)
	applyIntConfig(cmd, "top", &scanTop, fileCfg.Scan.Top)
	applyStringConfig(cmd, "log-level", &scanLogLevel, fileCfg.Scan.LogLevel)
	applyStringConfig(cmd, "log-format", &scanLogFormat, fileCfg.Scan.LogFormat)
	if err := applyDurationConfig(cmd, "shutdown-grace", &scanGrace, fileCfg.Scan.ShutdownGrace); err != nil {
		return err
	}

	words, files, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}

	cfg := model.ScanConfig{
		Features:          features(),
		Words:             words,
		Files:             files,
		WorkersMultiplier: scanWorkers,
		ShutdownGrace:     scanGrace,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  scanLogLevel,
		Format: scanLogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logger.With("run_id", uuid.NewString())

	scheduler, err := pipeline.New(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scheduler.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	report := stats.BuildReport(result, cfg)
	report.Top = scanTop
	if err := stats.Render(out, report, scanFormat, stats.ShouldUseColor(out, scanColor)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	failed := len(result.Failures())
	switch {
	case failed == 0:
		return nil
	case failed == len(files):
		return &exitError{code: 2, err: fmt.Errorf("%w: all %d files failed", errFilesFailed, failed)}
	case scanStrict:
		return &exitError{code: 2, err: fmt.Errorf("%w: %d of %d files failed", errFilesFailed, failed, len(files))}
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func resolveInputs(cmd *cobra.Command, args []string) ([]string, []string, error) {
	if cmd.Flags().Changed("words-file") {
		words, err := wordlist.LoadWords(scanWordsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load word list %s: %w", scanWordsFile, err)
		}
		return words, args, nil
	}
	return wordlist.ParseWords(args[0]), args[1:], nil
}

func features() model.Features {
	var f model.Features
	if scanCountWords {
		f |= model.CountWords
	}
	if scanCountChars {
		f |= model.CountChars
	}
	if scanExtract {
		f |= model.ExtractSentences
	}
	if scanVerbose {
		f |= model.RecordTime
	}
	return f
}

func validateConfig(cfg model.ScanConfig) error {
	if !stats.ValidFormat(scanFormat) {
		return fmt.Errorf("%w: --format must be one of text, json, table", model.ErrInvalidConfig)
	}
	if scanTop < 0 {
		return fmt.Errorf("%w: --top must be >= 0", model.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return wordlist.Validate(cfg.Words)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("%w: invalid %s value %q: %v", model.ErrInvalidConfig, name, *value, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordscan configuration
# Uncomment a value to enable it. CLI flags override config values.

[scan]
# count-words = false         # Count occurrences of each word (-w)
# count-chars = false         # Count characters of each file (-c)
# extract = false             # Extract sentences containing each word (-e)
# verbose = false             # Record time spent per file (-v)
# format = %q             # text, json or table
# workers-multiplier = %d      # Concurrent files per available CPU
# top = 0                     # Table output: only show the N most frequent words
# shutdown-grace = %q        # Time allowed for in-flight files after the scan
# log-level = %q            # debug, info, warn or error
# log-format = %q           # text or json
`,
		defaultFormat,
		pipeline.DefaultWorkersMultiplier,
		pipeline.DefaultShutdownGrace.String(),
		defaultLogLevel,
		defaultLogFormat,
	)
}
