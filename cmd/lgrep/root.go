package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/lgrep/pkg/config"
	"github.com/praetorian-inc/lgrep/pkg/matcher"
	"github.com/praetorian-inc/lgrep/pkg/render"
	"github.com/praetorian-inc/lgrep/pkg/scanner"
	"github.com/praetorian-inc/lgrep/pkg/source"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// searchFlags holds the command-line flags of one invocation.
type searchFlags struct {
	regex          bool
	fixedStrings   bool
	ignoreCase     bool
	lineNumber     bool
	withFilename   bool
	noFilename     bool
	recursive      bool
	hidden         bool
	noIgnore       bool
	followSymlinks bool
	count          bool
	filesWithMatch bool
	maxCount       int
	maxFileSize    int64
	engine         string
	format         string
	color          string
	extract        string
	configPath     string
	logFile        string
	verbose        bool
	showVersion    bool
}

func newRootCmd() *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "lgrep [flags] PATTERN [FILE...]",
		Short: "lgrep - search lines for a literal or regular expression pattern",
		Long: `lgrep prints every line of its input that contains PATTERN, with each
match highlighted. PATTERN is a literal substring unless -e is given.

With no FILE, or when FILE is -, standard input is read.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.regex, "regexp", "e", false, "Treat PATTERN as a regular expression")
	flags.BoolVarP(&f.fixedStrings, "fixed-strings", "F", false, "Treat PATTERN as a literal string (overrides -e)")
	flags.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "Ignore case distinctions")
	flags.BoolVarP(&f.lineNumber, "line-number", "n", false, "Prefix each line with its line number")
	flags.BoolVarP(&f.withFilename, "with-filename", "H", false, "Always prefix each line with its origin")
	flags.BoolVar(&f.noFilename, "no-filename", false, "Never prefix lines with their origin")
	flags.BoolVarP(&f.recursive, "recursive", "r", false, "Search directories recursively")
	flags.BoolVar(&f.hidden, "hidden", false, "Search hidden files and directories")
	flags.BoolVar(&f.noIgnore, "no-ignore", false, "Do not honour .gitignore when recursing")
	flags.BoolVarP(&f.followSymlinks, "follow", "L", false, "Follow symbolic links when recursing")
	flags.BoolVarP(&f.count, "count", "c", false, "Print only a count of matching lines per source")
	flags.BoolVarP(&f.filesWithMatch, "files-with-matches", "l", false, "Print only the names of sources with a match")
	flags.IntVarP(&f.maxCount, "max-count", "m", 0, "Stop reading a source after NUM matching lines")
	flags.Int64Var(&f.maxFileSize, "max-file-size", 0, "Skip files larger than this many bytes when recursing (0 = no limit)")
	flags.StringVar(&f.engine, "engine", "", "Regex engine: re2, backtrack")
	flags.StringVar(&f.format, "format", "", "Output format: text, json, sarif")
	flags.StringVar(&f.color, "color", "", "Color output: auto, always, never")
	flags.StringVar(&f.extract, "extract", "", "Extract text from documents (comma-separated: pdf,docx,xlsx,zip,7z or 'all')")
	flags.StringVar(&f.configPath, "config", "", "Path to config file")
	flags.StringVar(&f.logFile, "log-file", "", "Also write diagnostics to this rotating log file")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&f.showVersion, "version", false, "Show version information")

	return cmd
}

// applyConfig fills flags the user did not set from the config file.
func applyConfig(cmd *cobra.Command, f *searchFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if !changed("ignore-case") {
		f.ignoreCase = cfg.IgnoreCase
	}
	if !changed("line-number") {
		f.lineNumber = cfg.LineNumber
	}
	if !changed("hidden") {
		f.hidden = cfg.Hidden
	}
	if !changed("engine") {
		f.engine = cfg.Engine
	}
	if !changed("format") {
		f.format = cfg.Format
	}
	if !changed("color") {
		f.color = cfg.Color
	}
	if !changed("extract") {
		f.extract = cfg.Extract
	}
	if !changed("max-file-size") {
		f.maxFileSize = cfg.MaxFileSize
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
}

// searchConfig builds the search configuration for pattern and targets.
func (f *searchFlags) searchConfig(pattern string, targets []string) (types.SearchConfig, error) {
	engine, err := types.ParseEngine(f.engine)
	if err != nil {
		return types.SearchConfig{}, err
	}

	mode := types.ModeLiteral
	if f.regex && !f.fixedStrings {
		mode = types.ModeRegex
	}

	showOrigin := f.withFilename || len(targets) > 1 || f.recursive
	if f.noFilename {
		showOrigin = false
	}

	return types.SearchConfig{
		Pattern:         pattern,
		Mode:            mode,
		Engine:          engine,
		CaseInsensitive: f.ignoreCase,
		ShowLineNumbers: f.lineNumber,
		ShowOrigin:      showOrigin,
	}, nil
}

func runSearch(cmd *cobra.Command, f *searchFlags, args []string) error {
	if f.showVersion {
		return runVersion(cmd)
	}
	if len(args) == 0 {
		return errors.New("missing PATTERN (see lgrep --help)")
	}
	if f.count && f.filesWithMatch {
		return errors.New("--count and --files-with-matches are mutually exclusive")
	}
	if f.maxCount < 0 {
		return errors.New("--max-count must be non-negative")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, f, cfg)

	closer, err := setupLogging(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	pattern, targets := args[0], args[1:]
	searchCfg, err := f.searchConfig(pattern, targets)
	if err != nil {
		return err
	}
	if err := source.ValidateExtract(f.extract); err != nil {
		return err
	}

	logger := debugLogger{enabled: f.verbose}
	core, err := scanner.NewCore(searchCfg, logger, matcher.WithMatchTimeout(cfg.MatchTimeout))
	if err != nil {
		return err
	}
	defer core.Close()

	colorOn, err := render.ColorEnabled(f.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	renderer, err := render.New(f.format, cmd.OutOrStdout(), render.Options{
		ShowOrigin:      searchCfg.ShowOrigin,
		ShowLineNumbers: searchCfg.ShowLineNumbers,
		Color:           colorOn,
		Colors:          cfg.Colors,
		Search:          searchCfg,
		Version:         version,
	})
	if err != nil {
		return err
	}
	if _, ok := renderer.(*render.SARIF); ok && (f.count || f.filesWithMatch) {
		return render.ErrSummaryUnsupported
	}

	enumerator := source.NewEnumerator(source.Config{
		Recursive:       f.recursive,
		IncludeHidden:   f.hidden,
		NoIgnore:        f.noIgnore,
		MaxFileSize:     f.maxFileSize,
		FollowSymlinks:  f.followSymlinks,
		ExtractArchives: f.extract,
		Stdin:           cmd.InOrStdin(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	matched, err := search(ctx, core, enumerator, renderer, f, targets)
	if err != nil {
		return err
	}
	if err := renderer.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Log("%d matching lines", matched)
	if matched == 0 {
		return errNoMatch
	}
	return nil
}

// search runs the core over every source and renders the results. It
// returns the total number of matching lines.
func search(ctx context.Context, core *scanner.Core, enumerator *source.Enumerator, renderer render.Renderer, f *searchFlags, targets []string) (int, error) {
	maxCount := f.maxCount
	if f.filesWithMatch {
		maxCount = 1
	}

	total := 0
	for src, err := range enumerator.Sources(ctx, targets) {
		if err != nil {
			return total, err
		}

		lines := 0
		var last uint64
		for rec, err := range core.SearchSource(src, maxCount) {
			if err != nil {
				return total + lines, err
			}
			if rec.Index != last {
				lines++
				last = rec.Index
			}
			if f.count || f.filesWithMatch {
				continue
			}
			if err := renderer.Record(rec); err != nil {
				return total + lines, fmt.Errorf("writing output: %w", err)
			}
		}
		total += lines

		var werr error
		switch {
		case f.count:
			werr = renderer.Count(src.Origin(), lines)
		case f.filesWithMatch && lines > 0:
			werr = renderer.File(src.Origin())
		}
		if werr != nil {
			return total, fmt.Errorf("writing output: %w", werr)
		}
	}

	return total, nil
}
