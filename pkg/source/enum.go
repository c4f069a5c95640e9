package source

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// ErrIsDirectory is returned for a directory target without recursion.
var ErrIsDirectory = errors.New("is a directory")

// StdinTarget is the target name that selects standard input.
const StdinTarget = "-"

// Config for enumeration.
type Config struct {
	// Recursive descends into directory targets.
	Recursive bool

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// NoIgnore disables .gitignore filtering during recursion.
	NoIgnore bool

	// MaxFileSize skips larger files found by recursion (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links found by recursion.
	FollowSymlinks bool

	// ExtractArchives enables text extraction (comma-separated: pdf,docx,xlsx,zip,7z or 'all').
	ExtractArchives string

	// Stdin is read for the "-" target or when no target is given.
	Stdin io.Reader
}

// Enumerator resolves targets into sources.
type Enumerator struct {
	config Config
}

// NewEnumerator creates an enumerator.
func NewEnumerator(config Config) *Enumerator {
	return &Enumerator{config: config}
}

// Sources yields a source per target in argument order. Directories expand
// in lexical walk order. No targets means standard input. The first target
// that cannot be resolved is yielded as a *types.SourceError and ends the
// sequence.
func (e *Enumerator) Sources(ctx context.Context, targets []string) iter.Seq2[Source, error] {
	return func(yield func(Source, error) bool) {
		if len(targets) == 0 {
			yield(Stdin(e.config.Stdin), nil)
			return
		}

		for _, target := range targets {
			if err := ctx.Err(); err != nil {
				yield(Source{}, err)
				return
			}

			if target == StdinTarget {
				if !yield(Stdin(e.config.Stdin), nil) {
					return
				}
				continue
			}

			info, err := os.Stat(target)
			if err != nil {
				yield(Source{}, unavailable(target, err))
				return
			}

			var sources iter.Seq2[Source, error]
			switch {
			case info.IsDir() && !e.config.Recursive:
				yield(Source{}, unavailable(target, ErrIsDirectory))
				return
			case info.IsDir():
				sources = e.walk(ctx, filepath.Clean(target))
			default:
				sources = e.fileSources(target)
			}

			for src, err := range sources {
				if !yield(src, err) || err != nil {
					return
				}
			}
		}
	}
}

// fileSources yields the file itself, or the documents extracted from it
// when extraction is enabled for its type.
func (e *Enumerator) fileSources(path string) iter.Seq2[Source, error] {
	return func(yield func(Source, error) bool) {
		if !shouldExtract(e.config, getExtension(path)) {
			yield(File(path), nil)
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			yield(Source{}, unavailable(path, err))
			return
		}
		extracted, err := ExtractText(path, content)
		if err != nil {
			yield(Source{}, &types.SourceError{Origin: path, Kind: types.SourceDecoding, Err: err})
			return
		}
		for _, ec := range extracted {
			prov := types.ArchiveProvenance{ArchivePath: path, MemberPath: ec.Name}
			if !yield(Text(prov, ec.Content), nil) {
				return
			}
		}
	}
}
