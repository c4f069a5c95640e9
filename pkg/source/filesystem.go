package source

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// walk yields sources for the files under root in lexical order, skipping
// hidden entries, .gitignore matches and oversized files as configured.
func (e *Enumerator) walk(ctx context.Context, root string) iter.Seq2[Source, error] {
	return func(yield func(Source, error) bool) {
		// Load .gitignore patterns if present
		var ignore *gitignore.GitIgnore
		if !e.config.NoIgnore {
			gitignorePath := filepath.Join(root, ".gitignore")
			if _, err := os.Stat(gitignorePath); err == nil {
				ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
			}
		}

		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && !e.config.IncludeHidden && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !e.config.IncludeHidden && isHidden(d.Name()) {
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 {
				if !e.config.FollowSymlinks {
					return nil
				}
				target, err := os.Stat(path)
				if err != nil || !target.Mode().IsRegular() {
					return nil
				}
			} else if !d.Type().IsRegular() {
				return nil
			}

			if e.config.MaxFileSize > 0 {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if info.Size() > e.config.MaxFileSize {
					return nil
				}
			}

			if ignore != nil {
				relPath, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				if ignore.MatchesPath(filepath.ToSlash(relPath)) {
					return nil
				}
			}

			for src, err := range e.fileSources(path) {
				if !yield(src, err) || err != nil {
					stopped = true
					return filepath.SkipAll
				}
			}
			return nil
		})

		if err != nil && !stopped {
			origin := root
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				origin = pathErr.Path
			}
			yield(Source{}, unavailable(origin, err))
		}
	}
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
