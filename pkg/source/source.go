// Package source turns command-line targets (files, directories, standard
// input, extractable documents) into ordered, lazily read line sources.
package source

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Source is one input whose lines are read on demand.
type Source struct {
	prov types.Provenance
	open func() (io.ReadCloser, error)
}

// Stdin returns a source reading r, labelled "stdin".
func Stdin(r io.Reader) Source {
	return Source{
		prov: types.StdinProvenance{},
		open: func() (io.ReadCloser, error) {
			if r == nil {
				return nil, errors.New("no standard input")
			}
			return io.NopCloser(r), nil
		},
	}
}

// File returns a source for the file at path. The file is opened when its
// lines are first requested.
func File(path string) Source {
	return Source{
		prov: types.FileProvenance{FilePath: path},
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Text returns a source over in-memory content, such as extracted text.
func Text(prov types.Provenance, content []byte) Source {
	return Source{
		prov: prov,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// Origin returns the label attached to the source's lines.
func (s Source) Origin() string {
	if s.prov == nil {
		return ""
	}
	return s.prov.Path()
}

// Provenance describes where the source came from.
func (s Source) Provenance() types.Provenance {
	return s.prov
}

// Lines opens the source and yields its lines. Failing to open is yielded
// as a *types.SourceError of kind SourceUnavailable.
func (s Source) Lines() iter.Seq2[types.Line, error] {
	return func(yield func(types.Line, error) bool) {
		rc, err := s.open()
		if err != nil {
			yield(types.Line{}, unavailable(s.Origin(), err))
			return
		}
		defer rc.Close()

		for line, err := range Lines(rc, s.Origin()) {
			if !yield(line, err) {
				return
			}
		}
	}
}

// unavailable wraps err for origin, dropping the redundant path of a
// *fs.PathError.
func unavailable(origin string, err error) *types.SourceError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &types.SourceError{Origin: origin, Kind: types.SourceUnavailable, Err: err}
}
