package source

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// ErrInvalidUTF8 is wrapped by decoding errors for lines that are not UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Lines lazily splits r into lines labelled with origin. The terminator
// ("\n" or "\r\n") is stripped and indexes start at 1. Lines are read on
// demand, so an unbounded reader such as a terminal yields as input arrives.
// A read failure or a line that is not valid UTF-8 is yielded as a
// *types.SourceError and ends the sequence.
func Lines(r io.Reader, origin string) iter.Seq2[types.Line, error] {
	return func(yield func(types.Line, error) bool) {
		br := bufio.NewReader(r)
		var index uint64
		for {
			text, err := br.ReadString('\n')
			if len(text) > 0 {
				index++
				content := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
				if !utf8.ValidString(content) {
					yield(types.Line{}, &types.SourceError{
						Origin: origin,
						Kind:   types.SourceDecoding,
						Index:  index,
						Err:    ErrInvalidUTF8,
					})
					return
				}
				if !yield(types.Line{Content: content, Origin: origin, Index: index}, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(types.Line{}, &types.SourceError{
					Origin: origin,
					Kind:   types.SourceUnavailable,
					Err:    err,
				})
				return
			}
		}
	}
}
