package types

// StdinOrigin labels lines read from standard input.
const StdinOrigin = "stdin"

// Provenance tracks where a source's lines came from.
type Provenance interface {
	Kind() string
	// Path returns the origin label rendered in front of matching lines.
	Path() string
}

// FileProvenance for filesystem files.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// StdinProvenance for standard input.
type StdinProvenance struct{}

// Kind returns "stdin".
func (StdinProvenance) Kind() string {
	return "stdin"
}

// Path returns "stdin".
func (StdinProvenance) Path() string {
	return StdinOrigin
}
