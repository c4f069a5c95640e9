package types

// Line is a single input record. Content carries no line terminator and
// Index is 1-based within its origin.
type Line struct {
	Content string
	Origin  string
	Index   uint64
}
