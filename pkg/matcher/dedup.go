package matcher

// deduplicator tracks matched substrings by text so each distinct value is
// reported once per line.
type deduplicator map[string]struct{}

// add marks text as seen and reports whether it was new.
func (d deduplicator) add(text string) bool {
	if _, ok := d[text]; ok {
		return false
	}
	d[text] = struct{}{}
	return true
}
