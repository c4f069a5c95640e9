package types

// ArchiveProvenance labels lines extracted from one member of an archive or
// document. Its origin reads "logs.zip:app/server.log", or
// "report.pdf:content" for formats without named members.
type ArchiveProvenance struct {
	ArchivePath string
	MemberPath  string
}

// Kind returns "archive".
func (a ArchiveProvenance) Kind() string {
	return "archive"
}

// Path returns the origin label. A missing member falls back to the
// archive path alone.
func (a ArchiveProvenance) Path() string {
	if a.MemberPath == "" {
		return a.ArchivePath
	}
	return a.ArchivePath + ":" + a.MemberPath
}
