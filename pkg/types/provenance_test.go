package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileProvenance(t *testing.T) {
	prov := FileProvenance{FilePath: "/path/to/file.txt"}

	assert.Equal(t, "file", prov.Kind())
	assert.Equal(t, "/path/to/file.txt", prov.Path())
}

func TestStdinProvenance(t *testing.T) {
	var prov Provenance = StdinProvenance{}

	assert.Equal(t, "stdin", prov.Kind())
	assert.Equal(t, StdinOrigin, prov.Path())
}

func TestArchiveProvenance(t *testing.T) {
	prov := ArchiveProvenance{ArchivePath: "docs/report.docx", MemberPath: "word/document.xml"}

	assert.Equal(t, "archive", prov.Kind())
	assert.Equal(t, "docs/report.docx:word/document.xml", prov.Path())
}

func TestArchiveProvenance_WithoutMember(t *testing.T) {
	prov := ArchiveProvenance{ArchivePath: "logs.7z"}

	assert.Equal(t, "logs.7z", prov.Path())
}
