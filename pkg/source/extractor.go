package source

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bodgit/sevenzip"
	"github.com/ledongthuc/pdf"
)

// ExtractTypes lists the extensions (without the dot) text can be extracted from.
var ExtractTypes = []string{"pdf", "docx", "xlsx", "zip", "7z"}

// maxMemberSize bounds the size of a single archive member read into memory.
const maxMemberSize = 64 << 20

// ExtractedContent is text pulled out of a document or archive member.
type ExtractedContent struct {
	Name    string // member path within the archive, e.g. "word/document.xml"
	Content []byte
}

// ExtractText extracts the searchable text of a pdf, docx, xlsx, zip or 7z file.
func ExtractText(path string, content []byte) ([]ExtractedContent, error) {
	switch ext := getExtension(path); ext {
	case "xlsx":
		return extractXLSX(content)
	case "docx":
		return extractDOCX(content)
	case "pdf":
		return extractPDF(content)
	case "zip":
		return extractZIP(content)
	case "7z":
		return extract7Z(content)
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}

// ValidateExtract checks a comma-separated extraction list.
func ValidateExtract(list string) error {
	if list == "" || list == "all" {
		return nil
	}
	for _, t := range strings.Split(strings.ToLower(list), ",") {
		t = strings.TrimSpace(t)
		if !slices.Contains(ExtractTypes, t) {
			return fmt.Errorf("unknown extract type %q (want %s or all)", t, strings.Join(ExtractTypes, ","))
		}
	}
	return nil
}

func shouldExtract(config Config, ext string) bool {
	if config.ExtractArchives == "" || !slices.Contains(ExtractTypes, ext) {
		return false
	}
	if config.ExtractArchives == "all" {
		return true
	}
	for _, t := range strings.Split(strings.ToLower(config.ExtractArchives), ",") {
		if strings.TrimSpace(t) == ext {
			return true
		}
	}
	return false
}

// getExtension returns the lower-cased extension of path without the dot.
func getExtension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// extractXLSX extracts shared strings and inline sheet text, one row or
// string per line.
func extractXLSX(content []byte) ([]ExtractedContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx as zip: %w", err)
	}

	var results []ExtractedContent
	for _, file := range zr.File {
		isSheet := strings.HasPrefix(file.Name, "xl/worksheets/sheet") && strings.HasSuffix(file.Name, ".xml")
		if file.Name != "xl/sharedStrings.xml" && !isSheet {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			continue
		}
		if text := extractXMLText(data, "si", "row"); text != "" {
			results = append(results, ExtractedContent{Name: file.Name, Content: []byte(text)})
		}
	}
	return results, nil
}

// extractDOCX extracts word/document.xml, one paragraph per line.
func extractDOCX(content []byte) ([]ExtractedContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx as zip: %w", err)
	}

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if text := extractXMLText(data, "p"); text != "" {
			return []ExtractedContent{{Name: file.Name, Content: []byte(text)}}, nil
		}
	}
	return nil, nil
}

// extractPDF extracts the plain text of every page using ledongthuc/pdf.
func extractPDF(content []byte) ([]ExtractedContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var text strings.Builder
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			text.WriteString("\n")
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return nil, nil
	}
	return []ExtractedContent{{Name: "content", Content: []byte(text.String())}}, nil
}

// extractZIP returns the text members of a zip archive in archive order.
func extractZIP(content []byte) ([]ExtractedContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	var results []ExtractedContent
	for _, file := range zr.File {
		if file.FileInfo().IsDir() || file.UncompressedSize64 > maxMemberSize {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if isText(data) {
			results = append(results, ExtractedContent{Name: file.Name, Content: data})
		}
	}
	return results, nil
}

// extract7Z returns the text members of a 7z archive in archive order.
func extract7Z(content []byte) ([]ExtractedContent, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	var results []ExtractedContent
	for _, file := range r.File {
		if file.FileInfo().IsDir() || file.UncompressedSize > maxMemberSize {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if isText(data) {
			results = append(results, ExtractedContent{Name: file.Name, Content: data})
		}
	}
	return results, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxMemberSize))
}

// isText reports whether an archive member looks like UTF-8 text.
func isText(data []byte) bool {
	head := data[:min(len(data), 8000)]
	return bytes.IndexByte(head, 0) < 0 && utf8.Valid(data)
}

// extractXMLText collects the character data of an XML document. Each
// closing element named in breaks ends a line; other runs are joined with
// a space.
func extractXMLText(data []byte, breaks ...string) string {
	var text, line strings.Builder
	flush := func() {
		if line.Len() > 0 {
			text.WriteString(line.String())
			text.WriteString("\n")
			line.Reset()
		}
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.CharData:
			content := cleanText(string(t))
			if content == "" {
				continue
			}
			if line.Len() > 0 {
				line.WriteString(" ")
			}
			line.WriteString(content)
		case xml.EndElement:
			if slices.Contains(breaks, t.Name.Local) {
				flush()
			}
		}
	}
	flush()
	return text.String()
}

// cleanText collapses whitespace and drops non-printable characters.
func cleanText(s string) string {
	var result strings.Builder
	lastSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				result.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsPrint(r):
			result.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(result.String())
}
