package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// lgrep runs the command with an isolated config directory.
func lgrep(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LGREP_CONFIG", "")
	t.Setenv("LGREP_COLOR", "")
	t.Setenv("LGREP_ENGINE", "")
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func zipOf(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestSearch_StdinLiteral(t *testing.T) {
	res := lgrep(t, "Hello HELLO\nbye\nhello there\n", "-i", "hello")

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, "Hello HELLO\nhello there\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestSearch_NoMatch(t *testing.T) {
	res := lgrep(t, "alpha\nbeta\n", "gamma")

	assert.Equal(t, exitNoMatch, res.code)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestSearch_InvalidRegex(t *testing.T) {
	res := lgrep(t, "(\n", "-e", "(")

	assert.Equal(t, exitError, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `lgrep: invalid pattern "("`)
}

func TestSearch_RegexDedup(t *testing.T) {
	res := lgrep(t, "cat dog cat\n", "-e", "c.t")

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, "cat dog cat\n", res.stdout)
}

func TestSearch_RegexDistinctTextsRepeatLine(t *testing.T) {
	res := lgrep(t, "cat cut\n", "-n", "-e", "c.t")

	assert.Equal(t, "1:cat cut\n1:cat cut\n", res.stdout)
}

func TestSearch_MissingPattern(t *testing.T) {
	res := lgrep(t, "")

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "missing PATTERN")
}

func TestSearch_OriginPrefix(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "needle one\nhay\n")
	b := writeFile(t, dir, "b.txt", "hay\nneedle two\n")

	res := lgrep(t, "", "-n", "needle", a, b)
	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, a+":1:needle one\n"+b+":2:needle two\n", res.stdout)

	res = lgrep(t, "", "needle", a)
	assert.Equal(t, "needle one\n", res.stdout, "single source has no prefix")

	res = lgrep(t, "", "-H", "needle", a)
	assert.Equal(t, a+":needle one\n", res.stdout)

	res = lgrep(t, "", "--no-filename", "needle", a, b)
	assert.Equal(t, "needle one\nneedle two\n", res.stdout)
}

func TestSearch_StdinDashAmongFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "x from file\n")

	res := lgrep(t, "x from stdin\n", "x", "-", a)

	assert.Equal(t, "stdin:x from stdin\n"+a+":x from file\n", res.stdout)
}

func TestSearch_AbortsOnMissingSource(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "match\n")
	missing := filepath.Join(dir, "missing.txt")

	res := lgrep(t, "", "match", a, missing, a)

	assert.Equal(t, exitError, res.code)
	assert.Equal(t, a+":match\n", res.stdout, "output before the failure stays")
	assert.Contains(t, res.stderr, missing+": unavailable")
}

func TestSearch_DecodingError(t *testing.T) {
	res := lgrep(t, "ok\n\xff\xfe\n", "ok")

	assert.Equal(t, exitError, res.code)
	assert.Equal(t, "ok\n", res.stdout)
	assert.Contains(t, res.stderr, "stdin:2: decoding")
}

func TestSearch_Count(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "x\nx\ny\n")
	b := writeFile(t, dir, "b.txt", "y\n")

	res := lgrep(t, "", "-c", "x", a, b)

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, a+":2\n"+b+":0\n", res.stdout)
}

func TestSearch_FilesWithMatches(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "y\n")
	b := writeFile(t, dir, "b.txt", "x\nx\n")

	res := lgrep(t, "", "-l", "x", a, b)

	assert.Equal(t, b+"\n", res.stdout)
}

func TestSearch_CountAndFilesConflict(t *testing.T) {
	res := lgrep(t, "", "-c", "-l", "x")

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "mutually exclusive")
}

func TestSearch_MaxCount(t *testing.T) {
	res := lgrep(t, "a1\na2\na3\n", "-m", "2", "a")

	assert.Equal(t, "a1\na2\n", res.stdout)
}

func TestSearch_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "token b\n")
	writeFile(t, dir, "a/c.txt", "token c\n")
	writeFile(t, dir, ".secret", "token hidden\n")

	res := lgrep(t, "", "-r", "token", dir)

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t,
		filepath.Join(dir, "a", "c.txt")+":token c\n"+filepath.Join(dir, "b.txt")+":token b\n",
		res.stdout)

	res = lgrep(t, "", "-r", "--hidden", "-c", "token", dir)
	assert.Contains(t, res.stdout, filepath.Join(dir, ".secret")+":1\n")
}

func TestSearch_DirectoryWithoutRecursive(t *testing.T) {
	res := lgrep(t, "", "x", t.TempDir())

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "is a directory")
}

func TestSearch_ColorAlways(t *testing.T) {
	res := lgrep(t, "a cat\n", "--color", "always", "cat")

	match := color.New(color.Bold, color.FgRed)
	match.EnableColor()
	assert.Equal(t, "a "+match.Sprint("cat")+"\n", res.stdout)
}

func TestSearch_JSON(t *testing.T) {
	res := lgrep(t, "one\ntwo one\n", "--format", "json", "one")

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 2)

	var rec struct {
		Origin string `json:"origin"`
		Line   int    `json:"line"`
		Text   string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "stdin", rec.Origin)
	assert.Equal(t, 2, rec.Line)
	assert.Equal(t, "two one", rec.Text)
}

func TestSearch_SARIF(t *testing.T) {
	res := lgrep(t, "secret\n", "--format", "sarif", "secret")

	assert.Equal(t, exitMatch, res.code)
	assert.Contains(t, res.stdout, `"version": "2.1.0"`)
	assert.Contains(t, res.stdout, `"ruleId": "lgrep.literal"`)

	res = lgrep(t, "secret\n", "--format", "sarif", "-c", "secret")
	assert.Equal(t, exitError, res.code)
}

func TestSearch_BacktrackEngine(t *testing.T) {
	res := lgrep(t, "foobar\nfoobaz\n", "-e", "--engine", "backtrack", `foo(?=baz)`)

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, "foobaz\n", res.stdout)
}

func TestSearch_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "lgrep.yaml", "line_number: true\nignore_case: true\n")

	res := lgrep(t, "NEEDLE\n", "--config", cfg, "needle")
	assert.Equal(t, "1:NEEDLE\n", res.stdout)

	res = lgrep(t, "NEEDLE\n", "--config", cfg, "--line-number=false", "needle")
	assert.Equal(t, "NEEDLE\n", res.stdout, "explicit flags win over the file")
}

func TestSearch_BadConfig(t *testing.T) {
	res := lgrep(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "x")

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "failed to load config file")
}

func TestSearch_Extract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.zip")
	require.NoError(t, os.WriteFile(path, zipOf(t, "todo.txt", "buy milk\ncall bob\n"), 0644))

	res := lgrep(t, "", "-H", "--extract", "zip", "bob", path)

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, path+":todo.txt:call bob\n", res.stdout)
}

func TestSearch_VerboseLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "lgrep.log")

	res := lgrep(t, "x\n", "-v", "--log-file", logPath, "x")

	assert.Equal(t, exitMatch, res.code)
	assert.Contains(t, res.stderr, "[debug] searching stdin")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[debug] searching stdin")
}

func TestVersion(t *testing.T) {
	res := lgrep(t, "", "--version")

	assert.Equal(t, exitMatch, res.code)
	assert.Contains(t, res.stdout, "lgrep v")
	assert.Contains(t, res.stdout, "Commit:")
	assert.Contains(t, res.stdout, "Go version:")
	assert.Contains(t, res.stdout, "OS/Arch:")
}
