package jsonsplit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestSplit(t *testing.T) {
	input := writeInput(t, `{"items":[{"id":"a1","v":1},{"id":"a2","v":2},{"x":3}]}`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	err := Split(&buf, input, "items", dest, Options{})
	require.NoError(t, err)

	a1, err := os.ReadFile(filepath.Join(dest, "a1.json"))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"id\": \"a1\",\n  \"v\": 1\n}", string(a1))

	_, err = os.Stat(filepath.Join(dest, "a2.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	out := buf.String()
	require.Contains(t, out, "Warning: Item at index 2 does not have 'id' key. Skipping.")
	require.Contains(t, out, "Processed 3 items from 'items'")
}

func TestSplitCustomIDKey(t *testing.T) {
	input := writeInput(t, `{"jobs":[{"job_id":"4821","title":"Teacher"}]}`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	err := Split(&buf, input, "jobs", dest, Options{IDKey: "job_id"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "4821.json"))
	require.NoError(t, err)
}

func TestSplitNumericID(t *testing.T) {
	input := writeInput(t, `{"items":[{"id":3,"v":"x"}]}`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	require.NoError(t, Split(&buf, input, "items", dest, Options{}))

	_, err := os.Stat(filepath.Join(dest, "3.json"))
	require.NoError(t, err)
}

func TestSplitClean(t *testing.T) {
	input := writeInput(t, `{"items":[{"id":"a1"}]}`)
	dest := t.TempDir()
	stale := filepath.Join(dest, "stale.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0644))

	var buf bytes.Buffer
	err := Split(&buf, input, "items", dest, Options{Clean: true})
	require.NoError(t, err)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, "a1.json"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Cleaning destination directory")
}

func TestSplitPreservesExistingFiles(t *testing.T) {
	input := writeInput(t, `{"items":[{"id":"a1"}]}`)
	dest := t.TempDir()
	unrelated := filepath.Join(dest, "unrelated.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep me"), 0644))

	var buf bytes.Buffer
	require.NoError(t, Split(&buf, input, "items", dest, Options{}))

	contents, err := os.ReadFile(unrelated)
	require.NoError(t, err)
	require.Equal(t, "keep me", string(contents))
}

func TestSplitOverwritesSameID(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")

	first := writeInput(t, `{"items":[{"id":"a1","v":1}]}`)
	var buf bytes.Buffer
	require.NoError(t, Split(&buf, first, "items", dest, Options{}))

	second := writeInput(t, `{"items":[{"id":"a1","v":2}]}`)
	require.NoError(t, Split(&buf, second, "items", dest, Options{}))

	contents, err := os.ReadFile(filepath.Join(dest, "a1.json"))
	require.NoError(t, err)
	require.Contains(t, string(contents), `"v": 2`)
}

func TestSplitInvalidJSON(t *testing.T) {
	input := writeInput(t, `{"items": [`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	err := Split(&buf, input, "items", dest, Options{})
	require.ErrorContains(t, err, "is not a valid JSON file")

	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestSplitMissingKey(t *testing.T) {
	input := writeInput(t, `{"other":[]}`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	err := Split(&buf, input, "items", dest, Options{})
	require.ErrorContains(t, err, "key 'items' not found")
}

func TestSplitNonArrayValue(t *testing.T) {
	input := writeInput(t, `{"items":{"id":"a1"}}`)
	dest := filepath.Join(t.TempDir(), "out")

	var buf bytes.Buffer
	err := Split(&buf, input, "items", dest, Options{})
	require.ErrorContains(t, err, "does not contain a list of objects")

	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}
