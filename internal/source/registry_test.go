package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get("Xlsx"))
	assert.NotNil(t, r.ForPath("subjects.JSON"))
	assert.Nil(t, r.ForPath("notes.txt"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(CSVReader{})
	assert.Panics(t, func() { r.Register(CSVReader{}) })
}

func TestRegistry_ReadFile(t *testing.T) {
	tbl, err := DefaultRegistry().ReadFile("../../testdata/default-subjects.csv")
	require.NoError(t, err)
	assert.Equal(t, 18, tbl.Len())

	_, err = DefaultRegistry().ReadFile("../../testdata/missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = DefaultRegistry().ReadFile("notes.txt")
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subjects.csv"), []byte("科目代码\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$book.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "archive.csv"), 0o755))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "book.xlsx", files[0].Name)
	assert.Equal(t, "xlsx", files[0].Format)
	assert.Equal(t, "subjects.csv", files[1].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := DefaultRegistry().Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}
