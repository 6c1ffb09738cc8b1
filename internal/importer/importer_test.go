package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scb_feb.pdf"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uob_feb.PDF"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "processed"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "scb_feb.pdf", files[0].Name)
	assert.Equal(t, "uob_feb.PDF", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "scb_feb.pdf"), files[0].Path)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scb_feb.pdf"), []byte("%PDF"), 0o644))

	require.NoError(t, MarkProcessed(dir, "scb_feb.pdf"))

	assert.NoFileExists(t, filepath.Join(dir, "scb_feb.pdf"))
	assert.FileExists(t, filepath.Join(dir, "processed", "scb_feb.pdf"))
}

func TestMarkProcessed_Missing(t *testing.T) {
	assert.Error(t, MarkProcessed(t.TempDir(), "nope.pdf"))
}
