package replhistory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.cbor")

	h := &History{}
	h.Append("print 1;")
	h.Append("var x = 2;")
	require.NoError(t, h.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"print 1;", "var x = 2;"}, loaded.Lines)
}

func TestLoadMissingFileReturnsEmptyHistory(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "nope.cbor"))
	require.NoError(t, err)
	assert.Empty(t, h.Lines)
}

func TestSaveIsCanonicalAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cbor")
	b := filepath.Join(dir, "b.cbor")

	h := &History{Lines: []string{"same", "content"}}
	require.NoError(t, h.Save(a))
	require.NoError(t, h.Save(b))

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, dataA, dataB)
}
