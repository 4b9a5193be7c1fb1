package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkmar1192/FoundryLite/internal/storage"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(dir)
	require.NoError(t, err)
	return NewRepository(store), dir
}

func TestStateIsolatedPerFingerprint(t *testing.T) {
	repo, _ := newTestRepository(t)

	abc := DefaultSessionState()
	Apply(&abc, []Op{{Type: OpToggle, Mode: ModeHidden, Key: "A1"}})
	repo.SaveState("abc", abc)

	def := repo.LoadState("def")
	assert.Empty(t, def.Hidden)

	reloaded := repo.LoadState("abc")
	assert.Equal(t, []string{"A1"}, reloaded.Hidden)
}

func TestEmptyFingerprintUsesSentinelKey(t *testing.T) {
	repo, dir := newTestRepository(t)

	st := DefaultSessionState()
	st.Note = Note{Visible: true, Text: "waiting for a scene"}
	repo.SaveState("", st)

	_, err := os.Stat(filepath.Join(dir, "nohash.json"))
	require.NoError(t, err)

	reloaded := repo.LoadState("")
	assert.Equal(t, st.Note, reloaded.Note)
}

func TestLoadStateMissingFileReturnsDefault(t *testing.T) {
	repo, _ := newTestRepository(t)

	st := repo.LoadState("deadbeef0000")
	assert.Equal(t, DefaultSessionState(), st)
}

func TestLoadStateMergesOverDefaults(t *testing.T) {
	repo, dir := newTestRepository(t)

	// A document written by an older version carries only some keys;
	// missing ones keep their defaults and unknown ones are ignored.
	doc := []byte(`{"hidden":["A1"],"legacy":true}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.json"), doc, 0o644))

	st := repo.LoadState("abc")
	assert.Equal(t, []string{"A1"}, st.Hidden)
	assert.Empty(t, st.Highlight)
	assert.False(t, st.Note.Visible)
}

func TestLoadStateCorruptFileReturnsDefault(t *testing.T) {
	repo, dir := newTestRepository(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.json"), []byte("{nope"), 0o644))

	assert.Equal(t, DefaultSessionState(), repo.LoadState("abc"))
}

func TestGridAndPresentationRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.Equal(t, DefaultGridVisibility(), repo.LoadGrid())
	assert.Equal(t, DefaultPresentation(), repo.LoadPresentation())

	repo.SaveGrid(GridVisibility{Show: false})
	assert.False(t, repo.LoadGrid().Show)

	p := Presentation{Cols: 30, Rows: 20, ImgCols: 30, ImgRows: 20}
	repo.SavePresentation(p)
	assert.Equal(t, p, repo.LoadPresentation())
}
