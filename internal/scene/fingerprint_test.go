package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIsShortStableDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.webp")
	require.NoError(t, os.WriteFile(path, []byte("image bytes"), 0o644))

	h1 := Fingerprint(path)
	h2 := Fingerprint(path)

	assert.Len(t, h1, 12)
	assert.Equal(t, h1, h2)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.webp")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))
	h1 := Fingerprint(path)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	h2 := Fingerprint(path)

	assert.NotEqual(t, h1, h2)
}

func TestFingerprintMissingFileIsEmpty(t *testing.T) {
	assert.Equal(t, "", Fingerprint(filepath.Join(t.TempDir(), "nope.webp")))
}
