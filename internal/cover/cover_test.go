package cover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTypes(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp"} {
		assert.NoError(t, Validate(mime, 100, 2), mime)
	}
	for _, mime := range []string{"image/gif", "IMAGE/PNG", "image/png; charset=x", ""} {
		assert.ErrorIs(t, Validate(mime, 100, 2), ErrUnsupportedType, mime)
	}
}

func TestValidateSizeBoundaryInclusive(t *testing.T) {
	assert.NoError(t, Validate("image/png", 2*1024*1024, 2))
	err := Validate("image/png", 2*1024*1024+1, 2)
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "2.0 MiB")
}

func TestValidateDefaultLimit(t *testing.T) {
	assert.NoError(t, Validate("image/webp", 2*1024*1024, 0))
	assert.ErrorIs(t, Validate("image/webp", 3*1024*1024, -1), ErrTooLarge)
	assert.ErrorIs(t, Validate("image/webp", 600*1024, 0.5), ErrTooLarge)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "cover.png")
	// PNG signature followed by padding.
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(png, data, 0o644))
	assert.NoError(t, ValidateFile(png, 2))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))
	assert.ErrorIs(t, ValidateFile(txt, 2), ErrUnsupportedType)

	assert.Error(t, ValidateFile(filepath.Join(dir, "missing.png"), 2))
}
