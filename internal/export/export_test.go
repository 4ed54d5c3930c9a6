package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	require.NoError(t, SavePNG(path, src))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
}

func TestThumbnailLandscape(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 600))
	thumb := Thumbnail(src, 200)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 150, thumb.Bounds().Dy())
}

func TestThumbnailPortrait(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 600))
	thumb := Thumbnail(src, 300)
	assert.Equal(t, 300, thumb.Bounds().Dy())
	assert.Equal(t, 150, thumb.Bounds().Dx())
}

func TestThumbnailSmallImagePassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Equal(t, image.Image(src), Thumbnail(src, 200))
}

func TestUploadPNGIncompleteConfig(t *testing.T) {
	err := UploadPNG(S3Config{}, "renders/x.png", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorContains(t, err, "incomplete config")
}

func TestS3ConfigEnabled(t *testing.T) {
	assert.False(t, S3Config{}.Enabled())
	assert.False(t, S3Config{Bucket: "b"}.Enabled())
	assert.True(t, S3Config{Bucket: "b", AccessKey: "a", SecretKey: "s"}.Enabled())
}
