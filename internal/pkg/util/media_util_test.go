package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImagePNG(t *testing.T, w, h int) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func TestGetSafeContentType(t *testing.T) {
	reader := testImagePNG(t, 32, 32)

	ct, err := GetSafeContentType(reader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	// 嗅探后读取位置要回到开头
	pos, err := reader.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestGetSafeContentTypeNotImage(t *testing.T) {
	ct, err := GetSafeContentType(bytes.NewReader([]byte("hello plain text")))
	require.NoError(t, err)
	assert.Contains(t, ct, "text/plain")
}

func TestMakeAvatarThumbnail(t *testing.T) {
	// 非正方形输入也要居中裁成固定尺寸
	reader := testImagePNG(t, 640, 360)

	buf, err := MakeAvatarThumbnail(reader)
	require.NoError(t, err)

	thumb, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, avatarSize, thumb.Bounds().Dx())
	assert.Equal(t, avatarSize, thumb.Bounds().Dy())
}

func TestMakeAvatarThumbnailBadInput(t *testing.T) {
	_, err := MakeAvatarThumbnail(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
