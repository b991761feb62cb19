package imagewriter

import (
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	internalimage "github.com/nmeunpack/nme-unpacker/internal/image"
)

func TestWritePNGRoundTrips(t *testing.T) {
	buf := internalimage.RGBABuffer{
		Width:  2,
		Height: 1,
		Pix:    []byte{255, 0, 0, 255, 0, 0, 255, 127},
	}

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, buf))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 1, img.Bounds().Dy())

	nrgba, ok := img.(*stdimage.NRGBA)
	require.True(t, ok)
	require.Equal(t, buf.Pix, nrgba.Pix)
}

func TestWriteBMPRoundTrips(t *testing.T) {
	buf := internalimage.RGBBuffer{
		Width:  2,
		Height: 1,
		Pix:    []byte{255, 0, 0, 0, 255, 0},
	}

	path := filepath.Join(t.TempDir(), "out.bmp")
	require.NoError(t, WriteBMP(path, buf))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := bmp.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())

	r, g, b, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(255), r>>8)
	require.Equal(t, uint32(0), g>>8)
	require.Equal(t, uint32(0), b>>8)
}

func TestWriteParentDirsCreated(t *testing.T) {
	buf := internalimage.RGBABuffer{Width: 1, Height: 1, Pix: []byte{1, 2, 3, 4}}
	path := filepath.Join(t.TempDir(), "a", "b", "out.png")
	require.NoError(t, WritePNG(path, buf))
	_, err := os.Stat(path)
	require.NoError(t, err)
}
