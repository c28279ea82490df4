package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	quad := newTestQuad()

	data, err := EncodePNG(quad)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodePNG(data)
	require.NoError(t, err)

	assert.Equal(t, Key(quad), Key(decoded), "pixels must survive the codec")
}

func TestDecodePNGRejectsGarbage(t *testing.T) {
	_, err := DecodePNG([]byte("not a png"))
	assert.Error(t, err)
}

func TestFlipHMirrorsPixels(t *testing.T) {
	quad := newTestQuad()

	flipped := FlipH(quad)

	assert.Equal(t, quad.NRGBAAt(0, 0), flipped.NRGBAAt(1, 0))
	assert.Equal(t, quad.NRGBAAt(1, 0), flipped.NRGBAAt(0, 0))
	assert.Equal(t, quad.NRGBAAt(0, 1), flipped.NRGBAAt(1, 1))
	assert.Equal(t, quad.NRGBAAt(1, 1), flipped.NRGBAAt(0, 1))
}

func TestCropExtractsRegion(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	canvas.SetNRGBA(2, 1, color.NRGBA{R: 42, A: 255})

	cell := Crop(canvas, image.Rect(2, 0, 4, 2))

	require.Equal(t, 2, cell.Bounds().Dx())
	require.Equal(t, 2, cell.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 42, A: 255}, cell.NRGBAAt(0, 1))
}

func TestScaleNearestKeepsHardEdges(t *testing.T) {
	quad := newTestQuad()

	scaled, err := ScaleNearest(quad, 3)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 6, 6), scaled.Bounds())

	// Every pixel of a 3x3 block must equal its source pixel.
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			want := quad.NRGBAAt(x/3, y/3)
			assert.Equal(t, want, scaled.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestScaleNearestFactorOne(t *testing.T) {
	quad := newTestQuad()

	scaled, err := ScaleNearest(quad, 1)
	require.NoError(t, err)
	assert.Equal(t, Key(quad), Key(scaled))
}

func TestScaleNearestRejectsBadFactor(t *testing.T) {
	_, err := ScaleNearest(newTestQuad(), 0)
	assert.Error(t, err)
}
