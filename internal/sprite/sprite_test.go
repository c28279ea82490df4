package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pikov/internal/model"
)

// cellColor gives each grid cell a distinct solid color so slices can be
// identified after cropping and flipping.
func cellColor(col, row int) color.NRGBA {
	return color.NRGBA{R: uint8(10 + col*40), G: uint8(10 + row*40), B: 0x80, A: 0xFF}
}

// buildSheet paints a cols x rows grid of cellW x cellH solid cells.
func buildSheet(cols, rows, cellW, cellH int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := cellColor(col, row)
			for y := row * cellH; y < (row+1)*cellH; y++ {
				for x := col * cellW; x < (col+1)*cellW; x++ {
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

func TestNewSheetGrid(t *testing.T) {
	sheet, err := NewSheet(buildSheet(4, 2, 8, 8), 8, 8, false)
	require.NoError(t, err)

	assert.Equal(t, 4, sheet.Cols())
	assert.Equal(t, 2, sheet.Rows())
	assert.Equal(t, 8, sheet.Count())
	assert.False(t, sheet.Flipped())
}

func TestNewSheetIgnoresPartialEdges(t *testing.T) {
	// 100x50 sheet with 32px cells: 3 full columns, 1 full row.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	sheet, err := NewSheet(img, 32, 32, false)
	require.NoError(t, err)

	assert.Equal(t, 3, sheet.Cols())
	assert.Equal(t, 1, sheet.Rows())
}

func TestNewSheetRejectsBadCellSize(t *testing.T) {
	img := buildSheet(2, 2, 8, 8)

	for _, tc := range []struct{ w, h int }{{0, 8}, {8, 0}, {-1, 8}} {
		_, err := NewSheet(img, tc.w, tc.h, false)
		require.Error(t, err, "cell %dx%d", tc.w, tc.h)
		assert.True(t, model.IsInvalidState(err))
	}
}

func TestNewSheetRejectsOversizedCell(t *testing.T) {
	img := buildSheet(2, 2, 8, 8) // 16x16 sheet

	_, err := NewSheet(img, 32, 32, false)
	require.Error(t, err)
	assert.True(t, model.IsInvalidState(err))
}

func TestCellRowMajorIndexing(t *testing.T) {
	sheet, err := NewSheet(buildSheet(3, 2, 4, 4), 4, 4, false)
	require.NoError(t, err)

	cases := []struct {
		index    int
		col, row int
	}{
		{0, 0, 0},
		{2, 2, 0},
		{3, 0, 1}, // wraps to second row
		{5, 2, 1},
	}

	for _, tc := range cases {
		cell, err := sheet.Cell(tc.index)
		require.NoError(t, err, "index %d", tc.index)

		assert.Equal(t, tc.col*4, cell.X, "index %d X", tc.index)
		assert.Equal(t, tc.row*4, cell.Y, "index %d Y", tc.index)
		assert.Equal(t, 4, cell.W)
		assert.Equal(t, 4, cell.H)

		want := cellColor(tc.col, tc.row)
		got := cell.Image.NRGBAAt(0, 0)
		assert.Equal(t, want, got, "index %d pixel", tc.index)
	}
}

func TestCellImageAnchoredAtOrigin(t *testing.T) {
	sheet, err := NewSheet(buildSheet(2, 2, 4, 4), 4, 4, false)
	require.NoError(t, err)

	cell, err := sheet.Cell(3)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), cell.Image.Bounds())
}

func TestCellOutOfRange(t *testing.T) {
	sheet, err := NewSheet(buildSheet(2, 2, 4, 4), 4, 4, false)
	require.NoError(t, err)

	for _, index := range []int{-1, 4, 100} {
		_, err := sheet.Cell(index)
		require.Error(t, err, "index %d", index)
		assert.True(t, model.IsInvalidState(err))
	}
}

func TestFlipMirrorsWholeSheetBeforeSlicing(t *testing.T) {
	// After mirroring a 3-column sheet, cell 0 shows what was the
	// rightmost column.
	sheet, err := NewSheet(buildSheet(3, 1, 4, 4), 4, 4, true)
	require.NoError(t, err)
	assert.True(t, sheet.Flipped())

	cell, err := sheet.Cell(0)
	require.NoError(t, err)

	want := cellColor(2, 0)
	assert.Equal(t, want, cell.Image.NRGBAAt(0, 0))
}

func TestCellsOrderedByRequest(t *testing.T) {
	sheet, err := NewSheet(buildSheet(3, 1, 4, 4), 4, 4, false)
	require.NoError(t, err)

	cells, err := sheet.Cells([]int{2, 0, 2})
	require.NoError(t, err)
	require.Len(t, cells, 3)

	assert.Equal(t, 2, cells[0].Index)
	assert.Equal(t, 0, cells[1].Index)
	assert.Equal(t, 2, cells[2].Index)
	assert.Equal(t, cellColor(2, 0), cells[0].Image.NRGBAAt(0, 0))
	assert.Equal(t, cellColor(0, 0), cells[1].Image.NRGBAAt(0, 0))
}

func TestCellsEmptyInput(t *testing.T) {
	sheet, err := NewSheet(buildSheet(2, 1, 4, 4), 4, 4, false)
	require.NoError(t, err)

	_, err = sheet.Cells(nil)
	require.Error(t, err)
	assert.True(t, model.IsEmptyInput(err))
}

func TestCellsFailFastOnBadIndex(t *testing.T) {
	sheet, err := NewSheet(buildSheet(2, 1, 4, 4), 4, 4, false)
	require.NoError(t, err)

	_, err = sheet.Cells([]int{0, 9})
	require.Error(t, err)
	assert.True(t, model.IsInvalidState(err))
}
