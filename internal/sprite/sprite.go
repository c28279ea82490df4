// Package sprite slices fixed-grid sprite sheets into cells.
//
// A sheet is divided into equal cells, cellW x cellH, indexed row-major
// from the top left. Horizontal mirroring applies to the whole sheet
// before slicing, so a mirrored clip reads its cells from the mirrored
// positions, matching how sprite sheets are drawn for one facing
// direction and flipped for the other.
package sprite

import (
	"fmt"
	"image"

	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/model"
)

// Sheet is a sprite sheet prepared for slicing.
type Sheet struct {
	img     *image.NRGBA
	cellW   int
	cellH   int
	cols    int
	rows    int
	flipped bool
}

// Cell is one sliced sprite with its source placement in the sheet.
type Cell struct {
	Index int
	Image *image.NRGBA

	// Source rectangle within the sheet after any mirroring.
	X, Y, W, H int
}

// NewSheet validates the grid against the sheet dimensions.
// A trailing partial row or column is ignored, so a 100px wide sheet with
// 32px cells has 3 columns.
func NewSheet(img image.Image, cellW, cellH int, flipX bool) (*Sheet, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, model.NewInvalidState(fmt.Sprintf("cell size must be positive, got %dx%d", cellW, cellH))
	}

	normalized := imaging.Normalize(img)
	if flipX {
		normalized = imaging.FlipH(normalized)
	}

	b := normalized.Bounds()
	cols := b.Dx() / cellW
	rows := b.Dy() / cellH
	if cols == 0 || rows == 0 {
		return nil, model.NewInvalidState(fmt.Sprintf(
			"cell %dx%d does not fit sheet %dx%d", cellW, cellH, b.Dx(), b.Dy()))
	}

	return &Sheet{
		img:     normalized,
		cellW:   cellW,
		cellH:   cellH,
		cols:    cols,
		rows:    rows,
		flipped: flipX,
	}, nil
}

// Cols returns the number of cell columns.
func (s *Sheet) Cols() int { return s.cols }

// Rows returns the number of cell rows.
func (s *Sheet) Rows() int { return s.rows }

// Count returns the total number of cells.
func (s *Sheet) Count() int { return s.cols * s.rows }

// Flipped reports whether the sheet was mirrored before slicing.
func (s *Sheet) Flipped() bool { return s.flipped }

// Cell crops one cell by row-major index.
func (s *Sheet) Cell(index int) (Cell, error) {
	if index < 0 || index >= s.Count() {
		return Cell{}, model.NewInvalidState(fmt.Sprintf(
			"cell index %d out of range, sheet has %d cells", index, s.Count()))
	}

	row := index / s.cols
	col := index % s.cols
	x := col * s.cellW
	y := row * s.cellH

	img := imaging.Crop(s.img, image.Rect(x, y, x+s.cellW, y+s.cellH))

	return Cell{
		Index: index,
		Image: img,
		X:     x,
		Y:     y,
		W:     s.cellW,
		H:     s.cellH,
	}, nil
}

// Cells crops the given cell indices in order.
func (s *Sheet) Cells(indices []int) ([]Cell, error) {
	if len(indices) == 0 {
		return nil, model.NewEmptyInput("sheet slice")
	}

	cells := make([]Cell, 0, len(indices))
	for _, index := range indices {
		cell, err := s.Cell(index)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}
