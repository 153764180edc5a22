package frameplayer

import (
	"errors"
	"fmt"
	"image"
)

// Direction is the order in which sheet tiles are assigned sequential frame
// indices.
type Direction int

const (
	// Vertical assigns indices column by column, top-to-bottom within each
	// column (column-major).
	Vertical Direction = iota
	// Horizontal assigns indices row by row, left-to-right within each row
	// (row-major).
	Horizontal
)

var (
	ErrInvalidGeometry  = errors.New("frameplayer: tile size exceeds sheet size")
	ErrInvalidDirection = errors.New("frameplayer: unknown layout direction")
	ErrResourceLoad     = errors.New("frameplayer: sheet resource load failed")
	ErrFrameRange       = errors.New("frameplayer: frame index outside sheet")
)

// ParseDirection maps the configuration strings "horizontal" and "vertical"
// to a Direction. The empty string defaults to Vertical.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// buildFrameTable slices a sheet of sheetW x sheetH pixels into tileW x tileH
// frames and returns the source offset of every frame in index order. Partial
// tiles at the right/bottom edges are discarded.
func buildFrameTable(sheetW, sheetH, tileW, tileH int, dir Direction) ([]image.Point, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: tile %dx%d", ErrInvalidGeometry, tileW, tileH)
	}
	cols := sheetW / tileW
	rows := sheetH / tileH
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: sheet %dx%d, tile %dx%d", ErrInvalidGeometry, sheetW, sheetH, tileW, tileH)
	}

	table := make([]image.Point, 0, cols*rows)
	switch dir {
	case Horizontal:
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				table = append(table, image.Pt(c*tileW, r*tileH))
			}
		}
	case Vertical:
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				table = append(table, image.Pt(c*tileW, r*tileH))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	return table, nil
}
