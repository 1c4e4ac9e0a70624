// Package bitmatrix provides the read-only pixel-grid view the PDF417
// scanning decoder is handed after binarization. It is the "BitMatrix view"
// external collaborator: acquisition and binarization happen elsewhere.
package bitmatrix

// Matrix is a 2D grid of bits. x is the column, y is the row; the origin is
// at the top-left. Decoders must treat a Matrix as read-only.
type Matrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// New creates a new Matrix with the given width and height, all bits unset.
func New(width, height int) *Matrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &Matrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// FromBools builds a Matrix from a dense 2D boolean grid, row-major.
func FromBools(rows [][]bool) *Matrix {
	height := len(rows)
	width := len(rows[0])
	m := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rows[y][x] {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Get reports whether the bit at (x, y) is set.
func (m *Matrix) Get(x, y int) bool {
	offset := y*m.rowSize + x/32
	return (m.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (m *Matrix) Set(x, y int) {
	offset := y*m.rowSize + x/32
	m.data[offset] |= 1 << uint(x&0x1f)
}

// Width returns the matrix width in pixels.
func (m *Matrix) Width() int { return m.width }

// Height returns the matrix height in pixels.
func (m *Matrix) Height() int { return m.height }
