package decoder

import "fmt"

// rowNumberUnknown marks a codeword whose row within the symbol has not yet
// been resolved.
const rowNumberUnknown = -1

// span is a codeword's horizontal footprint in the source image: pixel
// columns [start, end).
type span struct {
	start, end int
}

func (s span) width() int { return s.end - s.start }

// Codeword records one observed 17-module symbol: where it sits on the
// image row, which cluster (bucket) its bar pattern belongs to, the decoded
// integer value, and — once resolved — which barcode row it belongs to.
type Codeword struct {
	position  span
	bucket    int
	value     int
	rowNumber int
}

// newCodeword builds a Codeword with its row assignment still open.
func newCodeword(startX, endX, bucket, value int) *Codeword {
	return &Codeword{
		position:  span{start: startX, end: endX},
		bucket:    bucket,
		value:     value,
		rowNumber: rowNumberUnknown,
	}
}

// StartX returns the starting image column (inclusive).
func (c *Codeword) StartX() int { return c.position.start }

// EndX returns the ending image column (exclusive).
func (c *Codeword) EndX() int { return c.position.end }

// Width returns the codeword's width in pixels.
func (c *Codeword) Width() int { return c.position.width() }

// Bucket returns the cluster number in [0,8].
func (c *Codeword) Bucket() int { return c.bucket }

// Value returns the codeword's integer value in [0,928].
func (c *Codeword) Value() int { return c.value }

// RowNumber returns the assigned row number, or rowNumberUnknown.
func (c *Codeword) RowNumber() int { return c.rowNumber }

// SetRowNumber assigns a row number to this codeword.
func (c *Codeword) SetRowNumber(rowNumber int) { c.rowNumber = rowNumber }

// SetRowNumberAsRowIndicatorColumn derives the row number that a
// row-indicator codeword encodes. Three consecutive barcode rows share one
// value/30 group, so that group gives which triple, and the bucket (0, 3 or
// 6, one per row of the triple) gives the position within it.
func (c *Codeword) SetRowNumberAsRowIndicatorColumn() {
	group := c.value / 30
	c.rowNumber = group*3 + c.bucket/3
}

// IsValidRowNumber reports whether rowNumber is consistent with this
// codeword's bucket: every row's bucket is fixed at (row%3)*3.
func (c *Codeword) IsValidRowNumber(rowNumber int) bool {
	if rowNumber == rowNumberUnknown {
		return false
	}
	return (rowNumber%3)*3 == c.bucket
}

// HasValidRowNumber reports whether the currently assigned row number is
// consistent with this codeword's bucket.
func (c *Codeword) HasValidRowNumber() bool {
	return c.IsValidRowNumber(c.rowNumber)
}

func (c *Codeword) String() string {
	return fmt.Sprintf("%d|%d", c.rowNumber, c.value)
}
