// Package pdf417decoder holds the constants, error taxonomy, and point type
// shared across the PDF417 scanning decoder's subpackages.
package pdf417decoder

import "errors"

// Symbol-level constants used by the decoder package.
const (
	NumberOfCodewords     = 929
	MaxCodewordsInBarcode = 928
	MinRowsInBarcode      = 3
	MaxRowsInBarcode      = 90
	ModulesInCodeword     = 17
	BarsInModule          = 8
)

var (
	// ErrNotFound means geometry or metadata could not be recovered; never
	// indicates data corruption.
	ErrNotFound = errors.New("pdf417: barcode not found")

	// ErrFormat means the recovered codeword matrix is structurally invalid.
	ErrFormat = errors.New("pdf417: format error")

	// ErrChecksum means Reed-Solomon error correction did not converge.
	ErrChecksum = errors.New("pdf417: checksum error")
)

// Point is an (x, y) location in image coordinates.
type Point struct {
	X, Y float64
}
