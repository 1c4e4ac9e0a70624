// Package decoder implements the PDF417 scanning decoder: reconstructing a
// codeword matrix from a binarized image and four approximate corner
// points, then error-correcting and parsing it into a decoded message.
package decoder

import "github.com/tpcreative070/pdf417decoder"

const (
	barsInModule          = pdf417decoder.BarsInModule
	modulesInCodeword     = pdf417decoder.ModulesInCodeword
	minRowsInBarcode      = pdf417decoder.MinRowsInBarcode
	maxRowsInBarcode      = pdf417decoder.MaxRowsInBarcode
	maxCodewordsInBarcode = pdf417decoder.MaxCodewordsInBarcode
)
