package decoder

// BarcodeMetadata is the (rows, columns, EC level) tuple inferred from the
// row-indicator columns' codeword clusters. The row count is carried into
// the symbol split into an upper and lower part across separate
// row-indicator codewords, so both parts are kept rather than only their
// sum.
type BarcodeMetadata struct {
	columnCount       int
	ecLevel           int
	rowCountUpperPart int
	rowCountLowerPart int
}

// newBarcodeMetadata creates a BarcodeMetadata from its constituent parts.
func newBarcodeMetadata(columnCount, rowCountUpperPart, rowCountLowerPart, ecLevel int) *BarcodeMetadata {
	return &BarcodeMetadata{
		columnCount:       columnCount,
		ecLevel:           ecLevel,
		rowCountUpperPart: rowCountUpperPart,
		rowCountLowerPart: rowCountLowerPart,
	}
}

// ColumnCount returns the number of data columns.
func (bm *BarcodeMetadata) ColumnCount() int { return bm.columnCount }

// ErrorCorrectionLevel returns the EC level in [0,8].
func (bm *BarcodeMetadata) ErrorCorrectionLevel() int { return bm.ecLevel }

// RowCountUpperPart returns the upper part of the split row count.
func (bm *BarcodeMetadata) RowCountUpperPart() int { return bm.rowCountUpperPart }

// RowCountLowerPart returns the lower part of the split row count.
func (bm *BarcodeMetadata) RowCountLowerPart() int { return bm.rowCountLowerPart }

// RowCount returns the total number of rows.
func (bm *BarcodeMetadata) RowCount() int { return bm.rowCountUpperPart + bm.rowCountLowerPart }
