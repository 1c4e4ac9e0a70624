package decoder

// DetectionResultRowIndicatorColumn specializes DetectionResultColumn for
// the leftmost or rightmost column of a PDF417 symbol, whose codewords
// encode symbol-wide metadata rather than payload data.
type DetectionResultRowIndicatorColumn struct {
	*DetectionResultColumn
	isLeft bool
}

// newDetectionResultRowIndicatorColumn creates an empty row indicator
// column on the named side.
func newDetectionResultRowIndicatorColumn(boundingBox *BoundingBox, isLeft bool) *DetectionResultRowIndicatorColumn {
	return &DetectionResultRowIndicatorColumn{
		DetectionResultColumn: newDetectionResultColumn(boundingBox),
		isLeft:                isLeft,
	}
}

// IsLeft reports whether this is the left row indicator column.
func (col *DetectionResultRowIndicatorColumn) IsLeft() bool { return col.isLeft }

func (col *DetectionResultRowIndicatorColumn) setRowNumbers() {
	for _, codeword := range col.Codewords() {
		if codeword != nil {
			codeword.SetRowNumberAsRowIndicatorColumn()
		}
	}
}

// scanBounds returns the codeword-index range spanned by this column's
// bounding box on its own side.
func (col *DetectionResultRowIndicatorColumn) scanBounds() (firstRow, lastRow int) {
	bb := col.GetBoundingBox()
	top, bottom := bb.TopLeft(), bb.BottomLeft()
	if !col.isLeft {
		top, bottom = bb.TopRight(), bb.BottomRight()
	}
	return col.ImageRowToCodewordIndex(int(top.Y)), col.ImageRowToCodewordIndex(int(bottom.Y))
}

// rowRun tracks a run of image rows believed to belong to the same barcode
// row while scanning a row-indicator column top to bottom.
type rowRun struct {
	barcodeRow    int
	maxHeight     int
	currentHeight int
}

func newRowRun() *rowRun { return &rowRun{barcodeRow: -1, maxHeight: 1} }

// extend folds a codeword's row number into the run. It reports the
// difference between that row number and the run's current barcode row, and
// whether the case was
// a simple continuation (same row, or the very next row) that the caller
// need not examine further.
func (run *rowRun) extend(rowNumber int) (difference int, continuation bool) {
	difference = rowNumber - run.barcodeRow
	switch difference {
	case 0:
		run.currentHeight++
		return difference, true
	case 1:
		if run.currentHeight > run.maxHeight {
			run.maxHeight = run.currentHeight
		}
		run.currentHeight = 1
		run.barcodeRow = rowNumber
		return difference, true
	default:
		return difference, false
	}
}

func (run *rowRun) restart(rowNumber int) {
	run.barcodeRow = rowNumber
	run.currentHeight = 1
}

// AdjustCompleteIndicatorColumnRowNumbers assigns row numbers to every
// codeword in this column and drops any that turn out inconsistent with the
// already-resolved barcode metadata.
func (col *DetectionResultRowIndicatorColumn) AdjustCompleteIndicatorColumnRowNumbers(barcodeMetadata *BarcodeMetadata) {
	codewords := col.Codewords()
	col.setRowNumbers()
	col.removeIncorrectCodewords(codewords, barcodeMetadata)
	firstRow, lastRow := col.scanBounds()

	run := newRowRun()
	for row := firstRow; row < lastRow; row++ {
		codeword := codewords[row]
		if codeword == nil {
			continue
		}
		difference, continuation := run.extend(codeword.RowNumber())
		if continuation {
			continue
		}
		if difference < 0 || codeword.RowNumber() >= barcodeMetadata.RowCount() || difference > row {
			codewords[row] = nil
			continue
		}

		lookback := difference
		if run.maxHeight > 2 {
			lookback = (run.maxHeight - 2) * difference
		}
		foundNearby := lookback >= row
		for i := 1; i <= lookback && !foundNearby; i++ {
			foundNearby = codewords[row-i] != nil
		}
		if foundNearby {
			codewords[row] = nil
		} else {
			run.restart(codeword.RowNumber())
		}
	}
}

func (col *DetectionResultRowIndicatorColumn) adjustIncompleteIndicatorColumnRowNumbers(barcodeMetadata *BarcodeMetadata) {
	firstRow, lastRow := col.scanBounds()
	codewords := col.Codewords()
	run := newRowRun()
	for row := firstRow; row < lastRow; row++ {
		codeword := codewords[row]
		if codeword == nil {
			continue
		}
		codeword.SetRowNumberAsRowIndicatorColumn()
		_, continuation := run.extend(codeword.RowNumber())
		if continuation {
			continue
		}
		if codeword.RowNumber() >= barcodeMetadata.RowCount() {
			codewords[row] = nil
			continue
		}
		run.restart(codeword.RowNumber())
	}
}

// RowHeights returns, for each logical barcode row, the number of image
// rows that map to it. Returns nil if barcode metadata cannot be resolved.
func (col *DetectionResultRowIndicatorColumn) RowHeights() []int {
	barcodeMetadata := col.GetBarcodeMetadata()
	if barcodeMetadata == nil {
		return nil
	}
	col.adjustIncompleteIndicatorColumnRowNumbers(barcodeMetadata)

	heights := make([]int, barcodeMetadata.RowCount())
	for _, codeword := range col.Codewords() {
		if codeword == nil {
			continue
		}
		if rowNumber := codeword.RowNumber(); rowNumber < len(heights) {
			heights[rowNumber]++
		}
	}
	return heights
}

// rowIndicatorGroup returns the row-indicator payload packed into codeword
// (its value mod 30) and which of the three metadata fields — 0: row count
// upper part, 1: EC level and row count lower part, 2: column count — that
// payload belongs to, given which row of the repeating 3-row cluster cycle
// the codeword sits in.
func rowIndicatorGroup(codeword *Codeword, isLeft bool) (payload, field int) {
	rowNumber := codeword.RowNumber()
	if !isLeft {
		rowNumber += 2
	}
	return codeword.Value() % 30, rowNumber % 3
}

// GetBarcodeMetadata infers (rows, columns, EC level) from the cluster
// values of this column's row-indicator codewords, or returns nil if the
// evidence does not converge.
func (col *DetectionResultRowIndicatorColumn) GetBarcodeMetadata() *BarcodeMetadata {
	codewords := col.Codewords()
	columnCount := newBarcodeValue()
	rowCountUpper := newBarcodeValue()
	rowCountLower := newBarcodeValue()
	ecLevel := newBarcodeValue()

	for _, codeword := range codewords {
		if codeword == nil {
			continue
		}
		codeword.SetRowNumberAsRowIndicatorColumn()
		payload, field := rowIndicatorGroup(codeword, col.isLeft)
		switch field {
		case 0:
			rowCountUpper.SetValue(payload*3 + 1)
		case 1:
			ecLevel.SetValue(payload / 3)
			rowCountLower.SetValue(payload % 3)
		case 2:
			columnCount.SetValue(payload + 1)
		}
	}

	columns := columnCount.Value()
	upper := rowCountUpper.Value()
	lower := rowCountLower.Value()
	ec := ecLevel.Value()
	if len(columns) == 0 || len(upper) == 0 || len(lower) == 0 || len(ec) == 0 {
		return nil
	}
	rowCount := upper[0] + lower[0]
	if columns[0] < 1 || rowCount < minRowsInBarcode || rowCount > maxRowsInBarcode {
		return nil
	}

	metadata := newBarcodeMetadata(columns[0], upper[0], lower[0], ec[0])
	col.removeIncorrectCodewords(codewords, metadata)
	return metadata
}

func (col *DetectionResultRowIndicatorColumn) removeIncorrectCodewords(codewords []*Codeword, metadata *BarcodeMetadata) {
	for row, codeword := range codewords {
		if codeword == nil {
			continue
		}
		if codeword.RowNumber() > metadata.RowCount() {
			codewords[row] = nil
			continue
		}
		payload, field := rowIndicatorGroup(codeword, col.isLeft)
		consistent := true
		switch field {
		case 0:
			consistent = payload*3+1 == metadata.RowCountUpperPart()
		case 1:
			consistent = payload/3 == metadata.ErrorCorrectionLevel() && payload%3 == metadata.RowCountLowerPart()
		case 2:
			consistent = payload+1 == metadata.ColumnCount()
		}
		if !consistent {
			codewords[row] = nil
		}
	}
}

func (col *DetectionResultRowIndicatorColumn) String() string {
	side := "right"
	if col.isLeft {
		side = "left"
	}
	return "side: " + side + "\n" + col.DetectionResultColumn.String()
}
