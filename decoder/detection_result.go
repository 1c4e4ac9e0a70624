package decoder

import "fmt"

// adjustRowNumberSkip is how many consecutive unresolved codewords a
// cross-column row-number sweep will tolerate before giving up on a row.
const adjustRowNumberSkip = 2

// DetectionResult holds the full set of columns, the barcode metadata, and
// the bounding box produced by one decode attempt.
type DetectionResult struct {
	barcodeMetadata        *BarcodeMetadata
	detectionResultColumns []DetectionResultColumnI
	boundingBox            *BoundingBox
	barcodeColumnCount     int
}

// NewDetectionResult creates a DetectionResult sized from barcodeMetadata.
// Column 0 and column barcodeColumnCount+1 are reserved for the left and
// right row-indicator columns.
func NewDetectionResult(barcodeMetadata *BarcodeMetadata, boundingBox *BoundingBox) *DetectionResult {
	columnCount := barcodeMetadata.ColumnCount()
	return &DetectionResult{
		barcodeMetadata:        barcodeMetadata,
		barcodeColumnCount:     columnCount,
		boundingBox:            boundingBox,
		detectionResultColumns: make([]DetectionResultColumnI, columnCount+2),
	}
}

// rightColumn is the index of the right row-indicator column.
func (dr *DetectionResult) rightColumn() int { return dr.barcodeColumnCount + 1 }

// GetDetectionResultColumns resolves every codeword's row number from the
// row-indicator columns and cross-column consensus, iterating the
// cross-column pass until it stops making progress.
func (dr *DetectionResult) GetDetectionResultColumns() []DetectionResultColumnI {
	dr.finalizeIndicatorColumn(dr.detectionResultColumns[0])
	dr.finalizeIndicatorColumn(dr.detectionResultColumns[dr.rightColumn()])

	remaining := maxCodewordsInBarcode
	for {
		before := remaining
		remaining = dr.adjustRowNumbers()
		if remaining <= 0 || remaining >= before {
			break
		}
	}
	return dr.detectionResultColumns
}

func (dr *DetectionResult) finalizeIndicatorColumn(col DetectionResultColumnI) {
	ric, ok := col.(*DetectionResultRowIndicatorColumn)
	if ok && ric != nil {
		ric.AdjustCompleteIndicatorColumnRowNumbers(dr.barcodeMetadata)
	}
}

// adjustRowNumbers runs one full pass: first from row-indicator evidence,
// then, for whatever remains unresolved, from same-row neighboring columns.
func (dr *DetectionResult) adjustRowNumbers() int {
	unadjusted := dr.adjustRowNumbersFromBothIndicators()
	unadjusted += dr.adjustRowNumbersFromSide(0, 1, dr.rightColumn(), 1)
	unadjusted += dr.adjustRowNumbersFromSide(dr.rightColumn(), dr.rightColumn(), 0, -1)
	if unadjusted == 0 {
		return 0
	}

	for column := 1; column <= dr.barcodeColumnCount; column++ {
		codewords := dr.detectionResultColumns[column].Codewords()
		for row, codeword := range codewords {
			if codeword != nil && !codeword.HasValidRowNumber() {
				dr.reconcileFromNeighbors(column, row, codewords)
			}
		}
	}
	return unadjusted
}

// adjustRowNumbersFromBothIndicators propagates a row number across an
// entire barcode row when the left and right row-indicator columns agree on
// it for that image row.
func (dr *DetectionResult) adjustRowNumbersFromBothIndicators() int {
	left := dr.detectionResultColumns[0]
	right := dr.detectionResultColumns[dr.rightColumn()]
	if left == nil || right == nil {
		return 0
	}
	leftCodewords, rightCodewords := left.Codewords(), right.Codewords()

	for row := range leftCodewords {
		lcw, rcw := leftCodewords[row], rightCodewords[row]
		if lcw == nil || rcw == nil || lcw.RowNumber() != rcw.RowNumber() {
			continue
		}
		for column := 1; column <= dr.barcodeColumnCount; column++ {
			codewords := dr.detectionResultColumns[column].Codewords()
			if cw := codewords[row]; cw != nil {
				cw.SetRowNumber(lcw.RowNumber())
				if !cw.HasValidRowNumber() {
					codewords[row] = nil
				}
			}
		}
	}
	return 0
}

// adjustRowNumbersFromSide walks the row-indicator column at sideColumn and,
// for each of its resolved codewords, tries to seed the same row number
// across data columns from start toward end (stepping by step), stopping
// early once adjustRowNumberSkip consecutive attempts fail.
func (dr *DetectionResult) adjustRowNumbersFromSide(sideColumn, start, end, step int) int {
	indicator := dr.detectionResultColumns[sideColumn]
	if indicator == nil {
		return 0
	}
	unadjusted := 0
	for row, indicatorCodeword := range indicator.Codewords() {
		if indicatorCodeword == nil {
			continue
		}
		rowNumber := indicatorCodeword.RowNumber()
		failures := 0
		for column := start; column != end && failures < adjustRowNumberSkip; column += step {
			other := dr.detectionResultColumns[column].Codewords()[row]
			if other == nil {
				continue
			}
			failures = tryAdoptRowNumber(rowNumber, failures, other)
			if !other.HasValidRowNumber() {
				unadjusted++
			}
		}
	}
	return unadjusted
}

// tryAdoptRowNumber adopts rowNumber into codeword if codeword doesn't
// already have a valid one and rowNumber would be valid for it; otherwise it
// tallies another failure, resetting the counter to zero on success.
func tryAdoptRowNumber(rowNumber, failures int, codeword *Codeword) int {
	if codeword.HasValidRowNumber() {
		return failures
	}
	if !codeword.IsValidRowNumber(rowNumber) {
		return failures + 1
	}
	codeword.SetRowNumber(rowNumber)
	return 0
}

// reconcileFromNeighbors looks for a codeword with a matching bucket among
// this codeword's near neighbors — same column adjacent rows, the columns to
// either side at the same and adjacent rows — checked closest-first, and
// copies its row number on the first match.
func (dr *DetectionResult) reconcileFromNeighbors(column, row int, codewords []*Codeword) {
	codeword := codewords[row]
	prevColumn := dr.detectionResultColumns[column-1].Codewords()
	nextColumn := prevColumn
	if dr.detectionResultColumns[column+1] != nil {
		nextColumn = dr.detectionResultColumns[column+1].Codewords()
	}

	var candidates []*Codeword
	if row > 0 {
		candidates = append(candidates, codewords[row-1])
	}
	if row < len(codewords)-1 {
		candidates = append(candidates, codewords[row+1])
	}
	candidates = append(candidates, prevColumn[row], nextColumn[row])
	if row > 0 {
		candidates = append(candidates, prevColumn[row-1], nextColumn[row-1])
	}
	if row < len(codewords)-1 {
		candidates = append(candidates, prevColumn[row+1], nextColumn[row+1])
	}
	if row > 1 {
		candidates = append(candidates, codewords[row-2])
	}
	if row < len(codewords)-2 {
		candidates = append(candidates, codewords[row+2])
	}
	if row > 1 {
		candidates = append(candidates, prevColumn[row-2], nextColumn[row-2])
	}
	if row < len(codewords)-2 {
		candidates = append(candidates, prevColumn[row+2], nextColumn[row+2])
	}

	for _, candidate := range candidates {
		if candidate == nil || !candidate.HasValidRowNumber() || candidate.Bucket() != codeword.Bucket() {
			continue
		}
		codeword.SetRowNumber(candidate.RowNumber())
		return
	}
}

// BarcodeColumnCount returns the number of data columns.
func (dr *DetectionResult) BarcodeColumnCount() int { return dr.barcodeColumnCount }

// BarcodeRowCount returns the total number of rows.
func (dr *DetectionResult) BarcodeRowCount() int { return dr.barcodeMetadata.RowCount() }

// BarcodeECLevel returns the error correction level in [0,8].
func (dr *DetectionResult) BarcodeECLevel() int { return dr.barcodeMetadata.ErrorCorrectionLevel() }

// SetBoundingBox replaces the bounding box.
func (dr *DetectionResult) SetBoundingBox(boundingBox *BoundingBox) { dr.boundingBox = boundingBox }

// GetBoundingBox returns the bounding box.
func (dr *DetectionResult) GetBoundingBox() *BoundingBox { return dr.boundingBox }

// SetDetectionResultColumn installs col at barcodeColumn.
func (dr *DetectionResult) SetDetectionResultColumn(barcodeColumn int, col DetectionResultColumnI) {
	dr.detectionResultColumns[barcodeColumn] = col
}

// GetDetectionResultColumn returns the column at barcodeColumn, or nil.
func (dr *DetectionResult) GetDetectionResultColumn(barcodeColumn int) DetectionResultColumnI {
	return dr.detectionResultColumns[barcodeColumn]
}

func (dr *DetectionResult) String() string {
	indicator := dr.detectionResultColumns[0]
	if indicator == nil {
		indicator = dr.detectionResultColumns[dr.rightColumn()]
	}
	out := ""
	for row := range indicator.Codewords() {
		out += fmt.Sprintf("CW %3d:", row)
		for column := 0; column < dr.barcodeColumnCount+2; column++ {
			col := dr.detectionResultColumns[column]
			if col == nil {
				out += "    |   "
				continue
			}
			cw := col.Codewords()[row]
			if cw == nil {
				out += "    |   "
				continue
			}
			out += fmt.Sprintf(" %3d|%3d", cw.RowNumber(), cw.Value())
		}
		out += "\n"
	}
	return out
}
