package decoder

import (
	"math"
	"strconv"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
	"github.com/tpcreative070/pdf417decoder/bitstream"
	"github.com/tpcreative070/pdf417decoder/internal/result"
)

const (
	codewordSkewSize    = 2
	maxErasuresOverhead = 3
	maxECCodewords      = 512
)

var scanErrorCorrection = newErrorCorrection()

// Decode reconstructs and decodes a PDF417 symbol from image, given the
// four approximate corner points (any of which may be nil if that side of
// the symbol was not located) and the scanner's initial codeword-width
// bounds.
func Decode(image *bitmatrix.Matrix,
	imageTopLeft, imageBottomLeft, imageTopRight, imageBottomRight *pdf417decoder.Point,
	minCodewordWidth, maxCodewordWidth int) (*result.DecoderResult, error) {

	startBox, err := NewBoundingBox(image, imageTopLeft, imageBottomLeft, imageTopRight, imageBottomRight)
	if err != nil {
		return nil, err
	}

	detectionResult, leftIndicator, rightIndicator, boundingBox, err := locateIndicatorColumns(
		image, startBox, imageTopLeft, imageTopRight, minCodewordWidth, maxCodewordWidth)
	if err != nil {
		return nil, err
	}

	lastColumn := detectionResult.BarcodeColumnCount() + 1
	if leftIndicator != nil {
		detectionResult.SetDetectionResultColumn(0, leftIndicator)
	}
	if rightIndicator != nil {
		detectionResult.SetDetectionResultColumn(lastColumn, rightIndicator)
	}

	leftToRight := leftIndicator != nil
	for step := 1; step <= lastColumn; step++ {
		column := step
		if !leftToRight {
			column = lastColumn - step
		}
		if detectionResult.GetDetectionResultColumn(column) != nil {
			continue
		}
		minCodewordWidth, maxCodewordWidth = fillDataColumn(
			detectionResult, image, boundingBox, column, leftToRight, minCodewordWidth, maxCodewordWidth)
	}
	return createDecoderResult(detectionResult)
}

// locateIndicatorColumns scans out from the top corners for the row
// indicator columns and merges them into a DetectionResult. On the first
// pass only, a merged bounding box that grew past the seed box is used to
// re-scan: the indicator columns may have missed rows that only the merged
// geometry reveals.
func locateIndicatorColumns(image *bitmatrix.Matrix, startBox *BoundingBox,
	imageTopLeft, imageTopRight *pdf417decoder.Point, minCodewordWidth, maxCodewordWidth int) (
	*DetectionResult, *DetectionResultRowIndicatorColumn, *DetectionResultRowIndicatorColumn, *BoundingBox, error) {

	box := startBox
	var leftIndicator, rightIndicator *DetectionResultRowIndicatorColumn
	for firstPass := true; ; firstPass = false {
		if imageTopLeft != nil {
			leftIndicator = getRowIndicatorColumn(image, box, *imageTopLeft, true, minCodewordWidth, maxCodewordWidth)
		}
		if imageTopRight != nil {
			rightIndicator = getRowIndicatorColumn(image, box, *imageTopRight, false, minCodewordWidth, maxCodewordWidth)
		}
		detectionResult, err := merge(leftIndicator, rightIndicator)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if detectionResult == nil {
			return nil, nil, nil, nil, pdf417decoder.ErrNotFound
		}
		grown := detectionResult.GetBoundingBox()
		if firstPass && grown != nil && (grown.MinY() < box.MinY() || grown.MaxY() > box.MaxY()) {
			box = grown
			continue
		}
		detectionResult.SetBoundingBox(box)
		return detectionResult, leftIndicator, rightIndicator, box, nil
	}
}

// fillDataColumn scans every image row of boundingBox for a codeword in
// barcodeColumn, widening the observed codeword width range as it finds
// more, and returns the updated width bounds for the next column's scan.
func fillDataColumn(detectionResult *DetectionResult, image *bitmatrix.Matrix, boundingBox *BoundingBox,
	barcodeColumn int, leftToRight bool, minCodewordWidth, maxCodewordWidth int) (int, int) {

	var col DetectionResultColumnI
	if barcodeColumn == 0 || barcodeColumn == detectionResult.BarcodeColumnCount()+1 {
		col = newDetectionResultRowIndicatorColumn(boundingBox, barcodeColumn == 0)
	} else {
		col = newDetectionResultColumn(boundingBox)
	}
	detectionResult.SetDetectionResultColumn(barcodeColumn, col)

	previousStartColumn := -1
	for imageRow := boundingBox.MinY(); imageRow <= boundingBox.MaxY(); imageRow++ {
		startColumn := getStartColumn(detectionResult, barcodeColumn, imageRow, leftToRight)
		if startColumn < 0 || startColumn > boundingBox.MaxX() {
			if previousStartColumn == -1 {
				continue
			}
			startColumn = previousStartColumn
		}
		codeword := detectCodeword(image, boundingBox.MinX(), boundingBox.MaxX(), leftToRight,
			startColumn, imageRow, minCodewordWidth, maxCodewordWidth)
		if codeword == nil {
			continue
		}
		col.SetCodeword(imageRow, codeword)
		previousStartColumn = startColumn
		if codeword.Width() < minCodewordWidth {
			minCodewordWidth = codeword.Width()
		}
		if codeword.Width() > maxCodewordWidth {
			maxCodewordWidth = codeword.Width()
		}
	}
	return minCodewordWidth, maxCodewordWidth
}

func merge(leftIndicator, rightIndicator *DetectionResultRowIndicatorColumn) (*DetectionResult, error) {
	if leftIndicator == nil && rightIndicator == nil {
		return nil, nil
	}
	metadata := getBarcodeMetadata(leftIndicator, rightIndicator)
	if metadata == nil {
		return nil, nil
	}
	leftBox, err := adjustBoundingBox(leftIndicator)
	if err != nil {
		return nil, err
	}
	rightBox, err := adjustBoundingBox(rightIndicator)
	if err != nil {
		return nil, err
	}
	boundingBox, err := MergeBoundingBoxes(leftBox, rightBox)
	if err != nil {
		return nil, err
	}
	return NewDetectionResult(metadata, boundingBox), nil
}

// adjustBoundingBox extends indicator's box to cover any rows its row-height
// histogram implies were missed at the top or bottom edge.
func adjustBoundingBox(indicator *DetectionResultRowIndicatorColumn) (*BoundingBox, error) {
	if indicator == nil {
		return nil, nil
	}
	heights := indicator.RowHeights()
	if heights == nil {
		return nil, nil
	}
	tallest := maxInt(heights)

	missingStart := missingRowsAtEdge(heights, tallest, false)
	missingEnd := missingRowsAtEdge(heights, tallest, true)

	codewords := indicator.Codewords()
	for row := 0; missingStart > 0 && codewords[row] == nil; row++ {
		missingStart--
	}
	for row := len(codewords) - 1; missingEnd > 0 && codewords[row] == nil; row-- {
		missingEnd--
	}

	return indicator.GetBoundingBox().AddMissingRows(missingStart, missingEnd, indicator.IsLeft())
}

// missingRowsAtEdge sums how many rows would have to be added at one edge of
// heights to bring every entry up to tallest, scanning from that edge inward
// and stopping at the first row that already has some height.
func missingRowsAtEdge(heights []int, tallest int, fromEnd bool) int {
	missing := 0
	n := len(heights)
	for i := 0; i < n; i++ {
		index := i
		if fromEnd {
			index = n - 1 - i
		}
		missing += tallest - heights[index]
		if heights[index] > 0 {
			break
		}
	}
	return missing
}

func maxInt(values []int) int {
	m := -1
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// getBarcodeMetadata reconciles left and right row-indicator metadata: if
// one side is absent or unresolved, the other wins; if both resolve and
// disagree on all three of (columns, EC level, rows), the symbol cannot be
// recovered.
func getBarcodeMetadata(left, right *DetectionResultRowIndicatorColumn) *BarcodeMetadata {
	var leftMeta, rightMeta *BarcodeMetadata
	if left != nil {
		leftMeta = left.GetBarcodeMetadata()
	}
	if right != nil {
		rightMeta = right.GetBarcodeMetadata()
	}

	switch {
	case leftMeta == nil:
		return rightMeta
	case rightMeta == nil:
		return leftMeta
	case metadataFullyDisagrees(leftMeta, rightMeta):
		return nil
	default:
		return leftMeta
	}
}

func metadataFullyDisagrees(a, b *BarcodeMetadata) bool {
	return a.ColumnCount() != b.ColumnCount() &&
		a.ErrorCorrectionLevel() != b.ErrorCorrectionLevel() &&
		a.RowCount() != b.RowCount()
}

// getRowIndicatorColumn walks a row indicator column outward from
// startPoint in both directions, tracking the codeword's near edge as the
// next row's expected start.
func getRowIndicatorColumn(image *bitmatrix.Matrix, boundingBox *BoundingBox, startPoint pdf417decoder.Point,
	leftToRight bool, minCodewordWidth, maxCodewordWidth int) *DetectionResultRowIndicatorColumn {

	column := newDetectionResultRowIndicatorColumn(boundingBox, leftToRight)
	for _, direction := range [2]int{1, -1} {
		startColumn := int(startPoint.X)
		for imageRow := int(startPoint.Y); imageRow <= boundingBox.MaxY() && imageRow >= boundingBox.MinY(); imageRow += direction {
			codeword := detectCodeword(image, 0, image.Width(), leftToRight, startColumn, imageRow, minCodewordWidth, maxCodewordWidth)
			if codeword == nil {
				continue
			}
			column.SetCodeword(imageRow, codeword)
			if leftToRight {
				startColumn = codeword.StartX()
			} else {
				startColumn = codeword.EndX()
			}
		}
	}
	return column
}

func getNumberOfECCodewords(ecLevel int) int { return 2 << uint(ecLevel) }

func adjustCodewordCount(detectionResult *DetectionResult, barcodeMatrix [][]*BarcodeValue) error {
	descriptor := barcodeMatrix[0][1]
	observed := descriptor.Value()
	calculated := detectionResult.BarcodeColumnCount()*detectionResult.BarcodeRowCount() -
		getNumberOfECCodewords(detectionResult.BarcodeECLevel())

	switch {
	case len(observed) == 0:
		if calculated < 1 || calculated > maxCodewordsInBarcode {
			return pdf417decoder.ErrNotFound
		}
		descriptor.SetValue(calculated)
	case observed[0] != calculated && calculated >= 1 && calculated <= maxCodewordsInBarcode:
		descriptor.SetValue(calculated)
	}
	return nil
}

func createDecoderResult(detectionResult *DetectionResult) (*result.DecoderResult, error) {
	barcodeMatrix := createBarcodeMatrix(detectionResult)
	if err := adjustCodewordCount(detectionResult, barcodeMatrix); err != nil {
		return nil, err
	}

	rows, columns := detectionResult.BarcodeRowCount(), detectionResult.BarcodeColumnCount()
	codewords := make([]int, rows*columns)
	var erasures, ambiguousIndexes []int
	var ambiguousIndexValues [][]int

	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			values := barcodeMatrix[row][column+1].Value()
			index := row*columns + column
			switch len(values) {
			case 0:
				erasures = append(erasures, index)
			case 1:
				codewords[index] = values[0]
			default:
				ambiguousIndexes = append(ambiguousIndexes, index)
				ambiguousIndexValues = append(ambiguousIndexValues, values)
			}
		}
	}
	return createDecoderResultFromAmbiguousValues(detectionResult.BarcodeECLevel(), codewords, erasures, ambiguousIndexes, ambiguousIndexValues)
}

// createDecoderResultFromAmbiguousValues runs the bounded ambiguity search:
// substitute each candidate combination into the codeword vector and stop
// at the first non-checksum outcome, otherwise advancing a little-endian
// odometer over the ambiguous cells, capped at 100 attempts.
func createDecoderResultFromAmbiguousValues(ecLevel int, codewords []int, erasures []int,
	ambiguousIndexes []int, ambiguousIndexValues [][]int) (*result.DecoderResult, error) {

	odometer := make([]int, len(ambiguousIndexes))
	const maxAttempts = 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for i, index := range ambiguousIndexes {
			codewords[index] = ambiguousIndexValues[i][odometer[i]]
		}
		decoded, err := decodeCodewords(codewords, ecLevel, erasures)
		if err == nil {
			return decoded, nil
		}
		if err != pdf417decoder.ErrChecksum {
			return nil, err
		}
		if !advanceOdometer(odometer, ambiguousIndexValues) {
			return nil, pdf417decoder.ErrChecksum
		}
	}
	return nil, pdf417decoder.ErrChecksum
}

// advanceOdometer advances the little-endian odometer to the next
// combination, reporting false once every combination has been exhausted.
func advanceOdometer(odometer []int, values [][]int) bool {
	for i := range odometer {
		if odometer[i] < len(values[i])-1 {
			odometer[i]++
			return true
		}
		odometer[i] = 0
	}
	return false
}

func createBarcodeMatrix(detectionResult *DetectionResult) [][]*BarcodeValue {
	matrix := make([][]*BarcodeValue, detectionResult.BarcodeRowCount())
	for row := range matrix {
		matrix[row] = make([]*BarcodeValue, detectionResult.BarcodeColumnCount()+2)
		for column := range matrix[row] {
			matrix[row][column] = newBarcodeValue()
		}
	}

	for column, col := range detectionResult.GetDetectionResultColumns() {
		if col == nil {
			continue
		}
		for _, codeword := range col.Codewords() {
			if codeword == nil {
				continue
			}
			if row := codeword.RowNumber(); row >= 0 && row < len(matrix) {
				matrix[row][column].SetValue(codeword.Value())
			}
		}
	}
	return matrix
}

func isValidBarcodeColumn(detectionResult *DetectionResult, barcodeColumn int) bool {
	return barcodeColumn >= 0 && barcodeColumn <= detectionResult.BarcodeColumnCount()+1
}

// getStartColumn predicts where the next codeword in barcodeColumn should
// start. It tries, in order: the neighbor column's near edge at this row, a
// nearby codeword in this column, a nearby codeword in the neighbor column,
// extrapolation from the closest codeword found by walking further outward,
// and finally the bounding-box edge.
func getStartColumn(detectionResult *DetectionResult, barcodeColumn, imageRow int, leftToRight bool) int {
	offset := 1
	if !leftToRight {
		offset = -1
	}
	neighborColumn := barcodeColumn - offset

	if isValidBarcodeColumn(detectionResult, neighborColumn) {
		if cw := detectionResult.GetDetectionResultColumn(neighborColumn).Codeword(imageRow); cw != nil {
			return edgeTowardScan(cw, leftToRight, true)
		}
	}
	if cw := detectionResult.GetDetectionResultColumn(barcodeColumn).CodewordNearby(imageRow); cw != nil {
		return edgeTowardScan(cw, leftToRight, false)
	}
	if isValidBarcodeColumn(detectionResult, neighborColumn) {
		if cw := detectionResult.GetDetectionResultColumn(neighborColumn).CodewordNearby(imageRow); cw != nil {
			return edgeTowardScan(cw, leftToRight, true)
		}
	}

	skipped := 0
	for column := neighborColumn; isValidBarcodeColumn(detectionResult, column); column -= offset {
		for _, cw := range detectionResult.GetDetectionResultColumn(column).Codewords() {
			if cw == nil {
				continue
			}
			extrapolated := offset * skipped * cw.Width()
			if leftToRight {
				return cw.EndX() + extrapolated
			}
			return cw.StartX() + extrapolated
		}
		skipped++
	}

	if leftToRight {
		return detectionResult.GetBoundingBox().MinX()
	}
	return detectionResult.GetBoundingBox().MaxX()
}

// edgeTowardScan returns the edge of cw at which the next codeword of the
// column being scanned should begin. For a codeword of that same column it is
// cw's leading edge in scan order (StartX when scanning left to right); with
// fromNeighbor it is the neighbor's trailing edge (EndX when scanning left to
// right), since a neighbor column's far edge sits where this column begins.
func edgeTowardScan(cw *Codeword, leftToRight, fromNeighbor bool) int {
	if leftToRight != fromNeighbor {
		return cw.StartX()
	}
	return cw.EndX()
}

// detectCodeword extracts a single codeword from image row imageRow,
// starting near startColumn. Returns nil on any extraction failure;
// absence is the expected outcome for a row that does not cleanly resolve.
func detectCodeword(image *bitmatrix.Matrix, minColumn, maxColumn int, leftToRight bool,
	startColumn, imageRow, minCodewordWidth, maxCodewordWidth int) *Codeword {

	startColumn = adjustCodewordStartColumn(image, minColumn, maxColumn, leftToRight, startColumn, imageRow)
	runs := getModuleBitCount(image, minColumn, maxColumn, leftToRight, startColumn, imageRow)
	if runs == nil {
		return nil
	}

	width := sumInts(runs)
	rangeStart, rangeEnd := codewordSpan(startColumn, width, leftToRight)
	if !leftToRight {
		reverseInts(runs)
	}
	if !checkCodewordSkew(width, minCodewordWidth, maxCodewordWidth) {
		return nil
	}

	decodedValue := getDecodedValue(runs)
	codeword := getCodeword(decodedValue)
	if codeword == -1 {
		return nil
	}
	return newCodeword(rangeStart, rangeEnd, getCodewordBucketNumber(decodedValue), codeword)
}

// codewordSpan converts a scan starting point and total run width into the
// codeword's [start, end) image columns, accounting for scan direction.
func codewordSpan(startColumn, width int, leftToRight bool) (start, end int) {
	if leftToRight {
		return startColumn, startColumn + width
	}
	return startColumn - width, startColumn
}

func reverseInts(values []int) {
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
}

// getModuleBitCount walks outward from startColumn accumulating run
// lengths for the barsInModule bars/spaces of a codeword, also accepting a
// scan that reaches the column boundary while the last run is still being
// counted.
func getModuleBitCount(image *bitmatrix.Matrix, minColumn, maxColumn int, leftToRight bool, startColumn, imageRow int) []int {
	column := startColumn
	runs := make([]int, barsInModule)
	run := 0
	step := 1
	if !leftToRight {
		step = -1
	}
	color := leftToRight
	for inScanRange(column, minColumn, maxColumn, leftToRight) && run < len(runs) {
		if image.Get(column, imageRow) == color {
			runs[run]++
			column += step
			continue
		}
		run++
		color = !color
	}

	atBoundary := (leftToRight && column == maxColumn) || (!leftToRight && column == minColumn)
	if run == len(runs) || (atBoundary && run == len(runs)-1) {
		return runs
	}
	return nil
}

func inScanRange(column, minColumn, maxColumn int, leftToRight bool) bool {
	if leftToRight {
		return column < maxColumn
	}
	return column >= minColumn
}

// adjustCodewordStartColumn nudges the start column by up to
// codewordSkewSize pixels so the pixel just before it is the opposite color
// of the expected leading bar, probing both directions.
func adjustCodewordStartColumn(image *bitmatrix.Matrix, minColumn, maxColumn int, leftToRight bool, codewordStartColumn, imageRow int) int {
	corrected := codewordStartColumn
	step := -1
	if !leftToRight {
		step = 1
	}
	for pass := 0; pass < 2; pass++ {
		for inProbeRange(corrected, minColumn, maxColumn, leftToRight) && image.Get(corrected, imageRow) == leftToRight {
			if abs(codewordStartColumn-corrected) > codewordSkewSize {
				return codewordStartColumn
			}
			corrected += step
		}
		step = -step
		leftToRight = !leftToRight
	}
	return corrected
}

func inProbeRange(column, minColumn, maxColumn int, leftToRight bool) bool {
	if leftToRight {
		return column >= minColumn
	}
	return column < maxColumn
}

func checkCodewordSkew(codewordSize, minCodewordWidth, maxCodewordWidth int) bool {
	return minCodewordWidth-codewordSkewSize <= codewordSize && codewordSize <= maxCodewordWidth+codewordSkewSize
}

func decodeCodewords(codewords []int, ecLevel int, erasures []int) (*result.DecoderResult, error) {
	if len(codewords) == 0 {
		return nil, pdf417decoder.ErrFormat
	}

	numECCodewords := 1 << uint(ecLevel+1)
	correctedCount, err := correctErrors(codewords, erasures, numECCodewords)
	if err != nil {
		return nil, err
	}
	if err := verifyCodewordCount(codewords, numECCodewords); err != nil {
		return nil, err
	}

	decoded, err := bitstream.Decode(codewords, strconv.Itoa(ecLevel))
	if err != nil {
		return nil, err
	}
	decoded.ErrorsCorrected = correctedCount
	decoded.Erasures = len(erasures)
	return decoded, nil
}

// correctErrors applies the erasure-count precondition before delegating to
// Reed-Solomon. The returned count excludes positions already named in
// erasures: those are reported through Erasures instead, so a symbol with
// only known-missing codewords and no other corruption reports zero
// corrected errors.
func correctErrors(codewords []int, erasures []int, numECCodewords int) (int, error) {
	if len(erasures) > numECCodewords/2+maxErasuresOverhead || numECCodewords < 0 || numECCodewords > maxECCodewords {
		return 0, pdf417decoder.ErrChecksum
	}
	before := append([]int(nil), codewords...)
	if _, err := scanErrorCorrection.Decode(codewords, numECCodewords, erasures); err != nil {
		return 0, err
	}

	erased := make(map[int]bool, len(erasures))
	for _, index := range erasures {
		erased[index] = true
	}
	corrected := 0
	for i, value := range codewords {
		if value != before[i] && !erased[i] {
			corrected++
		}
	}
	return corrected, nil
}

// verifyCodewordCount validates the Symbol Length Descriptor at
// codewords[0], deriving it from the codeword count when it was unset.
func verifyCodewordCount(codewords []int, numECCodewords int) error {
	if len(codewords) < 4 {
		return pdf417decoder.ErrFormat
	}
	length := codewords[0]
	if length > len(codewords) {
		return pdf417decoder.ErrFormat
	}
	if length == 0 {
		if numECCodewords >= len(codewords) {
			return pdf417decoder.ErrFormat
		}
		codewords[0] = len(codewords) - numECCodewords
	}
	return nil
}

// getBitCountForCodeword inverts getBitValue: reconstructs the run lengths
// that produced a canonical symbol value, walking its bits from the least
// significant end and starting a new run each time the bit flips.
func getBitCountForCodeword(codeword int) []int {
	runs := make([]int, barsInModule)
	bit := 0
	i := len(runs) - 1
	for {
		if codeword&1 != bit {
			bit = codeword & 1
			i--
			if i < 0 {
				break
			}
		}
		runs[i]++
		codeword >>= 1
	}
	return runs
}

func getCodewordBucketNumber(codeword int) int {
	return getCodewordBucketNumberFromBitCount(getBitCountForCodeword(codeword))
}

func getCodewordBucketNumberFromBitCount(runs []int) int {
	return (runs[0] - runs[2] + runs[4] - runs[6] + 9) % 9
}

func abs(x int) int {
	return int(math.Abs(float64(x)))
}
