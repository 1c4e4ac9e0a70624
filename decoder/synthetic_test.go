package decoder

import (
	"testing"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
	"github.com/tpcreative070/pdf417decoder/codewordtable"
)

// This file paints a synthetic PDF417 bit matrix directly from known
// codeword values, one image row per barcode row, bypassing the encoder
// this decoder does not implement. It exercises Decode end to end without
// needing an external binarizer or corner-point finder.
//
// The symbol is fixed at 3 rows, 2 data columns, EC level 1 (4 EC
// codewords), with only a left row-indicator column — matching the
// left-only boundary case (a right indicator reconstructed purely from
// cluster consensus is out of scope for a hand-painted fixture). Each
// image row lays out, left to right: a white quiet zone, the left
// indicator codeword, data column 1, data column 2, each codeword exactly
// modulesInCodeword pixels wide with the next codeword's leading bar
// closing the previous one's last run.

const syntheticQuietZone = 4

// syntheticIndicator gives (bucket, value) for the left row-indicator
// codeword at each of the 3 barcode rows. Chosen so
// DetectionResultRowIndicatorColumn.GetBarcodeMetadata infers columnCount
// 2, rowCountUpperPart 1, rowCountLowerPart 2 (rowCount 3), ecLevel 1:
//   - row 0, bucket 0: rowIndicatorValue 0 -> rowCountUpperPart = 0*3+1 = 1
//   - row 1, bucket 3: rowIndicatorValue 5 -> ecLevel = 5/3 = 1, rowCountLowerPart = 5%3 = 2
//   - row 2, bucket 6: rowIndicatorValue 1 -> columnCount = 1+1 = 2
var syntheticIndicator = [3][2]int{{0, 0}, {3, 5}, {6, 1}}

func syntheticBucket(row int) int { return (row % 3) * 3 }

// paintCodeword writes codewordtable's bar/space pattern for (bucket,
// value) into row starting at column, returning the column immediately
// following the last painted pixel.
func paintCodeword(t *testing.T, row []bool, column, bucket, value int) int {
	t.Helper()
	runs, ok := codewordtable.PatternFor(bucket, value)
	if !ok {
		t.Fatalf("no pattern for bucket %d value %d", bucket, value)
	}
	black := true
	for _, run := range runs {
		for i := 0; i < run; i++ {
			row[column] = black
			column++
		}
		black = !black
	}
	return column
}

// buildSyntheticSymbol Reed-Solomon-encodes data (SLD followed by message
// codewords) into a 6-codeword, 3x2 grid, applies overrides (simulating
// corruption or an unset erasure), and paints the result into a bit
// matrix, which it returns. syntheticCorners supplies the matching left
// indicator corner points.
func buildSyntheticSymbol(t *testing.T, data []int, overrides map[[2]int]int, erase map[[2]int]bool) *bitmatrix.Matrix {
	t.Helper()
	const rows, columns, numEC = 3, 2, 4
	full := encodeRS(pdf417GF, data, numEC)
	if len(full) != rows*columns {
		t.Fatalf("encodeRS produced %d codewords, want %d", len(full), rows*columns)
	}
	for pos, value := range overrides {
		full[pos[0]*columns+pos[1]] = value
	}

	width := syntheticQuietZone + modulesInCodeword*3 + 1
	bits := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		line := make([]bool, width)
		column := syntheticQuietZone
		column = paintCodeword(t, line, column, syntheticIndicator[r][0], syntheticIndicator[r][1])
		for c := 0; c < columns; c++ {
			if erase[[2]int{r, c}] {
				column += modulesInCodeword
				continue
			}
			column = paintCodeword(t, line, column, syntheticBucket(r), full[r*columns+c])
		}
		bits[r] = line
	}
	return bitmatrix.FromBools(bits)
}

func syntheticCorners(image *bitmatrix.Matrix) (topLeft, bottomLeft pdf417decoder.Point) {
	topLeft = pdf417decoder.Point{X: syntheticQuietZone, Y: 0}
	bottomLeft = pdf417decoder.Point{X: syntheticQuietZone, Y: float64(image.Height() - 1)}
	return topLeft, bottomLeft
}

func TestDecodeSyntheticSymbolClean(t *testing.T) {
	data := []int{2, 1} // SLD=2, "AB" packed as one alpha-submode codeword (A=0,B=1 -> 0*30+1)
	image := buildSyntheticSymbol(t, data, nil, nil)
	topLeft, bottomLeft := syntheticCorners(image)

	decoded, err := Decode(image, &topLeft, &bottomLeft, nil, nil, modulesInCodeword, modulesInCodeword)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Text != "AB" {
		t.Fatalf("Text = %q, want %q", decoded.Text, "AB")
	}
	if decoded.ErrorsCorrected != 0 {
		t.Fatalf("ErrorsCorrected = %d, want 0", decoded.ErrorsCorrected)
	}
	if decoded.Erasures != 0 {
		t.Fatalf("Erasures = %d, want 0", decoded.Erasures)
	}
}

func TestDecodeSyntheticSymbolOneErasure(t *testing.T) {
	data := []int{2, 1}
	erase := map[[2]int]bool{{0, 1}: true} // data column 2, row 0: leave unpainted
	image := buildSyntheticSymbol(t, data, nil, erase)
	topLeft, bottomLeft := syntheticCorners(image)

	decoded, err := Decode(image, &topLeft, &bottomLeft, nil, nil, modulesInCodeword, modulesInCodeword)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Text != "AB" {
		t.Fatalf("Text = %q, want %q", decoded.Text, "AB")
	}
	if decoded.Erasures != 1 {
		t.Fatalf("Erasures = %d, want 1", decoded.Erasures)
	}
	if decoded.ErrorsCorrected != 0 {
		t.Fatalf("ErrorsCorrected = %d, want 0", decoded.ErrorsCorrected)
	}
}

func TestDecodeSyntheticSymbolTwoCorruptedCodewords(t *testing.T) {
	data := []int{2, 1}
	full := encodeRS(pdf417GF, data, 4)
	overrides := map[[2]int]int{
		{1, 0}: (full[2] + 1) % pdf417decoder.NumberOfCodewords, // data column 1, row 1
		{1, 1}: (full[3] + 1) % pdf417decoder.NumberOfCodewords, // data column 2, row 1
	}
	image := buildSyntheticSymbol(t, data, overrides, nil)
	topLeft, bottomLeft := syntheticCorners(image)

	decoded, err := Decode(image, &topLeft, &bottomLeft, nil, nil, modulesInCodeword, modulesInCodeword)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Text != "AB" {
		t.Fatalf("Text = %q, want %q", decoded.Text, "AB")
	}
	if decoded.ErrorsCorrected != 2 {
		t.Fatalf("ErrorsCorrected = %d, want 2", decoded.ErrorsCorrected)
	}
	if decoded.Erasures != 0 {
		t.Fatalf("Erasures = %d, want 0", decoded.Erasures)
	}
}
