package decoder

import "fmt"

// maxNearbyDistance bounds how far CodewordNearby will search past an empty
// cell before giving up.
const maxNearbyDistance = 5

// DetectionResultColumnI is the capability shared by interior columns and
// row-indicator columns, letting DetectionResult store either kind.
type DetectionResultColumnI interface {
	CodewordNearby(imageRow int) *Codeword
	ImageRowToCodewordIndex(imageRow int) int
	SetCodeword(imageRow int, codeword *Codeword)
	Codeword(imageRow int) *Codeword
	GetBoundingBox() *BoundingBox
	Codewords() []*Codeword
	String() string
}

// DetectionResultColumn is a vertical strip of Codewords indexed by image
// row within a bounding box.
type DetectionResultColumn struct {
	boundingBox *BoundingBox
	codewords   []*Codeword
}

// newDetectionResultColumn creates an empty column sized to boundingBox.
func newDetectionResultColumn(boundingBox *BoundingBox) *DetectionResultColumn {
	height := boundingBox.MaxY() - boundingBox.MinY() + 1
	return &DetectionResultColumn{
		boundingBox: copyBoundingBox(boundingBox),
		codewords:   make([]*Codeword, height),
	}
}

// ImageRowToCodewordIndex converts an image row to a codeword index.
func (col *DetectionResultColumn) ImageRowToCodewordIndex(imageRow int) int {
	return imageRow - col.boundingBox.MinY()
}

// Codeword returns the codeword stored at imageRow, or nil.
func (col *DetectionResultColumn) Codeword(imageRow int) *Codeword {
	return col.codewords[col.ImageRowToCodewordIndex(imageRow)]
}

// SetCodeword stores codeword at imageRow.
func (col *DetectionResultColumn) SetCodeword(imageRow int, codeword *Codeword) {
	col.codewords[col.ImageRowToCodewordIndex(imageRow)] = codeword
}

// CodewordNearby returns the codeword at imageRow, or the closest one within
// maxNearbyDistance-1 rows on either side if that cell is empty.
func (col *DetectionResultColumn) CodewordNearby(imageRow int) *Codeword {
	if cw := col.Codeword(imageRow); cw != nil {
		return cw
	}
	index := col.ImageRowToCodewordIndex(imageRow)
	for distance := 1; distance < maxNearbyDistance; distance++ {
		if below := index - distance; below >= 0 && col.codewords[below] != nil {
			return col.codewords[below]
		}
		if above := index + distance; above < len(col.codewords) && col.codewords[above] != nil {
			return col.codewords[above]
		}
	}
	return nil
}

// GetBoundingBox returns the bounding box this column was sized to.
func (col *DetectionResultColumn) GetBoundingBox() *BoundingBox { return col.boundingBox }

// Codewords returns the full sparse codeword vector for this column.
func (col *DetectionResultColumn) Codewords() []*Codeword { return col.codewords }

func (col *DetectionResultColumn) String() string {
	out := ""
	for row, cw := range col.codewords {
		if cw == nil {
			out += fmt.Sprintf("%3d:    |   \n", row)
			continue
		}
		out += fmt.Sprintf("%3d: %3d|%3d\n", row, cw.RowNumber(), cw.Value())
	}
	return out
}
