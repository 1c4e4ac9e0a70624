package decoder

// BarcodeValue is a histogram over candidate integer values observed at a
// single matrix cell, with confidence counts.
type BarcodeValue struct {
	counts map[int]int
}

// newBarcodeValue creates an empty BarcodeValue.
func newBarcodeValue() *BarcodeValue {
	return &BarcodeValue{counts: make(map[int]int)}
}

// SetValue records one more observation of value.
func (bv *BarcodeValue) SetValue(value int) {
	bv.counts[value]++
}

// Value returns every value tied for the highest observation count. Empty
// if nothing has been observed; a singleton if there is a clear winner; more
// than one element if there is an ambiguous tie.
func (bv *BarcodeValue) Value() []int {
	maxConfidence := -1
	var result []int
	for value, confidence := range bv.counts {
		switch {
		case confidence > maxConfidence:
			maxConfidence = confidence
			result = []int{value}
		case confidence == maxConfidence:
			result = append(result, value)
		}
	}
	return result
}

// Confidence returns the observation count for value, or 0.
func (bv *BarcodeValue) Confidence(value int) int {
	return bv.counts[value]
}
