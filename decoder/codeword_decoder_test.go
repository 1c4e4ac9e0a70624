package decoder

import (
	"testing"

	"github.com/tpcreative070/pdf417decoder/codewordtable"
)

func TestGetDecodedValueExactPattern(t *testing.T) {
	runs, ok := codewordtable.PatternFor(0, 2)
	if !ok {
		t.Fatal("no pattern for bucket 0 codeword 2")
	}
	moduleBitCount := make([]int, len(runs))
	copy(moduleBitCount, runs[:])

	decodedValue := getDecodedValue(moduleBitCount)
	codeword := getCodeword(decodedValue)
	if codeword != 2 {
		t.Fatalf("getCodeword(getDecodedValue(...)) = %d, want 2", codeword)
	}
}

func TestGetCodewordUnknownValue(t *testing.T) {
	if got := getCodeword(-1); got != -1 {
		t.Fatalf("getCodeword(-1) = %d, want -1", got)
	}
}

func TestSumInts(t *testing.T) {
	if got := sumInts([]int{1, 2, 3, 4}); got != 10 {
		t.Fatalf("sumInts = %d, want 10", got)
	}
}
