package codewordtable

import "testing"

func TestDecodeRoundTripsThroughPatternFor(t *testing.T) {
	for _, bucket := range []int{0, 3, 6} {
		for codeword := 0; codeword < 20; codeword++ {
			runs, ok := PatternFor(bucket, codeword)
			if !ok {
				t.Fatalf("bucket %d codeword %d: no pattern", bucket, codeword)
			}
			symbolValue := bitValue(runs[:])
			got, ok := Decode(symbolValue)
			if !ok {
				t.Fatalf("bucket %d codeword %d: Decode rejected its own pattern", bucket, codeword)
			}
			if got != codeword {
				t.Fatalf("bucket %d codeword %d: round trip gave %d", bucket, codeword, got)
			}
		}
	}
}

func TestDecodeUnknownValueFails(t *testing.T) {
	if _, ok := Decode(-1); ok {
		t.Fatal("Decode(-1) should not succeed")
	}
}

func TestPatternForInvalidBucketFails(t *testing.T) {
	if _, ok := PatternFor(1, 0); ok {
		t.Fatal("bucket 1 is not a valid row cluster, PatternFor should fail")
	}
}

func TestSymbolTableSortedAscending(t *testing.T) {
	for i := 1; i < len(SymbolTable); i++ {
		if SymbolTable[i] <= SymbolTable[i-1] {
			t.Fatalf("SymbolTable not strictly ascending at index %d", i)
		}
	}
	if len(SymbolTable) != len(RatiosTable) {
		t.Fatalf("len(SymbolTable)=%d != len(RatiosTable)=%d", len(SymbolTable), len(RatiosTable))
	}
}

func TestRatiosSumToOne(t *testing.T) {
	for i, ratios := range RatiosTable {
		var sum float32
		for _, r := range ratios {
			sum += r
		}
		if sum < 0.999 || sum > 1.001 {
			t.Fatalf("ratios at index %d sum to %f, want ~1.0", i, sum)
		}
	}
}
