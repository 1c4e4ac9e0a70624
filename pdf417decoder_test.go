package pdf417decoder

import "testing"

func TestErrorsAreDistinctSentinels(t *testing.T) {
	if ErrNotFound == ErrFormat || ErrFormat == ErrChecksum || ErrNotFound == ErrChecksum {
		t.Fatal("sentinel errors must be distinct")
	}
}

func TestConstants(t *testing.T) {
	if BarsInModule*MaxRowsInBarcode == 0 {
		t.Fatal("constants should be initialized to non-zero values")
	}
	if ModulesInCodeword != 17 {
		t.Fatalf("ModulesInCodeword = %d, want 17", ModulesInCodeword)
	}
}
