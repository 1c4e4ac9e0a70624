package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTextCompaction(t *testing.T) {
	// "HI" packed as one text-compaction codeword: H=7, I=8 -> 7*30+8.
	codewords := []int{2, 7*30 + 8}

	decoded, err := Decode(codewords, "2")
	require.NoError(t, err)
	require.Equal(t, "HI", decoded.Text)
	require.Equal(t, "2", decoded.ECLevel)
}

func TestDecodeByteCompactionBelowBlockThreshold(t *testing.T) {
	// Byte compaction latch, then two raw bytes ('H', 'I') that don't fill
	// a full 5-codeword/6-byte block.
	codewords := []int{4, byteCompactionModeLatch, 72, 73}

	decoded, err := Decode(codewords, "0")
	require.NoError(t, err)
	require.Equal(t, "HI", decoded.Text)
}

func TestDecodeNumericCompaction(t *testing.T) {
	// Numeric compaction packs digits with an implicit leading 1 (stripped
	// on decode); 142 in base 900 decodes to the digit string "42".
	codewords := []int{3, numericCompactionModeLatch, 142}

	decoded, err := Decode(codewords, "0")
	require.NoError(t, err)
	require.Equal(t, "42", decoded.Text)
}

func TestDecodeEmptyMessageIsFormatError(t *testing.T) {
	codewords := []int{1}
	_, err := Decode(codewords, "0")
	require.Error(t, err)
}
