package decoder

import (
	"math"

	"github.com/tpcreative070/pdf417decoder/codewordtable"
)

// getDecodedValue decodes a module bit count pattern into a canonical
// symbol value, falling back to closest-match against the codeword table
// when the exact pattern is not a known symbol.
func getDecodedValue(moduleBitCount []int) int {
	decodedValue := getDecodedCodewordValue(sampleBitCounts(moduleBitCount))
	if decodedValue != -1 {
		return decodedValue
	}
	return getClosestDecodedValue(moduleBitCount)
}

// sampleBitCounts resamples noisy run lengths onto the fixed bit budget the
// codeword table expects, spreading rounding error evenly across runs.
func sampleBitCounts(moduleBitCount []int) []int {
	bitCountSum := sumInts(moduleBitCount)
	result := make([]int, barsInModule)
	bitCountIndex := 0
	sumPreviousBits := 0
	for i := 0; i < modulesInCodeword; i++ {
		sampleIndex := float64(bitCountSum)/(2.0*float64(modulesInCodeword)) +
			float64(i)*float64(bitCountSum)/float64(modulesInCodeword)
		if float64(sumPreviousBits+moduleBitCount[bitCountIndex]) <= sampleIndex {
			sumPreviousBits += moduleBitCount[bitCountIndex]
			bitCountIndex++
		}
		result[bitCountIndex]++
	}
	return result
}

func getDecodedCodewordValue(moduleBitCount []int) int {
	decodedValue := getBitValue(moduleBitCount)
	if _, ok := codewordtable.Decode(decodedValue); !ok {
		return -1
	}
	return decodedValue
}

// getBitValue packs run lengths into the canonical symbol value: even
// indices (bars) contribute 1 bits, odd indices (spaces) contribute 0 bits.
func getBitValue(moduleBitCount []int) int {
	var result int64
	for i := 0; i < len(moduleBitCount); i++ {
		for bit := 0; bit < moduleBitCount[i]; bit++ {
			result <<= 1
			if i%2 == 0 {
				result |= 1
			}
		}
	}
	return int(result)
}

// getClosestDecodedValue finds the symbol table entry whose bar-width
// ratios are closest (least squared error) to the observed runs.
func getClosestDecodedValue(moduleBitCount []int) int {
	bitCountSum := sumInts(moduleBitCount)
	bitCountRatios := make([]float32, barsInModule)
	if bitCountSum > 1 {
		for i := 0; i < len(bitCountRatios); i++ {
			bitCountRatios[i] = float32(moduleBitCount[i]) / float32(bitCountSum)
		}
	}
	bestMatchError := float32(math.MaxFloat32)
	bestMatch := -1
	for j := 0; j < len(codewordtable.SymbolTable); j++ {
		var errorVal float32
		ratioRow := codewordtable.RatiosTable[j]
		for k := 0; k < barsInModule; k++ {
			diff := ratioRow[k] - bitCountRatios[k]
			errorVal += diff * diff
			if errorVal >= bestMatchError {
				break
			}
		}
		if errorVal < bestMatchError {
			bestMatchError = errorVal
			bestMatch = codewordtable.SymbolTable[j]
		}
	}
	return bestMatch
}

// getCodeword maps a canonical symbol value to a codeword integer in
// [0,928], or -1 if the value is not a known symbol.
func getCodeword(decodedValue int) int {
	codeword, ok := codewordtable.Decode(decodedValue)
	if !ok {
		return -1
	}
	return codeword
}

// sumInts returns the sum of elements in an int slice.
func sumInts(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum
}
