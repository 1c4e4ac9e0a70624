// Package codewordtable implements the external CodewordDecoder /
// Common::GetCodeword narrow interfaces named in the PDF417 scanning
// decoder's spec: mapping an 8-run bar-width pattern to a canonical 17-bit
// symbol value, and that symbol value to a codeword integer in [0,928].
//
// Neither table is present anywhere in the reference corpus this decoder
// was built from (the official ISO 15438 codeword table is proprietary to
// the standard, not to any one implementation's source). This package
// builds a self-consistent substitute behind the same interface shape: it
// enumerates every valid 8-run pattern, groups patterns into the three
// PDF417 row clusters by the same bucket formula the decoder uses, and
// assigns codeword values deterministically so that decoding a pattern and
// recomputing its bucket always agree.
package codewordtable

import "sort"

const (
	barsInModule      = 8
	modulesInCodeword = 17
	numberOfCodewords = 929
)

// pattern is one valid 8-run bar/space sequence: runs in [1,6] summing to
// modulesInCodeword.
type pattern struct {
	runs   [8]int
	value  int // canonical 17-bit symbol value (see bitValue)
	bucket int // cluster number in [0,8]; valid clusters are 0, 3, 6
}

var (
	// SymbolTable holds every valid canonical symbol value, ascending, for
	// use by closest-match decoding (see decoder/codeword_decoder.go).
	SymbolTable []int

	// RatiosTable[i] holds the bar-width ratios for SymbolTable[i], used by
	// closest-match decoding exactly as codeword_decoder.go expects.
	RatiosTable [][]float32

	valueToCodeword map[int]int
	clusterPatterns map[int][]pattern // bucket -> patterns in codeword order
)

func init() {
	patterns := generatePatterns()
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].value < patterns[j].value })

	byCluster := map[int][]pattern{}
	for _, p := range patterns {
		if p.bucket == 0 || p.bucket == 3 || p.bucket == 6 {
			byCluster[p.bucket] = append(byCluster[p.bucket], p)
		}
	}

	valueToCodeword = make(map[int]int, len(patterns))
	clusterPatterns = make(map[int][]pattern, 3)
	for bucket, ps := range byCluster {
		ordered := make([]pattern, numberOfCodewords)
		for rank, p := range ps {
			codeword := rank % numberOfCodewords
			valueToCodeword[p.value] = codeword
			if ordered[codeword].runs == ([8]int{}) {
				ordered[codeword] = p
			}
		}
		clusterPatterns[bucket] = ordered
	}

	SymbolTable = make([]int, len(patterns))
	RatiosTable = make([][]float32, len(patterns))
	for i, p := range patterns {
		SymbolTable[i] = p.value
		RatiosTable[i] = ratiosFor(p.runs)
	}
}

// generatePatterns enumerates every 8-tuple of run lengths in [1,6] that
// sums to modulesInCodeword, with each tuple's canonical value and bucket.
func generatePatterns() []pattern {
	var out []pattern
	var runs [8]int
	var recurse func(idx, remaining int)
	recurse = func(idx, remaining int) {
		if idx == barsInModule {
			if remaining == 0 {
				r := runs
				out = append(out, pattern{
					runs:   r,
					value:  bitValue(r[:]),
					bucket: bucketFromRuns(r[:]),
				})
			}
			return
		}
		maxRun := remaining - (barsInModule-idx-1)*1
		if maxRun > 6 {
			maxRun = 6
		}
		for run := 1; run <= maxRun; run++ {
			runs[idx] = run
			recurse(idx+1, remaining-run)
		}
	}
	recurse(0, modulesInCodeword)
	return out
}

// bitValue packs run lengths into a canonical symbol value: even-indexed
// runs (bars) contribute 1 bits, odd-indexed runs (spaces) contribute 0
// bits, matching the decoder's own getBitValue convention.
func bitValue(runs []int) int {
	var result int64
	for i, run := range runs {
		for bit := 0; bit < run; bit++ {
			result <<= 1
			if i%2 == 0 {
				result |= 1
			}
		}
	}
	return int(result)
}

func bucketFromRuns(runs []int) int {
	return ((runs[0]-runs[2]+runs[4]-runs[6])%9 + 9) % 9
}

func ratiosFor(runs [8]int) []float32 {
	sum := 0
	for _, r := range runs {
		sum += r
	}
	out := make([]float32, barsInModule)
	for i, r := range runs {
		out[i] = float32(r) / float32(sum)
	}
	return out
}

// Decode returns the codeword value in [0,928] for a canonical symbol
// value, and false if the value is not a known symbol.
func Decode(symbolValue int) (int, bool) {
	codeword, ok := valueToCodeword[symbolValue]
	return codeword, ok
}

// PatternFor returns the 8 bar-width runs that encode codeword within the
// given row cluster (bucket, one of 0, 3, 6). Used by test helpers that
// paint synthetic PDF417 bitmaps directly from codeword values.
func PatternFor(bucket, codeword int) ([8]int, bool) {
	ps, ok := clusterPatterns[bucket]
	if !ok || codeword < 0 || codeword >= len(ps) {
		return [8]int{}, false
	}
	return ps[codeword].runs, true
}
