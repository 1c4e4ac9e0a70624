package decoder

import "testing"

// buildGenerator returns the Reed-Solomon generator polynomial with roots
// at alpha^1..alpha^numEC, the same roots errorCorrection.Decode checks the
// received polynomial against.
func buildGenerator(field *modulusGF, numEC int) *modulusPoly {
	g := field.One()
	for i := 1; i <= numEC; i++ {
		term := newModulusPoly(field, []int{1, field.Subtract(0, field.Exp(i))})
		g = g.Multiply(term)
	}
	return g
}

// polyRemainder computes dividend mod divisor via schoolbook polynomial
// long division over field.
func polyRemainder(field *modulusGF, dividend, divisor *modulusPoly) *modulusPoly {
	remainder := dividend
	inverseLeadDivisor := field.Inverse(divisor.GetCoefficient(divisor.Degree()))
	for remainder.Degree() >= divisor.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - divisor.Degree()
		scale := field.Multiply(remainder.GetCoefficient(remainder.Degree()), inverseLeadDivisor)
		remainder = remainder.Subtract(divisor.MultiplyByMonomial(degreeDiff, scale))
	}
	return remainder
}

// encodeRS appends numEC systematic Reed-Solomon parity codewords to data,
// the inverse of what errorCorrection.Decode verifies.
func encodeRS(field *modulusGF, data []int, numEC int) []int {
	shifted := newModulusPoly(field, data).MultiplyByMonomial(numEC, 1)
	remainder := polyRemainder(field, shifted, buildGenerator(field, numEC))

	parity := make([]int, numEC)
	coeffs := remainder.Coefficients()
	offset := numEC - len(coeffs)
	for i, c := range coeffs {
		parity[offset+i] = field.Subtract(0, c)
	}

	full := make([]int, 0, len(data)+numEC)
	full = append(full, data...)
	full = append(full, parity...)
	return full
}

func TestErrorCorrectionNoErrors(t *testing.T) {
	const numEC = 4
	data := []int{1, 200, 928, 5, 17, 300}
	codewords := encodeRS(pdf417GF, data, numEC)

	ec := newErrorCorrection()
	corrected, err := ec.Decode(append([]int{}, codewords...), numEC, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if corrected != 0 {
		t.Fatalf("corrected = %d, want 0 for an untouched codeword", corrected)
	}
}

func TestErrorCorrectionFixesSingleError(t *testing.T) {
	const numEC = 4
	data := []int{1, 200, 928, 5, 17, 300}
	codewords := encodeRS(pdf417GF, data, numEC)

	corrupted := append([]int{}, codewords...)
	corrupted[2] = (corrupted[2] + 17) % pdf417GF.Size()

	ec := newErrorCorrection()
	corrected, err := ec.Decode(corrupted, numEC, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}
	for i := range codewords {
		if corrupted[i] != codewords[i] {
			t.Fatalf("position %d = %d after correction, want %d", i, corrupted[i], codewords[i])
		}
	}
}

func TestErrorCorrectionCorrectsErasedPosition(t *testing.T) {
	const numEC = 4
	data := []int{42, 900, 1, 777, 15, 600}
	codewords := encodeRS(pdf417GF, data, numEC)

	corrupted := append([]int{}, codewords...)
	erasedIndex := 3
	corrupted[erasedIndex] = 0

	ec := newErrorCorrection()
	corrected, err := ec.Decode(corrupted, numEC, []int{erasedIndex})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}
	if corrupted[erasedIndex] != codewords[erasedIndex] {
		t.Fatalf("erased position = %d, want %d", corrupted[erasedIndex], codewords[erasedIndex])
	}
}

func TestErrorCorrectionTooManyErrorsFails(t *testing.T) {
	const numEC = 4
	data := []int{1, 2, 3, 4, 5, 6}
	codewords := encodeRS(pdf417GF, data, numEC)

	corrupted := append([]int{}, codewords...)
	for i := 0; i < 3; i++ {
		corrupted[i] = (corrupted[i] + 123 + i) % pdf417GF.Size()
	}

	ec := newErrorCorrection()
	if _, err := ec.Decode(corrupted, numEC, nil); err == nil {
		t.Fatal("expected an error when corruption exceeds correction capacity")
	}
}
