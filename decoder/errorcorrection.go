package decoder

import "github.com/tpcreative070/pdf417decoder"

// errorCorrection applies Reed-Solomon error correction over GF(929) to a
// received codeword vector.
type errorCorrection struct {
	field *modulusGF
}

// newErrorCorrection creates an errorCorrection using the PDF417 field.
func newErrorCorrection() *errorCorrection {
	return &errorCorrection{field: pdf417GF}
}

// syndromePoly evaluates received at the numEC roots the generator uses and
// reports whether any evaluation came back nonzero.
func (ec *errorCorrection) syndromePoly(received []int, numEC int) (poly *modulusPoly, dirty bool) {
	received1 := newModulusPoly(ec.field, received)
	coefficients := make([]int, numEC)
	for i := numEC; i > 0; i-- {
		eval := received1.EvaluateAt(ec.field.Exp(i))
		coefficients[numEC-i] = eval
		if eval != 0 {
			dirty = true
		}
	}
	return newModulusPoly(ec.field, coefficients), dirty
}

// Decode corrects errors in received in place, given the number of EC
// codewords, and returns the number of errors corrected, or an error if
// correction did not converge. erasures names positions the caller already
// knows are wrong, but the decoder still has to locate every error itself:
// the underlying Euclidean-algorithm/Chien-search pipeline finds errors by
// their effect on the syndrome, not by consulting erasures.
func (ec *errorCorrection) Decode(received []int, numEC int, erasures []int) (int, error) {
	syndrome, dirty := ec.syndromePoly(received, numEC)
	if !dirty {
		return 0, nil
	}

	sigma, omega, err := ec.runEuclideanAlgorithm(ec.field.BuildMonomial(numEC, 1), syndrome, numEC)
	if err != nil {
		return 0, err
	}
	locations, err := ec.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := ec.findErrorMagnitudes(omega, sigma, locations)

	for i, location := range locations {
		position := len(received) - 1 - ec.field.Log(location)
		if position < 0 {
			return 0, pdf417decoder.ErrChecksum
		}
		received[position] = ec.field.Subtract(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// runEuclideanAlgorithm finds the error locator (sigma) and error evaluator
// (omega) polynomials via the extended Euclidean algorithm, stopping once
// the running remainder's degree drops below r/2.
func (ec *errorCorrection) runEuclideanAlgorithm(a, b *modulusPoly, r int) (sigma, omega *modulusPoly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	prevRemainder, remainder := a, b
	prevQuotientTerm, quotientTerm := ec.field.Zero(), ec.field.One()

	for remainder.Degree() >= r/2 {
		olderRemainder, olderQuotientTerm := prevRemainder, prevQuotientTerm
		prevRemainder, prevQuotientTerm = remainder, quotientTerm
		if prevRemainder.IsZero() {
			return nil, nil, pdf417decoder.ErrChecksum
		}

		remainder = olderRemainder
		step := ec.field.Zero()
		leadInverse := ec.field.Inverse(prevRemainder.GetCoefficient(prevRemainder.Degree()))
		for remainder.Degree() >= prevRemainder.Degree() && !remainder.IsZero() {
			degreeDiff := remainder.Degree() - prevRemainder.Degree()
			scale := ec.field.Multiply(remainder.GetCoefficient(remainder.Degree()), leadInverse)
			step = step.Add(ec.field.BuildMonomial(degreeDiff, scale))
			remainder = remainder.Subtract(prevRemainder.MultiplyByMonomial(degreeDiff, scale))
		}
		quotientTerm = step.Multiply(prevQuotientTerm).Subtract(olderQuotientTerm).Negative()
	}

	sigmaAtZero := quotientTerm.GetCoefficient(0)
	if sigmaAtZero == 0 {
		return nil, nil, pdf417decoder.ErrChecksum
	}
	inverse := ec.field.Inverse(sigmaAtZero)
	return quotientTerm.MultiplyScalar(inverse), remainder.MultiplyScalar(inverse), nil
}

// findErrorLocations runs a Chien search: sigma's roots, inverted, are the
// error positions (expressed as powers of the field generator).
func (ec *errorCorrection) findErrorLocations(sigma *modulusPoly) ([]int, error) {
	numErrors := sigma.Degree()
	locations := make([]int, 0, numErrors)
	for x := 1; x < ec.field.Size() && len(locations) < numErrors; x++ {
		if sigma.EvaluateAt(x) == 0 {
			locations = append(locations, ec.field.Inverse(x))
		}
	}
	if len(locations) != numErrors {
		return nil, pdf417decoder.ErrChecksum
	}
	return locations, nil
}

// findErrorMagnitudes applies Forney's formula, using sigma's formal
// derivative in place of the omega' term.
func (ec *errorCorrection) findErrorMagnitudes(omega, sigma *modulusPoly, locations []int) []int {
	degree := sigma.Degree()
	if degree < 1 {
		return []int{}
	}
	derivativeCoefficients := make([]int, degree)
	for i := 1; i <= degree; i++ {
		derivativeCoefficients[degree-i] = ec.field.Multiply(i, sigma.GetCoefficient(i))
	}
	derivative := newModulusPoly(ec.field, derivativeCoefficients)

	magnitudes := make([]int, len(locations))
	for i, location := range locations {
		inverse := ec.field.Inverse(location)
		numerator := ec.field.Subtract(0, omega.EvaluateAt(inverse))
		denominator := ec.field.Inverse(derivative.EvaluateAt(inverse))
		magnitudes[i] = ec.field.Multiply(numerator, denominator)
	}
	return magnitudes
}
