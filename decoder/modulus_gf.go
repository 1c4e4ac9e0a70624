package decoder

// modulusGF is a field of integers modulo a prime, with exp/log tables
// precomputed against a generator so multiplication and inversion are O(1)
// table lookups. This is the Reed-Solomon variant PDF417 specifies.
type modulusGF struct {
	modulus  int
	expTable []int
	logTable []int
	zero     *modulusPoly
	one      *modulusPoly
}

// pdf417GF is the Galois field for PDF417 error correction: modulus 929,
// generator 3.
var pdf417GF = newModulusGF(929, 3)

// newModulusGF builds the exponential and logarithm tables for a field with
// the given modulus and generator.
func newModulusGF(modulus, generator int) *modulusGF {
	expTable := make([]int, modulus)
	logTable := make([]int, modulus)

	power := 1
	for i := 0; i < modulus; i++ {
		expTable[i] = power
		power = (power * generator) % modulus
	}
	for i := 0; i < modulus-1; i++ {
		logTable[expTable[i]] = i
	}

	gf := &modulusGF{modulus: modulus, expTable: expTable, logTable: logTable}
	gf.zero = newModulusPoly(gf, []int{0})
	gf.one = newModulusPoly(gf, []int{1})
	return gf
}

func (gf *modulusGF) Size() int { return gf.modulus }

func (gf *modulusGF) Zero() *modulusPoly { return gf.zero }

func (gf *modulusGF) One() *modulusPoly { return gf.one }

func (gf *modulusGF) Add(a, b int) int { return (a + b) % gf.modulus }

func (gf *modulusGF) Subtract(a, b int) int { return (gf.modulus + a - b) % gf.modulus }

func (gf *modulusGF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf.expTable[(gf.logTable[a]+gf.logTable[b])%(gf.modulus-1)]
}

// Exp returns generator^a.
func (gf *modulusGF) Exp(a int) int { return gf.expTable[a] }

// Log returns the discrete log of a, base generator. Panics for a==0.
func (gf *modulusGF) Log(a int) int {
	if a == 0 {
		panic("decoder: log(0)")
	}
	return gf.logTable[a]
}

// Inverse returns the multiplicative inverse of a. Panics for a==0.
func (gf *modulusGF) Inverse(a int) int {
	if a == 0 {
		panic("decoder: inverse(0)")
	}
	return gf.expTable[gf.modulus-gf.logTable[a]-1]
}

// BuildMonomial returns coefficient * x^degree in this field.
func (gf *modulusGF) BuildMonomial(degree, coefficient int) *modulusPoly {
	if degree < 0 {
		panic("decoder: negative degree")
	}
	if coefficient == 0 {
		return gf.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newModulusPoly(gf, coefficients)
}
