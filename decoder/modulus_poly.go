package decoder

// modulusPoly is a polynomial over a modulusGF, stored highest-degree
// coefficient first.
type modulusPoly struct {
	field        *modulusGF
	coefficients []int
}

// newModulusPoly creates a polynomial, stripping any leading zero
// coefficients so Degree() is correct.
func newModulusPoly(field *modulusGF, coefficients []int) *modulusPoly {
	if len(coefficients) == 0 {
		panic("decoder: empty coefficients")
	}
	trimmed := coefficients
	if len(trimmed) > 1 && trimmed[0] == 0 {
		i := 1
		for i < len(trimmed) && trimmed[i] == 0 {
			i++
		}
		if i == len(trimmed) {
			trimmed = []int{0}
		} else {
			rest := make([]int, len(trimmed)-i)
			copy(rest, trimmed[i:])
			trimmed = rest
		}
	}
	return &modulusPoly{field: field, coefficients: trimmed}
}

func (p *modulusPoly) Coefficients() []int { return p.coefficients }

func (p *modulusPoly) Degree() int { return len(p.coefficients) - 1 }

func (p *modulusPoly) IsZero() bool { return p.coefficients[0] == 0 }

// GetCoefficient returns the coefficient of the x^degree term.
func (p *modulusPoly) GetCoefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates this polynomial at a, using Horner's method for the
// general case and direct sums for the common a=0 and a=1 shortcuts.
func (p *modulusPoly) EvaluateAt(a int) int {
	switch a {
	case 0:
		return p.GetCoefficient(0)
	case 1:
		sum := 0
		for _, c := range p.coefficients {
			sum = p.field.Add(sum, c)
		}
		return sum
	default:
		result := p.coefficients[0]
		for _, c := range p.coefficients[1:] {
			result = p.field.Add(p.field.Multiply(a, result), c)
		}
		return result
	}
}

func (p *modulusPoly) Add(other *modulusPoly) *modulusPoly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}
	shorter, longer := p.coefficients, other.coefficients
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	offset := len(longer) - len(shorter)
	sum := make([]int, len(longer))
	copy(sum, longer[:offset])
	for i := offset; i < len(longer); i++ {
		sum[i] = p.field.Add(shorter[i-offset], longer[i])
	}
	return newModulusPoly(p.field, sum)
}

func (p *modulusPoly) Subtract(other *modulusPoly) *modulusPoly {
	if other.IsZero() {
		return p
	}
	return p.Add(other.Negative())
}

func (p *modulusPoly) Negative() *modulusPoly {
	negated := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		negated[i] = p.field.Subtract(0, c)
	}
	return newModulusPoly(p.field, negated)
}

func (p *modulusPoly) Multiply(other *modulusPoly) *modulusPoly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	a, b := p.coefficients, other.coefficients
	product := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		for j, bc := range b {
			product[i+j] = p.field.Add(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return newModulusPoly(p.field, product)
}

func (p *modulusPoly) MultiplyScalar(scalar int) *modulusPoly {
	switch scalar {
	case 0:
		return p.field.Zero()
	case 1:
		return p
	default:
		product := make([]int, len(p.coefficients))
		for i, c := range p.coefficients {
			product[i] = p.field.Multiply(c, scalar)
		}
		return newModulusPoly(p.field, product)
	}
}

func (p *modulusPoly) MultiplyByMonomial(degree, coefficient int) *modulusPoly {
	if degree < 0 {
		panic("decoder: negative degree")
	}
	if coefficient == 0 {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newModulusPoly(p.field, product)
}
