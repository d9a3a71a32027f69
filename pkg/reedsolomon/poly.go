package reedsolomon

import (
	"strconv"
	"strings"
)

// Poly is a polynomial with coefficients in a Field, stored from the
// highest degree term down to the constant term. Polys are immutable; the
// leading coefficient is nonzero unless the poly is the canonical zero {0}.
type Poly struct {
	field        *Field
	coefficients []int
}

// NewPoly builds a polynomial from coefficients ordered highest degree first.
// Leading zeros are stripped. The slice is copied.
func NewPoly(field *Field, coefficients []int) (*Poly, error) {
	if field == nil {
		return nil, domainError("poly", "nil field")
	}
	if len(coefficients) == 0 {
		return nil, domainError("poly", "no coefficients")
	}
	for i, c := range coefficients {
		if !field.Contains(c) {
			return nil, domainError("poly", "coefficient %d at index %d is not an element of GF(%d)", c, i, field.size)
		}
	}
	cp := make([]int, len(coefficients))
	copy(cp, coefficients)
	return newPoly(field, cp), nil
}

// newPoly takes ownership of coefficients, which must already be field
// elements, and normalizes leading zeros.
func newPoly(field *Field, coefficients []int) *Poly {
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			return field.zero
		}
		coefficients = coefficients[firstNonZero:]
	}
	return &Poly{field: field, coefficients: coefficients}
}

// Field returns the field the coefficients belong to.
func (p *Poly) Field() *Field { return p.field }

// Coefficients returns a copy of the coefficients, highest degree first.
func (p *Poly) Coefficients() []int {
	cp := make([]int, len(p.coefficients))
	copy(cp, p.coefficients)
	return cp
}

// Degree is the index of the highest nonzero coefficient; 0 for the zero poly.
func (p *Poly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of x^degree, 0 above the degree.
func (p *Poly) Coefficient(degree int) int {
	if degree < 0 || degree > p.Degree() {
		return 0
	}
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates p(a) with Horner's rule. a must be an element of
// the field.
func (p *Poly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = Add(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = Add(p.field.Multiply(a, result), c)
	}
	return result
}

func (p *Poly) sameField(op string, other *Poly) error {
	if other == nil {
		return domainError(op, "nil polynomial")
	}
	if p.field != other.field {
		return domainError(op, "polynomials from %s and %s", p.field, other.field)
	}
	return nil
}

// Add returns p + other, which equals p - other in characteristic 2.
func (p *Poly) Add(other *Poly) (*Poly, error) {
	if err := p.sameField("add", other); err != nil {
		return nil, err
	}
	return p.add(other), nil
}

func (p *Poly) add(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smaller, larger := p.coefficients, other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}

	sum := make([]int, len(larger))
	lengthDiff := len(larger) - len(smaller)
	copy(sum, larger[:lengthDiff])
	for i := lengthDiff; i < len(larger); i++ {
		sum[i] = Add(smaller[i-lengthDiff], larger[i])
	}

	return newPoly(p.field, sum)
}

// Multiply returns the product p * other.
func (p *Poly) Multiply(other *Poly) (*Poly, error) {
	if err := p.sameField("multiply", other); err != nil {
		return nil, err
	}
	return p.multiply(other), nil
}

func (p *Poly) multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return p.field.zero
	}
	a, b := p.coefficients, other.coefficients
	product := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		for j, bc := range b {
			product[i+j] = Add(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return newPoly(p.field, product)
}

// MultiplyScalar returns scalar * p.
func (p *Poly) MultiplyScalar(scalar int) *Poly {
	if scalar == 0 {
		return p.field.zero
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newPoly(p.field, product)
}

// MultiplyByMonomial returns p * coefficient * x^degree.
func (p *Poly) MultiplyByMonomial(degree, coefficient int) (*Poly, error) {
	if degree < 0 {
		return nil, domainError("multiply", "negative degree %d", degree)
	}
	if !p.field.Contains(coefficient) {
		return nil, domainError("multiply", "coefficient %d is not an element of GF(%d)", coefficient, p.field.size)
	}
	return p.multiplyByMonomial(degree, coefficient), nil
}

func (p *Poly) multiplyByMonomial(degree, coefficient int) *Poly {
	if coefficient == 0 || p.IsZero() {
		return p.field.zero
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newPoly(p.field, product)
}

// Divide performs long division and returns the quotient and remainder,
// with remainder degree below the divisor degree (or a zero remainder).
func (p *Poly) Divide(other *Poly) (quotient, remainder *Poly, err error) {
	if err := p.sameField("divide", other); err != nil {
		return nil, nil, err
	}
	if other.IsZero() {
		return nil, nil, domainError("divide", "division by the zero polynomial")
	}

	quotient = p.field.zero
	remainder = p

	inverseLeading, err := p.field.Inverse(other.Coefficient(other.Degree()))
	if err != nil {
		return nil, nil, err
	}

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.Coefficient(remainder.Degree()), inverseLeading)
		term := other.multiplyByMonomial(degreeDiff, scale)
		iterQuotient, _ := p.field.BuildMonomial(degreeDiff, scale)
		quotient = quotient.add(iterQuotient)
		remainder = remainder.add(term)
	}

	return quotient, remainder, nil
}

// Derivative returns the formal derivative. In characteristic 2 the
// coefficient k*c_k vanishes for even k, so only odd powers survive.
func (p *Poly) Derivative() *Poly {
	degree := p.Degree()
	if degree == 0 {
		return p.field.zero
	}
	// result has degree-1 as its top power
	result := make([]int, degree)
	for k := 1; k <= degree; k += 2 {
		result[len(result)-k] = p.Coefficient(k)
	}
	return newPoly(p.field, result)
}

func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for degree := p.Degree(); degree >= 0; degree-- {
		c := p.Coefficient(degree)
		if c == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		if c != 1 || degree == 0 {
			sb.WriteString(strconv.Itoa(c))
		}
		switch {
		case degree == 1:
			sb.WriteString("x")
		case degree > 1:
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(degree))
		}
	}
	return sb.String()
}
