package reedsolomon

import "sync"

// Encoder produces systematic Reed-Solomon codewords: the data is kept as is
// and the error-correction codewords are appended. It is safe for
// concurrent use.
type Encoder struct {
	field *Field

	mu               sync.Mutex
	cachedGenerators []*Poly
}

// NewEncoder returns an encoder over field.
func NewEncoder(field *Field) *Encoder {
	return &Encoder{
		field:            field,
		cachedGenerators: []*Poly{field.one},
	}
}

// generator returns prod_{i<degree} (x - alpha^(i+b)).
func (e *Encoder) generator(degree int) *Poly {
	e.mu.Lock()
	defer e.mu.Unlock()

	if degree < len(e.cachedGenerators) {
		return e.cachedGenerators[degree]
	}
	last := e.cachedGenerators[len(e.cachedGenerators)-1]
	for d := len(e.cachedGenerators); d <= degree; d++ {
		factor := newPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.generatorBase)})
		last = last.multiply(factor)
		e.cachedGenerators = append(e.cachedGenerators, last)
	}
	return e.cachedGenerators[degree]
}

// Encode fills the last ecCodewords entries of toEncode with the
// error-correction codewords for the data in front of them.
func (e *Encoder) Encode(toEncode []int, ecCodewords int) error {
	if ecCodewords <= 0 {
		return domainError("encode", "no error-correction codewords requested")
	}
	dataCodewords := len(toEncode) - ecCodewords
	if dataCodewords <= 0 {
		return domainError("encode", "no data codewords in a buffer of %d", len(toEncode))
	}
	if len(toEncode) > e.field.size-1 {
		return domainError("encode", "%d codewords exceed the %d positions of GF(%d)", len(toEncode), e.field.size-1, e.field.size)
	}

	info, err := NewPoly(e.field, toEncode[:dataCodewords])
	if err != nil {
		return err
	}
	info = info.multiplyByMonomial(ecCodewords, 1)
	_, remainder, err := info.Divide(e.generator(ecCodewords))
	if err != nil {
		return err
	}

	coefficients := remainder.coefficients
	if remainder.IsZero() {
		coefficients = nil
	}
	numZero := ecCodewords - len(coefficients)
	for i := 0; i < numZero; i++ {
		toEncode[dataCodewords+i] = 0
	}
	copy(toEncode[dataCodewords+numZero:], coefficients)
	return nil
}
