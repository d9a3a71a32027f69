package reedsolomon

import "log/slog"

// Decoder corrects codewords in place using the extended Euclidean
// algorithm, a Chien search and Forney's algorithm.
//
// With twoS error-correction codewords the decoder fixes up to twoS/2 errors.
// Beyond that it usually reports KindUncorrectable, but as with any
// Reed-Solomon decoder a heavily corrupted word can land within twoS/2 of a
// different codeword; that word is then "corrected" to the wrong codeword and
// the miscorrection cannot be detected here.
type Decoder struct {
	field *Field
}

// NewDecoder returns a decoder over field.
func NewDecoder(field *Field) *Decoder {
	return &Decoder{field: field}
}

// Field returns the decoder's field.
func (d *Decoder) Field() *Field { return d.field }

type correction struct {
	position  int
	magnitude int
}

// Decode corrects received in place, where the last twoS entries are the
// error-correction codewords, and returns the number of codewords changed.
// On any error received is left untouched.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	corrections, err := d.corrections(received, twoS)
	if err != nil {
		slog.Debug("Reed-Solomon decode failed",
			"field", d.field.String(),
			"codewords", len(received),
			"twoS", twoS,
			"kind", KindOf(err).String(),
			"error", err)
		return 0, err
	}

	for _, c := range corrections {
		received[c.position] = Add(received[c.position], c.magnitude)
	}
	if len(corrections) > 0 {
		slog.Debug("Reed-Solomon decode corrected errors",
			"field", d.field.String(),
			"codewords", len(received),
			"corrected", len(corrections))
	}
	return len(corrections), nil
}

// Check reports whether received is a valid codeword without modifying it.
func (d *Decoder) Check(received []int, twoS int) (bool, error) {
	if err := d.validate(received, twoS); err != nil {
		return false, err
	}
	_, clean := d.syndromes(received, twoS)
	return clean, nil
}

func (d *Decoder) validate(received []int, twoS int) error {
	if twoS < 0 {
		return domainError("decode", "negative error-correction count %d", twoS)
	}
	if len(received) <= twoS {
		return domainError("decode", "%d codewords cannot hold %d error-correction codewords", len(received), twoS)
	}
	// positions are powers of alpha and repeat after size-1
	if len(received) > d.field.size-1 {
		return domainError("decode", "%d codewords exceed the %d positions of GF(%d)", len(received), d.field.size-1, d.field.size)
	}
	for i, c := range received {
		if !d.field.Contains(c) {
			return domainError("decode", "codeword %d at index %d is not an element of GF(%d)", c, i, d.field.size)
		}
	}
	return nil
}

// syndromes evaluates the received polynomial at alpha^(b+i) for i < twoS.
// Coefficients are returned highest degree first, so S_i sits at twoS-1-i.
func (d *Decoder) syndromes(received []int, twoS int) ([]int, bool) {
	poly := newPoly(d.field, received)
	syndromeCoefficients := make([]int, twoS)
	clean := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.generatorBase))
		syndromeCoefficients[twoS-1-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	return syndromeCoefficients, clean
}

// corrections computes every (position, magnitude) pair without touching
// received, so a failure at any stage leaves the buffer intact.
func (d *Decoder) corrections(received []int, twoS int) ([]correction, error) {
	if err := d.validate(received, twoS); err != nil {
		return nil, err
	}

	syndromeCoefficients, clean := d.syndromes(received, twoS)
	if clean {
		return nil, nil
	}

	syndrome := newPoly(d.field, syndromeCoefficients)
	monomial, err := d.field.BuildMonomial(twoS, 1)
	if err != nil {
		return nil, err
	}
	sigma, omega, err := runEuclideanAlgorithm(monomial, syndrome, twoS/2)
	if err != nil {
		return nil, err
	}
	if sigma.Degree() > twoS/2 {
		return nil, uncorrectable("decode", "locator degree %d exceeds capacity %d", sigma.Degree(), twoS/2)
	}

	errorLocations, err := findErrorLocations(sigma)
	if err != nil {
		return nil, err
	}
	errorMagnitudes, err := findErrorMagnitudes(sigma, omega, errorLocations)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(errorLocations))
	result := make([]correction, len(errorLocations))
	for i, location := range errorLocations {
		logX, err := d.field.Log(location)
		if err != nil {
			return nil, err
		}
		position := len(received) - 1 - logX
		if position < 0 {
			return nil, uncorrectable("decode", "error location %d lies outside %d codewords", logX, len(received))
		}
		if errorMagnitudes[i] == 0 {
			return nil, uncorrectable("decode", "zero magnitude at position %d", position)
		}
		if _, dup := seen[position]; dup {
			return nil, uncorrectable("decode", "duplicate error position %d", position)
		}
		seen[position] = struct{}{}
		result[i] = correction{position: position, magnitude: errorMagnitudes[i]}
	}
	return result, nil
}
