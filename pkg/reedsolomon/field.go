// Package reedsolomon implements Reed-Solomon error correction over GF(2^m)
// as used by 2D barcode symbologies (QR Code, Data Matrix, Aztec, MaxiCode).
//
// A Field is built once and shared read-only; every Decoder and Encoder call
// works on caller-owned buffers and local polynomials only, so a single Field
// can serve any number of goroutines.
package reedsolomon

import "fmt"

// Field is GF(size) for size a power of two, represented through exp/log
// tables over the primitive element x. Fields are immutable after
// construction.
type Field struct {
	expTable      []int
	logTable      []int
	zero          *Poly
	one           *Poly
	size          int
	primitive     int
	generatorBase int
}

// NewField builds GF(size) reduced by the given primitive polynomial.
// generatorBase is the exponent of the first root of the code generator
// polynomial (0 for QR Code, 1 for Data Matrix and Aztec).
//
// The multiplicative group generated by x must have exactly size-1 elements;
// otherwise the parameters are rejected with a KindConfiguration error.
func NewField(primitive, size, generatorBase int) (*Field, error) {
	if size < 4 || size&(size-1) != 0 {
		return nil, configError("size %d is not a power of two >= 4", size)
	}
	if primitive < size || primitive >= 2*size {
		return nil, configError("primitive 0x%x has no x^%d term", primitive, bitLength(size)-1)
	}
	if generatorBase < 0 || generatorBase >= size-1 {
		return nil, configError("generator base %d out of range [0, %d)", generatorBase, size-1)
	}

	f := &Field{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	seen := make([]bool, size)
	x := 1
	for i := 0; i < size-1; i++ {
		if x == 0 || seen[x] {
			return nil, configError("0x%x is not primitive for GF(%d): group closed after %d elements", primitive, size, i)
		}
		seen[x] = true
		f.expTable[i] = x
		f.logTable[x] = i

		x <<= 1
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	if x != 1 {
		return nil, configError("0x%x is not primitive for GF(%d): group does not close", primitive, size)
	}
	// exp(size-1) wraps to exp(0)
	f.expTable[size-1] = 1

	f.zero = &Poly{field: f, coefficients: []int{0}}
	f.one = &Poly{field: f, coefficients: []int{1}}

	return f, nil
}

// MustNewField is NewField for package-level field definitions.
func MustNewField(primitive, size, generatorBase int) *Field {
	f, err := NewField(primitive, size, generatorBase)
	if err != nil {
		panic(err)
	}
	return f
}

func bitLength(v int) int {
	n := 0
	for ; v > 0; v >>= 1 {
		n++
	}
	return n
}

// Zero returns the canonical zero polynomial of this field.
func (f *Field) Zero() *Poly { return f.zero }

// One returns the constant polynomial 1.
func (f *Field) One() *Poly { return f.one }

// Size is the number of field elements.
func (f *Field) Size() int { return f.size }

// GeneratorBase is the exponent of the first generator root.
func (f *Field) GeneratorBase() int { return f.generatorBase }

// Primitive is the reduction polynomial.
func (f *Field) Primitive() int { return f.primitive }

// Contains reports whether v is an element of the field.
func (f *Field) Contains(v int) bool { return v >= 0 && v < f.size }

// Add adds or subtracts two elements; both are XOR in characteristic 2.
func Add(a, b int) int {
	return a ^ b
}

// Exp returns alpha^power. Any integer power is accepted and reduced
// modulo size-1.
func (f *Field) Exp(power int) int {
	order := f.size - 1
	power %= order
	if power < 0 {
		power += order
	}
	return f.expTable[power]
}

// Log returns the discrete logarithm of a nonzero element.
func (f *Field) Log(a int) (int, error) {
	if a == 0 {
		return 0, domainError("log", "log(0) is undefined")
	}
	if !f.Contains(a) {
		return 0, domainError("log", "%d is not an element of GF(%d)", a, f.size)
	}
	return f.logTable[a], nil
}

// Inverse returns the multiplicative inverse of a nonzero element.
func (f *Field) Inverse(a int) (int, error) {
	if a == 0 {
		return 0, domainError("inverse", "inverse(0) is undefined")
	}
	if !f.Contains(a) {
		return 0, domainError("inverse", "%d is not an element of GF(%d)", a, f.size)
	}
	return f.expTable[f.size-1-f.logTable[a]], nil
}

// Multiply returns a*b. Both operands must be elements of the field; use
// Contains to check untrusted values first.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}

// Divide returns a/b.
func (f *Field) Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, domainError("divide", "division by zero")
	}
	if !f.Contains(a) || !f.Contains(b) {
		return 0, domainError("divide", "%d/%d has an operand outside GF(%d)", a, b, f.size)
	}
	if a == 0 {
		return 0, nil
	}
	return f.expTable[(f.logTable[a]-f.logTable[b]+f.size-1)%(f.size-1)], nil
}

// BuildMonomial returns coefficient * x^degree.
func (f *Field) BuildMonomial(degree, coefficient int) (*Poly, error) {
	if degree < 0 {
		return nil, domainError("monomial", "negative degree %d", degree)
	}
	if !f.Contains(coefficient) {
		return nil, domainError("monomial", "coefficient %d is not an element of GF(%d)", coefficient, f.size)
	}
	if coefficient == 0 {
		return f.zero, nil
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return &Poly{field: f, coefficients: coefficients}, nil
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,%d,b=%d)", f.primitive, f.size, f.generatorBase)
}
