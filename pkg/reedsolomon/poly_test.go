package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoly(t *testing.T, field *Field, coefficients ...int) *Poly {
	t.Helper()
	p, err := NewPoly(field, coefficients)
	require.NoError(t, err)
	return p
}

func randomPoly(rng *rand.Rand, field *Field, degree int) *Poly {
	coefficients := make([]int, degree+1)
	coefficients[0] = 1 + rng.Intn(field.Size()-1)
	for i := 1; i < len(coefficients); i++ {
		coefficients[i] = rng.Intn(field.Size())
	}
	return newPoly(field, coefficients)
}

func TestNewPolyCanonicalForm(t *testing.T) {
	field := QRCodeField256

	p := mustPoly(t, field, 0, 0, 3, 1)
	assert.Equal(t, 1, p.Degree())
	if diff := cmp.Diff([]int{3, 1}, p.Coefficients()); diff != "" {
		t.Errorf("Coefficients() mismatch (-want +got):\n%s", diff)
	}

	zero := mustPoly(t, field, 0, 0, 0)
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Degree())
	assert.Equal(t, "0", zero.String())

	assert.Equal(t, 3, p.Coefficient(1))
	assert.Equal(t, 1, p.Coefficient(0))
	assert.Equal(t, 0, p.Coefficient(5))
}

func TestNewPolyCopiesInput(t *testing.T) {
	coefficients := []int{1, 2, 3}
	p := mustPoly(t, QRCodeField256, coefficients...)
	coefficients[0] = 9
	assert.Equal(t, 1, p.Coefficient(2))

	got := p.Coefficients()
	got[0] = 9
	assert.Equal(t, 1, p.Coefficient(2))
}

func TestNewPolyErrors(t *testing.T) {
	_, err := NewPoly(QRCodeField256, nil)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = NewPoly(QRCodeField256, []int{1, 256})
	assert.ErrorIs(t, err, ErrDomain)

	_, err = NewPoly(AztecParam, []int{16})
	assert.ErrorIs(t, err, ErrDomain)

	_, err = NewPoly(nil, []int{1})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestPolyMixedFields(t *testing.T) {
	qr := mustPoly(t, QRCodeField256, 1, 2)
	dm := mustPoly(t, DataMatrixField256, 1, 2)

	_, err := qr.Add(dm)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = qr.Multiply(dm)
	assert.ErrorIs(t, err, ErrDomain)

	_, _, err = qr.Divide(dm)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestPolyAdd(t *testing.T) {
	field := QRCodeField256
	a := mustPoly(t, field, 5, 0, 7)
	b := mustPoly(t, field, 5, 1, 7)

	sum, err := a.Add(b)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{1, 0}, sum.Coefficients()); diff != "" {
		t.Errorf("a+b mismatch (-want +got):\n%s", diff)
	}

	self, err := a.Add(a)
	require.NoError(t, err)
	assert.True(t, self.IsZero())

	same, err := a.Add(field.Zero())
	require.NoError(t, err)
	assert.Same(t, a, same)
}

func TestPolyMultiply(t *testing.T) {
	field := QRCodeField256
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		a := randomPoly(rng, field, rng.Intn(10))
		b := randomPoly(rng, field, rng.Intn(10))

		product, err := a.Multiply(b)
		require.NoError(t, err)
		assert.Equal(t, a.Degree()+b.Degree(), product.Degree())

		x := 1 + rng.Intn(field.Size()-1)
		assert.Equal(t, field.Multiply(a.EvaluateAt(x), b.EvaluateAt(x)), product.EvaluateAt(x))
	}

	zero, err := mustPoly(t, field, 3, 4).Multiply(field.Zero())
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestPolyMultiplyByMonomial(t *testing.T) {
	field := QRCodeField256
	p := mustPoly(t, field, 1, 1)

	shifted, err := p.MultiplyByMonomial(2, 2)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{2, 2, 0, 0}, shifted.Coefficients()); diff != "" {
		t.Errorf("MultiplyByMonomial mismatch (-want +got):\n%s", diff)
	}

	_, err = p.MultiplyByMonomial(-1, 2)
	assert.ErrorIs(t, err, ErrDomain)

	zero, err := p.MultiplyByMonomial(3, 0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestPolyDivisionIdentity(t *testing.T) {
	for _, field := range []*Field{QRCodeField256, AztecData10, AztecParam} {
		rng := rand.New(rand.NewSource(int64(field.Size())))

		t.Run(field.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				dividend := randomPoly(rng, field, rng.Intn(20))
				divisor := randomPoly(rng, field, rng.Intn(8))

				quotient, remainder, err := dividend.Divide(divisor)
				require.NoError(t, err)
				if !remainder.IsZero() {
					assert.Less(t, remainder.Degree(), divisor.Degree())
				}

				product, err := quotient.Multiply(divisor)
				require.NoError(t, err)
				rebuilt, err := product.Add(remainder)
				require.NoError(t, err)

				if diff := cmp.Diff(dividend.Coefficients(), rebuilt.Coefficients()); diff != "" {
					t.Fatalf("q*d + r != p (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestPolyDivideByZero(t *testing.T) {
	field := QRCodeField256
	_, _, err := mustPoly(t, field, 1, 2, 3).Divide(field.Zero())
	assert.ErrorIs(t, err, ErrDomain)
}

func TestPolyEvaluateAt(t *testing.T) {
	field := QRCodeField256
	p := mustPoly(t, field, 1, 0, 1) // x^2 + 1

	assert.Equal(t, 1, p.EvaluateAt(0))
	assert.Equal(t, 0, p.EvaluateAt(1))
	assert.Equal(t, 5, p.EvaluateAt(2))
}

func TestPolyDerivative(t *testing.T) {
	field := QRCodeField256

	// 5x^3 + 7x^2 + 3x + 9 -> 5x^2 + 3, the x term vanishes in characteristic 2
	p := mustPoly(t, field, 5, 7, 3, 9)
	if diff := cmp.Diff([]int{5, 0, 3}, p.Derivative().Coefficients()); diff != "" {
		t.Errorf("Derivative mismatch (-want +got):\n%s", diff)
	}

	// x^2 + 1 -> 0
	assert.True(t, mustPoly(t, field, 1, 0, 1).Derivative().IsZero())
	assert.True(t, mustPoly(t, field, 42).Derivative().IsZero())
}

func TestPolyString(t *testing.T) {
	field := QRCodeField256
	assert.Equal(t, "x^2 + 1", mustPoly(t, field, 1, 0, 1).String())
	assert.Equal(t, "3x^3 + x + 7", mustPoly(t, field, 3, 0, 1, 7).String())

	m, err := field.BuildMonomial(4, 9)
	require.NoError(t, err)
	assert.Equal(t, "9x^4", m.String())
}
