package reedsolomon

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCodeword(t *testing.T, rng *rand.Rand, field *Field, dataCodewords, ecCodewords int) []int {
	t.Helper()
	buf := make([]int, dataCodewords+ecCodewords)
	for i := 0; i < dataCodewords; i++ {
		buf[i] = rng.Intn(field.Size())
	}
	require.NoError(t, NewEncoder(field).Encode(buf, ecCodewords))
	return buf
}

// corrupt changes numErrors distinct positions to a different field element.
func corrupt(rng *rand.Rand, field *Field, buf []int, numErrors int) []int {
	positions := rng.Perm(len(buf))[:numErrors]
	for _, pos := range positions {
		buf[pos] = (buf[pos] + 1 + rng.Intn(field.Size()-1)) % field.Size()
	}
	return positions
}

func cloneInts(src []int) []int {
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}

func hammingDistance(a, b []int) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func TestDecodeQRVectorFiveErrors(t *testing.T) {
	decoder := NewDecoder(QRCodeField256)

	for _, tt := range qrVectors {
		t.Run(tt.name, func(t *testing.T) {
			original := qrCodeword(tt.data, tt.ec)
			received := cloneInts(original)

			received[0] ^= 0xFF
			received[3] = 0
			received[11] = 0x42
			received[17] = 0x01
			received[25] = 0x99
			require.Equal(t, 5, hammingDistance(original, received))

			corrected, err := decoder.Decode(received, len(tt.ec))
			require.NoError(t, err)
			assert.Equal(t, 5, corrected)
			assert.Equal(t, original, received)
		})
	}
}

func TestDecodeWithinCapacity(t *testing.T) {
	tests := []struct {
		field         *Field
		dataCodewords int
		ecCodewords   int
	}{
		{QRCodeField256, 16, 10},
		{QRCodeField256, 100, 30},
		{QRCodeField256, 19, 7},
		{DataMatrixField256, 3, 5},
		{DataMatrixField256, 44, 28},
		{AztecData10, 40, 12},
		{AztecData12, 20, 8},
		{AztecData6, 20, 10},
		{AztecParam, 5, 8},
	}

	for _, tt := range tests {
		decoder := NewDecoder(tt.field)
		rng := rand.New(rand.NewSource(int64(tt.dataCodewords*1000 + tt.ecCodewords)))

		t.Run(tt.field.String(), func(t *testing.T) {
			for numErrors := 0; numErrors <= tt.ecCodewords/2; numErrors++ {
				for trial := 0; trial < 20; trial++ {
					original := randomCodeword(t, rng, tt.field, tt.dataCodewords, tt.ecCodewords)
					received := cloneInts(original)
					corrupt(rng, tt.field, received, numErrors)

					corrected, err := decoder.Decode(received, tt.ecCodewords)
					require.NoError(t, err, "%d errors, trial %d", numErrors, trial)
					assert.Equal(t, numErrors, corrected)
					require.Equal(t, original, received, "%d errors, trial %d", numErrors, trial)
				}
			}
		})
	}
}

func TestDecodeNoErrorsLeavesBufferUnchanged(t *testing.T) {
	decoder := NewDecoder(QRCodeField256)
	original := qrCodeword(qrVectors[0].data, qrVectors[0].ec)
	received := cloneInts(original)

	corrected, err := decoder.Decode(received, 10)
	require.NoError(t, err)
	assert.Zero(t, corrected)
	assert.Equal(t, original, received)

	corrected, err = decoder.Decode(received, 0)
	require.NoError(t, err)
	assert.Zero(t, corrected)
	assert.Equal(t, original, received)
}

func TestDecodeOverCapacity(t *testing.T) {
	field := QRCodeField256
	decoder := NewDecoder(field)
	rng := rand.New(rand.NewSource(42))

	detected := 0
	for trial := 0; trial < 200; trial++ {
		original := randomCodeword(t, rng, field, 16, 10)
		received := cloneInts(original)
		corrupt(rng, field, received, 6+rng.Intn(10))
		before := cloneInts(received)

		_, err := decoder.Decode(received, 10)
		if err == nil {
			// only acceptable as a miscorrection onto another valid codeword
			ok, checkErr := decoder.Check(received, 10)
			require.NoError(t, checkErr)
			require.True(t, ok)
			require.NotEqual(t, original, received)
			assert.LessOrEqual(t, hammingDistance(before, received), 5)
			continue
		}

		detected++
		assert.ErrorIs(t, err, ErrUncorrectable)
		assert.Equal(t, before, received, "buffer modified on failure")
	}
	assert.Greater(t, detected, 190)
}

func TestDecodeTwoSOneCannotCorrect(t *testing.T) {
	received := []int{1, 0}
	_, err := NewDecoder(QRCodeField256).Decode(received, 1)
	assert.ErrorIs(t, err, ErrUncorrectable)
	assert.Equal(t, []int{1, 0}, received)
}

func TestDecodeDomainErrors(t *testing.T) {
	decoder := NewDecoder(QRCodeField256)

	tests := []struct {
		name     string
		received []int
		twoS     int
	}{
		{name: "Negative twoS", received: []int{1, 2, 3}, twoS: -1},
		{name: "Buffer not longer than twoS", received: []int{1, 2, 3}, twoS: 3},
		{name: "Empty buffer", received: nil, twoS: 0},
		{name: "Codeword out of range", received: []int{1, 256, 3, 4}, twoS: 2},
		{name: "Negative codeword", received: []int{1, -1, 3, 4}, twoS: 2},
		{name: "Block longer than field order", received: make([]int, 256), twoS: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cloneInts(tt.received)
			_, err := decoder.Decode(tt.received, tt.twoS)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDomain)
			assert.Equal(t, before, cloneInts(tt.received))
		})
	}
}

func TestFindErrorLocations(t *testing.T) {
	field := QRCodeField256

	// sigma(x) = (1 + X1 x)(1 + X2 x)(1 + X3 x) has roots X1^-1, X2^-1, X3^-1
	locators := []int{field.Exp(3), field.Exp(17), field.Exp(200)}
	sigma := field.One()
	for _, x := range locators {
		sigma = sigma.multiply(newPoly(field, []int{x, 1}))
	}

	found, err := findErrorLocations(sigma)
	require.NoError(t, err)
	assert.ElementsMatch(t, locators, found)
}

func TestFindErrorLocationsRejectsIncompleteFactorization(t *testing.T) {
	field := QRCodeField256

	// pick x^2 + x + c with no roots in the field
	var sigma *Poly
	for c := 1; c < field.Size() && sigma == nil; c++ {
		candidate := newPoly(field, []int{1, 1, c})
		roots := 0
		for x := 1; x < field.Size(); x++ {
			if candidate.EvaluateAt(x) == 0 {
				roots++
			}
		}
		if roots == 0 {
			sigma = candidate
		}
	}
	require.NotNil(t, sigma)

	_, err := findErrorLocations(sigma)
	assert.ErrorIs(t, err, ErrUncorrectable)

	_, err = findErrorLocations(field.One())
	assert.ErrorIs(t, err, ErrUncorrectable)
}

func TestRunEuclideanAlgorithmNormalizesSigma(t *testing.T) {
	field := QRCodeField256
	decoder := NewDecoder(field)
	rng := rand.New(rand.NewSource(3))

	received := randomCodeword(t, rng, field, 16, 10)
	corrupt(rng, field, received, 4)

	coefficients, clean := decoder.syndromes(received, 10)
	require.False(t, clean)

	monomial, err := field.BuildMonomial(10, 1)
	require.NoError(t, err)
	sigma, omega, err := runEuclideanAlgorithm(monomial, newPoly(field, coefficients), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, sigma.Coefficient(0))
	assert.Equal(t, 4, sigma.Degree())
	assert.Less(t, omega.Degree(), 5)
}

func TestDecodeConcurrentSharedField(t *testing.T) {
	field := QRCodeField256
	decoder := NewDecoder(field)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 50; i++ {
				original := make([]int, 26)
				for j := 0; j < 16; j++ {
					original[j] = rng.Intn(256)
				}
				if !assert.NoError(t, NewEncoder(field).Encode(original, 10)) {
					return
				}
				received := cloneInts(original)
				corrupt(rng, field, received, rng.Intn(6))

				_, err := decoder.Decode(received, 10)
				assert.NoError(t, err)
				assert.Equal(t, original, received)
			}
		}(int64(worker))
	}
	wg.Wait()
}

func TestDecodeRejectsAliasedPositions(t *testing.T) {
	field := AztecParam
	rng := rand.New(rand.NewSource(3))

	// 15 codewords is the longest block GF(16) can address
	original := randomCodeword(t, rng, field, 7, 8)
	received := cloneInts(original)
	received[0] ^= 0x3
	corrected, err := NewDecoder(field).Decode(received, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)
	assert.Equal(t, original, received)

	// index 0 of a 20-codeword block shares its syndromes with index 15
	long := make([]int, 20)
	long[0] = 1
	_, err = NewDecoder(field).Decode(long, 8)
	assert.ErrorIs(t, err, ErrDomain)
	assert.Equal(t, 1, long[0])
	assert.ErrorIs(t, NewEncoder(field).Encode(make([]int, 20), 8), ErrDomain)
}
