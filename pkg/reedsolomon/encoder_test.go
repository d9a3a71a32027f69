package reedsolomon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Version 1-M symbols: 16 data codewords followed by 10 error-correction codewords.
var qrVectors = []struct {
	name string
	data []int
	ec   []int
}{
	{
		name: "ISO 18004 Annex I 01234567",
		data: []int{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11},
		ec:   []int{0xA5, 0x24, 0xD4, 0xC1, 0xED, 0x36, 0xC7, 0x87, 0x2C, 0x55},
	},
	{
		name: "HELLO WORLD",
		data: []int{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17},
		ec:   []int{196, 35, 39, 119, 235, 215, 231, 226, 93, 23},
	},
}

func qrCodeword(data, ec []int) []int {
	codeword := make([]int, 0, len(data)+len(ec))
	codeword = append(codeword, data...)
	return append(codeword, ec...)
}

func TestEncoderQRVectors(t *testing.T) {
	encoder := NewEncoder(QRCodeField256)

	for _, tt := range qrVectors {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]int, len(tt.data)+len(tt.ec))
			copy(buf, tt.data)

			require.NoError(t, encoder.Encode(buf, len(tt.ec)))
			assert.Equal(t, tt.data, buf[:len(tt.data)])
			assert.Equal(t, tt.ec, buf[len(tt.data):])
		})
	}
}

func TestEncoderProducesCleanSyndromes(t *testing.T) {
	for _, name := range PresetNames() {
		field, _ := Preset(name)
		encoder := NewEncoder(field)
		decoder := NewDecoder(field)

		t.Run(name, func(t *testing.T) {
			buf := make([]int, 12)
			for i := 0; i < 6; i++ {
				buf[i] = (i*7 + 3) % field.Size()
			}
			require.NoError(t, encoder.Encode(buf, 6))

			ok, err := decoder.Check(buf, 6)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestEncoderAllZeroData(t *testing.T) {
	buf := []int{0, 0, 0, 9, 9, 9, 9}
	require.NoError(t, NewEncoder(QRCodeField256).Encode(buf, 4))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, buf)
}

func TestEncoderErrors(t *testing.T) {
	encoder := NewEncoder(QRCodeField256)

	err := encoder.Encode([]int{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrDomain)

	err = encoder.Encode([]int{1, 2, 3}, 3)
	assert.ErrorIs(t, err, ErrDomain)

	err = encoder.Encode([]int{1, 300, 0, 0}, 2)
	assert.ErrorIs(t, err, ErrDomain)

	err = encoder.Encode(make([]int, 256), 10)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestEncoderConcurrentGenerators(t *testing.T) {
	encoder := NewEncoder(QRCodeField256)
	want := make([][]int, 30)
	for ec := 1; ec < len(want); ec++ {
		buf := make([]int, 40)
		buf[0] = 1
		require.NoError(t, NewEncoder(QRCodeField256).Encode(buf, ec))
		want[ec] = buf
	}

	var wg sync.WaitGroup
	for ec := 1; ec < len(want); ec++ {
		wg.Add(1)
		go func(ec int) {
			defer wg.Done()
			buf := make([]int, 40)
			buf[0] = 1
			assert.NoError(t, encoder.Encode(buf, ec))
			assert.Equal(t, want[ec], buf)
		}(ec)
	}
	wg.Wait()
}
