package reedsolomon

import (
	"sort"
	"strings"
)

// Fields used by the common 2D symbologies.
var (
	QRCodeField256     = MustNewField(0x011D, 256, 0) // x^8 + x^4 + x^3 + x^2 + 1
	DataMatrixField256 = MustNewField(0x012D, 256, 1) // x^8 + x^5 + x^3 + x^2 + 1
	AztecData12        = MustNewField(0x1069, 4096, 1)
	AztecData10        = MustNewField(0x0409, 1024, 1)
	AztecData6         = MustNewField(0x0043, 64, 1)
	AztecParam         = MustNewField(0x0013, 16, 1)
	AztecData8         = DataMatrixField256
	MaxiCodeField64    = AztecData6
)

var presets = map[string]*Field{
	"qr":            QRCodeField256,
	"datamatrix":    DataMatrixField256,
	"aztec-data-12": AztecData12,
	"aztec-data-10": AztecData10,
	"aztec-data-8":  AztecData8,
	"aztec-data-6":  AztecData6,
	"aztec-param":   AztecParam,
	"maxicode":      MaxiCodeField64,
}

// Preset looks up a predefined field by name (case insensitive).
func Preset(name string) (*Field, bool) {
	f, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// PresetNames returns the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
