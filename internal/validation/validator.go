package validation

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	separatorPattern = regexp.MustCompile(`[\s,;:]+`)
)

// Input formats for codeword text.
const (
	FormatHex = "hex"
	FormatDec = "dec"
)

func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// ParseCodewords parses codewords written as hex bytes ("10200c56", "10 20 0c")
// or as decimal integers ("16,32,12"). Values must lie in [0, fieldSize).
func ParseCodewords(input, format string, fieldSize int) ([]int, error) {
	input = SanitizeInput(input)
	if input == "" {
		return nil, fmt.Errorf("codewords cannot be empty")
	}

	var codewords []int
	switch format {
	case FormatHex:
		if fieldSize > 256 {
			return nil, fmt.Errorf("hex input holds 8-bit codewords, field has %d elements; use dec", fieldSize)
		}
		compact := separatorPattern.ReplaceAllString(input, "")
		compact = strings.TrimPrefix(strings.TrimPrefix(compact, "0x"), "0X")
		if err := ValidateHex(compact); err != nil {
			return nil, fmt.Errorf("invalid codewords: %w", err)
		}
		data, err := hex.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("failed to decode codewords: %w", err)
		}
		codewords = make([]int, len(data))
		for i, b := range data {
			codewords[i] = int(b)
		}
	case FormatDec:
		fields := separatorPattern.Split(input, -1)
		codewords = make([]int, 0, len(fields))
		for i, f := range fields {
			if f == "" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("codeword %d is not an integer: %q", i+1, f)
			}
			codewords = append(codewords, v)
		}
	default:
		return nil, fmt.Errorf("unknown codeword format %q (use %s or %s)", format, FormatHex, FormatDec)
	}

	for i, c := range codewords {
		if c < 0 || c >= fieldSize {
			return nil, fmt.Errorf("codeword %d out of range [0, %d): %d", i+1, fieldSize, c)
		}
	}
	return codewords, nil
}

// FormatCodewords renders codewords in the given format.
func FormatCodewords(codewords []int, format string) string {
	parts := make([]string, len(codewords))
	for i, c := range codewords {
		if format == FormatHex {
			parts[i] = fmt.Sprintf("%02x", c)
		} else {
			parts[i] = strconv.Itoa(c)
		}
	}
	if format == FormatHex {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, ",")
}

func ValidateDecodeParams(total, ecCodewords, fieldSize int) error {
	if ecCodewords < 0 {
		return fmt.Errorf("error-correction codewords must not be negative (got %d)", ecCodewords)
	}

	if total <= ecCodewords {
		return fmt.Errorf("need more than %d codewords, got %d", ecCodewords, total)
	}

	// positions are powers of alpha, so a block cannot exceed the group order
	if total > fieldSize-1 {
		return fmt.Errorf("a block over GF(%d) holds at most %d codewords (got %d)", fieldSize, fieldSize-1, total)
	}

	return nil
}

func ValidateEncodeParams(dataCodewords, ecCodewords, fieldSize int) error {
	if dataCodewords <= 0 {
		return fmt.Errorf("data codewords must be positive (got %d)", dataCodewords)
	}
	if ecCodewords <= 0 {
		return fmt.Errorf("error-correction codewords must be positive (got %d)", ecCodewords)
	}
	return ValidateDecodeParams(dataCodewords+ecCodewords, ecCodewords, fieldSize)
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
