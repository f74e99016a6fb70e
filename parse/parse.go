// Package parse turns delimiter-separated text into typed lists. It backs
// the list-valued configuration fields such as tensor input sizes.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TupleSeparator separates input tensors in an input-size list.
	TupleSeparator = ";"
	// DimSeparator separates dimensions within one input tensor.
	DimSeparator = ","
)

// InputSizes parses "c,h,w;c,h,w" into one dimension tuple per input tensor.
// Whitespace around dimensions is ignored. An empty string yields no tuples.
func InputSizes(input string) ([][]int64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	var sizes [][]int64
	for i, tuple := range strings.Split(input, TupleSeparator) {
		var dims []int64
		for _, tok := range strings.Split(tuple, DimSeparator) {
			d, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("input %d: invalid dimension %q: %w", i, tok, err)
			}
			dims = append(dims, d)
		}
		sizes = append(sizes, dims)
	}
	return sizes, nil
}

// FloatList parses a list of 32-bit floats.
func FloatList(input string, delim string) ([]float32, error) {
	var values []float32
	for _, tok := range StringList(input, delim) {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", tok, err)
		}
		values = append(values, float32(f))
	}
	return values, nil
}

// IntList parses a list of integers.
func IntList(input string, delim string) ([]int, error) {
	var values []int
	for _, tok := range StringList(input, delim) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", tok, err)
		}
		values = append(values, n)
	}
	return values, nil
}

// StringList splits input on delim and trims every element.
// An empty or blank input yields an empty list.
func StringList(input string, delim string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, delim)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// FormatInputSizes is the inverse of InputSizes.
func FormatInputSizes(sizes [][]int64) string {
	tuples := make([]string, 0, len(sizes))
	for _, dims := range sizes {
		parts := make([]string, 0, len(dims))
		for _, d := range dims {
			parts = append(parts, strconv.FormatInt(d, 10))
		}
		tuples = append(tuples, strings.Join(parts, DimSeparator))
	}
	return strings.Join(tuples, TupleSeparator)
}
