package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt parses a card word as a base-10 integer. A leading '+' is accepted.
func ParseInt(word string) (int, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(word, "+"))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", word)
	}

	return v, nil
}

// IsInt reports whether word parses as an integer.
func IsInt(word string) bool {
	_, err := ParseInt(word)
	return err == nil
}

// ParseFloat parses a card word as a real number. Fortran-style exponents
// using 'd' ("1.5d-3") are accepted.
func ParseFloat(word string) (float64, error) {
	w := strings.ReplaceAll(strings.ToLower(word), "d", "e")

	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", word)
	}

	return v, nil
}

// ParseFloats parses every word with ParseFloat, stopping at the first failure.
func ParseFloats(words []string) ([]float64, error) {
	out := make([]float64, 0, len(words))

	for _, w := range words {
		v, err := ParseFloat(w)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// FormatFloat renders v in the shortest form that parses back to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
