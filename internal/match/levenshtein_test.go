package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"trcl", "trcl", 0},
		{"", "fill", 4},
		{"fill", "", 4},
		{"imp", "imq", 1},
		{"lat", "la", 1},
		{"u", "vol", 3},
		{"kitten", "sitting", 3},
		{"fill", "flil", 2},
		{"TRCL", "trcl", 4},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-12)
	assert.InDelta(t, 1.0, Similarity("rcc", "rcc"), 1e-12)
	assert.InDelta(t, 0.75, Similarity("fill", "fil"), 1e-12)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-12)
}

func TestSuggest(t *testing.T) {
	known := []string{"imp", "tmp", "u", "trcl", "fill", "lat", "vol"}

	tests := []struct {
		word string
		want []string
	}{
		{"imq", []string{"imp"}},
		{"trc", []string{"trcl"}},
		{"*fil", []string{"fill"}},
		{"xyzzy", []string{}},
		{"imp", []string{"tmp"}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.word, known, 0))
		})
	}
}

func TestSuggest_Limit(t *testing.T) {
	got := Suggest("cz", []string{"cx", "cy", "c/z", "kz", "pz"}, 2)
	assert.Equal(t, []string{"c/z", "cx"}, got)
}

func TestNormalizeKeyword(t *testing.T) {
	assert.Equal(t, "imp", NormalizeKeyword("IMP:N,P"))
	assert.Equal(t, "trcl", NormalizeKeyword("*trcl"))
	assert.Equal(t, "tr", NormalizeKeyword(" +tr "))
}
