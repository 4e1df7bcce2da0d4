package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1001", "1001"},
		{" 1001 ", "1001"},
		{"1001.0", "1001"},
		{"150101.00", "150101"},
		{"１００１", "1001"},
		{"1001.01", "1001.01"},
		{"1001．01", "1001.01"},
		{"1001.", "1001."},
		{"", ""},
		{"ABC.0", "ABC.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"", 0},
		{"1001", 1},
		{"100", 1},
		{"150101", 2},
		{"15010101", 3},
		{"1501011", 3},
		{"1001.01", 2},
		{"1001.01.02", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.code), "Level(%q)", tt.code)
	}
}

func TestParent(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"1001", ""},
		{"150101", "1501"},
		{"15010102", "150101"},
		{"1001.01", "1001"},
		{"1001.01.02", "1001.01"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parent(tt.code), "Parent(%q)", tt.code)
	}
}

func TestIsMultiLevel(t *testing.T) {
	assert.False(t, IsMultiLevel("1001", TopLevelLength))
	assert.True(t, IsMultiLevel("150101", TopLevelLength))
	assert.False(t, IsMultiLevel("1001.1", 6))
	assert.True(t, HasSeparator("1001.01"))
	assert.False(t, HasSeparator("100101"))
}
