package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "case folds and trims",
			in:   []string{" Xianxia ", "CULTIVATION"},
			want: []string{"xianxia", "cultivation"},
		},
		{
			name: "dedupes preserving first-seen order",
			in:   []string{"isekai", "Isekai", "litrpg", " ISEKAI "},
			want: []string{"isekai", "litrpg"},
		},
		{
			name: "drops empty entries",
			in:   []string{"", "  ", "wuxia"},
			want: []string{"wuxia"},
		},
		{
			name: "nil in nil out",
			in:   nil,
			want: nil,
		},
		{
			name: "all empty yields nil",
			in:   []string{"", " "},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestValidateNovelName(t *testing.T) {
	assert.Error(t, ValidateNovelName(""))
	assert.Error(t, ValidateNovelName("   "))
	assert.NoError(t, ValidateNovelName("Lord of the Mysteries"))
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(0)) // unset is fine
	assert.NoError(t, ValidateYear(2015))
	assert.Error(t, ValidateYear(1500))
	assert.Error(t, ValidateYear(3000))
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating("plot", 0))
	assert.NoError(t, ValidateRating("plot", 4.5))
	assert.NoError(t, ValidateRating("plot", 5))
	assert.Error(t, ValidateRating("plot", -0.5))
	assert.Error(t, ValidateRating("plot", 5.1))
}
