package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"Go to parent dir", "[u]"},
		{"Quit", "[q]"},
		{"Find git files", "[f]"},
	}, []Alignment{AlignLeft, AlignRight})
	assert.Equal(t, []string{
		"Go to parent dir  [u]",
		"Quit              [q]",
		"Find git files    [f]",
	}, got)
}

func TestFormatRightAlignAndRaggedRows(t *testing.T) {
	got := Format([][]string{
		{"a", "1"},
		{"bb", "100", "x"},
		{"c"},
	}, []Alignment{AlignLeft, AlignRight})
	assert.Equal(t, []string{
		"a     1  ",
		"bb  100  x",
		"c        ",
	}, got)
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"é", "x"}, {"ab", "y"}}, nil)
	assert.Equal(t, []string{"é   x", "ab  y"}, got)
}

func TestFormatEmpty(t *testing.T) {
	assert.Nil(t, Format(nil, nil))
}
