package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordList(t *testing.T) {
	words, err := WordList()
	require.NoError(t, err)
	assert.NotEmpty(t, words)
	for _, w := range words {
		assert.Equal(t, strings.ToLower(w), w)
		assert.NotContains(t, w, " ")
	}
}

func TestSampleBoards(t *testing.T) {
	boards, err := SampleBoards()
	require.NoError(t, err)
	require.Len(t, boards, 2)
	for _, b := range boards {
		assert.Len(t, b, 20)
	}
}
