package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordscan/internal/model"
)

func TestMatchable(t *testing.T) {
	for _, word := range []string{"hello", "résumé", "co-op", "e.g"} {
		assert.True(t, Matchable(word), word)
	}
	for _, word := range []string{"", "two words", "don't", "end.", "a,b"} {
		assert.False(t, Matchable(word), word)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]string{"fox", "dog"}))

	err := Validate([]string{"fox", "lazy dog"})
	require.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.Contains(t, err.Error(), `"lazy dog"`)
}
