package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenResetToken(t *testing.T) {
	a, err := GenResetToken(32)
	require.NoError(t, err)
	b, err := GenResetToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
