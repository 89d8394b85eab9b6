package random

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
)

func TestCardNumbers_Next(t *testing.T) {
	src := NewCardNumbers()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := src.Next()
		require.NoError(t, err)
		assert.True(t, domain.ValidCardID(id), id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestCardNumbers_Deterministic(t *testing.T) {
	zeros := bytes.Repeat([]byte{0}, 64)
	id, err := NewCardNumbersFrom(bytes.NewReader(zeros)).Next()
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000", id)
}

func TestCardNumbers_ReaderError(t *testing.T) {
	_, err := NewCardNumbersFrom(bytes.NewReader(nil)).Next()
	assert.Error(t, err)
}
