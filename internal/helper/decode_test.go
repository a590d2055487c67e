package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	type target struct {
		Timeout time.Duration
		Names   []string
		Count   int
	}

	got, err := Decode[target](map[string]any{
		"timeout": "10s",
		"names":   "one,two",
		"count":   "3",
	})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, got.Timeout)
	assert.Equal(t, []string{"one", "two"}, got.Names)
	assert.Equal(t, 3, got.Count)
}

func TestDecode_Mismatch(t *testing.T) {
	type target struct {
		Count int
	}
	_, err := Decode[target](map[string]any{"count": "not a number"})
	assert.Error(t, err)
}
