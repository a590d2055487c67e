package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	tests := []struct {
		name   string
		writes map[string]any
		key    string
		want   any
		wantOk bool
	}{
		{
			name:   "get after set returns the value",
			writes: map[string]any{KeyPaymentID: "pay_123"},
			key:    KeyPaymentID,
			want:   "pay_123",
			wantOk: true,
		},
		{
			name:   "never-set key reads as absent",
			writes: map[string]any{},
			key:    KeyMandateID,
			wantOk: false,
		},
		{
			name:   "last write wins",
			writes: map[string]any{KeyConnector: "stripe"},
			key:    KeyConnector,
			want:   "stripe",
			wantOk: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for k, v := range tt.writes {
				s.Set(k, v)
			}

			got, ok := s.Get(tt.key)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	s := New()
	s.Set(KeyPaymentID, "pay_1")
	s.Set(KeyPaymentID, "pay_2")

	got, ok := s.GetString(KeyPaymentID)
	require.True(t, ok)
	assert.Equal(t, "pay_2", got)
}

func TestStore_GetString(t *testing.T) {
	s := New()
	s.Set(KeyPaymentID, "pay_1")
	s.Set("amount", 6500)

	got, ok := s.GetString(KeyPaymentID)
	assert.True(t, ok)
	assert.Equal(t, "pay_1", got)

	_, ok = s.GetString("amount")
	assert.False(t, ok, "non-string value must not read as string")

	_, ok = s.GetString("missing")
	assert.False(t, ok)
}

func TestStore_Snapshot(t *testing.T) {
	s := FromSnapshot(map[string]any{KeyConnector: "adyen"})
	s.Set(KeyPayoutID, "po_123")

	want := map[string]any{
		KeyConnector: "adyen",
		KeyPayoutID:  "po_123",
	}
	assert.Equal(t, want, s.Snapshot())
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields empty store", func(t *testing.T) {
		s, err := LoadFile(ctx, filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Empty(t, s.Snapshot())
	})

	t.Run("round trip through file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		s := New()
		s.Set(KeyConnector, "wise")
		s.Set(KeyPayoutID, "po_123")
		require.NoError(t, SaveFile(ctx, path, s))

		loaded, err := LoadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, s.Snapshot(), loaded.Snapshot())
	})
}
