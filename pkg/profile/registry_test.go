package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() []Profile {
	return []Profile{
		{
			Connector: "stripe",
			Categories: map[string]map[string]Fixture{
				"card_pm": {
					"PaymentIntent": {
						Request: map[string]any{"amount": 6500},
						Response: Expected{
							Status: 200,
							Body:   map[string]any{"status": "requires_payment_method"},
						},
					},
					"ExpectedFailure": {
						Request: map[string]any{},
						Response: Expected{
							Status: 400,
							Body:   map[string]any{"error": map[string]any{"type": "invalid_request"}},
						},
					},
				},
			},
		},
	}
}

func TestRegistry_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		connector   string
		category    string
		scenario    string
		wantMissing string
	}{
		{
			name:      "known triple resolves",
			connector: "stripe",
			category:  "card_pm",
			scenario:  "PaymentIntent",
		},
		{
			name:        "unknown connector",
			connector:   "adyen",
			category:    "card_pm",
			scenario:    "PaymentIntent",
			wantMissing: "connector",
		},
		{
			name:        "unknown category",
			connector:   "stripe",
			category:    "wallet_pm",
			scenario:    "PaymentIntent",
			wantMissing: "category",
		},
		{
			name:        "unknown scenario",
			connector:   "stripe",
			category:    "card_pm",
			scenario:    "MandateSetup",
			wantMissing: "scenario",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(testProfiles())
			require.NoError(t, err)

			f, err := r.Resolve(tt.connector, tt.category, tt.scenario)
			if tt.wantMissing != "" {
				var lookupErr ErrLookup
				require.ErrorAs(t, err, &lookupErr)
				assert.Equal(t, tt.wantMissing, lookupErr.Missing)

				// same input must yield the same error
				_, err2 := r.Resolve(tt.connector, tt.category, tt.scenario)
				assert.Equal(t, err, err2)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 200, f.Response.Status)
			assert.Equal(t, map[string]any{"amount": 6500}, f.Request)
		})
	}
}

func TestRegistry_HaltPolicyInference(t *testing.T) {
	r, err := NewRegistry(testProfiles())
	require.NoError(t, err)

	t.Run("expected error body infers terminal", func(t *testing.T) {
		f, err := r.Resolve("stripe", "card_pm", "ExpectedFailure")
		require.NoError(t, err)
		require.NotNil(t, f.Response.TriggerSkip)
		assert.True(t, *f.Response.TriggerSkip)
	})

	t.Run("success body infers non-terminal", func(t *testing.T) {
		f, err := r.Resolve("stripe", "card_pm", "PaymentIntent")
		require.NoError(t, err)
		require.NotNil(t, f.Response.TriggerSkip)
		assert.False(t, *f.Response.TriggerSkip)
	})

	t.Run("custom inference rule", func(t *testing.T) {
		r, err := NewRegistry(testProfiles(), WithInference(func(e Expected) bool {
			return e.Status >= 500
		}))
		require.NoError(t, err)

		f, err := r.Resolve("stripe", "card_pm", "ExpectedFailure")
		require.NoError(t, err)
		assert.False(t, *f.Response.TriggerSkip, "400 is not terminal under the custom rule")
	})
}

func TestNewRegistry_DuplicateConnector(t *testing.T) {
	_, err := NewRegistry([]Profile{{Connector: "stripe"}, {Connector: "stripe"}})
	var dupErr ErrDuplicateConnector
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "stripe", dupErr.Connector)
}
