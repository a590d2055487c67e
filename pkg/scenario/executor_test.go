package scenario

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/finch/pkg/extract"
	"github.com/caas-team/finch/pkg/profile"
	"github.com/caas-team/finch/pkg/state"
)

const testBaseURL = "https://payments.test.com"

func boolPtr(b bool) *bool { return &b }

func assertionByName(t *testing.T, assertions []Assertion, name string) Assertion {
	t.Helper()
	for _, a := range assertions {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("assertion %q not found", name)
	return Assertion{}
}

func TestExecutor_Execute(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	createStep := Step{
		Name: "create-payment",
		Operation: Operation{
			Kind:   "create-payment",
			Method: http.MethodPost,
			Path:   "/payments",
		},
		Fixture: "PaymentIntent",
	}
	fixture := profile.Fixture{
		Request: map[string]any{"amount": 6500, "currency": "USD"},
		Response: profile.Expected{
			Status:      200,
			Body:        map[string]any{"status": "requires_confirmation"},
			TriggerSkip: boolPtr(false),
		},
	}

	t.Run("successful step stores identifiers and passes assertions", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/payments",
			httpmock.NewStringResponder(200,
				`{"payment_id": "pay_123", "client_secret": "pay_123_secret", "status": "requires_confirmation"}`).
				HeaderSet(http.Header{"Content-Type": []string{"application/json"}}))

		store := state.New()
		report := NewExecutor(testBaseURL).Execute(context.Background(), createStep, fixture, store)

		assert.Equal(t, StepExecuted, report.Status)
		assert.True(t, report.GateDecision)
		assert.False(t, report.Failed())

		id, ok := store.GetString(state.KeyPaymentID)
		require.True(t, ok)
		assert.Equal(t, "pay_123", id)
		secret, ok := store.GetString(state.KeyClientSecret)
		require.True(t, ok)
		assert.Equal(t, "pay_123_secret", secret)
		_, ok = store.Get(state.KeyMandateID)
		assert.False(t, ok, "absent identifiers must not be stored")
	})

	t.Run("assertion failures are soft and do not flip the gate", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/payments",
			httpmock.NewStringResponder(400, `{"error": {"type": "invalid_request"}}`))

		store := state.New()
		report := NewExecutor(testBaseURL).Execute(context.Background(), createStep, fixture, store)

		assert.True(t, report.Failed())
		assert.True(t, report.GateDecision, "gate depends on the expected outcome, not the actual one")

		status := assertionByName(t, report.Assertions, "status")
		assert.False(t, status.Ok)
		body := assertionByName(t, report.Assertions, "body.status")
		assert.False(t, body.Ok)
	})

	t.Run("state values are substituted into the request path", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/payments/pay_123",
			httpmock.NewStringResponder(200, `{"payment_id": "pay_123", "status": "succeeded"}`))

		store := state.New()
		store.Set(state.KeyPaymentID, "pay_123")

		retrieveStep := Step{
			Name:      "retrieve-payment",
			Operation: Operation{Kind: "retrieve-payment", Method: http.MethodGet, Path: "/payments/{payment_id}"},
			Fixture:   "RetrievePayment",
		}
		retrieveFixture := profile.Fixture{
			Response: profile.Expected{Status: 200, Body: map[string]any{"status": "succeeded"}, TriggerSkip: boolPtr(false)},
		}

		report := NewExecutor(testBaseURL).Execute(context.Background(), retrieveStep, retrieveFixture, store)
		assert.False(t, report.Failed())
		assert.Equal(t, 1, httpmock.GetTotalCallCount())
	})

	t.Run("missing path identifier is fatal and forces the gate false", func(t *testing.T) {
		httpmock.Reset()

		retrieveStep := Step{
			Name:      "retrieve-payment",
			Operation: Operation{Kind: "retrieve-payment", Method: http.MethodGet, Path: "/payments/{payment_id}"},
		}

		report := NewExecutor(testBaseURL).Execute(context.Background(), retrieveStep, fixture, state.New())
		assert.NotEmpty(t, report.Error)
		assert.False(t, report.GateDecision)
		assert.Zero(t, httpmock.GetTotalCallCount(), "no external call must be made")
	})

	t.Run("transport error is fatal and forces the gate false", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/payments",
			httpmock.NewErrorResponder(assert.AnError))

		report := NewExecutor(testBaseURL).Execute(context.Background(), createStep, fixture, state.New())
		assert.NotEmpty(t, report.Error)
		assert.False(t, report.GateDecision)
		assert.True(t, report.Failed())
	})
}

func TestExecutor_ConnectorEchoDoesNotOverwriteIdentity(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/payouts/create",
		httpmock.NewStringResponder(200, `{"payout_id": "po_123", "connector": "wise", "status": "success"}`).
			HeaderSet(http.Header{"Content-Type": []string{"application/json"}}))

	payoutStep := Step{
		Name: "create-payout",
		Operation: Operation{
			Kind:    "create-payout",
			Method:  http.MethodPost,
			Path:    "/payouts/create",
			Extract: []string{state.KeyConnector},
		},
		Fixture: "Payout",
	}
	payoutFixture := profile.Fixture{
		Response: profile.Expected{Status: 200, Body: map[string]any{"status": "success"}, TriggerSkip: boolPtr(false)},
	}

	store := state.New()
	store.Set(state.KeyConnector, "stripe")

	report := NewExecutor(testBaseURL).Execute(context.Background(), payoutStep, payoutFixture, store)
	require.False(t, report.Failed())

	// the echo is reported but must not redirect fixture resolution
	assert.Equal(t, "wise", report.ExtractedFields["connector"])
	connector, ok := store.GetString(state.KeyConnector)
	require.True(t, ok)
	assert.Equal(t, "stripe", connector)

	id, ok := store.GetString(state.KeyPayoutID)
	require.True(t, ok)
	assert.Equal(t, "po_123", id)
}

func TestExecutor_InjectsStateIntoBody(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var gotBody map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/payments/pay_123/confirm",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponder(200, `{"status": "succeeded"}`)(req)
		})

	store := state.New()
	store.Set(state.KeyPaymentID, "pay_123")
	store.Set(state.KeyClientSecret, "pay_123_secret")

	confirmStep := Step{
		Name:      "confirm-payment",
		Operation: Operation{Kind: "confirm-payment", Method: http.MethodPost, Path: "/payments/{payment_id}/confirm"},
		Fixture:   "No3DSAutoCapture",
		Inject:    map[string]string{"client_secret": state.KeyClientSecret},
	}
	confirmFixture := profile.Fixture{
		Request:  map[string]any{"payment_method": "card"},
		Response: profile.Expected{Status: 200, TriggerSkip: boolPtr(false)},
	}

	report := NewExecutor(testBaseURL).Execute(context.Background(), confirmStep, confirmFixture, store)
	require.False(t, report.Failed())

	assert.Equal(t, "card", gotBody["payment_method"])
	assert.Equal(t, "pay_123_secret", gotBody["client_secret"])
}

func testResponse(status int, body string) *extract.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &extract.Response{StatusCode: status, Header: h, Body: []byte(body)}
}

func Test_assertResponse_NumericTypes(t *testing.T) {
	// fixture values come from yaml as int, response values from json as float64
	expected := profile.Expected{Status: 200, Body: map[string]any{"amount": 6500}}
	resp := testResponse(200, `{"amount": 6500}`)

	assertions := assertResponse(expected, resp)
	for _, a := range assertions {
		assert.True(t, a.Ok, "assertion %q: %s", a.Name, a.Message)
	}
}
