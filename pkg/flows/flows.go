// finch
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package flows declares the built-in test scenarios against the
// payments API functionality: card payments, manual capture, mandates,
// payouts and payment-method listing.
package flows

import (
	"net/http"

	"github.com/caas-team/finch/pkg/scenario"
	"github.com/caas-team/finch/pkg/state"
)

// The HTTP operations of the payments API driven by the flows
var (
	opCreatePayment = scenario.Operation{
		Kind:   "create-payment",
		Method: http.MethodPost,
		Path:   "/payments",
	}
	opConfirmPayment = scenario.Operation{
		Kind:   "confirm-payment",
		Method: http.MethodPost,
		Path:   "/payments/{payment_id}/confirm",
	}
	opCapturePayment = scenario.Operation{
		Kind:   "capture-payment",
		Method: http.MethodPost,
		Path:   "/payments/{payment_id}/capture",
	}
	opRetrievePayment = scenario.Operation{
		Kind:   "retrieve-payment",
		Method: http.MethodGet,
		Path:   "/payments/{payment_id}",
	}
	opSyncPayment = scenario.Operation{
		Kind:   "sync-payment",
		Method: http.MethodGet,
		Path:   "/payments/{payment_id}?force_sync=true",
	}
	opListPaymentMethods = scenario.Operation{
		Kind:   "list-payment-methods",
		Method: http.MethodGet,
		Path:   "/account/payment_methods",
	}
	opRetrieveMandate = scenario.Operation{
		Kind:   "retrieve-mandate",
		Method: http.MethodGet,
		Path:   "/mandates/{mandate_id}",
	}
	opCreatePayout = scenario.Operation{
		Kind:    "create-payout",
		Method:  http.MethodPost,
		Path:    "/payouts/create",
		Extract: []string{state.KeyConnector},
	}
	opRetrievePayout = scenario.Operation{
		Kind:   "retrieve-payout",
		Method: http.MethodGet,
		Path:   "/payouts/{payout_id}",
	}
)

// confirmInject merges the stored client secret into confirm requests
func confirmInject() map[string]string {
	return map[string]string{"client_secret": state.KeyClientSecret}
}

// Payment is the card no-3DS auto-capture happy path:
// create, confirm, retrieve and force-sync one payment.
func Payment() scenario.Scenario {
	return scenario.Scenario{
		Name:     "payment",
		Category: "card_pm",
		Steps: []scenario.Step{
			{Name: "create-payment", Operation: opCreatePayment, Fixture: "PaymentIntent"},
			{Name: "confirm-payment", Operation: opConfirmPayment, Fixture: "No3DSAutoCapture", Inject: confirmInject()},
			{Name: "retrieve-payment", Operation: opRetrievePayment, Fixture: "RetrievePayment"},
			{Name: "sync-payment", Operation: opSyncPayment, Fixture: "SyncPayment"},
		},
	}
}

// PaymentManualCapture exercises the two-phase capture flow
func PaymentManualCapture() scenario.Scenario {
	return scenario.Scenario{
		Name:     "payment-manual-capture",
		Category: "card_pm",
		Steps: []scenario.Step{
			{Name: "create-payment", Operation: opCreatePayment, Fixture: "PaymentIntent"},
			{Name: "confirm-payment", Operation: opConfirmPayment, Fixture: "No3DSManualCapture", Inject: confirmInject()},
			{Name: "capture-payment", Operation: opCapturePayment, Fixture: "Capture"},
			{Name: "retrieve-payment", Operation: opRetrievePayment, Fixture: "RetrievePayment"},
		},
	}
}

// Mandate sets up a single-use mandate alongside a payment and
// retrieves it through the stored mandate identifier.
func Mandate() scenario.Scenario {
	return scenario.Scenario{
		Name:     "mandate",
		Category: "card_pm",
		Steps: []scenario.Step{
			{Name: "create-payment", Operation: opCreatePayment, Fixture: "MandatePaymentIntent"},
			{Name: "confirm-payment", Operation: opConfirmPayment, Fixture: "MandateSingleUseNo3DS", Inject: confirmInject()},
			{Name: "retrieve-mandate", Operation: opRetrieveMandate, Fixture: "RetrieveMandate"},
		},
	}
}

// Payout creates a payout and retrieves it again. The create step
// extracts the payout identifier and the connector echo for later runs.
func Payout() scenario.Scenario {
	return scenario.Scenario{
		Name:     "payout",
		Category: "bank_transfer_pm",
		Steps: []scenario.Step{
			{Name: "create-payout", Operation: opCreatePayout, Fixture: "Payout"},
			{Name: "retrieve-payout", Operation: opRetrievePayout, Fixture: "RetrievePayout"},
		},
	}
}

// PaymentMethods lists the payment methods enabled for the merchant
func PaymentMethods() scenario.Scenario {
	return scenario.Scenario{
		Name:     "payment-methods",
		Category: "card_pm",
		Steps: []scenario.Step{
			{Name: "list-payment-methods", Operation: opListPaymentMethods, Fixture: "PaymentMethods"},
		},
	}
}

// registry is a convenience map to look up the built-in flows
var registry = map[string]func() scenario.Scenario{
	"payment":                Payment,
	"payment-manual-capture": PaymentManualCapture,
	"mandate":                Mandate,
	"payout":                 Payout,
	"payment-methods":        PaymentMethods,
}

// Get returns the named built-in flow
func Get(name string) (scenario.Scenario, error) {
	f, ok := registry[name]
	if !ok {
		return scenario.Scenario{}, ErrUnknownFlow{Name: name}
	}
	return f(), nil
}

// Names returns the names of all built-in flows
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
