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

// Package profile holds the static request/response fixtures
// authored per payments connector and resolves them for scenario steps.
package profile

// Expected describes the response a step's HTTP call is asserted against.
type Expected struct {
	// Status is the expected HTTP status code
	Status int `json:"status" yaml:"status"`
	// Body contains the expected top-level response fields.
	// Only the listed fields are asserted; extra response fields are ignored.
	Body map[string]any `json:"body,omitempty" yaml:"body,omitempty"`
	// TriggerSkip marks the step as terminal for its scenario: once it has
	// run, the remaining steps are skipped regardless of assertion results.
	// When nil, the halt decision is inferred from the body shape.
	TriggerSkip *bool `json:"triggerSkip,omitempty" yaml:"triggerSkip,omitempty"`
}

// Fixture is the authored request/expected-response pair for one
// scenario step of one connector.
type Fixture struct {
	Request  map[string]any `json:"request" yaml:"request"`
	Response Expected       `json:"response" yaml:"response"`
}

// Profile bundles all fixtures of one connector, grouped by
// payment-method category (e.g. "card_pm") and scenario fixture name.
type Profile struct {
	Connector  string                        `json:"connector" yaml:"connector"`
	Categories map[string]map[string]Fixture `json:"categories" yaml:"categories"`
}
