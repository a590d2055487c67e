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

// Package scenario runs ordered chains of dependent HTTP steps against
// one payments connector. Steps execute strictly in declared order,
// propagate identifiers through a state store, and short-circuit once
// the continuation gate trips false.
package scenario

// Operation describes one HTTP call against the payments API.
// Path may contain placeholders like {payment_id} which are
// substituted from the state store at execution time.
type Operation struct {
	// Kind identifies the call, e.g. "create-payment"
	Kind string
	// Method is the HTTP method
	Method string
	// Path is the request path template relative to the API base URL
	Path string
	// Extract lists response fields to pull into the state store
	// in addition to the well-known identifiers
	Extract []string
}

// Step is one named element of a scenario. Its expected response is
// late-bound: the fixture is resolved against the active connector
// when the step runs, not when the scenario is declared.
type Step struct {
	// Name of the step in reports
	Name string
	// Operation is the HTTP call the step performs
	Operation Operation
	// Fixture is the fixture name resolved in the connector profile
	Fixture string
	// Inject maps request body fields to state store keys whose
	// values are merged into the fixture request before sending
	Inject map[string]string
}

// Scenario is an ordered sequence of steps exercising one
// user-facing payment flow.
type Scenario struct {
	// Name of the scenario in reports and metrics
	Name string
	// Category is the payment-method category the fixtures live under
	Category string
	// Steps execute strictly in declared order
	Steps []Step
}
