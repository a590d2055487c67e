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

package scenario

import (
	"time"

	"github.com/caas-team/finch/pkg/extract"
)

// StepStatus tells whether a step performed its external call
type StepStatus string

const (
	// StepExecuted means the step performed its HTTP call
	StepExecuted StepStatus = "executed"
	// StepSkipped means the continuation gate had already tripped
	// and the step performed no external call
	StepSkipped StepStatus = "skipped"
)

// RunState is the state of a scenario run
type RunState string

const (
	// Ready means the scenario is bound to a state store but has not started
	Ready RunState = "ready"
	// Running means steps are being executed
	Running RunState = "running"
	// Completed means every declared step was executed or skipped
	Completed RunState = "completed"
	// Aborted means the run stopped before reaching every step,
	// e.g. because a fixture could not be resolved
	Aborted RunState = "aborted"
)

// Assertion is the outcome of a single expected-vs-actual check.
// Assertions are soft: every one is evaluated and recorded, none
// aborts the step.
type Assertion struct {
	Name    string `json:"name"`
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// StepReport records everything one step did
type StepReport struct {
	Name            string          `json:"name"`
	Status          StepStatus      `json:"status"`
	Assertions      []Assertion     `json:"assertions,omitempty"`
	Checks          []extract.Check `json:"checks,omitempty"`
	ExtractedFields map[string]any  `json:"extractedFields,omitempty"`
	GateDecision    bool            `json:"gateDecision"`
	// Error is set when the HTTP call itself failed; assertion
	// mismatches are never reported here
	Error string `json:"error,omitempty"`
}

// Failed reports whether the step hit a transport error or any
// failed assertion
func (s StepReport) Failed() bool {
	if s.Error != "" {
		return true
	}
	for _, a := range s.Assertions {
		if !a.Ok {
			return true
		}
	}
	return false
}

// Report is the ordered outcome of one scenario run, listing every
// declared step so no result is ever silently dropped.
type Report struct {
	Scenario  string       `json:"scenario"`
	Connector string       `json:"connector"`
	State     RunState     `json:"state"`
	Steps     []StepReport `json:"steps"`
	Timestamp time.Time    `json:"timestamp"`
}

// Passed reports whether every executed step finished without
// failures. Skipped steps do not count as failures.
func (r Report) Passed() bool {
	for _, s := range r.Steps {
		if s.Status == StepExecuted && s.Failed() {
			return false
		}
	}
	return true
}
