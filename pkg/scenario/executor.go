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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/caas-team/finch/internal/httpclient"
	"github.com/caas-team/finch/internal/logger"
	"github.com/caas-team/finch/pkg/extract"
	"github.com/caas-team/finch/pkg/profile"
	"github.com/caas-team/finch/pkg/state"
)

// wellKnownKeys are the identifiers written back into the state store
// whenever a response contains them
var wellKnownKeys = []string{
	state.KeyPaymentID,
	state.KeyClientSecret,
	state.KeyMandateID,
	state.KeyPayoutID,
}

var pathPlaceholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// Executor performs exactly one external HTTP call per step and
// soft-asserts the response against the step's expected descriptor.
type Executor struct {
	baseURL string
}

// NewExecutor creates an executor for the payments API at baseURL
func NewExecutor(baseURL string) *Executor {
	return &Executor{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Execute runs one step: it renders the request from the fixture and
// the state store, performs the HTTP call, records every assertion
// and writes newly observed identifiers back into the store.
// A failed HTTP call is the only fatal outcome; assertion mismatches
// are collected, never returned.
func (e *Executor) Execute(ctx context.Context, step Step, fixture profile.Fixture, store *state.Store) StepReport {
	log := logger.FromContext(ctx).With("step", step.Name, "operation", step.Operation.Kind)

	report := StepReport{
		Name:         step.Name,
		Status:       StepExecuted,
		GateDecision: shouldContinue(fixture.Response),
	}

	url, err := e.renderURL(ctx, step.Operation.Path, store)
	if err != nil {
		log.Error("Failed to render request URL", "error", err)
		report.Error = err.Error()
		report.GateDecision = false
		return report
	}

	resp, err := e.do(ctx, step, fixture, url, store)
	if err != nil {
		log.Error("HTTP call failed", "error", err)
		report.Error = err.Error()
		report.GateDecision = false
		return report
	}

	report.Assertions = assertResponse(fixture.Response, resp)

	fields := append(append([]string{}, wellKnownKeys...), step.Operation.Extract...)
	extracted := extract.Extract(ctx, resp, fields)
	report.Checks = extracted.Checks
	report.ExtractedFields = extracted.Fields
	for k, v := range extracted.Fields {
		// the connector identity is seeded at run start and resolves
		// every fixture; a response echoing a connector name stays in
		// the report but never redirects the run
		if k == state.KeyConnector {
			continue
		}
		store.Set(k, v)
	}

	log.Debug("Step finished", "failed", report.Failed(), "gate", report.GateDecision)
	return report
}

// renderURL substitutes state values into the path template.
// A placeholder without a stored value makes the request unbuildable,
// which is treated like a transport failure.
func (e *Executor) renderURL(ctx context.Context, path string, store *state.Store) (string, error) {
	var missing []string
	rendered := pathPlaceholder.ReplaceAllStringFunc(path, func(m string) string {
		key := strings.Trim(m, "{}")
		v, ok := store.GetString(key)
		if !ok {
			missing = append(missing, key)
			return m
		}
		return v
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("cannot build request path %q: no value for %s in state", path, strings.Join(missing, ", "))
	}

	logger.FromContext(ctx).Debug("Rendered request URL", "path", rendered)
	return e.baseURL + rendered, nil
}

// do performs the step's single external call
func (e *Executor) do(ctx context.Context, step Step, fixture profile.Fixture, url string, store *state.Store) (*extract.Response, error) {
	log := logger.FromContext(ctx)

	var body io.Reader = http.NoBody
	if step.Operation.Method != http.MethodGet {
		payload := mergeRequest(ctx, step, fixture, store)
		if len(payload) > 0 {
			b, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			body = bytes.NewReader(b)
		}
	}

	req, err := http.NewRequestWithContext(ctx, step.Operation.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpclient.FromContext(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &extract.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       b,
	}, nil
}

// mergeRequest combines the fixture request with the dynamic state
// values the step declares. Absent state values are logged and left
// out; the connector under test decides whether that is acceptable.
func mergeRequest(ctx context.Context, step Step, fixture profile.Fixture, store *state.Store) map[string]any {
	log := logger.FromContext(ctx)

	payload := make(map[string]any, len(fixture.Request)+len(step.Inject))
	for k, v := range fixture.Request {
		payload[k] = v
	}
	for field, key := range step.Inject {
		v, ok := store.Get(key)
		if !ok {
			log.Info("No state value to inject into request", "field", field, "key", key)
			continue
		}
		payload[field] = v
	}
	return payload
}

// assertResponse evaluates every expected-vs-actual check and records
// each outcome independently
func assertResponse(expected profile.Expected, resp *extract.Response) []Assertion {
	assertions := []Assertion{assertStatus(expected.Status, resp.StatusCode)}

	var actual map[string]any
	bodyParses := json.Unmarshal(resp.Body, &actual) == nil

	for _, field := range sortedKeys(expected.Body) {
		want := expected.Body[field]
		a := Assertion{Name: "body." + field, Ok: true}

		got, ok := actual[field]
		switch {
		case !bodyParses:
			a.Ok = false
			a.Message = "response body is not a JSON object"
		case !ok:
			a.Ok = false
			a.Message = fmt.Sprintf("field %q absent from response", field)
		default:
			if diff := cmp.Diff(normalize(want), got); diff != "" {
				a.Ok = false
				a.Message = fmt.Sprintf("field %q mismatch (-want +got):\n%s", field, diff)
			}
		}
		assertions = append(assertions, a)
	}
	return assertions
}

func assertStatus(want, got int) Assertion {
	a := Assertion{Name: "status", Ok: want == got}
	if !a.Ok {
		a.Message = fmt.Sprintf("expected status %d, got %d", want, got)
	}
	return a
}

// normalize round-trips a fixture value through JSON so its types
// match what json.Unmarshal produces for the actual response
// (e.g. yaml integers become float64)
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
