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

package profile

// InferTerminal decides whether an expected response without an explicit
// TriggerSkip flag ends its scenario.
type InferTerminal func(Expected) bool

// DefaultInference treats an expected error body as terminal: a step that
// is expected to fail intentionally ends the happy-path chain.
func DefaultInference(e Expected) bool {
	_, hasError := e.Body["error"]
	return hasError
}

// Registry is a pure lookup over the statically loaded connector profiles.
// It is immutable during a run.
type Registry struct {
	profiles map[string]Profile
	infer    InferTerminal
}

// NewRegistry creates a registry over the given profiles.
// Fails with ErrDuplicateConnector if two profiles share a connector identifier.
func NewRegistry(profiles []Profile, opts ...Option) (*Registry, error) {
	r := &Registry{
		profiles: make(map[string]Profile, len(profiles)),
		infer:    DefaultInference,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, p := range profiles {
		if _, ok := r.profiles[p.Connector]; ok {
			return nil, ErrDuplicateConnector{Connector: p.Connector}
		}
		r.profiles[p.Connector] = p
	}
	return r, nil
}

// Option configures a registry
type Option func(*Registry)

// WithInference overrides the halt-policy inference rule applied to
// fixtures that carry no explicit TriggerSkip flag
func WithInference(infer InferTerminal) Option {
	return func(r *Registry) {
		r.infer = infer
	}
}

// Resolve returns the fixture authored for the given connector, category
// and scenario fixture name. Any unknown part of the triple returns an
// ErrLookup; there is no fallback.
func (r *Registry) Resolve(connector, category, scenario string) (Fixture, error) {
	p, ok := r.profiles[connector]
	if !ok {
		return Fixture{}, ErrLookup{Connector: connector, Category: category, Scenario: scenario, Missing: "connector"}
	}

	cat, ok := p.Categories[category]
	if !ok {
		return Fixture{}, ErrLookup{Connector: connector, Category: category, Scenario: scenario, Missing: "category"}
	}

	f, ok := cat[scenario]
	if !ok {
		return Fixture{}, ErrLookup{Connector: connector, Category: category, Scenario: scenario, Missing: "scenario"}
	}

	if f.Response.TriggerSkip == nil {
		terminal := r.infer(f.Response)
		f.Response.TriggerSkip = &terminal
	}
	return f, nil
}

// Connectors returns the identifiers of all loaded profiles
func (r *Registry) Connectors() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names
}
