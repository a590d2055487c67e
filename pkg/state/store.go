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

package state

import (
	"sync"
)

// Well-known keys under which steps store identifiers
// observed in connector responses.
const (
	KeyConnector    = "connector"
	KeyPaymentID    = "payment_id"
	KeyClientSecret = "client_secret"
	KeyMandateID    = "mandate_id"
	KeyPayoutID     = "payout_id"
)

// Store holds the named key/value state of one test run.
// Values are JSON-compatible (strings, numbers, maps). Last write wins.
// A store must not be shared between concurrently running scenarios.
type Store struct {
	data sync.Map
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// FromSnapshot creates a store pre-populated with the given snapshot
func FromSnapshot(snapshot map[string]any) *Store {
	s := New()
	for k, v := range snapshot {
		s.data.Store(k, v)
	}
	return s
}

// Get returns the value stored under key.
// The second return value is false if the key was never set.
func (s *Store) Get(key string) (any, bool) {
	return s.data.Load(key)
}

// GetString returns the value stored under key as a string.
// Returns false if the key is absent or not a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.data.Load(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key string, value any) {
	s.data.Store(key, value)
}

// Snapshot returns a copy of the store's content as a plain map
func (s *Store) Snapshot() map[string]any {
	snapshot := make(map[string]any)
	s.data.Range(func(key, value any) bool {
		snapshot[key.(string)] = value
		return true
	})
	return snapshot
}
