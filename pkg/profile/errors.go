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

import "fmt"

// ErrLookup is returned when a connector, category or scenario fixture
// is not present in the registry. An unresolved fixture means a missing
// test-data contribution, so it is fatal and never silently defaulted.
type ErrLookup struct {
	Connector string
	Category  string
	Scenario  string
	// Missing names the level of the lookup that failed
	Missing string
}

func (e ErrLookup) Error() string {
	return fmt.Sprintf("no fixture for connector %q, category %q, scenario %q: unknown %s",
		e.Connector, e.Category, e.Scenario, e.Missing)
}

// ErrDuplicateConnector is returned when two profile files claim the same connector
type ErrDuplicateConnector struct {
	Connector string
}

func (e ErrDuplicateConnector) Error() string {
	return fmt.Sprintf("duplicate profile for connector %q", e.Connector)
}
