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

package db

import (
	"sync"

	"github.com/caas-team/finch/pkg/scenario"
)

// DB holds the reports of the current run for the reporting API
type DB interface {
	Save(report scenario.Report)
	Get(scenarioName string) (report scenario.Report, ok bool)
	List() map[string]scenario.Report
}

var _ DB = (*InMemory)(nil)

type InMemory struct {
	data sync.Map
}

// NewInMemory creates a new in-memory database
func NewInMemory() *InMemory {
	return &InMemory{
		data: sync.Map{},
	}
}

func (i *InMemory) Save(report scenario.Report) {
	i.data.Store(report.Scenario, report)
}

func (i *InMemory) Get(scenarioName string) (scenario.Report, bool) {
	tmp, ok := i.data.Load(scenarioName)
	if !ok {
		return scenario.Report{}, false
	}
	// this should not fail, otherwise this will panic
	report := tmp.(scenario.Report)

	return report, true
}

// Returns a copy of the map
func (i *InMemory) List() map[string]scenario.Report {
	reports := make(map[string]scenario.Report)
	i.data.Range(func(key, value any) bool {
		// this assertion should not fail, unless we have a bug somewhere
		name := key.(string)
		report := value.(scenario.Report)

		reports[name] = report
		return true
	})

	return reports
}
