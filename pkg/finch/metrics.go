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

package finch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics provides the prometheus registry the runner's collectors
// are registered on
type Metrics interface {
	// GetRegistry returns the prometheus registry instance containing
	// the registered prometheus collectors
	GetRegistry() *prometheus.Registry
}

var _ Metrics = (*metrics)(nil)

type metrics struct {
	registry *prometheus.Registry
}

// NewMetrics initializes the metrics provider with the default
// process and go collectors
func NewMetrics() Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &metrics{
		registry: registry,
	}
}

// GetRegistry returns the registry to register prometheus metrics
func (m *metrics) GetRegistry() *prometheus.Registry {
	return m.registry
}
