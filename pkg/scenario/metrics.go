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

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	stepsExecuted     *prometheus.CounterVec
	stepsSkipped      *prometheus.CounterVec
	assertionFailures *prometheus.CounterVec
	scenarioPassed    *prometheus.GaugeVec
}

func newMetrics() metrics {
	labels := []string{"scenario", "connector"}
	return metrics{
		stepsExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finch_steps_executed_total",
				Help: "Number of scenario steps that performed their HTTP call",
			},
			labels,
		),
		stepsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finch_steps_skipped_total",
				Help: "Number of scenario steps skipped by the continuation gate",
			},
			labels,
		),
		assertionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finch_assertion_failures_total",
				Help: "Number of failed response assertions",
			},
			labels,
		),
		scenarioPassed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finch_scenario_passed",
				Help: "Whether the last run of a scenario passed all assertions",
			},
			labels,
		),
	}
}

// record updates all metrics from a finished scenario report
func (m metrics) record(r Report) {
	for _, s := range r.Steps {
		switch s.Status {
		case StepExecuted:
			m.stepsExecuted.WithLabelValues(r.Scenario, r.Connector).Inc()
		case StepSkipped:
			m.stepsSkipped.WithLabelValues(r.Scenario, r.Connector).Inc()
		}
		for _, a := range s.Assertions {
			if !a.Ok {
				m.assertionFailures.WithLabelValues(r.Scenario, r.Connector).Inc()
			}
		}
	}

	passed := float64(0)
	if r.Passed() {
		passed = 1
	}
	m.scenarioPassed.WithLabelValues(r.Scenario, r.Connector).Set(passed)
}

// Collectors returns all prometheus collectors of the runner
func (m metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.stepsExecuted,
		m.stepsSkipped,
		m.assertionFailures,
		m.scenarioPassed,
	}
}
