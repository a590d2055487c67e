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
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/finch/internal/logger"
	"github.com/caas-team/finch/pkg/profile"
	"github.com/caas-team/finch/pkg/state"
)

// Runner executes scenarios strictly sequentially: no step begins
// before the previous one's assertions and state writes complete.
type Runner struct {
	registry *profile.Registry
	executor *Executor
	metrics  metrics
}

// NewRunner creates a runner resolving fixtures from the given registry
func NewRunner(registry *profile.Registry, executor *Executor) *Runner {
	return &Runner{
		registry: registry,
		executor: executor,
		metrics:  newMetrics(),
	}
}

// GetMetricCollectors returns the runner's prometheus collectors
func (r *Runner) GetMetricCollectors() []prometheus.Collector {
	return r.metrics.Collectors()
}

// Run executes every step of the scenario in declared order against
// the connector named in the state store. Once the continuation gate
// trips false, all remaining steps are reported as skipped without
// performing any external call. Only a fixture lookup failure aborts
// the run; assertion failures never do.
func (r *Runner) Run(ctx context.Context, scen Scenario, store *state.Store) (Report, error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx).With("scenario", scen.Name)

	report := Report{
		Scenario:  scen.Name,
		State:     Ready,
		Timestamp: time.Now(),
	}

	connector, ok := store.GetString(state.KeyConnector)
	if !ok {
		report.State = Aborted
		return report, ErrNoConnector
	}
	report.Connector = connector

	log.Info("Running scenario", "connector", connector, "steps", len(scen.Steps))
	report.State = Running

	continueRun := true
	for _, step := range scen.Steps {
		if !continueRun {
			log.Debug("Skipping step, gate has tripped", "step", step.Name)
			report.Steps = append(report.Steps, StepReport{
				Name:   step.Name,
				Status: StepSkipped,
			})
			continue
		}

		fixture, err := r.registry.Resolve(connector, scen.Category, step.Fixture)
		if err != nil {
			log.Error("Failed to resolve fixture", "step", step.Name, "error", err)
			report.State = Aborted
			r.metrics.record(report)
			return report, err
		}

		stepReport := r.executor.Execute(ctx, step, fixture, store)
		report.Steps = append(report.Steps, stepReport)
		continueRun = stepReport.GateDecision
	}

	report.State = Completed
	r.metrics.record(report)

	log.Info("Scenario completed", "passed", report.Passed())
	return report, nil
}
