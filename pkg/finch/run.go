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

// Package finch ties the pieces together: it loads the run state and
// connector profiles, executes the selected flows strictly one after
// another and exposes the collected reports.
package finch

import (
	"context"
	"errors"
	"slices"

	"github.com/caas-team/finch/internal/logger"
	"github.com/caas-team/finch/pkg/api"
	"github.com/caas-team/finch/pkg/config"
	"github.com/caas-team/finch/pkg/db"
	"github.com/caas-team/finch/pkg/flows"
	"github.com/caas-team/finch/pkg/profile"
	"github.com/caas-team/finch/pkg/scenario"
	"github.com/caas-team/finch/pkg/state"
)

// ErrScenarioFailed is returned when at least one scenario did not
// pass; the per-step details live in the reports
var ErrScenarioFailed = errors.New("at least one scenario failed")

// Finch runs payment flows against one connector and serves the results
type Finch struct {
	config  *config.Config
	db      db.DB
	api     api.API
	metrics Metrics
}

// New creates a new finch instance from the given config
func New(cfg *config.Config) *Finch {
	return &Finch{
		config:  cfg,
		db:      db.NewInMemory(),
		api:     api.New(cfg.Api),
		metrics: NewMetrics(),
	}
}

// Run executes the configured flows and persists the state snapshot.
// With serve enabled it blocks afterwards, serving the report API
// until the context is canceled.
func (f *Finch) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	store, err := state.LoadFile(ctx, f.config.StateFile)
	if err != nil {
		return err
	}
	store.Set(state.KeyConnector, f.config.Connector)

	registry, err := f.loadProfiles(ctx)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(registry, scenario.NewExecutor(f.config.Target.BaseUrl))
	for _, collector := range runner.GetMetricCollectors() {
		if err := f.metrics.GetRegistry().Register(collector); err != nil {
			log.Error("Could not add metrics collector to registry", "error", err)
		}
	}

	selected, err := f.selectFlows()
	if err != nil {
		return err
	}

	runErr := f.runFlows(ctx, runner, selected, store)

	if err := state.SaveFile(ctx, f.config.StateFile, store); err != nil {
		return errors.Join(runErr, err)
	}

	if f.config.Serve {
		if err := f.serve(ctx); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

// runFlows executes the flows strictly sequentially, so identifiers
// written by one scenario are settled before the next one starts
func (f *Finch) runFlows(ctx context.Context, runner *scenario.Runner, selected []scenario.Scenario, store *state.Store) error {
	log := logger.FromContext(ctx)

	var runErr error
	for _, s := range selected {
		report, err := runner.Run(ctx, s, store)
		f.db.Save(report)

		if err != nil {
			log.Error("Scenario aborted", "scenario", s.Name, "error", err)
			runErr = errors.Join(runErr, err)
			continue
		}
		if !report.Passed() {
			log.Warn("Scenario failed", "scenario", s.Name)
			runErr = errors.Join(runErr, ErrScenarioFailed)
		}
	}
	return runErr
}

// selectFlows resolves the configured scenario names, defaulting to
// every built-in flow in stable order
func (f *Finch) selectFlows() ([]scenario.Scenario, error) {
	names := f.config.Scenarios
	if len(names) == 0 {
		names = flows.Names()
		slices.Sort(names)
	}

	selected := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, err := flows.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// loadProfiles builds the fixture registry from the configured source
func (f *Finch) loadProfiles(ctx context.Context) (*profile.Registry, error) {
	if f.config.Profiles.Dir != "" {
		return profile.LoadDir(ctx, f.config.Profiles.Dir)
	}
	return profile.LoadHTTP(ctx, profile.HTTPLoaderConfig{
		Url:     f.config.Profiles.Http.Url,
		Token:   f.config.Profiles.Http.Token,
		Timeout: f.config.Profiles.Http.Timeout,
		Retry:   f.config.Profiles.Http.Retry,
	})
}

// serve blocks serving the report API until the context is done
func (f *Finch) serve(ctx context.Context) error {
	if err := f.api.RegisterRoutes(ctx, f.routes()...); err != nil {
		return err
	}
	return f.api.Run(ctx)
}
