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
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caas-team/finch/internal/logger"
	"github.com/caas-team/finch/pkg/api"
)

const urlParamScenarioName = "scenario"

// routes lists the endpoints of the report API
func (f *Finch) routes() []api.Route {
	return []api.Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: f.handleHealthz},
		{Path: "/v1/reports", Method: http.MethodGet, Handler: f.handleReports},
		{Path: "/v1/reports/{scenario}", Method: http.MethodGet, Handler: f.handleReport},
		{
			Path:   "/metrics",
			Method: http.MethodGet,
			Handler: promhttp.HandlerFor(f.metrics.GetRegistry(),
				promhttp.HandlerOpts{Registry: f.metrics.GetRegistry()}).ServeHTTP,
		},
	}
}

func (f *Finch) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
}

// handleReports returns the reports of all scenarios that ran
func (f *Finch) handleReports(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.db.List()); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleReport returns the report of a single scenario
func (f *Finch) handleReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := chi.URLParam(r, urlParamScenarioName)
	report, ok := f.db.Get(name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
