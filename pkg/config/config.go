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

package config

import (
	"time"

	"github.com/caas-team/finch/internal/helper"
)

// Config is the complete configuration of one finch run
type Config struct {
	// Target is the payments API under test
	Target TargetConfig `json:"target" yaml:"target"`
	// Connector identifies the payment backend whose fixtures drive the run
	Connector string `json:"connector" yaml:"connector"`
	// Scenarios names the flows to run; empty runs all built-in flows
	Scenarios []string `json:"scenarios" yaml:"scenarios"`
	// StateFile is the path of the persisted key/value snapshot
	StateFile string `json:"stateFile" yaml:"stateFile"`
	// Profiles configures where connector fixtures are loaded from
	Profiles ProfilesConfig `json:"profiles" yaml:"profiles"`
	// Api is the configuration of the report API
	Api ApiConfig `json:"api" yaml:"api"`
	// Serve keeps the report API running after the scenarios finish
	Serve bool `json:"serve" yaml:"serve"`
}

// TargetConfig is the configuration of the payments API under test
type TargetConfig struct {
	BaseUrl string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ApiConfig is the configuration for the report API
type ApiConfig struct {
	ListeningAddress string `json:"listeningAddress" yaml:"listeningAddress"`
}

// ProfilesConfig selects the fixture source: a local directory or a
// remote endpoint. The directory wins when both are set.
type ProfilesConfig struct {
	Dir  string             `json:"dir" yaml:"dir"`
	Http HttpProfilesConfig `json:"http" yaml:"http"`
}

// HttpProfilesConfig is the configuration for loading fixtures remotely
type HttpProfilesConfig struct {
	Url     string             `json:"url" yaml:"url"`
	Token   string             `json:"token" yaml:"token"`
	Timeout time.Duration      `json:"timeout" yaml:"timeout"`
	Retry   helper.RetryConfig `json:"retry" yaml:"retry"`
}

// NewConfig creates a new Config with defaults applied
func NewConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every unset field that has a default
func (c *Config) applyDefaults() {
	if c.Target.Timeout == 0 {
		c.Target.Timeout = 30 * time.Second
	}
	if c.StateFile == "" {
		c.StateFile = "finch-state.json"
	}
	if c.Api.ListeningAddress == "" {
		c.Api.ListeningAddress = ":8080"
	}
}
