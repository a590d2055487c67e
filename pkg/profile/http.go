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

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/finch/internal/helper"
	"github.com/caas-team/finch/internal/logger"
)

// HTTPLoaderConfig is the configuration for loading connector
// profiles from a remote endpoint
type HTTPLoaderConfig struct {
	Url     string             `json:"url" yaml:"url"`
	Token   string             `json:"token" yaml:"token"`
	Timeout time.Duration      `json:"timeout" yaml:"timeout"`
	Retry   helper.RetryConfig `json:"retry" yaml:"retry"`
}

// LoadHTTP fetches a YAML document containing a list of connector
// profiles from a remote endpoint and builds a registry from it.
// The fetch is retried with exponential backoff.
func LoadHTTP(ctx context.Context, cfg HTTPLoaderConfig, opts ...Option) (*Registry, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading connector profiles from remote endpoint", "url", cfg.Url)

	var profiles []Profile
	getProfilesRetry := helper.Retry(func(ctx context.Context) error {
		var err error
		profiles, err = getProfiles(ctx, cfg)
		return err
	}, cfg.Retry)

	if err := getProfilesRetry(ctx); err != nil {
		return nil, fmt.Errorf("failed to load profiles from %q: %w", cfg.Url, err)
	}

	return NewRegistry(profiles, opts...)
}

func getProfiles(ctx context.Context, cfg HTTPLoaderConfig) ([]Profile, error) {
	log := logger.FromContext(ctx)

	client := &http.Client{Timeout: cfg.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Error("Failed to fetch profiles", "error", err)
		return nil, err
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var profiles []Profile
	if err := yaml.Unmarshal(b, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	return profiles, nil
}
