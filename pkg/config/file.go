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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/finch/internal/helper"
	"github.com/caas-team/finch/internal/logger"
)

// LoadFile reads the run configuration from the given yaml file and
// applies defaults for everything the file leaves unset. A missing
// file is not an error so a run can be configured through flags alone.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	log := logger.FromContext(ctx)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("No config file found, using defaults", "path", path)
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		log.Error("Failed to parse config file", "error", err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg, err := helper.Decode[Config](raw)
	if err != nil {
		log.Error("Failed to decode config file", "error", err)
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.applyDefaults()
	log.Info("Read config from file", "file", path)
	return &cfg, nil
}
