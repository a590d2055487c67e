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
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/finch/internal/logger"
)

// LoadDir reads all connector profile files (*.yaml, *.yml) from the
// given directory and builds a registry from them. Profiles that omit
// the connector field default to their file name.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Registry, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading connector profiles", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	var profiles []Profile
	for _, entry := range entries {
		if entry.IsDir() || !isYamlFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("Loaded connector profile", "connector", p.Connector, "file", entry.Name())
		profiles = append(profiles, p)
	}

	return NewRegistry(profiles, opts...)
}

func loadFile(path string) (Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file %q: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile file %q: %w", path, err)
	}

	if p.Connector == "" {
		base := filepath.Base(path)
		p.Connector = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}

func isYamlFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
