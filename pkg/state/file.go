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

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caas-team/finch/internal/logger"
)

const snapshotFileMode = 0o600

// LoadFile reads a snapshot from the given path and returns a store
// populated with it. A missing file is not an error and yields an
// empty store, since the first run of a suite has no prior state.
func LoadFile(ctx context.Context, path string) (*Store, error) {
	log := logger.FromContext(ctx)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("No state snapshot found, starting with empty state", "path", path)
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read state snapshot: %w", err)
	}

	var snapshot map[string]any
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse state snapshot: %w", err)
	}

	log.Info("Loaded state snapshot", "path", path, "keys", len(snapshot))
	return FromSnapshot(snapshot), nil
}

// SaveFile writes the store's snapshot to the given path
func SaveFile(ctx context.Context, path string, s *Store) error {
	log := logger.FromContext(ctx)

	b, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state snapshot: %w", err)
	}

	if err := os.WriteFile(path, b, snapshotFileMode); err != nil {
		return fmt.Errorf("failed to write state snapshot: %w", err)
	}

	log.Info("Saved state snapshot", "path", path)
	return nil
}
