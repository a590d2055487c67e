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
	"net/url"

	"github.com/caas-team/finch/internal/logger"
)

// Validate checks the configuration for a runnable setup
func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var err error
	if !isValidUrl(c.Target.BaseUrl) {
		log.ErrorContext(ctx, "The target base url is not a valid url", "baseUrl", c.Target.BaseUrl)
		err = errors.Join(err, ErrInvalidTargetUrl)
	}

	if c.Connector == "" {
		log.ErrorContext(ctx, "No connector configured")
		err = errors.Join(err, ErrMissingConnector)
	}

	switch {
	case c.Profiles.Dir != "":
	case c.Profiles.Http.Url != "":
		if !isValidUrl(c.Profiles.Http.Url) {
			log.ErrorContext(ctx, "The profile http url is not a valid url", "url", c.Profiles.Http.Url)
			err = errors.Join(err, ErrInvalidProfileUrl)
		}
	default:
		log.ErrorContext(ctx, "No profile source configured")
		err = errors.Join(err, ErrMissingProfiles)
	}

	return err
}

func isValidUrl(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
