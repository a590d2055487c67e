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

// Package httpclient carries the run's http.Client through the
// context, so every step calls the payments API through the one
// client configured with the target timeout.
package httpclient

import (
	"context"
	"net/http"

	"github.com/caas-team/finch/internal/logger"
)

type client struct{}

// IntoContext returns a copy of ctx carrying c. Every step executed
// under the returned context performs its call through c.
func IntoContext(ctx context.Context, c *http.Client) context.Context {
	return context.WithValue(ctx, client{}, c)
}

// FromContext returns the http.Client carried by ctx. Without one it
// falls back to http.DefaultClient, which ignores the configured
// target timeout.
func FromContext(ctx context.Context) *http.Client {
	if ctx != nil {
		if c, ok := ctx.Value(client{}).(*http.Client); ok {
			return c
		}
	}

	logger.FromContext(ctx).Warn("No http client in context, falling back to http.DefaultClient")
	return http.DefaultClient
}
