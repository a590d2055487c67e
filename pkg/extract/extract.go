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

// Package extract pulls named fields out of raw JSON responses and
// performs structural response checks. Extraction never fails: a body
// that does not parse degrades to all fields being reported absent.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/caas-team/finch/internal/logger"
)

// Names of the structural checks performed on every response
const (
	CheckStatus2xx   = "status_2xx"
	CheckContentType = "content_type_json"
	CheckBodyJSON    = "body_parses"
)

// Check is the outcome of one structural response check
type Check struct {
	Name    string `json:"name"`
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Response is the raw view of an HTTP response handed to the extractor
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Result holds the structural checks and the extracted fields.
// Fields absent from the response are simply missing from the map.
type Result struct {
	Checks []Check        `json:"checks"`
	Fields map[string]any `json:"fields"`
}

// Extract runs the three structural checks on resp and pulls the named
// top-level fields out of its JSON body. A non-JSON body fails the
// parse check and yields no fields, it never raises an error.
func Extract(ctx context.Context, resp *Response, fields []string) Result {
	log := logger.FromContext(ctx)

	res := Result{
		Checks: []Check{
			checkStatus(resp.StatusCode),
			checkContentType(resp.Header),
		},
		Fields: map[string]any{},
	}

	var body map[string]any
	parseCheck := Check{Name: CheckBodyJSON, Ok: true}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		parseCheck.Ok = false
		parseCheck.Message = fmt.Sprintf("response body is not a JSON object: %v", err)
	}
	res.Checks = append(res.Checks, parseCheck)

	if !parseCheck.Ok {
		log.Info("Response body did not parse, reporting all fields absent", "fields", fields)
		return res
	}

	for _, name := range fields {
		v, ok := body[name]
		if !ok {
			log.Info("Field absent from response", "field", name)
			continue
		}
		res.Fields[name] = v
	}
	return res
}

func checkStatus(status int) Check {
	c := Check{Name: CheckStatus2xx, Ok: status >= 200 && status <= 299}
	if !c.Ok {
		c.Message = fmt.Sprintf("expected 2xx status, got %d", status)
	}
	return c
}

func checkContentType(header http.Header) Check {
	ct := header.Get("Content-Type")
	c := Check{Name: CheckContentType, Ok: strings.Contains(ct, "application/json")}
	if !c.Ok {
		c.Message = fmt.Sprintf("expected Content-Type to include application/json, got %q", ct)
	}
	return c
}
