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

import "errors"

var (
	// ErrInvalidTargetUrl is returned when the target base url is invalid
	ErrInvalidTargetUrl = errors.New("invalid target base url")
	// ErrMissingConnector is returned when no connector is configured
	ErrMissingConnector = errors.New("no connector configured")
	// ErrMissingProfiles is returned when neither a profile directory nor a profile url is configured
	ErrMissingProfiles = errors.New("no profile source configured")
	// ErrInvalidProfileUrl is returned when the profile http url is invalid
	ErrInvalidProfileUrl = errors.New("invalid profile http url")
)
