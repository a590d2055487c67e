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

package scenario

import "github.com/caas-team/finch/pkg/profile"

// shouldContinue is the continuation gate: it decides from the
// expected-response descriptor alone whether the steps after this one
// run. Actual assertion outcomes do not factor in; a step may fail its
// assertions and still let the chain continue.
func shouldContinue(expected profile.Expected) bool {
	return expected.TriggerSkip == nil || !*expected.TriggerSkip
}
