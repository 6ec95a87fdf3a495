/*
   Copyright 2026 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "dirpx.dev/anx/sig"

// Resolver turns a decoded signature into a live element. Resolution
// misses are expected at scale across merged multi-module indices: they
// are reported as errors for the caller to log and skip, never as panics.
type Resolver interface {
	// Resolve resolves s against the process's registered types and
	// facades. A nil element with a non-nil error is a miss.
	Resolve(s sig.Signature, cfg Config) (Element, error)
}
