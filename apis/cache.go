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

// Cache memoizes resolved element lists per annotation qualified name for
// the process lifetime. Population is compute-then-atomic-publish: readers
// never observe a partially built list. There is no invalidation.
type Cache interface {
	// ElementsFor returns the resolved elements whose live annotation set
	// contains the annotation, populating the entry on first access.
	ElementsFor(annQName string, cfg Config) []Element
	// Reset drops all memoized entries.
	Reset()
}
