// Copyright 2026 The tcl-sub007 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package variable implements the variable and scope engine: activation
// frames, hierarchical namespaces, array elements, link (upvar) variables,
// constants, traces, and the read/write/unset/increment path described in
// spec.md §3/§4.2/§4.3/§4.4.
//
// The engine is single-threaded per Interp (spec.md §5): every Cell,
// Frame, and Namespace reachable from one Interp belongs to exactly one
// goroutine at a time and carries no internal locking. Callers that need
// concurrency run separate Interp values on separate goroutines.
package variable
