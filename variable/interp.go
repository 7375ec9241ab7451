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

package variable

import "github.com/tcltk/tcl-sub007/value"

// Interp is the per-thread state shared by every Namespace and Frame
// reachable from it (spec.md §4.6, §5). It owns exactly one namespace
// tree, one value-type registry handle, one global epoch counter, and the
// array-search registry. It is not safe to share a single Interp across
// goroutines/threads concurrently.
type Interp struct {
	Root     *Namespace
	registry *value.Registry

	epoch int // bumped on any namespace resolver-set change

	nextNamespaceID uint64

	// lastError holds the human-readable message for the most recent
	// lookup failure performed with the LeaveErrMsg flag set (SPEC_FULL.md
	// supplemented feature #1).
	lastError string

	searches    map[*Cell][]*ArraySearch
	nextSearch  uint64
}

// Option configures a new Interp, following the functional-options shape
// used throughout the teacher's vm package (vm.Option).
type Option func(*Interp)

// Registry overrides the value-type registry an Interp uses to resolve
// value-types (e.g. for coercions performed by Incr). Defaults to the
// global registry populated by package value's init-time registrations.
func Registry(r *value.Registry) Option {
	return func(in *Interp) { in.registry = r }
}

// NewInterp returns a fresh Interp with an empty root namespace "::".
func NewInterp(opts ...Option) *Interp {
	in := &Interp{searches: make(map[*Cell][]*ArraySearch)}
	for _, opt := range opts {
		opt(in)
	}
	in.Root = newRootNamespace(in)
	return in
}

// intType returns the value-type Incr uses for machine-word integers,
// resolved through in's registry if one was supplied via the Registry
// option, falling back to value.IntType otherwise.
func (in *Interp) intType() *value.Type {
	if in.registry != nil {
		if t, ok := in.registry.Lookup(value.IntType.Name); ok {
			return t
		}
	}
	return value.IntType
}

// bigIntType is intType's counterpart for the overflow-widened case.
func (in *Interp) bigIntType() *value.Type {
	if in.registry != nil {
		if t, ok := in.registry.Lookup(value.BigIntType.Name); ok {
			return t
		}
	}
	return value.BigIntType
}

func (in *Interp) mintNamespaceID() uint64 {
	in.nextNamespaceID++
	return in.nextNamespaceID
}

func (in *Interp) bumpEpoch() {
	in.epoch++
}

// Epoch returns the interpreter's global epoch counter, bumped whenever any
// namespace's resolver set changes. Callers that cache lookups should key
// their cache on this value.
func (in *Interp) Epoch() int {
	return in.epoch
}

// LastError returns the human-readable message left by the most recent
// lookup performed with LeaveErrMsg set, and clears it.
func (in *Interp) LastError() string {
	msg := in.lastError
	in.lastError = ""
	return msg
}

func (in *Interp) setLastError(msg string) {
	in.lastError = msg
}
