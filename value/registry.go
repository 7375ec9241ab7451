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

package value

import "github.com/pkg/errors"

// Type is the immutable descriptor for a value-type: a vtable of functions
// for freeing, duplicating, and converting between the string and internal
// representations of Values carrying this type. A nil slot means the type
// does not support that operation (e.g. a pure numeric type may omit
// ParseStringToInternal).
type Type struct {
	// Name identifies the type in error messages and in disassembly /
	// introspection output.
	Name string

	// Free releases any resources owned by v's internal representation.
	// May be nil if the internal representation owns nothing beyond the
	// Payload itself (e.g. a bare integer).
	Free func(v *Value)

	// Duplicate returns a deep copy of v's internal payload. May be nil,
	// in which case Duplicate(v) shares the Payload verbatim (valid only
	// for payloads that are themselves immutable or copy-free, such as
	// plain integers).
	Duplicate func(v *Value) Payload

	// UpdateStringFromInternal regenerates the canonical string form from
	// v's internal payload. Required for any type constructed via
	// NewTyped that is ever read as a string.
	UpdateStringFromInternal func(v *Value) []byte

	// ParseStringToInternal parses v's string form into a fresh Payload of
	// this type. May be nil for types that cannot be produced by parsing
	// (pure internal bookkeeping types).
	ParseStringToInternal func(v *Value) (Payload, error)

	// Length optionally returns the element count of a container-shaped
	// value without forcing a full string materialization. Implementations
	// must be O(1) or amortized-O(1).
	Length func(v *Value) int
}

// Registry is a table of registered value-types, keyed by name. The
// process keeps one global Registry (see Register/Lookup); components that
// need an isolated table for testing can construct their own with
// NewRegistry.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns an empty, independent Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds typ to r under typ.Name. It returns an error if a type with
// the same name is already registered, or if typ.Name is empty.
func (r *Registry) Register(typ *Type) error {
	if typ.Name == "" {
		return errors.New("value: cannot register a type with an empty name")
	}
	if _, dup := r.types[typ.Name]; dup {
		return errors.Errorf("value: type %q already registered", typ.Name)
	}
	r.types[typ.Name] = typ
	return nil
}

// Lookup returns the Type registered under name, if any.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// global is the process-wide, immutable-after-init value-type table
// described in spec.md §4.6: a globally registered table of value-types,
// populated at initialization and thereafter immutable.
var global = NewRegistry()

// Register adds typ to the global value-type registry. Intended to be
// called from package init() functions of packages that define value-types,
// mirroring how vm/opcodes.go populates its opcode index at init time.
func Register(typ *Type) error {
	return global.Register(typ)
}

// Lookup looks typ up in the global value-type registry.
func Lookup(name string) (*Type, bool) {
	return global.Lookup(name)
}
