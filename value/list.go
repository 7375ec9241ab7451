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

import (
	"strings"

	"github.com/pkg/errors"
)

// ListType is a container-shaped value-type: its internal representation
// is a []*Value (kept in Payload.Any) and it reports its element count in
// O(1) via Length, as spec.md §4.1 requires of any container-shaped type.
//
// The string form is a brace-free space-joined rendering; this is a
// simplification of Tcl's list quoting rules (out of scope: see spec.md §1,
// surface syntax is an external collaborator) sufficient for the runtime's
// own use of lists (append-element writes and disassembler output).
var ListType = &Type{
	Name: "list",
	Free: func(v *Value) {
		v.rep.pl.Any = nil
	},
	Duplicate: func(v *Value) Payload {
		elems := v.rep.pl.Any.([]*Value)
		dup := make([]*Value, len(elems))
		for i, e := range elems {
			dup[i] = Retain(Duplicate(e))
		}
		return Payload{Any: dup}
	},
	UpdateStringFromInternal: func(v *Value) []byte {
		elems := v.rep.pl.Any.([]*Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = string(GetString(e))
		}
		return []byte(strings.Join(parts, " "))
	},
	ParseStringToInternal: func(v *Value) (Payload, error) {
		fields := strings.Fields(string(GetString(v)))
		elems := make([]*Value, len(fields))
		for i, f := range fields {
			elems[i] = Retain(NewStringFromString(f))
		}
		return Payload{Any: elems}, nil
	},
	Length: func(v *Value) int {
		return len(v.rep.pl.Any.([]*Value))
	},
}

// NewList returns a Value whose internal representation is elems (the
// slice is retained, not copied; callers should not mutate it afterward).
// Each element is retained by the list.
func NewList(elems []*Value) *Value {
	for _, e := range elems {
		Retain(e)
	}
	return NewTyped(ListType, Payload{Any: elems})
}

// ListElements returns the elements of v, coercing it to ListType first if
// necessary. The returned slice is v's internal storage and must not be
// mutated.
func ListElements(v *Value) ([]*Value, error) {
	if err := CoerceTo(v, ListType); err != nil {
		return nil, errors.Wrap(err, "value: not a list")
	}
	return v.rep.pl.Any.([]*Value), nil
}

func init() {
	_ = Register(ListType)
}
