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
	"bytes"

	"github.com/pkg/errors"
)

// Payload is the internal representation payload: up to two pointer-sized
// slots, enough for an integer, the bit pattern of a double, a pointer into
// an auxiliary structure, or two pointers.
type Payload struct {
	Int int64
	Any any
}

type internalRep struct {
	typ *Type
	pl  Payload
}

// Value is a reference-counted cell carrying an optional canonical string
// form and an optional internal representation. See the package doc for the
// invariants maintained across all operations in this file.
type Value struct {
	refCount int
	hasStr   bool
	str      []byte
	rep      *internalRep
}

// NewString returns a Value with only the string form set. The refcount
// starts at 0; callers must Retain before publishing the Value.
func NewString(s []byte) *Value {
	b := make([]byte, len(s))
	copy(b, s)
	return &Value{hasStr: true, str: b}
}

// NewStringFromString is a convenience wrapper around NewString for Go
// string literals.
func NewStringFromString(s string) *Value {
	return NewString([]byte(s))
}

// NewTyped returns a Value with only the internal representation set. The
// string form is generated lazily, on first call to GetString, via
// typ.UpdateStringFromInternal.
func NewTyped(typ *Type, pl Payload) *Value {
	return &Value{rep: &internalRep{typ: typ, pl: pl}}
}

// Retain increments v's refcount and returns v, for chaining at call sites
// that publish a value (e.g. `cell.val = value.Retain(v)`).
func Retain(v *Value) *Value {
	v.refCount++
	return v
}

// Release decrements v's refcount. On the last release it frees the
// internal representation (via its Type, if any) and drops the string form.
func Release(v *Value) {
	v.refCount--
	if v.refCount > 0 {
		return
	}
	if v.rep != nil && v.rep.typ != nil && v.rep.typ.Free != nil {
		v.rep.typ.Free(v)
	}
	v.rep = nil
	v.str = nil
	v.hasStr = false
}

// RefCount returns v's current reference count.
func RefCount(v *Value) int {
	return v.refCount
}

// Shared reports whether v is shared (refcount >= 2) and therefore must not
// be mutated in place by any public operation.
func Shared(v *Value) bool {
	return v.refCount >= 2
}

// GetString returns the canonical string form of v, materializing it from
// the internal representation if necessary. The returned slice must not be
// mutated by the caller; it is cached on v.
func GetString(v *Value) []byte {
	if v.hasStr {
		return v.str
	}
	if v.rep == nil {
		// Constructed with neither form set is a programming error: the
		// invariant "at least one of (a), (b)" was violated upstream.
		panic("value: Value has neither string nor internal representation")
	}
	if v.rep.typ == nil || v.rep.typ.UpdateStringFromInternal == nil {
		panic("value: type " + typeName(v.rep.typ) + " cannot produce a string form")
	}
	v.str = v.rep.typ.UpdateStringFromInternal(v)
	v.hasStr = true
	return v.str
}

// InvalidateString drops the cached string form, leaving only the internal
// representation. Used by mutating operations after they change the
// internal payload directly.
func InvalidateString(v *Value) {
	v.hasStr = false
	v.str = nil
}

// InternalType returns the Type of v's current internal representation, or
// nil if v carries no internal representation.
func InternalType(v *Value) *Type {
	if v.rep == nil {
		return nil
	}
	return v.rep.typ
}

// FetchInternal is a non-coercing accessor: it returns the payload only if
// v's current internal type is exactly typ, without forcing a parse of the
// string form. Fast paths use this to avoid unnecessary coercions.
func FetchInternal(v *Value, typ *Type) (Payload, bool) {
	if v.rep == nil || v.rep.typ != typ {
		return Payload{}, false
	}
	return v.rep.pl, true
}

// CoerceTo ensures v carries an internal representation of type typ. If it
// already does, this is a no-op. Otherwise the current internal rep (if
// any) is freed via its type and a new one is parsed from the string form
// via typ.ParseStringToInternal. On parse failure the string form is left
// intact and an error is returned; v is not otherwise modified.
func CoerceTo(v *Value, typ *Type) error {
	if v.rep != nil && v.rep.typ == typ {
		return nil
	}
	if typ.ParseStringToInternal == nil {
		return errors.Errorf("value: type %s does not support parsing", typ.Name)
	}
	if !v.hasStr {
		GetString(v)
	}
	pl, err := typ.ParseStringToInternal(v)
	if err != nil {
		return errors.Wrapf(err, "value: coerce to %s failed", typ.Name)
	}
	if v.rep != nil && v.rep.typ != nil && v.rep.typ.Free != nil {
		v.rep.typ.Free(v)
	}
	v.rep = &internalRep{typ: typ, pl: pl}
	return nil
}

// Duplicate returns a deep copy of v: the string form is copied verbatim
// and, if v has an internal representation whose type provides Duplicate,
// a fresh internal representation is built from it. Callers use this for
// copy-on-write before mutating a shared Value.
func Duplicate(v *Value) *Value {
	nv := &Value{hasStr: v.hasStr}
	if v.hasStr {
		nv.str = append([]byte(nil), v.str...)
	}
	if v.rep != nil {
		if v.rep.typ != nil && v.rep.typ.Duplicate != nil {
			nv.rep = &internalRep{typ: v.rep.typ, pl: v.rep.typ.Duplicate(v)}
		} else {
			nv.rep = &internalRep{typ: v.rep.typ, pl: v.rep.pl}
		}
	}
	return nv
}

// Length returns type.Length(v) if the internal type provides it, else it
// materializes the string form and returns its byte length. Container-
// shaped types must provide Length and must make it O(1) or amortized-O(1).
func Length(v *Value) int {
	if v.rep != nil && v.rep.typ != nil && v.rep.typ.Length != nil {
		return v.rep.typ.Length(v)
	}
	return len(GetString(v))
}

// Equal reports whether a and b have identical string forms, materializing
// both as needed. It does not compare internal representations.
func Equal(a, b *Value) bool {
	return bytes.Equal(GetString(a), GetString(b))
}

func typeName(t *Type) string {
	if t == nil {
		return "<untyped>"
	}
	return t.Name
}
