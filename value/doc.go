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

// Package value implements the typed-value cell shared by the variable
// engine and the bytecode object model.
//
// A Value carries an optional canonical string form and an optional
// internal representation: a pointer to a registered Type plus a small
// payload. Both may be present, in which case they must agree: the string
// form reproduces exactly what Type.UpdateStringFromInternal would
// regenerate from the internal payload.
//
// Values are reference counted. A fresh Value starts at refcount 0; the
// producer must call Retain before publishing it anywhere more than one
// owner can see it. A Value with refcount >= 2 is shared and must not be
// mutated in place - higher-level "write" ops built on top of this package
// are expected to Duplicate first. CoerceTo itself replaces the internal
// representation in place and does not Duplicate.
//
// This package does not itself interpret string contents; it only manages
// the dual representation and delegates type-specific behavior to the
// Type vtable registered for a Value's internal representation.
package value
