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

// LocalCache maps a compiled-local slot index to its source-level name.
// It is shared, refcounted, across every live Frame of the same compiled
// routine (spec.md §3 Activation-frame field (iv)): many frames of a
// recursive procedure all point at the same LocalCache.
type LocalCache struct {
	names    []*value.Value
	refCount int
}

// NewLocalCache returns a LocalCache with room for n compiled locals, all
// initially unnamed (temporaries).
func NewLocalCache(n int) *LocalCache {
	return &LocalCache{names: make([]*value.Value, n)}
}

// SetName assigns the source-level name of slot i. name is retained.
func (lc *LocalCache) SetName(i int, name *value.Value) {
	lc.names[i] = value.Retain(name)
}

// Name returns the source-level name of slot i, or nil if it is a
// temporary with no source name.
func (lc *LocalCache) Name(i int) *value.Value {
	if i < 0 || i >= len(lc.names) {
		return nil
	}
	return lc.names[i]
}

// Len returns the number of compiled-local slots described by lc.
func (lc *LocalCache) Len() int {
	return len(lc.names)
}

// Retain increments lc's reference count and returns lc.
func (lc *LocalCache) Retain() *LocalCache {
	lc.refCount++
	return lc
}

// Release decrements lc's reference count, releasing the retained names on
// the last release.
func (lc *LocalCache) Release() {
	lc.refCount--
	if lc.refCount > 0 {
		return
	}
	for _, n := range lc.names {
		if n != nil {
			value.Release(n)
		}
	}
}

// Frame is a stack-allocated record for one live invocation of a compiled
// routine (spec.md §3 "Activation frame").
type Frame struct {
	Namespace *Namespace
	locals    []Cell
	cache     *LocalCache
	Caller    *Frame

	// Dynamic holds variables introduced by name at runtime (global,
	// upvar, variable) rather than by compiled-local slot index.
	Dynamic *Hash
}

// NewFrame returns a fresh Frame with numCompiledLocals fast slots, backed
// by cache for slot-name lookups, linked to caller.
func NewFrame(ns *Namespace, numCompiledLocals int, cache *LocalCache, caller *Frame) *Frame {
	f := &Frame{
		Namespace: ns,
		locals:    make([]Cell, numCompiledLocals),
		cache:     cache.Retain(),
		Caller:    caller,
	}
	for i := range f.locals {
		f.locals[i] = Cell{kind: KindScalar}
	}
	return f
}

// NumCompiledLocals returns the number of fast slots in f.
func (f *Frame) NumCompiledLocals() int {
	return len(f.locals)
}

// CompiledLocal returns the fast-slot cell at index i. It panics if i is
// out of range, matching the compiler's guarantee that LVT operands are
// always in range for the code object that references them.
func (f *Frame) CompiledLocal(i int) *Cell {
	return &f.locals[i]
}

// CompiledLocalName returns the source-level name of fast slot i, or nil
// if it has none (a pure temporary).
func (f *Frame) CompiledLocalName(i int) *value.Value {
	return f.cache.Name(i)
}

// Release detaches f from its LocalCache. Callers pop a Frame by simply
// letting it go out of scope; Release only needs to run the LocalCache's
// own refcounting (the fast-slot cells themselves are plain Go values
// embedded in f.locals, reclaimed by the garbage collector along with f).
func (f *Frame) Release() {
	f.cache.Release()
}
