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

import (
	"fmt"

	"github.com/tcltk/tcl-sub007/value"
)

// ArraySearch is a live handle over an array's element set, identified to
// script-visible code by an opaque Value of the form "s-<id>-<arrayName>"
// (spec.md §4.4). Searches live in a per-Interp registry keyed by the
// array cell; deleting the array deletes all its searches.
type ArraySearch struct {
	id        uint64
	arrayName string
	array     *Cell
	it        *Iterator
	done      bool
	err       error
}

// ArrayDefault returns the array default Value installed on c, if any. c
// must be an array cell (it is not dereferenced through links).
func (c *Cell) ArrayDefault() (*value.Value, bool) {
	if c.kind != KindArray {
		return nil, false
	}
	return c.dflt, c.dfltSet
}

// SetArrayDefault installs def as c's array default. def is shared
// (retained, refcount forced to >= 2 per spec.md §4.4) so that bursts of
// reads of missing elements do not each need their own copy.
func (c *Cell) SetArrayDefault(def *value.Value) error {
	if c.kind != KindArray {
		return ErrNeedArray(c.name)
	}
	value.Retain(def)
	value.Retain(def) // force refcount >= 2: the default is always "shared"
	if c.dfltSet {
		value.Release(c.dflt)
		value.Release(c.dflt)
	}
	c.dflt = def
	c.dfltSet = true
	return nil
}

// UnsetArrayDefault removes c's array default, if any.
func (c *Cell) UnsetArrayDefault() {
	if c.dfltSet {
		value.Release(c.dflt)
		value.Release(c.dflt)
	}
	c.dflt = nil
	c.dfltSet = false
}

// element returns the element cell named key within array cell c, creating
// it (as an undefined scalar) if create is true and it does not exist.
func (c *Cell) element(key string, create bool) (*Cell, bool) {
	if create {
		el, _ := c.elems.GetOrCreate(key, value.NewStringFromString(key), func() *Cell {
			return &Cell{kind: KindScalar, name: key}
		})
		return el, true
	}
	return c.elems.Get(key)
}

// StartSearch begins a new ArraySearch over array cell c and registers it
// with in. c must be an array cell.
func (in *Interp) StartSearch(c *Cell) (*ArraySearch, error) {
	if c.kind != KindArray {
		return nil, ErrNeedArray(c.name)
	}
	in.nextSearch++
	s := &ArraySearch{
		id:        in.nextSearch,
		arrayName: c.name,
		array:     c,
		it:        c.elems.NewIterator(),
	}
	in.searches[c] = append(in.searches[c], s)
	return s, nil
}

// Token returns the script-visible opaque handle for s.
func (s *ArraySearch) Token() string {
	return fmt.Sprintf("s-%d-%s", s.id, s.arrayName)
}

// First rewinds s to the beginning of its array's key set. Per spec.md
// §4.4 the hash container is insertion-stable, so First only needs to
// reopen a fresh Iterator; it does not need to remember original
// insertion positions itself.
func (s *ArraySearch) First() {
	s.it.Close()
	s.it = s.array.elems.NewIterator()
	s.done = false
	s.err = nil
}

// Next returns the next live element in s's array, in insertion order. ok
// is false when the search is exhausted. changed is true when the array
// was structurally mutated since this search started or was last rewound;
// Next then also stashes ErrArraySearchChanged (spec.md §8 scenario 6) on s,
// retrievable by the search's owner via Err, and returns ok=false.
func (s *ArraySearch) Next() (key *value.Value, cell *Cell, changed bool, ok bool) {
	if s.done {
		return nil, nil, false, false
	}
	key, cell, changed, ok = s.it.Next()
	if changed {
		s.err = ErrArraySearchChanged
	}
	if !ok {
		s.done = true
	}
	return key, cell, changed, ok
}

// AnyMore reports whether a subsequent call to Next would return ok=true,
// without consuming an element. A change discovered this way is also
// stashed on s, retrievable via Err, since it means the search is already
// dead even though no element was consumed.
func (s *ArraySearch) AnyMore() bool {
	if s.done {
		return false
	}
	save := *s.it
	_, _, changed, ok := s.it.Next()
	*s.it = save
	if changed {
		s.err = ErrArraySearchChanged
	}
	return ok
}

// Err returns the error reported against s, if any. It is set by Next or
// AnyMore when they discover the underlying array changed during
// iteration (spec.md §8 scenario 6), and is cleared by First.
func (s *ArraySearch) Err() error {
	return s.err
}

// Done releases s, closing its Iterator and removing it from in's registry.
func (in *Interp) Done(s *ArraySearch) {
	s.it.Close()
	s.done = true
	list := in.searches[s.array]
	for i, o := range list {
		if o == s {
			in.searches[s.array] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// DeleteArraySearches closes and drops every ArraySearch registered against
// array cell c. Called when c's owning array is unset (spec.md §4.4:
// "Deleting the array deletes all its searches").
func (in *Interp) DeleteArraySearches(c *Cell) {
	for _, s := range in.searches[c] {
		s.it.Close()
		s.done = true
	}
	delete(in.searches, c)
}
