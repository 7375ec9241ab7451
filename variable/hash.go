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

// hashEntry is one slot of a Hash: a key/cell pair that knows its own
// position in the insertion-ordered backing slice. Re-architected per
// spec.md §9: entries own their cells (no cycle back into the table from
// the cell); a dead entry is kept in place, as a tombstone, for as long as
// any live reference (array search) might still be walking past it.
type hashEntry struct {
	key  *value.Value
	cell *Cell
	dead bool
}

// Hash is an insertion-stable map keyed by a Value's string form to a
// Variable cell, tolerant to mid-iteration mutation (spec.md §3 "Hash
// container for variables", §4.4 array search semantics).
//
// Inserting a new key never invalidates an iterator positioned earlier in
// the table: new entries are always appended. Deleting a key never shrinks
// the backing slice; the entry is tombstoned in place and iterators skip
// it. Space is only reclaimed when the whole Hash is discarded.
type Hash struct {
	order []*hashEntry
	index map[string]*hashEntry

	// searching counts the active Iterators walking this Hash. Code paths
	// that would restructure the key set (as opposed to merely tombstone
	// an entry, which is always safe) consult this to decide whether to
	// terminate in-flight searches rather than forbid the mutation
	// outright, per spec.md §4.4.
	searching int

	// generation is bumped by any deletion performed while searches are
	// active; Iterator compares against the generation it was created
	// with to detect "array changed during iteration" (spec.md §4.4, §8
	// scenario 6).
	generation int
}

// NewHash returns an empty Hash.
func NewHash() *Hash {
	return &Hash{index: make(map[string]*hashEntry)}
}

// Len returns the number of live (non-tombstoned) entries.
func (h *Hash) Len() int {
	n := 0
	for _, e := range h.order {
		if !e.dead {
			n++
		}
	}
	return n
}

// Get returns the live cell stored under keyStr, if any.
func (h *Hash) Get(keyStr string) (*Cell, bool) {
	e, ok := h.index[keyStr]
	if !ok || e.dead {
		return nil, false
	}
	return e.cell, true
}

// GetOrCreate returns the existing live cell under keyStr, or creates one
// via newCell and inserts it, appending to the insertion order. The key
// Value passed is only used (and retained) on insert.
func (h *Hash) GetOrCreate(keyStr string, key *value.Value, newCell func() *Cell) (cell *Cell, created bool) {
	if e, ok := h.index[keyStr]; ok && !e.dead {
		return e.cell, false
	}
	c := newCell()
	e := &hashEntry{key: value.Retain(value.Duplicate(key)), cell: c}
	h.order = append(h.order, e)
	h.index[keyStr] = e
	c.inHash = true
	return c, true
}

// Delete tombstones the entry under keyStr. The cell itself is not
// released here; callers decide the cell's fate (spec.md §4.3: a cell
// with no trace list, no link incoming, and no hash-table pin is
// deallocated only after any traces on it complete).
func (h *Hash) Delete(keyStr string) (*Cell, bool) {
	e, ok := h.index[keyStr]
	if !ok || e.dead {
		return nil, false
	}
	e.dead = true
	delete(h.index, keyStr)
	if h.searching > 0 {
		// A structural mutation while searches are active: per spec.md
		// §4.4 the engine terminates those searches rather than forbid
		// the mutation. Iterators observe this via Hash.generation.
		h.generation++
	}
	return e.cell, true
}

// Keys returns the live keys in insertion order. Used by namespace/local
// introspection (component 11 in spec.md §2).
func (h *Hash) Keys() []*value.Value {
	out := make([]*value.Value, 0, len(h.order))
	for _, e := range h.order {
		if !e.dead {
			out = append(out, e.key)
		}
	}
	return out
}

// Iterator walks a Hash in insertion order. It carries no reference of its
// own on any cell; it relies on the Hash's own protections instead — dead
// entries are tombstoned in place rather than removed (see hashEntry), and
// a generation mismatch against h.generation tells the iterator its Hash
// was structurally changed out from under it (spec.md §5 "Ordering
// guarantees").
type Iterator struct {
	h    *Hash
	pos  int
	gen  int
}

// NewIterator starts a new Iterator over h. While any Iterator is active,
// h.searching is incremented; only Close decrements it (running off the end
// does not).
func (h *Hash) NewIterator() *Iterator {
	h.searching++
	return &Iterator{h: h, gen: h.generation}
}

// Next advances the iterator and returns the next live key/cell pair. ok is
// false when iteration is exhausted or the underlying Hash was
// structurally changed since this Iterator was created (spec.md §4.4: a
// search that discovers its array was restructured reports "array changed
// during iteration").
func (it *Iterator) Next() (key *value.Value, cell *Cell, changed bool, ok bool) {
	if it.gen != it.h.generation {
		return nil, nil, true, false
	}
	for it.pos < len(it.h.order) {
		e := it.h.order[it.pos]
		it.pos++
		if e.dead {
			continue
		}
		return e.key, e.cell, false, true
	}
	return nil, nil, false, false
}

// Close releases the Iterator's hold on its Hash's search count. Safe to
// call more than once.
func (it *Iterator) Close() {
	if it.h == nil {
		return
	}
	it.h.searching--
	it.h = nil
}
