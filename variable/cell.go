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

// Kind identifies the disjoint shape of a Cell's payload (spec.md §3
// "Variable cell").
type Kind uint8

const (
	// KindScalar cells own one Value reference.
	KindScalar Kind = iota
	// KindArray cells own a Hash of element cells plus an optional default.
	KindArray
	// KindLink cells redirect all operations to another Cell.
	KindLink
	// KindConstant cells are scalars whose value cannot be overwritten or
	// unset once set.
	KindConstant
)

// aliveReason is a bitmask of the distinct reasons a Cell may still exist
// after becoming logically undefined. tclVar.c's VarHashRefCount tracks
// these independently (see SPEC_FULL.md supplemented feature #2): a cell
// can be observed by a trace, be the target of a link, and be pinned in a
// hash table mid-iteration all at once, and each reason must be cleared
// independently before the cell is reclaimed.
type aliveReason uint8

const (
	aliveTraced aliveReason = 1 << iota
	aliveLinked
	alivePinned
)

// Cell is one Variable cell: a scalar, array, link, or constant, plus the
// flag bits and trace list common to all kinds (spec.md §3).
type Cell struct {
	kind Kind

	// scalar payload (KindScalar, KindConstant)
	val *value.Value

	// array payload (KindArray)
	elems   *Hash
	dflt    *value.Value
	dfltSet bool

	// link payload (KindLink)
	target *Cell

	traces []*Trace

	inHash    bool // entry lives in some Hash's index; deletion may free it
	nsVar     bool // namespace variable (affects teardown order)
	alive     aliveReason
	traceBusy bool // one-level reentrancy guard (spec.md §4.3)

	// name is used only for error messages and introspection; it is the
	// cell's own short (unqualified) name within its container.
	name string
}

// NewScalar returns an undefined scalar cell named name.
func NewScalar(name string) *Cell {
	return &Cell{kind: KindScalar, name: name}
}

// NewArray returns an undefined array cell named name.
func NewArray(name string) *Cell {
	return &Cell{kind: KindArray, name: name, elems: NewHash()}
}

// NewConstant returns a constant cell named name, already set to val. val
// is retained.
func NewConstant(name string, val *value.Value) *Cell {
	return &Cell{kind: KindConstant, name: name, val: value.Retain(val)}
}

// Kind returns c's kind.
func (c *Cell) Kind() Kind {
	return c.kind
}

// Name returns c's short (unqualified) name.
func (c *Cell) Name() string {
	return c.name
}

// Defined reports whether c currently holds a value (scalar/constant) or,
// for an array, has ever been initialized as an array (spec.md: "undefined
// but still live" is a distinct state from simply not yet created).
func (c *Cell) Defined() bool {
	switch c.kind {
	case KindArray:
		return c.elems != nil
	case KindLink:
		return c.target != nil && c.target.Defined()
	default:
		return c.val != nil
	}
}

// deref follows a chain of link cells and returns the final non-link cell.
// Spec.md §3: "Links to links are permitted; dereference walks the chain."
func (c *Cell) deref() *Cell {
	seen := map[*Cell]bool{}
	cur := c
	for cur.kind == KindLink {
		if seen[cur] {
			// A link cycle should never be constructible through the public
			// Upvar API (it refuses self-aliases and aliases over defined
			// variables), but guard against it rather than loop forever.
			return cur
		}
		seen[cur] = true
		cur = cur.target
	}
	return cur
}

// AddTrace registers tr on c.
func (c *Cell) AddTrace(tr *Trace) {
	c.traces = append([]*Trace{tr}, c.traces...)
}

// RemoveTrace unregisters tr from c, if present.
func (c *Cell) RemoveTrace(tr *Trace) {
	for i, t := range c.traces {
		if t == tr {
			c.traces = append(c.traces[:i], c.traces[i+1:]...)
			return
		}
	}
}

// Traces returns c's trace list, innermost (most recently registered)
// first.
func (c *Cell) Traces() []*Trace {
	return c.traces
}

// maybeReclaim releases c's backing storage if it is undefined, carries no
// trace list, is not a link target, and is not pinned in a hash table.
// Called after traces complete (spec.md §4.3).
func (c *Cell) maybeReclaim() {
	if c.Defined() || len(c.traces) > 0 || c.alive != 0 {
		return
	}
	if c.val != nil {
		value.Release(c.val)
		c.val = nil
	}
}
