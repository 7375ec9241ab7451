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

// TraceOp identifies the operation that fired a Trace callback.
type TraceOp uint8

const (
	TraceRead TraceOp = 1 << iota
	TraceWrite
	TraceUnset
	TraceArray
)

// TraceFunc is a user callback registered on a Cell. element is the array
// element name ("" for a scalar or whole-array trace). It may itself invoke
// any variable operation, including redefining or unsetting the cell being
// traced (spec.md §4.3).
type TraceFunc func(op TraceOp, c *Cell, element string) error

// Trace is `{mask, callback, clientData, nextPtr}` from spec.md §4.3.
// ClientData is opaque to this package; it exists purely so host code can
// recover context in Func without a closure allocation per trace.
type Trace struct {
	Mask       TraceOp
	Func       TraceFunc
	ClientData any
}

// dispatch runs every trace in c's list whose mask matches op, in the
// order required by spec.md §4.3: innermost (most recently registered)
// first for read, outermost for unset, in list order for write. c.traces
// is already stored innermost-first (AddTrace prepends), so:
//   - read:  iterate traces as stored (innermost first)
//   - write: iterate traces in reverse (list order here means insertion
//     order, i.e. oldest registration first)
//   - unset: iterate traces in reverse (outermost first)
//
// A cell marked "trace active" ignores nested traces for the same cell:
// one-level reentrancy guard.
func dispatch(c *Cell, op TraceOp, element string) error {
	if len(c.traces) == 0 {
		return nil
	}
	if c.traceBusy {
		return nil
	}
	c.traceBusy = true
	defer func() { c.traceBusy = false }()

	order := c.traces
	switch op {
	case TraceUnset:
		order = reversed(c.traces)
	case TraceWrite:
		order = reversed(c.traces)
	}

	var firstErr error
	for _, tr := range order {
		if tr.Mask&op == 0 {
			continue
		}
		if err := tr.Func(op, c, element); err != nil {
			if op == TraceUnset {
				// Unset must always run every trace even if one errors;
				// remember the first error and keep going.
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			return err
		}
	}
	return firstErr
}

func reversed(ts []*Trace) []*Trace {
	out := make([]*Trace, len(ts))
	for i, t := range ts {
		out[len(ts)-1-i] = t
	}
	return out
}

// runUnsetTraces implements the trace-safe unset sequence of spec.md §4.3:
// before running unset traces, the cell's payload is moved to a stack-local
// "dummy" copy, and the original cell is marked undefined, so that a trace
// body recreating storage under the same name starts a genuinely new
// lifetime rather than resurrecting this Cell.
func runUnsetTraces(c *Cell, element string) error {
	dummy := detach(c)
	c.alive |= aliveTraced
	defer func() { c.alive &^= aliveTraced }()
	err := dispatch(c, TraceUnset, element)
	if dummy != nil {
		value.Release(dummy)
	}
	return err
}

// detach clears c's payload in place and returns a snapshot Value (for
// scalars/constants) that a trace body could still legitimately want to
// read via a prior GetString capture. Arrays and links have no single
// Value to snapshot; detach just clears them.
func detach(c *Cell) *value.Value {
	switch c.kind {
	case KindScalar, KindConstant:
		v := c.val
		c.val = nil
		return v
	case KindArray:
		c.elems = nil
		c.dflt = nil
		c.dfltSet = false
		return nil
	case KindLink:
		if c.target != nil {
			c.target.alive &^= aliveLinked
		}
		c.target = nil
		return nil
	}
	return nil
}
