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
	"math/big"
	"strings"

	"github.com/tcltk/tcl-sub007/value"
)

// LookupFlags parameterizes Lookup (spec.md §4.2).
type LookupFlags uint8

const (
	// FlagCreate creates the variable (and, for an array element, the
	// element's hash entry) if it does not already exist.
	FlagCreate LookupFlags = 1 << iota
	// FlagGlobalOnly resolves name from the root namespace regardless of
	// the current frame.
	FlagGlobalOnly
	// FlagNamespaceOnly resolves name within the current namespace,
	// bypassing frame-local and Dynamic lookup entirely.
	FlagNamespaceOnly
	// FlagLeaveErrMsg leaves a human-readable message in the owning
	// Interp (SPEC_FULL.md supplemented feature #1) in addition to
	// returning the structured error.
	FlagLeaveErrMsg
	// FlagNoResolvers skips namespace resolver callbacks.
	FlagNoResolvers
)

// SetFlags parameterizes Set.
type SetFlags uint8

const (
	// FlagAppendString appends the new string to the existing value
	// rather than replacing it.
	FlagAppendString SetFlags = 1 << iota
	// FlagAppendElement appends the new value as one more list element.
	FlagAppendElement
)

// UnsetFlags parameterizes Unset.
type UnsetFlags uint8

const (
	// FlagIgnoreMissing makes Unset a no-op (rather than an error) when
	// the target is already undefined.
	FlagIgnoreMissing UnsetFlags = 1 << iota
)

// parseArrayName splits name into a base name and, if name has the form
// "base(elem)", the element name.
func parseArrayName(name string) (base, elem string, isArray bool) {
	i := strings.IndexByte(name, '(')
	if i < 0 || name[len(name)-1] != ')' {
		return name, "", false
	}
	return name[:i], name[i+1 : len(name)-1], true
}

// Lookup resolves a possibly-qualified name, with optional "(index)" array
// element syntax, to a Variable cell (spec.md §4.2). frame may be nil (no
// enclosing procedure invocation); ns is the current namespace to resolve
// relative names against.
//
// For an array-element access whose element does not yet exist, Lookup
// returns a nil element cell alongside the (non-nil) array cell rather
// than an error, unless FlagCreate is set: Get/Set/Unset decide from there
// whether the array's default applies (spec.md §8 scenario 2).
func Lookup(in *Interp, frame *Frame, ns *Namespace, name string, flags LookupFlags) (cell *Cell, arrayCell *Cell, err error) {
	base, elem, isArrayRef := parseArrayName(name)

	container, err := lookupContainer(in, frame, ns, base, flags)
	if err != nil {
		if flags&FlagLeaveErrMsg != 0 {
			in.setLastError(err.Error())
		}
		return nil, nil, err
	}

	if !isArrayRef {
		return container, nil, nil
	}

	// a(x) syntax: dereference a link to its target first, then the
	// target must be either a fresh cell (promote to array) or an
	// existing array cell.
	target := container
	if target.kind == KindLink {
		target = target.deref()
	}
	if target.kind == KindScalar && !target.Defined() && len(target.traces) == 0 {
		target.kind = KindArray
		target.elems = NewHash()
	}
	if target.kind != KindArray {
		e := ErrNeedArray(base)
		if flags&FlagLeaveErrMsg != 0 {
			in.setLastError(e.Error())
		}
		return nil, nil, e
	}
	el, ok := target.element(elem, flags&FlagCreate != 0)
	if !ok {
		return nil, target, nil
	}
	return el, target, nil
}

// lookupContainer resolves base (no array-element suffix) to its Cell,
// per the frame-local / Dynamic / namespace search order of spec.md §4.2,
// including SPEC_FULL.md supplemented feature #4 (qualified-name fast
// path).
func lookupContainer(in *Interp, frame *Frame, ns *Namespace, base string, flags LookupFlags) (*Cell, error) {
	if strings.Contains(base, "::") || flags&FlagGlobalOnly != 0 || flags&FlagNamespaceOnly != 0 {
		path, tail, absolute := splitQualified(base)
		start := ns
		if absolute || flags&FlagGlobalOnly != 0 {
			start = in.Root
		}
		target, err := resolveNamespacePath(start, path, flags&FlagCreate != 0)
		if err != nil {
			return nil, err
		}
		return lookupInNamespace(in, target, tail, flags)
	}

	if frame != nil {
		if c, ok := lookupFrameLocal(frame, base); ok {
			return c, nil
		}
		if frame.Dynamic != nil {
			if c, ok := frame.Dynamic.Get(base); ok {
				return c, nil
			}
		}
		if flags&FlagCreate != 0 {
			if frame.Dynamic == nil {
				frame.Dynamic = NewHash()
			}
			c, _ := frame.Dynamic.GetOrCreate(base, value.NewStringFromString(base), func() *Cell {
				return &Cell{kind: KindScalar, name: base}
			})
			return c, nil
		}
		return nil, ErrNoSuchVar(base)
	}

	return lookupInNamespace(in, ns, base, flags)
}

// lookupFrameLocal performs a linear scan of f's compiled-local name cache.
// Real implementations resolve compiled locals by index at compile time;
// this by-name path only serves the dynamic surface (global/upvar/variable
// commands, trace callbacks) which addresses locals by name at runtime.
func lookupFrameLocal(f *Frame, name string) (*Cell, bool) {
	for i := 0; i < f.cache.Len(); i++ {
		if n := f.cache.Name(i); n != nil && string(value.GetString(n)) == name {
			return f.CompiledLocal(i), true
		}
	}
	return nil, false
}

func lookupInNamespace(in *Interp, ns *Namespace, name string, flags LookupFlags) (*Cell, error) {
	if flags&FlagNoResolvers == 0 && ns.resolveVar != nil {
		if c, ok := ns.resolveVar(ns, name); ok {
			return c, nil
		}
	}
	if c, ok := ns.vars.Get(name); ok {
		return c, nil
	}
	if flags&FlagCreate != 0 {
		c, _ := ns.vars.GetOrCreate(name, value.NewStringFromString(name), func() *Cell {
			return &Cell{kind: KindScalar, name: name, nsVar: true}
		})
		ns.epoch++
		return c, nil
	}
	return nil, ErrNoSuchVar(name)
}

// Get runs read traces and returns cell's value (spec.md §4.2). cell may
// be nil for a missing array element, in which case arrayCell's default is
// used if set. element is the array-element name, or "" for a scalar.
func Get(cell, arrayCell *Cell, element string) (*value.Value, error) {
	if cell == nil {
		if arrayCell != nil {
			if d, ok := arrayCell.ArrayDefault(); ok {
				if err := dispatch(arrayCell, TraceRead, element); err != nil {
					return nil, err
				}
				return d, nil
			}
			return nil, ErrNoSuchElement(arrayCell.name, element)
		}
		return nil, ErrNoSuchVar(element)
	}
	switch cell.kind {
	case KindArray:
		return nil, ErrIsArray(cell.name)
	case KindLink:
		return Get(cell.deref(), nil, element)
	}
	if arrayCell != nil {
		if err := dispatch(arrayCell, TraceRead, element); err != nil {
			return nil, err
		}
	}
	if err := dispatch(cell, TraceRead, element); err != nil {
		return nil, err
	}
	if cell.val == nil {
		if arrayCell != nil {
			if d, ok := arrayCell.ArrayDefault(); ok {
				return d, nil
			}
			return nil, ErrNoSuchElement(arrayCell.name, element)
		}
		return nil, ErrNoSuchVar(cell.name)
	}
	return cell.val, nil
}

// Set runs write traces and stores v in cell (spec.md §4.2). cell must be
// non-nil (callers resolve it via Lookup with FlagCreate first).
func Set(cell, arrayCell *Cell, v *value.Value, flags SetFlags, element string) (*value.Value, error) {
	switch cell.kind {
	case KindConstant:
		return nil, ErrWriteConst(cell.name)
	case KindArray:
		return nil, ErrWriteArray(cell.name)
	case KindLink:
		return Set(cell.deref(), nil, v, flags, element)
	}

	newVal := v
	if flags&FlagAppendString != 0 && cell.val != nil {
		newVal = value.NewString(append(append([]byte(nil), value.GetString(cell.val)...), value.GetString(v)...))
	} else if flags&FlagAppendElement != 0 && cell.val != nil {
		elems, err := value.ListElements(cell.val)
		if err != nil {
			return nil, err
		}
		newVal = value.NewList(append(append([]*value.Value(nil), elems...), v))
	}

	value.Retain(newVal)
	old := cell.val
	cell.val = newVal
	if old != nil {
		value.Release(old)
	}

	if arrayCell != nil {
		if err := dispatch(arrayCell, TraceWrite, element); err != nil {
			return cell.val, err
		}
	}
	if err := dispatch(cell, TraceWrite, element); err != nil {
		return cell.val, err
	}
	return cell.val, nil
}

// Unset runs unset traces and discards cell's value (spec.md §4.2), then
// removes its hash-table entry (frame's Dynamic hash, ns's variable table,
// or arrayCell's element hash, whichever owns it). For an array cell this
// recursively unsets every element first (spec.md §4.4). frame/ns identify
// the enclosing scope for a non-array cell; pass nil/nil when unsetting an
// array element (arrayCell already identifies its owner).
func Unset(in *Interp, frame *Frame, ns *Namespace, cell, arrayCell *Cell, flags UnsetFlags, element string) error {
	if cell == nil {
		if flags&FlagIgnoreMissing != 0 {
			return nil
		}
		return ErrNoSuchVar(element)
	}
	switch cell.kind {
	case KindConstant:
		return ErrUnsetConst(cell.name)
	case KindLink:
		target := cell.target
		if target != nil {
			target.alive &^= aliveLinked
		}
		cell.target = nil
		removeFromOwner(frame, ns, arrayCell, cell, element)
		return runUnsetTraces(cell, element)
	case KindArray:
		in.DeleteArraySearches(cell)
		// Snapshot keys/cells before recursing: deleting from cell.elems
		// while cell.elems.NewIterator() is still open would bump the
		// Hash's generation counter and truncate our own walk.
		it := cell.elems.NewIterator()
		var keys []string
		var elems []*Cell
		for {
			k, el, _, ok := it.Next()
			if !ok {
				break
			}
			keys = append(keys, string(value.GetString(k)))
			elems = append(elems, el)
		}
		it.Close()
		for i, el := range elems {
			_ = Unset(in, nil, nil, el, cell, flags|FlagIgnoreMissing, keys[i])
		}
	}

	if !cell.Defined() {
		if flags&FlagIgnoreMissing != 0 {
			return nil
		}
		return ErrNoSuchVar(cell.name)
	}

	// arrayCell, if present, is only being notified that one of its
	// elements is going away: dispatch its unset traces directly rather
	// than through runUnsetTraces, which would detach (and so wipe) the
	// array's own element hash.
	removeFromOwner(frame, ns, arrayCell, cell, element)
	var firstErr error
	if arrayCell != nil {
		if err := dispatch(arrayCell, TraceUnset, element); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := runUnsetTraces(cell, element); err != nil && firstErr == nil {
		firstErr = err
	}
	cell.maybeReclaim()
	return firstErr
}

// removeFromOwner tombstones cell's entry in whichever Hash currently
// holds it, if any (a compiled-local fast slot has no hash entry at all).
func removeFromOwner(frame *Frame, ns *Namespace, arrayCell, cell *Cell, element string) {
	if !cell.inHash {
		return
	}
	if arrayCell != nil {
		arrayCell.elems.Delete(element)
		cell.inHash = false
		return
	}
	if frame != nil && frame.Dynamic != nil {
		if _, ok := frame.Dynamic.Get(cell.name); ok {
			frame.Dynamic.Delete(cell.name)
			cell.inHash = false
			return
		}
	}
	if ns != nil {
		if _, ok := ns.vars.Get(cell.name); ok {
			ns.vars.Delete(cell.name)
			cell.inHash = false
			ns.epoch++
		}
	}
}

// Incr fetches cell numerically, widens to bigIntType if the machine-word
// add would overflow, writes the result back, and returns it (spec.md
// §4.2). A shared value is duplicated first (copy-on-write). The int and
// bigint value-types are resolved through in's registry (the Registry
// option), falling back to package value's global registrations.
func Incr(in *Interp, cell, arrayCell *Cell, delta int64, element string) (*value.Value, error) {
	if cell.kind == KindConstant {
		return nil, ErrWriteConst(cell.name)
	}
	if cell.kind == KindLink {
		return Incr(in, cell.deref(), nil, delta, element)
	}
	cur, err := Get(cell, arrayCell, element)
	if err != nil {
		// incr on a never-set variable starts from 0 (spec.md §4.2); any
		// other failure (wrong shape, dangling link, ...) still propagates.
		verr, ok := err.(*Error)
		if !ok || (verr.code[0] != "LOOKUP") {
			return nil, err
		}
		cur = value.NewStringFromString("0")
	}
	if value.Shared(cur) {
		cur = value.Duplicate(cur)
	}

	intType := in.intType()
	bigIntType := in.bigIntType()

	if pl, ok := value.FetchInternal(cur, bigIntType); ok {
		_ = pl
		return incrBig(in, cell, arrayCell, cur, delta, element)
	}
	if err := value.CoerceTo(cur, intType); err != nil {
		return nil, err
	}
	pl, _ := value.FetchInternal(cur, intType)
	sum := pl.Int + delta
	if (delta > 0 && sum < pl.Int) || (delta < 0 && sum > pl.Int) {
		return incrBig(in, cell, arrayCell, cur, delta, element)
	}
	nv := value.NewTyped(intType, value.Payload{Int: sum})
	return Set(cell, arrayCell, nv, 0, element)
}

func incrBig(in *Interp, cell, arrayCell *Cell, cur *value.Value, delta int64, element string) (*value.Value, error) {
	bigIntType := in.bigIntType()
	if err := value.CoerceTo(cur, bigIntType); err != nil {
		return nil, err
	}
	curPl, _ := value.FetchInternal(cur, bigIntType)
	sum := new(big.Int).Add(curPl.Any.(*big.Int), big.NewInt(delta))
	nv := value.NewTyped(bigIntType, value.Payload{Any: sum})
	return Set(cell, arrayCell, nv, 0, element)
}

// Upvar links hereName - resolved in frame's dynamic scope if frame is
// non-nil, else in ns's variable table - to target, which already lives
// elsewhere in the variable tree (spec.md §4.2). targetIsFrameLocal tells
// Upvar whether target was itself resolved from a procedure frame, so it
// can refuse the "inverted" case: creating a namespace variable that
// refers back down into a shorter-lived procedure local.
func Upvar(frame *Frame, ns *Namespace, hereName string, target *Cell, targetIsFrameLocal bool) error {
	if _, _, isArray := parseArrayName(hereName); isArray {
		return ErrUpvarLocalElement
	}
	if frame == nil && targetIsFrameLocal {
		return ErrUpvarInverted
	}
	if len(target.traces) > 0 {
		return ErrUpvarTraced
	}

	var here *Cell
	var found bool
	if frame != nil {
		if frame.Dynamic == nil {
			frame.Dynamic = NewHash()
		}
		here, found = frame.Dynamic.Get(hereName)
	} else {
		here, found = ns.vars.Get(hereName)
	}

	if found {
		if here == target || here.deref() == target || target.deref() == here {
			return ErrUpvarSelf
		}
		if here.Defined() {
			return ErrUpvarExists
		}
	} else if frame != nil {
		here, _ = frame.Dynamic.GetOrCreate(hereName, value.NewStringFromString(hereName), func() *Cell {
			return &Cell{kind: KindScalar, name: hereName}
		})
	} else {
		here, _ = ns.vars.GetOrCreate(hereName, value.NewStringFromString(hereName), func() *Cell {
			return &Cell{kind: KindScalar, name: hereName, nsVar: true}
		})
		ns.epoch++
	}

	here.kind = KindLink
	here.target = target
	target.alive |= aliveLinked
	return nil
}
