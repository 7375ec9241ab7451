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

import "strings"

// VarResolver is a callback invoked during name lookup before the default
// search rules apply (spec.md GLOSSARY "Resolver").
type VarResolver func(ns *Namespace, name string) (*Cell, bool)

// CmdResolver is the command-lookup analog of VarResolver. The command
// system itself is out of scope (spec.md §1); Namespace only carries the
// hash and resolver slot so that host code building the command layer on
// top of this package has somewhere to put them.
type CmdResolver func(ns *Namespace, name string) (any, bool)

// Namespace is a hierarchical container of named variables, commands, and
// resolvers (spec.md §3 "Namespace"). The root namespace is "::".
type Namespace struct {
	id         uint64
	name       string // fully qualified, e.g. "::foo::bar"
	parent     *Namespace
	childIndex int
	children   map[string]*Namespace
	nextChild  int

	vars     *Hash
	commands map[string]any

	resolveVar VarResolver
	resolveCmd CmdResolver

	epoch    int // bumped on structural change (var/child added or removed)
	refCount int

	interp *Interp
}

// newRootNamespace creates "::" for a fresh Interp.
func newRootNamespace(in *Interp) *Namespace {
	return &Namespace{
		id:       in.mintNamespaceID(),
		name:     "::",
		children: make(map[string]*Namespace),
		vars:     NewHash(),
		commands: make(map[string]any),
		interp:   in,
	}
}

// FullName returns ns's fully qualified name, e.g. "::foo::bar".
func (ns *Namespace) FullName() string {
	return ns.name
}

// Parent returns ns's parent, or nil for the root namespace.
func (ns *Namespace) Parent() *Namespace {
	return ns.parent
}

// ChildIndex returns the ordinal position at which ns was created among
// its parent's children (spec.md §3 Namespace field "child index").
func (ns *Namespace) ChildIndex() int {
	return ns.childIndex
}

// Epoch returns ns's own structural-change counter.
func (ns *Namespace) Epoch() int {
	return ns.epoch
}

// Retain increments ns's reference count.
func (ns *Namespace) Retain() {
	ns.refCount++
}

// Release decrements ns's reference count. The Namespace tree itself is
// not torn down by this package (ownership of child namespaces belongs to
// the parent's children map); Release exists so host code can track when
// the last external holder of a Namespace handle has let go.
func (ns *Namespace) Release() {
	ns.refCount--
}

// RefCount returns ns's current reference count.
func (ns *Namespace) RefCount() int {
	return ns.refCount
}

// SetVarResolver installs (or clears, with nil) ns's variable resolver.
// Per spec.md §4.6, this bumps the owning Interp's global epoch so that
// lookup caches keyed by that epoch are invalidated.
func (ns *Namespace) SetVarResolver(r VarResolver) {
	ns.resolveVar = r
	ns.interp.bumpEpoch()
}

// SetCmdResolver installs (or clears, with nil) ns's command resolver.
func (ns *Namespace) SetCmdResolver(r CmdResolver) {
	ns.resolveCmd = r
	ns.interp.bumpEpoch()
}

// Child returns the direct child namespace named name (unqualified), if any.
func (ns *Namespace) Child(name string) (*Namespace, bool) {
	c, ok := ns.children[name]
	return c, ok
}

// CreateChild creates and returns a direct child namespace named name
// (unqualified). If one already exists, it is returned unchanged.
func (ns *Namespace) CreateChild(name string) *Namespace {
	if c, ok := ns.children[name]; ok {
		return c
	}
	full := ns.name
	if full == "::" {
		full = "::" + name
	} else {
		full = full + "::" + name
	}
	c := &Namespace{
		id:         ns.interp.mintNamespaceID(),
		name:       full,
		parent:     ns,
		childIndex: ns.nextChild,
		children:   make(map[string]*Namespace),
		vars:       NewHash(),
		commands:   make(map[string]any),
		interp:     ns.interp,
	}
	ns.nextChild++
	ns.children[name] = c
	ns.epoch++
	return c
}

// DeleteChild removes the direct child namespace named name, if present.
// It does not recursively tear down grandchildren's variable cells beyond
// dropping the reference; callers that need full teardown should walk the
// tree themselves using Child/Children.
func (ns *Namespace) DeleteChild(name string) {
	if _, ok := ns.children[name]; ok {
		delete(ns.children, name)
		ns.epoch++
	}
}

// Children returns the direct child namespaces, in no particular order.
func (ns *Namespace) Children() []*Namespace {
	out := make([]*Namespace, 0, len(ns.children))
	for _, c := range ns.children {
		out = append(out, c)
	}
	return out
}

// splitQualified implements SPEC_FULL.md supplemented feature #4
// (TclObjLookupVarEx's namespace-qualified-name fast path): a name
// containing "::" is split into its namespace path and tail, and a
// leading "::" means "resolve from the root" rather than "from here".
func splitQualified(name string) (path []string, tail string, absolute bool) {
	absolute = strings.HasPrefix(name, "::")
	trimmed := strings.TrimPrefix(name, "::")
	if trimmed == "" {
		return nil, "", absolute
	}
	parts := splitNonEmpty(trimmed, "::")
	if len(parts) == 0 {
		return nil, "", absolute
	}
	return parts[:len(parts)-1], parts[len(parts)-1], absolute
}

func splitNonEmpty(s, sep string) []string {
	raw := strings.Split(s, sep)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveNamespacePath walks from start following path (a sequence of
// unqualified child names), creating children along the way only if
// create is true. It returns ErrBadNamespace if a component is missing and
// create is false.
func resolveNamespacePath(start *Namespace, path []string, create bool) (*Namespace, error) {
	ns := start
	for _, p := range path {
		c, ok := ns.Child(p)
		if !ok {
			if !create {
				return nil, ErrBadNamespace(strings.Join(path, "::"))
			}
			c = ns.CreateChild(p)
		}
		ns = c
	}
	return ns, nil
}
