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

package variable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcltk/tcl-sub007/variable"
)

func TestRootNamespaceIsDoubleColon(t *testing.T) {
	in := variable.NewInterp()
	assert.Equal(t, "::", in.Root.FullName())
	assert.Nil(t, in.Root.Parent())
}

func TestCreateChildBuildsQualifiedName(t *testing.T) {
	in := variable.NewInterp()
	foo := in.Root.CreateChild("foo")
	assert.Equal(t, "::foo", foo.FullName())
	bar := foo.CreateChild("bar")
	assert.Equal(t, "::foo::bar", bar.FullName())
	assert.Same(t, foo, bar.Parent())
}

func TestCreateChildIsIdempotent(t *testing.T) {
	in := variable.NewInterp()
	a := in.Root.CreateChild("a")
	b := in.Root.CreateChild("a")
	assert.Same(t, a, b)
}

func TestChildIndexTracksCreationOrder(t *testing.T) {
	in := variable.NewInterp()
	first := in.Root.CreateChild("first")
	second := in.Root.CreateChild("second")
	assert.Equal(t, 0, first.ChildIndex())
	assert.Equal(t, 1, second.ChildIndex())
}

func TestDeleteChildRemovesIt(t *testing.T) {
	in := variable.NewInterp()
	in.Root.CreateChild("gone")
	in.Root.DeleteChild("gone")
	_, ok := in.Root.Child("gone")
	assert.False(t, ok)
}

func TestSetVarResolverBumpsInterpEpoch(t *testing.T) {
	in := variable.NewInterp()
	before := in.Epoch()
	in.Root.SetVarResolver(func(*variable.Namespace, string) (*variable.Cell, bool) { return nil, false })
	assert.Greater(t, in.Epoch(), before)
}

func TestQualifiedLookupResolvesThroughNamespaceTree(t *testing.T) {
	in := variable.NewInterp()
	in.Root.CreateChild("foo")

	cell, _, err := variable.Lookup(in, nil, in.Root, "::foo::x", variable.FlagCreate)
	require.NoError(t, err)

	foo, _ := in.Root.Child("foo")
	cell2, _, err := variable.Lookup(in, nil, foo, "x", 0)
	require.NoError(t, err)
	assert.Same(t, cell, cell2)
}
