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

	"github.com/tcltk/tcl-sub007/value"
	"github.com/tcltk/tcl-sub007/variable"
)

func TestArrayDefaultIsForcedShared(t *testing.T) {
	a := variable.NewArray("a")
	def := value.NewStringFromString("D")
	require.NoError(t, a.SetArrayDefault(def))
	assert.True(t, value.Shared(def))
}

func TestArrayDefaultRoundTrip(t *testing.T) {
	a := variable.NewArray("a")
	_, ok := a.ArrayDefault()
	assert.False(t, ok)

	def := value.NewStringFromString("D")
	require.NoError(t, a.SetArrayDefault(def))
	got, ok := a.ArrayDefault()
	require.True(t, ok)
	assert.Equal(t, "D", string(value.GetString(got)))

	a.UnsetArrayDefault()
	_, ok = a.ArrayDefault()
	assert.False(t, ok)
}

func TestSetArrayDefaultRejectsNonArrayCell(t *testing.T) {
	s := variable.NewScalar("s")
	err := s.SetArrayDefault(value.NewStringFromString("D"))
	assert.Error(t, err)
}

func TestArraySearchWalksElementsInInsertionOrder(t *testing.T) {
	in := variable.NewInterp()
	cell, _, err := variable.Lookup(in, nil, in.Root, "a(k1)", variable.FlagCreate)
	require.NoError(t, err)
	_, err = variable.Set(cell, nil, value.NewStringFromString("v1"), 0, "k1")
	require.NoError(t, err)

	arrCell, _, err := variable.Lookup(in, nil, in.Root, "a", 0)
	require.NoError(t, err)

	cell2, _, err := variable.Lookup(in, nil, in.Root, "a(k2)", variable.FlagCreate)
	require.NoError(t, err)
	_, err = variable.Set(cell2, nil, value.NewStringFromString("v2"), 0, "k2")
	require.NoError(t, err)

	s, err := in.StartSearch(arrCell)
	require.NoError(t, err)
	assert.Equal(t, "s-1-a", s.Token())
	assert.True(t, s.AnyMore())

	k, _, changed, ok := s.Next()
	require.True(t, ok)
	assert.False(t, changed)
	assert.Equal(t, "k1", string(value.GetString(k)))

	k, _, _, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, "k2", string(value.GetString(k)))

	_, _, _, ok = s.Next()
	assert.False(t, ok)
	in.Done(s)
}

func TestDeletingArrayClosesItsSearches(t *testing.T) {
	in := variable.NewInterp()
	arrCell, _, err := variable.Lookup(in, nil, in.Root, "a", variable.FlagCreate)
	require.NoError(t, err)
	// promote to array via an element reference
	_, _, err = variable.Lookup(in, nil, in.Root, "a(k)", variable.FlagCreate)
	require.NoError(t, err)

	s, err := in.StartSearch(arrCell)
	require.NoError(t, err)
	in.DeleteArraySearches(arrCell)
	_, _, _, ok := s.Next()
	assert.False(t, ok)
}
