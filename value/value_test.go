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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcltk/tcl-sub007/value"
)

func TestNewStringGetString(t *testing.T) {
	v := value.NewStringFromString("hello")
	assert.Equal(t, "hello", string(value.GetString(v)))
}

func TestRetainReleaseLifecycle(t *testing.T) {
	v := value.NewStringFromString("x")
	value.Retain(v)
	assert.Equal(t, 1, value.RefCount(v))
	value.Retain(v)
	assert.True(t, value.Shared(v))
	value.Release(v)
	assert.False(t, value.Shared(v))
	value.Release(v)
	assert.Equal(t, 0, value.RefCount(v))
}

func TestCoerceToStableStringForm(t *testing.T) {
	// Coercing to int and back must not change the string representation:
	// get_string is stable (spec.md §8).
	v := value.NewStringFromString("42")
	before := string(value.GetString(v))
	require.NoError(t, value.CoerceTo(v, value.IntType))
	value.InvalidateString(v)
	after := string(value.GetString(v))
	assert.Equal(t, before, after)
}

func TestCoerceToFailureLeavesStringIntact(t *testing.T) {
	v := value.NewStringFromString("not a number")
	err := value.CoerceTo(v, value.IntType)
	require.Error(t, err)
	assert.Equal(t, "not a number", string(value.GetString(v)))
	assert.Nil(t, value.InternalType(v))
}

func TestNewTypedMaterializesStringLazily(t *testing.T) {
	v := value.NewTyped(value.IntType, value.Payload{Int: 7})
	assert.Equal(t, "7", string(value.GetString(v)))
}

func TestFetchInternalDoesNotCoerce(t *testing.T) {
	v := value.NewStringFromString("7")
	_, ok := value.FetchInternal(v, value.IntType)
	assert.False(t, ok, "FetchInternal must not force a parse")
	require.NoError(t, value.CoerceTo(v, value.IntType))
	pl, ok := value.FetchInternal(v, value.IntType)
	require.True(t, ok)
	assert.EqualValues(t, 7, pl.Int)
}

func TestDuplicateIsIndependentCopy(t *testing.T) {
	elems := []*value.Value{value.NewStringFromString("a"), value.NewStringFromString("b")}
	l := value.NewList(elems)
	dup := value.Duplicate(l)
	dupElems, err := value.ListElements(dup)
	require.NoError(t, err)
	origElems, err := value.ListElements(l)
	require.NoError(t, err)
	require.Len(t, dupElems, 2)
	assert.NotSame(t, origElems[0], dupElems[0])
	assert.Equal(t, "a", string(value.GetString(dupElems[0])))
}

func TestListLengthIsO1NoStringMaterialization(t *testing.T) {
	elems := []*value.Value{value.NewStringFromString("a"), value.NewStringFromString("b"), value.NewStringFromString("c")}
	l := value.NewList(elems)
	assert.Equal(t, 3, value.Length(l))
}

func TestScalarLengthFallsBackToStringLength(t *testing.T) {
	v := value.NewStringFromString("hello")
	assert.Equal(t, 5, value.Length(v))
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	r := value.NewRegistry()
	require.NoError(t, r.Register(&value.Type{Name: "foo"}))
	err := r.Register(&value.Type{Name: "foo"})
	assert.Error(t, err)
}

func TestDoubleRoundTrip(t *testing.T) {
	v := value.NewStringFromString("3.5")
	require.NoError(t, value.CoerceTo(v, value.DoubleType))
	pl, ok := value.FetchInternal(v, value.DoubleType)
	require.True(t, ok)
	assert.InDelta(t, 3.5, value.Float64FromPayload(pl), 1e-9)
}

func TestBigIntRoundTrip(t *testing.T) {
	v := value.NewStringFromString("123456789012345678901234567890")
	require.NoError(t, value.CoerceTo(v, value.BigIntType))
	assert.Equal(t, "123456789012345678901234567890", string(value.GetString(v)))
}
