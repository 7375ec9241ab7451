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

func newCell() *variable.Cell { return variable.NewScalar("x") }

func TestHashGetOrCreateThenGet(t *testing.T) {
	h := variable.NewHash()
	c, created := h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	assert.True(t, created)
	require.NotNil(t, c)

	c2, ok := h.Get("a")
	assert.True(t, ok)
	assert.Same(t, c, c2)
	assert.Equal(t, 1, h.Len())
}

func TestHashGetOrCreateIsIdempotent(t *testing.T) {
	h := variable.NewHash()
	c1, _ := h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	c2, created := h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	assert.False(t, created)
	assert.Same(t, c1, c2)
}

func TestHashDeleteTombstonesInsteadOfShrinking(t *testing.T) {
	h := variable.NewHash()
	h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	_, ok := h.Delete("a")
	assert.True(t, ok)
	_, ok = h.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHashIterationIsInsertionOrder(t *testing.T) {
	h := variable.NewHash()
	for _, k := range []string{"c", "a", "b"} {
		h.GetOrCreate(k, value.NewStringFromString(k), newCell)
	}
	it := h.NewIterator()
	defer it.Close()
	var order []string
	for {
		k, _, changed, ok := it.Next()
		if !ok {
			break
		}
		assert.False(t, changed)
		order = append(order, string(value.GetString(k)))
	}
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestHashNewEntryDuringIterationDoesNotInvalidateSearch(t *testing.T) {
	h := variable.NewHash()
	h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	it := h.NewIterator()
	defer it.Close()

	// A later insert is not a structural change that invalidates the
	// search (only deletion bumps the generation counter).
	h.GetOrCreate("b", value.NewStringFromString("b"), newCell)

	_, _, changed, ok := it.Next()
	assert.True(t, ok)
	assert.False(t, changed)
}

func TestHashDeleteDuringActiveSearchReportsChanged(t *testing.T) {
	h := variable.NewHash()
	h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	h.GetOrCreate("b", value.NewStringFromString("b"), newCell)

	it := h.NewIterator()
	defer it.Close()
	_, _, _, ok := it.Next()
	require.True(t, ok)

	h.Delete("b")

	_, _, changed, ok := it.Next()
	assert.False(t, ok)
	assert.True(t, changed)
}

func TestHashKeysSkipsTombstones(t *testing.T) {
	h := variable.NewHash()
	h.GetOrCreate("a", value.NewStringFromString("a"), newCell)
	h.GetOrCreate("b", value.NewStringFromString("b"), newCell)
	h.Delete("a")
	keys := h.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "b", string(value.GetString(keys[0])))
}
