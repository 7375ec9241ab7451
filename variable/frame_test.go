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

func TestLocalCacheNameRoundTrip(t *testing.T) {
	lc := variable.NewLocalCache(2)
	lc.SetName(0, value.NewStringFromString("x"))
	assert.Equal(t, "x", string(value.GetString(lc.Name(0))))
	assert.Nil(t, lc.Name(1))
}

func TestNewFrameExposesCompiledLocalsByIndex(t *testing.T) {
	in := variable.NewInterp()
	lc := variable.NewLocalCache(2)
	lc.SetName(0, value.NewStringFromString("a"))
	f := variable.NewFrame(in.Root, 2, lc, nil)
	assert.Equal(t, 2, f.NumCompiledLocals())
	assert.Equal(t, "a", string(value.GetString(f.CompiledLocalName(0))))
	assert.False(t, f.CompiledLocal(0).Defined())
}

func TestFrameCallerChain(t *testing.T) {
	in := variable.NewInterp()
	lc := variable.NewLocalCache(0)
	outer := variable.NewFrame(in.Root, 0, lc, nil)
	inner := variable.NewFrame(in.Root, 0, lc, outer)
	require.Same(t, outer, inner.Caller)
}

func TestFrameDynamicLookupCreatesOnDemand(t *testing.T) {
	in := variable.NewInterp()
	lc := variable.NewLocalCache(0)
	f := variable.NewFrame(in.Root, 0, lc, nil)

	cell, _, err := variable.Lookup(in, f, in.Root, "dyn", variable.FlagCreate)
	require.NoError(t, err)
	require.NotNil(t, cell)

	cell2, _, err := variable.Lookup(in, f, in.Root, "dyn", 0)
	require.NoError(t, err)
	assert.Same(t, cell, cell2)
}
