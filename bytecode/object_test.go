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

package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcltk/tcl-sub007/bytecode"
	"github.com/tcltk/tcl-sub007/value"
)

func scenarioSpec() bytecode.Spec {
	hi := value.NewStringFromString("hi")
	return bytecode.Spec{
		Code:          scenarioCode(),
		Literals:      []*value.Value{hi},
		Source:        []byte("hi"),
		MaxStackDepth: 1,
		CmdMap: []bytecode.CmdMapEntry{
			{CodeStart: 0, CodeLen: 5, SrcStart: 0, SrcLen: 2},
		},
	}
}

func TestBuildProducesARetainedObjectOwningItsLiterals(t *testing.T) {
	hi := value.NewStringFromString("hi")
	spec := scenarioSpec()
	spec.Literals = []*value.Value{hi}

	before := value.RefCount(hi)
	obj, err := bytecode.Build(spec)
	require.NoError(t, err)
	assert.Equal(t, 1, bytecode.RefCount(obj))
	assert.Equal(t, before+1, value.RefCount(hi))

	bytecode.Release(obj)
	assert.Equal(t, before, value.RefCount(hi))
}

func TestBuildRejectsOutOfRangeLiteralIndex(t *testing.T) {
	spec := scenarioSpec()
	spec.Literals = nil // push1 0 now references a non-existent literal
	_, err := bytecode.Build(spec)
	assert.Error(t, err)
}

func TestBuildRejectsOutOfRangeBranchTarget(t *testing.T) {
	spec := scenarioSpec()
	spec.Code = []byte{byte(bytecode.OpJump1), 100}
	_, err := bytecode.Build(spec)
	assert.Error(t, err)
}

func TestBuildRejectsCmdMapRangeBeyondCode(t *testing.T) {
	spec := scenarioSpec()
	spec.CmdMap = []bytecode.CmdMapEntry{{CodeStart: 0, CodeLen: 999, SrcStart: 0, SrcLen: 2}}
	_, err := bytecode.Build(spec)
	assert.Error(t, err)
}

func TestBuildAppliesCompileEpochOption(t *testing.T) {
	obj, err := bytecode.Build(scenarioSpec(), bytecode.CompileEpoch(7))
	require.NoError(t, err)
	assert.Equal(t, 7, obj.CompileEpoch())
}

func TestRetainAndReleaseAreSymmetric(t *testing.T) {
	obj, err := bytecode.Build(scenarioSpec())
	require.NoError(t, err)
	bytecode.Retain(obj)
	assert.Equal(t, 2, bytecode.RefCount(obj))
	bytecode.Release(obj)
	assert.Equal(t, 1, bytecode.RefCount(obj))
}
