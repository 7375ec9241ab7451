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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcltk/tcl-sub007/bytecode"
	"github.com/tcltk/tcl-sub007/value"
)

func TestAssembleProducesScenarioEquivalentSpec(t *testing.T) {
	spec, err := bytecode.Assemble("t", strings.NewReader(`push1 "hi"
invoke1 1
done
`))
	require.NoError(t, err)
	assert.Equal(t, scenarioCode(), spec.Code)
	require.Len(t, spec.Literals, 1)
	assert.Equal(t, "hi", string(value.GetString(spec.Literals[0])))
}

func TestAssembleResolvesForwardLabels(t *testing.T) {
	spec, err := bytecode.Assemble("t", strings.NewReader(`jump1 loop
loop:
done
`))
	require.NoError(t, err)
	instrs, err := bytecode.Decode(spec.Code)
	require.NoError(t, err)
	require.Len(t, instrs, 2)
	assert.Equal(t, []int64{2}, instrs[0].Operands)
}

func TestAssembleReportsUnknownMnemonic(t *testing.T) {
	_, err := bytecode.Assemble("t", strings.NewReader("frobnicate\n"))
	assert.Error(t, err)
}

func TestAssembleReportsUndefinedLabel(t *testing.T) {
	_, err := bytecode.Assemble("t", strings.NewReader("jump1 nowhere\ndone\n"))
	assert.Error(t, err)
}
