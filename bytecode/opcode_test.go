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
)

func TestOpcodeLookupRoundTripsThroughName(t *testing.T) {
	op, ok := bytecode.Lookup("push1")
	require.True(t, ok)
	assert.Equal(t, bytecode.OpPush1, op)
	assert.Equal(t, "push1", op.Name())
}

func TestOpcodeLookupFailsOnUnknownName(t *testing.T) {
	_, ok := bytecode.Lookup("frobnicate")
	assert.False(t, ok)
}

func TestOpcodeWidthAccountsForOperandBytes(t *testing.T) {
	assert.Equal(t, 2, bytecode.OpPush1.Width())
	assert.Equal(t, 5, bytecode.OpPush4.Width())
	assert.Equal(t, 1, bytecode.OpDone.Width())
}

func TestOpcodeInvalidBeyondTable(t *testing.T) {
	assert.False(t, bytecode.Opcode(255).Valid())
}
