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

func TestEncodeCmdMapValueUsesOneByteFormWhenItFits(t *testing.T) {
	assert.Equal(t, []byte{3}, bytecode.EncodeCmdMapValue(3))
	assert.Equal(t, []byte{127}, bytecode.EncodeCmdMapValue(127))
	assert.Equal(t, []byte{0x80}, bytecode.EncodeCmdMapValue(-128))
}

func TestEncodeCmdMapValueEscapesValuesOutsideOneByteRange(t *testing.T) {
	b := bytecode.EncodeCmdMapValue(300)
	require.Len(t, b, 5)
	assert.Equal(t, byte(0xFF), b[0])
}

func TestEncodeCmdMapValueEscapesExactly0xFF(t *testing.T) {
	b := bytecode.EncodeCmdMapValue(0xFF)
	require.Len(t, b, 5)
	assert.Equal(t, byte(0xFF), b[0])
}

func TestEncodeCmdMapValueEscapesNegativeOneToAvoidMarkerCollision(t *testing.T) {
	// -1 fits a signed byte (0xFF in two's complement) but that byte value
	// is the escape marker, so it must use the 5-byte form too.
	b := bytecode.EncodeCmdMapValue(-1)
	require.Len(t, b, 5)
	assert.Equal(t, byte(0xFF), b[0])
}

func TestCmdMapValueCodecRoundTrips(t *testing.T) {
	for _, v := range []int32{0, 3, 127, -128, -1, 255, 300, -300, 1000} {
		enc := bytecode.EncodeCmdMapValue(v)
		got, n, err := bytecode.DecodeCmdMapValue(enc, 0)
		require.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, v, got)
	}
}

// TestCmdMapCodecScenario mirrors spec.md §8 scenario 7: the input sequence
// of (codeDelta, codeLen, srcDelta, srcLen) tuples round-trips through
// encode then decode, with the middle tuple occupying the 5-byte escape
// form on both its delta fields.
func TestCmdMapCodecScenario(t *testing.T) {
	entries := []bytecode.CmdMapEntry{
		{CodeStart: 3, CodeLen: 7, SrcStart: 0, SrcLen: 12},
		{CodeStart: 3 + 0xFF, CodeLen: 300, SrcStart: 0 + 0xFF, SrcLen: 1000},
		{CodeStart: 3 + 0xFF + 2, CodeLen: 4, SrcStart: 0 + 0xFF + 15, SrcLen: 3},
	}

	encoded := bytecode.EncodeCmdMap(entries)

	midCodeDelta := bytecode.EncodeCmdMapValue(0xFF)
	midSrcDelta := bytecode.EncodeCmdMapValue(0xFF)
	require.Len(t, midCodeDelta, 5)
	require.Len(t, midSrcDelta, 5)

	decoded, err := bytecode.DecodeCmdMap(encoded, len(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestFindCommandLocatesContainingRange(t *testing.T) {
	entries := []bytecode.CmdMapEntry{
		{CodeStart: 0, CodeLen: 4, SrcStart: 0, SrcLen: 5},
		{CodeStart: 4, CodeLen: 3, SrcStart: 6, SrcLen: 2},
	}
	e, ok := bytecode.FindCommand(entries, 5)
	require.True(t, ok)
	assert.Equal(t, entries[1], e)

	_, ok = bytecode.FindCommand(entries, 100)
	assert.False(t, ok)
}
