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

	"github.com/tcltk/tcl-sub007/bytecode"
)

func TestDecodeIndexPlainPosition(t *testing.T) {
	assert.Equal(t, 3, bytecode.DecodeIndex(3, 10))
}

func TestDecodeIndexEndIsOnePastLast(t *testing.T) {
	assert.Equal(t, 10, bytecode.DecodeIndex(bytecode.EncodeIndexEnd(), 10))
}

func TestDecodeIndexEndMinusZeroIsLastElement(t *testing.T) {
	assert.Equal(t, 9, bytecode.DecodeIndex(bytecode.EncodeIndexEndMinus(0), 10))
}

func TestDecodeIndexEndMinusNCountsBackFromLast(t *testing.T) {
	assert.Equal(t, 7, bytecode.DecodeIndex(bytecode.EncodeIndexEndMinus(2), 10))
}

// TestDecodeIndexUnderflowCollapsesToZero mirrors spec.md §8's boundary
// behavior: "end-0x7FFFFFFE against a string of length 0x7FFFFFFE is
// position 0".
func TestDecodeIndexUnderflowCollapsesToZero(t *testing.T) {
	const length = 0x7FFFFFFE
	raw := bytecode.EncodeIndexEndMinus(0x7FFFFFFE)
	assert.Equal(t, 0, bytecode.DecodeIndex(raw, length))
}

func TestResolveIndexCollapsesOutOfRangeHighToAfterSentinel(t *testing.T) {
	assert.Equal(t, 99, bytecode.ResolveIndex(20, 5, -1, 99))
}
