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

	"github.com/tcltk/tcl-sub007/value"
	"github.com/tcltk/tcl-sub007/variable"
)

func TestNewScalarIsUndefined(t *testing.T) {
	c := variable.NewScalar("x")
	assert.Equal(t, variable.KindScalar, c.Kind())
	assert.False(t, c.Defined())
}

func TestNewConstantIsDefined(t *testing.T) {
	v := value.NewStringFromString("42")
	c := variable.NewConstant("pi", v)
	assert.Equal(t, variable.KindConstant, c.Kind())
	assert.True(t, c.Defined())
}

func TestNewArrayIsDefinedEvenWhenEmpty(t *testing.T) {
	c := variable.NewArray("a")
	assert.Equal(t, variable.KindArray, c.Kind())
	assert.True(t, c.Defined())
}

func TestTracesAreReturnedInnermostFirst(t *testing.T) {
	c := variable.NewScalar("x")
	first := &variable.Trace{Mask: variable.TraceWrite, Func: func(variable.TraceOp, *variable.Cell, string) error { return nil }}
	second := &variable.Trace{Mask: variable.TraceWrite, Func: func(variable.TraceOp, *variable.Cell, string) error { return nil }}
	c.AddTrace(first)
	c.AddTrace(second)
	traces := c.Traces()
	assert.Same(t, second, traces[0])
	assert.Same(t, first, traces[1])
}

func TestRemoveTraceDropsOnlyThatTrace(t *testing.T) {
	c := variable.NewScalar("x")
	tr := &variable.Trace{Mask: variable.TraceRead, Func: func(variable.TraceOp, *variable.Cell, string) error { return nil }}
	c.AddTrace(tr)
	c.RemoveTrace(tr)
	assert.Empty(t, c.Traces())
}
