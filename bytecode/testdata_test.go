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
	"golang.org/x/tools/txtar"

	"github.com/tcltk/tcl-sub007/bytecode"
)

// loadScenario pulls one named file out of the golden archive and
// assembles it into a Spec, the way a larger fixture set for this
// package would be organized as scenarios grow beyond a handful of
// inline byte slices.
func loadScenario(t *testing.T, name string) bytecode.Spec {
	t.Helper()
	ar, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)
	for _, f := range ar.Files {
		if f.Name == name {
			spec, err := bytecode.Assemble(name, strings.NewReader(string(f.Data)))
			require.NoError(t, err)
			return spec
		}
	}
	t.Fatalf("scenario %q not found in archive", name)
	return bytecode.Spec{}
}

func TestArchivedScenariosAssembleAndDisassembleCleanly(t *testing.T) {
	for _, name := range []string{"push_invoke_done.asm", "loop_with_label.asm", "forward_branch.asm"} {
		t.Run(name, func(t *testing.T) {
			spec := loadScenario(t, name)
			obj, err := bytecode.Build(spec)
			require.NoError(t, err)
			defer bytecode.Release(obj)

			var buf strings.Builder
			require.NoError(t, bytecode.Disassemble(obj, &buf))
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestLoopWithLabelBranchesBackwardToItsOwnStart(t *testing.T) {
	spec := loadScenario(t, "loop_with_label.asm")
	instrs, err := bytecode.Decode(spec.Code)
	require.NoError(t, err)

	var jump bytecode.Instruction
	for _, ins := range instrs {
		if ins.Op == bytecode.OpJump1 {
			jump = ins
		}
	}
	require.NotZero(t, jump.Operands)
	assert.Equal(t, int64(0-jump.PC), jump.Operands[0])
}
