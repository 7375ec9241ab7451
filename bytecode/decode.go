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

package bytecode

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Instruction is one decoded instruction: its opcode, the pc it starts at,
// and its operand values in signature order. Operand values are sign- or
// zero-extended to int64 per their OperandKind; IDX4 operands are left
// un-resolved (see ResolveIndex) since resolving them requires a length
// only known at the call site.
type Instruction struct {
	PC       int
	Op       Opcode
	Operands []int64
}

// DecodeAt decodes the single instruction starting at code[pc] and returns
// it along with the pc of the following instruction.
func DecodeAt(code []byte, pc int) (Instruction, int, error) {
	if pc < 0 || pc >= len(code) {
		return Instruction{}, 0, errors.Errorf("bytecode: pc %d out of range [0,%d)", pc, len(code))
	}
	op := Opcode(code[pc])
	if !op.Valid() {
		return Instruction{}, 0, errors.Errorf("bytecode: unrecognized opcode %d at pc %d", code[pc], pc)
	}
	cursor := pc + 1
	kinds := op.Operands()
	operands := make([]int64, len(kinds))
	for i, k := range kinds {
		v, next, err := readOperand(code, cursor, k)
		if err != nil {
			return Instruction{}, 0, errors.Wrapf(err, "bytecode: decoding operand %d of %s at pc %d", i, op.Name(), pc)
		}
		operands[i] = v
		cursor = next
	}
	return Instruction{PC: pc, Op: op, Operands: operands}, cursor, nil
}

// Decode walks the entire code stream from pc 0, returning every decoded
// instruction in program order.
func Decode(code []byte) ([]Instruction, error) {
	var out []Instruction
	pc := 0
	for pc < len(code) {
		ins, next, err := DecodeAt(code, pc)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
		pc = next
	}
	return out, nil
}

func readOperand(code []byte, pos int, k OperandKind) (int64, int, error) {
	w := k.Width()
	if pos+w > len(code) {
		return 0, 0, errors.Errorf("bytecode: truncated operand at pos %d (need %d bytes, have %d)", pos, w, len(code)-pos)
	}
	switch k {
	case INT1, OFFSET1:
		return int64(int8(code[pos])), pos + 1, nil
	case UINT1, LIT1, LVT1, SCLS1:
		return int64(code[pos]), pos + 1, nil
	case INT4, OFFSET4, IDX4:
		return int64(int32(binary.BigEndian.Uint32(code[pos : pos+4]))), pos + 4, nil
	case UINT4, LIT4, AUX4, LVT4:
		return int64(binary.BigEndian.Uint32(code[pos : pos+4])), pos + 4, nil
	default:
		return 0, 0, nil
	}
}
