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

// Opcode identifies one instruction in a bytecode object's code stream.
type Opcode byte

// OperandKind is one of the closed set of operand encodings from spec.md
// §4.5.
type OperandKind byte

const (
	// NONE: no operand bytes follow the opcode.
	NONE OperandKind = iota
	// INT1: a signed 8-bit immediate.
	INT1
	// UINT1: an unsigned 8-bit immediate.
	UINT1
	// INT4: a signed 32-bit immediate, big-endian.
	INT4
	// UINT4: an unsigned 32-bit immediate, big-endian.
	UINT4
	// OFFSET1: a signed 8-bit pc-relative branch target.
	OFFSET1
	// OFFSET4: a signed 32-bit pc-relative branch target, big-endian.
	OFFSET4
	// LIT1: an unsigned 8-bit index into Object.Literals().
	LIT1
	// LIT4: an unsigned 32-bit index into Object.Literals(), big-endian.
	LIT4
	// AUX4: an unsigned 32-bit index into Object.Aux(), big-endian.
	AUX4
	// IDX4: a signed 32-bit list/string index expression; see index.go.
	IDX4
	// LVT1: an unsigned 8-bit index into Object.Locals().
	LVT1
	// LVT4: an unsigned 32-bit index into Object.Locals(), big-endian.
	LVT4
	// SCLS1: an unsigned 8-bit index into the frozen character-class table.
	SCLS1
)

// Width reports the number of operand bytes this OperandKind consumes from
// the code stream, not counting the opcode byte itself.
func (k OperandKind) Width() int {
	switch k {
	case NONE:
		return 0
	case INT1, UINT1, LIT1, LVT1, SCLS1, OFFSET1:
		return 1
	case INT4, UINT4, LIT4, AUX4, IDX4, LVT4, OFFSET4:
		return 4
	default:
		return 0
	}
}

// instrInfo is one row of the instruction table: an opcode's disassembly
// mnemonic and its fixed operand signature. This table is the single
// source of truth named by spec.md's supplemented feature #6 — both Decode
// and Disassemble read it and nothing else, so they cannot drift apart.
type instrInfo struct {
	name     string
	operands []OperandKind
}

// Opcodes understood by this package. Names follow the disassembly
// vocabulary pinned by spec.md §8 scenario 8 (push1, invoke1, done) and
// extend it in the same style to exercise every OperandKind at least once.
const (
	OpNop Opcode = iota
	OpPush1        // push1: push literals[operand] (LIT1)
	OpPush4        // push4: push literals[operand] (LIT4)
	OpPop          // pop: discard TOS
	OpDup          // dup: duplicate TOS
	OpConcat1      // concat1: concatenate operand values from the stack (UINT1)
	OpInvoke1      // invoke1: invoke TOS-operand..TOS as a command (UINT1 argc)
	OpInvoke4      // invoke4: invoke TOS-operand..TOS as a command (UINT4 argc)
	OpDone         // done: stop execution, TOS is the result
	OpJump1        // jump1: unconditional relative jump (OFFSET1)
	OpJump4        // jump4: unconditional relative jump (OFFSET4)
	OpJumpTrue1    // jumpTrue1: jump if TOS is true (OFFSET1)
	OpJumpFalse1   // jumpFalse1: jump if TOS is false (OFFSET1)
	OpJumpTrue4    // jumpTrue4: jump if TOS is true (OFFSET4)
	OpJumpFalse4   // jumpFalse4: jump if TOS is false (OFFSET4)
	OpLoadScalar1  // loadScalar1: push locals[operand]'s value (LVT1)
	OpLoadScalar4  // loadScalar4: push locals[operand]'s value (LVT4)
	OpStoreScalar1 // storeScalar1: pop TOS into locals[operand] (LVT1)
	OpStoreScalar4 // storeScalar4: pop TOS into locals[operand] (LVT4)
	OpLoadArray1   // loadArray1: pop element name, push locals[operand](name) (LVT1)
	OpStoreArray1  // storeArray1: pop value then element name into locals[operand](name) (LVT1)
	OpIncrScalar1  // incrScalar1: pop delta, increment locals[operand] by it (LVT1)
	OpListIndex    // listIndex: pop a list and index it (IDX4)
	OpForeachStart // foreachStart: start a foreach loop using aux[operand] (AUX4)
	OpStrClass     // strClass: test TOS against character class table[operand] (SCLS1)
	OpTryStart     // tryStart: enter a catch range described by operand (UINT1)
)

var instrTable = [...]instrInfo{
	OpNop:          {"nop", nil},
	OpPush1:        {"push1", []OperandKind{LIT1}},
	OpPush4:        {"push4", []OperandKind{LIT4}},
	OpPop:          {"pop", nil},
	OpDup:          {"dup", nil},
	OpConcat1:      {"concat1", []OperandKind{UINT1}},
	OpInvoke1:      {"invoke1", []OperandKind{UINT1}},
	OpInvoke4:      {"invoke4", []OperandKind{UINT4}},
	OpDone:         {"done", nil},
	OpJump1:        {"jump1", []OperandKind{OFFSET1}},
	OpJump4:        {"jump4", []OperandKind{OFFSET4}},
	OpJumpTrue1:    {"jumpTrue1", []OperandKind{OFFSET1}},
	OpJumpFalse1:   {"jumpFalse1", []OperandKind{OFFSET1}},
	OpJumpTrue4:    {"jumpTrue4", []OperandKind{OFFSET4}},
	OpJumpFalse4:   {"jumpFalse4", []OperandKind{OFFSET4}},
	OpLoadScalar1:  {"loadScalar1", []OperandKind{LVT1}},
	OpLoadScalar4:  {"loadScalar4", []OperandKind{LVT4}},
	OpStoreScalar1: {"storeScalar1", []OperandKind{LVT1}},
	OpStoreScalar4: {"storeScalar4", []OperandKind{LVT4}},
	OpLoadArray1:   {"loadArray1", []OperandKind{LVT1}},
	OpStoreArray1:  {"storeArray1", []OperandKind{LVT1}},
	OpIncrScalar1:  {"incrScalar1", []OperandKind{LVT1}},
	OpListIndex:    {"listIndex", []OperandKind{IDX4}},
	OpForeachStart: {"foreachStart", []OperandKind{AUX4}},
	OpStrClass:     {"strClass", []OperandKind{SCLS1}},
	OpTryStart:     {"tryStart", []OperandKind{UINT1}},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range instrTable {
		opcodeIndex[v.name] = Opcode(i)
	}
}

// Name returns op's disassembly mnemonic, or "" if op is not a recognized
// opcode.
func (op Opcode) Name() string {
	if int(op) >= len(instrTable) {
		return ""
	}
	return instrTable[op].name
}

// Operands returns op's fixed operand signature. The returned slice must
// not be mutated.
func (op Opcode) Operands() []OperandKind {
	if int(op) >= len(instrTable) {
		return nil
	}
	return instrTable[op].operands
}

// Valid reports whether op is a recognized opcode.
func (op Opcode) Valid() bool {
	return int(op) < len(instrTable) && instrTable[op].name != ""
}

// Width returns the total number of bytes op occupies in the code stream,
// including the opcode byte itself.
func (op Opcode) Width() int {
	w := 1
	for _, k := range op.Operands() {
		w += k.Width()
	}
	return w
}

// Lookup returns the Opcode registered under name, mirroring the teacher's
// opcodeIndex init-time lookup table.
func Lookup(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}
