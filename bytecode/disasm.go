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
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tcltk/tcl-sub007/internal/rtio"
	"github.com/tcltk/tcl-sub007/value"
)

// visitor receives the events a disassembly walk emits for one instruction.
// Disassemble and DisassembleDict share this single walk (walkInstructions
// below) and differ only in which visitor they supply — spec.md's
// supplemented feature on factoring text/dictionary output as one visitor
// with two sinks.
type visitor interface {
	beginInstruction(pc int, op Opcode)
	operand(kind OperandKind, raw int64, suffix string)
	endInstruction()
}

// operandSuffix resolves an operand's symbolic meaning for human-readable
// output: a literal's string form, a local's name, a branch's absolute
// target, an aux item's type name, or a decoded list index.
func operandSuffix(obj *Object, ins Instruction, i int, k OperandKind) string {
	raw := ins.Operands[i]
	switch k {
	case LIT1, LIT4:
		if int(raw) < len(obj.literals) {
			return escapeSource(string(value.GetString(obj.literals[raw])))
		}
	case LVT1, LVT4:
		if int(raw) < len(obj.locals) && obj.locals[raw].Name != nil {
			return string(value.GetString(obj.locals[raw].Name))
		}
	case AUX4:
		if int(raw) < len(obj.aux) {
			return obj.aux[raw].TypeName()
		}
	case OFFSET1, OFFSET4:
		return fmt.Sprintf("pc %d", ins.PC+int(raw))
	case IDX4:
		return describeIndex(int32(raw))
	}
	return ""
}

func describeIndex(raw int32) string {
	if raw >= 0 {
		return strconv.Itoa(int(raw))
	}
	if raw == -1 {
		return "end"
	}
	n := -(raw + 2)
	return fmt.Sprintf("end-%d", n)
}

func walkInstructions(obj *Object, v visitor) error {
	instrs, err := Decode(obj.code)
	if err != nil {
		return errors.Wrap(err, "bytecode: disassemble")
	}
	for _, ins := range instrs {
		v.beginInstruction(ins.PC, ins.Op)
		for i, k := range ins.Op.Operands() {
			v.operand(k, ins.Operands[i], operandSuffix(obj, ins, i, k))
		}
		v.endInstruction()
	}
	return nil
}

// textVisitor renders one instruction per line: "pc  mnemonic  operand
// (suffix) ...".
type textVisitor struct {
	w   *rtio.ErrWriter
	pc  int
	op  Opcode
	buf []string
}

func (t *textVisitor) beginInstruction(pc int, op Opcode) {
	t.pc, t.op = pc, op
	t.buf = t.buf[:0]
}

func (t *textVisitor) operand(k OperandKind, raw int64, suffix string) {
	if suffix != "" {
		t.buf = append(t.buf, fmt.Sprintf("%d (%s)", raw, suffix))
		return
	}
	t.buf = append(t.buf, strconv.FormatInt(raw, 10))
}

func (t *textVisitor) endInstruction() {
	fmt.Fprintf(t.w, "%4d %s", t.pc, t.op.Name())
	for _, s := range t.buf {
		fmt.Fprintf(t.w, " %s", s)
	}
	fmt.Fprintln(t.w)
}

// Disassemble writes a textual listing of obj to w, one instruction per
// line. It fails with ErrDisassembleBytecode if obj was built with
// Prebuilt(true) (spec.md §6).
func Disassemble(obj *Object, w io.Writer) error {
	if obj.prebuilt {
		return ErrDisassembleBytecode
	}
	ew := rtio.NewErrWriter(w)
	v := &textVisitor{w: ew}
	if err := walkInstructions(obj, v); err != nil {
		return err
	}
	return ew.Err
}

// dictVisitor accumulates per-instruction entries for the structured
// dictionary sink: pc -> [mnemonic, rawOperand, rawOperand, ...].
type dictVisitor struct {
	keys []string
	vals []*value.Value
	cur  []*value.Value
	pc   int
}

func (d *dictVisitor) beginInstruction(pc int, op Opcode) {
	d.pc = pc
	d.cur = []*value.Value{value.NewStringFromString(op.Name())}
}

func (d *dictVisitor) operand(k OperandKind, raw int64, suffix string) {
	d.cur = append(d.cur, value.NewStringFromString(strconv.FormatInt(raw, 10)))
}

func (d *dictVisitor) endInstruction() {
	d.keys = append(d.keys, strconv.Itoa(d.pc))
	d.vals = append(d.vals, value.NewList(d.cur))
}

// DisassembleDict produces the structured dictionary Value described in
// spec.md §4.5/§6: keys literals, variables, exception, instructions,
// auxiliary, commands, script, namespace, stackdepth, exceptdepth, and
// (when present) sourcefile, initiallinenumber. It fails with
// ErrDisassembleBytecode if obj was built with Prebuilt(true).
func DisassembleDict(obj *Object) (*value.Value, error) {
	if obj.prebuilt {
		return nil, ErrDisassembleBytecode
	}

	d := &dictVisitor{}
	if err := walkInstructions(obj, d); err != nil {
		return nil, err
	}
	instructions := value.NewDict(d.keys, d.vals)

	literals := make([]*value.Value, len(obj.literals))
	for i, lit := range obj.literals {
		literals[i] = value.NewStringFromString(string(value.GetString(lit)))
	}

	variables := make([]*value.Value, len(obj.locals))
	for i, l := range obj.locals {
		name := ""
		if l.Name != nil {
			name = string(value.GetString(l.Name))
		}
		variables[i] = value.NewStringFromString(name)
	}

	exceptions := make([]*value.Value, len(obj.exceptions))
	for i, er := range obj.exceptions {
		kind := "loop"
		if er.Kind == ExceptionCatch {
			kind = "catch"
		}
		exceptions[i] = value.NewDict(
			[]string{"kind", "level", "pcStart", "pcEnd"},
			[]*value.Value{
				value.NewStringFromString(kind),
				value.NewStringFromString(strconv.Itoa(er.NestingLevel)),
				value.NewStringFromString(strconv.Itoa(er.PCStart)),
				value.NewStringFromString(strconv.Itoa(er.PCEnd)),
			},
		)
	}

	auxiliary := make([]*value.Value, len(obj.aux))
	for i, a := range obj.aux {
		auxiliary[i] = value.NewStringFromString(a.TypeName())
	}

	commands := make([]*value.Value, len(obj.cmdMap))
	for i, c := range obj.cmdMap {
		commands[i] = value.NewDict(
			[]string{"codeStart", "codeLen", "srcStart", "srcLen"},
			[]*value.Value{
				value.NewStringFromString(strconv.Itoa(c.CodeStart)),
				value.NewStringFromString(strconv.Itoa(c.CodeLen)),
				value.NewStringFromString(strconv.Itoa(c.SrcStart)),
				value.NewStringFromString(strconv.Itoa(c.SrcLen)),
			},
		)
	}

	keys := []string{"literals", "variables", "exception", "instructions", "auxiliary", "commands", "script", "namespace", "stackdepth", "exceptdepth"}
	vals := []*value.Value{
		value.NewList(literals),
		value.NewList(variables),
		value.NewList(exceptions),
		instructions,
		value.NewList(auxiliary),
		value.NewList(commands),
		value.NewStringFromString(string(obj.source)),
		value.NewStringFromString(obj.namespace),
		value.NewStringFromString(strconv.Itoa(obj.maxStackDepth)),
		value.NewStringFromString(strconv.Itoa(obj.maxExceptDepth)),
	}
	if obj.sourceFile != "" {
		keys = append(keys, "sourcefile")
		vals = append(vals, value.NewStringFromString(obj.sourceFile))
	}
	if obj.initialLine != 0 {
		keys = append(keys, "initiallinenumber")
		vals = append(vals, value.NewStringFromString(strconv.Itoa(obj.initialLine)))
	}
	return value.NewDict(keys, vals), nil
}
