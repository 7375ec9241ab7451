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
	"strings"
	"text/scanner"

	"github.com/tcltk/tcl-sub007/value"
)

// Package-local textual listing format for building a Spec without hand
// assembling byte slices: one mnemonic per line, operands separated by
// spaces, labels as "name:" on their own line, string literals quoted.
// This is tooling for tests and the command-line shell, not a compiler
// front end: it knows nothing about command words, substitution or
// control structures, only the opcode table in opcode.go.
//
//	push1 "hi"
//	loop:
//	invoke1 1
//	jump1 loop
//	done

// ErrAssemble collects every error encountered while assembling a listing.
type ErrAssemble []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAssemble) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type labelUse struct {
	labelSite
	width  int
	instPC int // pc of the instruction's opcode byte; offsets are relative to this
}

type label struct {
	labelSite
	uses []labelUse
}

type assembler struct {
	s         scanner.Scanner
	errs      ErrAssemble
	code      []byte
	labels    map[string]*label
	literals  []*value.Value
	localIdx  map[string]int
	maxErrors int
	instPC    int // pc of the instruction currently being emitted
}

func newAssembler() *assembler {
	return &assembler{
		labels:    make(map[string]*label),
		localIdx:  make(map[string]int),
		maxErrors: 10,
	}
}

func (a *assembler) error(msg string) {
	pos := a.s.Position
	if !pos.IsValid() {
		pos = a.s.Pos()
	}
	a.errs = append(a.errs, struct {
		Pos scanner.Position
		Msg string
	}{pos, msg})
}

func (a *assembler) abort() bool { return len(a.errs) >= a.maxErrors }

func (a *assembler) emitByte(b byte) { a.code = append(a.code, b) }

func (a *assembler) emitOperand(k OperandKind, raw int64) {
	switch k.Width() {
	case 1:
		a.emitByte(byte(raw))
	case 4:
		var buf [4]byte
		buf[0] = byte(raw >> 24)
		buf[1] = byte(raw >> 16)
		buf[2] = byte(raw >> 8)
		buf[3] = byte(raw)
		a.code = append(a.code, buf[:]...)
	}
}

func (a *assembler) internLiteral(s string) int {
	for i, v := range a.literals {
		if string(value.GetString(v)) == s {
			return i
		}
	}
	a.literals = append(a.literals, value.NewStringFromString(s))
	return len(a.literals) - 1
}

func (a *assembler) localSlot(name string) int {
	if i, ok := a.localIdx[name]; ok {
		return i
	}
	i := len(a.localIdx)
	a.localIdx[name] = i
	return i
}

// Assemble parses a textual instruction listing into a ready-to-Build Spec.
// Literal and local-variable pools are interned in order of first
// appearance; labels may be referenced before they are defined.
func Assemble(name string, r io.Reader) (Spec, error) {
	a := newAssembler()
	a.s.Init(r)
	a.s.Filename = name
	a.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	a.s.Error = func(s *scanner.Scanner, msg string) { a.error(msg) }

	for tok := a.s.Scan(); !a.abort() && tok != scanner.EOF; tok = a.s.Scan() {
		text := a.s.TokenText()
		if tok != scanner.Ident {
			a.error("expected mnemonic or label, got " + strconv.QuoteRune(tok))
			continue
		}
		if a.s.Peek() == ':' {
			a.s.Next() // consume the colon
			a.defineLabel(text)
			continue
		}
		op, ok := Lookup(text)
		if !ok {
			a.error("unknown mnemonic " + text)
			continue
		}
		a.instPC = len(a.code)
		a.emitByte(byte(op))
		for _, k := range op.Operands() {
			a.s.Scan()
			a.emitOperandArg(k)
		}
	}

	a.resolveLabels()

	if len(a.errs) > 0 {
		return Spec{}, a.errs
	}
	locals := make([]LocalInfo, len(a.localIdx))
	for name, i := range a.localIdx {
		locals[i] = LocalInfo{Name: value.NewStringFromString(name)}
	}
	return Spec{Code: a.code, Literals: a.literals, Locals: locals}, nil
}

func (a *assembler) defineLabel(name string) {
	pos := a.s.Position
	pc := len(a.code)
	if l, ok := a.labels[name]; ok {
		if l.address != -1 {
			a.error("label redefined: " + name)
			return
		}
		l.address, l.pos = pc, pos
		return
	}
	a.labels[name] = &label{labelSite: labelSite{pos, pc}}
}

func (a *assembler) emitOperandArg(k OperandKind) {
	text := a.s.TokenText()
	switch k {
	case LIT1, LIT4:
		s, err := strconv.Unquote(text)
		if err != nil {
			s = text
		}
		a.emitOperand(k, int64(a.internLiteral(s)))
	case LVT1, LVT4:
		a.emitOperand(k, int64(a.localSlot(text)))
	case OFFSET1, OFFSET4:
		a.makeLabelRef(k, text)
	default:
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			a.error("expected integer operand, got " + text)
			return
		}
		a.emitOperand(k, n)
	}
}

func (a *assembler) makeLabelRef(k OperandKind, name string) {
	pos := a.s.Position
	l, ok := a.labels[name]
	if !ok {
		l = &label{labelSite: labelSite{pos, -1}}
		a.labels[name] = l
	}
	l.uses = append(l.uses, labelUse{labelSite{pos, len(a.code)}, k.Width(), a.instPC})
	a.emitOperand(k, 0) // patched in resolveLabels
}

func (a *assembler) resolveLabels() {
	for name, l := range a.labels {
		for _, u := range l.uses {
			if l.address == -1 {
				a.error("undefined label " + name)
				continue
			}
			// OFFSET operands are relative to the branch instruction's own
			// pc, matching checkOperandBounds' ins.PC + operand convention.
			target := int64(l.address - u.instPC)
			switch u.width {
			case 1:
				a.code[u.address] = byte(target)
			case 4:
				a.code[u.address] = byte(target >> 24)
				a.code[u.address+1] = byte(target >> 16)
				a.code[u.address+2] = byte(target >> 8)
				a.code[u.address+3] = byte(target)
			}
		}
	}
}
