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
	"github.com/pkg/errors"

	"github.com/tcltk/tcl-sub007/value"
)

// ExceptionKind distinguishes a loop range (continue/break target) from a
// catch range (error-handler target).
type ExceptionKind uint8

const (
	ExceptionLoop ExceptionKind = iota
	ExceptionCatch
)

// ExceptionRange is one entry of Object.Exceptions(). Inner ranges are
// expected before outer ones in the slice; the runtime (out of scope) picks
// the first whose pc window contains the raising pc at a matching nesting
// level (spec.md §3).
type ExceptionRange struct {
	Kind         ExceptionKind
	NestingLevel int
	PCStart      int
	PCEnd        int
	ContinuePC   int
	BreakPC      int
	CatchPC      int
}

// LocalInfo describes one compiled-local slot's static metadata: its
// source-level name (nil for unnamed temporaries) and flag bits (spec.md
// §3, "locals[]").
type LocalInfo struct {
	Name       *value.Value
	Argument   bool
	Temporary  bool
	Array      bool
	Link       bool
	Resolved   bool
}

// AuxData is a type-dispatched auxiliary item (spec.md §3 "aux[]"): opcodes
// that need structured literals (jump tables, foreach descriptors) index
// into Object.Aux() via an AUX4 operand. TypeName identifies the concrete
// kind for disassembly output.
type AuxData interface {
	TypeName() string
}

// Object is a read-only, refcounted compiled bytecode program (spec.md §3
// "Bytecode object"). Construct one with Build; nothing in this package
// mutates an Object's code, literals, or locals after construction.
type Object struct {
	code           []byte
	literals       []*value.Value
	locals         []LocalInfo
	exceptions     []ExceptionRange
	aux            []AuxData
	cmdMap         []CmdMapEntry
	numCommands    int
	maxStackDepth  int
	maxExceptDepth int
	source         []byte
	sourceFile     string
	initialLine    int
	namespace      string
	refCount       int
	compileEpoch   int
	prebuilt       bool
}

// Code returns the opcode byte stream. Callers must not mutate it.
func (o *Object) Code() []byte { return o.code }

// Literals returns the literal pool. Callers must not mutate the slice.
func (o *Object) Literals() []*value.Value { return o.literals }

// Locals returns the compiled-local catalog. Callers must not mutate it.
func (o *Object) Locals() []LocalInfo { return o.locals }

// Exceptions returns the exception-range table, inner ranges first.
func (o *Object) Exceptions() []ExceptionRange { return o.exceptions }

// Aux returns the auxiliary-data table.
func (o *Object) Aux() []AuxData { return o.aux }

// CmdMap returns the reconstructed command boundaries in source order.
func (o *Object) CmdMap() []CmdMapEntry { return o.cmdMap }

// NumCommands returns the number of commands compiled into this object.
func (o *Object) NumCommands() int { return o.numCommands }

// MaxStackDepth returns the deepest the evaluation stack grows while
// executing this object.
func (o *Object) MaxStackDepth() int { return o.maxStackDepth }

// MaxExceptDepth returns the deepest exception-range nesting in this
// object.
func (o *Object) MaxExceptDepth() int { return o.maxExceptDepth }

// Source returns the source bytes this object was compiled from.
func (o *Object) Source() []byte { return o.source }

// SourceFile returns the originating file name, or "" if the object was
// compiled from an unnamed script.
func (o *Object) SourceFile() string { return o.sourceFile }

// InitialLine returns the 1-based line number of Source()'s first byte.
func (o *Object) InitialLine() int { return o.initialLine }

// Namespace returns the fully-qualified name of the namespace this object
// was compiled in, frozen at compile time. Per spec.md's supplemented
// feature #5, this remains valid even after the namespace itself is torn
// down — there is no live pointer to dereference.
func (o *Object) Namespace() string { return o.namespace }

// CompileEpoch returns the interpreter epoch this object was compiled
// against; callers use it to detect staleness after namespace/resolver
// changes invalidate cached bytecode.
func (o *Object) CompileEpoch() int { return o.compileEpoch }

// Prebuilt reports whether this object was constructed with Prebuilt(true),
// in which case Disassemble and DisassembleDict always fail with
// ErrDisassembleBytecode (spec.md §6).
func (o *Object) Prebuilt() bool { return o.prebuilt }

// Retain increments o's refcount and returns o, mirroring value.Retain.
func Retain(o *Object) *Object {
	o.refCount++
	return o
}

// Release decrements o's refcount. On the last release it releases every
// literal Value it owns; aux data is freed via its own type-dispatched
// hook where one is provided (spec.md §3: "Aux data uses its own
// type-dispatched free hook").
func Release(o *Object) {
	o.refCount--
	if o.refCount > 0 {
		return
	}
	for _, lit := range o.literals {
		value.Release(lit)
	}
	for _, a := range o.aux {
		if closer, ok := a.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// RefCount returns o's current reference count.
func RefCount(o *Object) int { return o.refCount }

// Spec is the intake shape accepted by Build (spec.md §6: "build a
// bytecode object" intake API).
type Spec struct {
	Code           []byte
	Literals       []*value.Value
	Locals         []LocalInfo
	Exceptions     []ExceptionRange
	Aux            []AuxData
	CmdMap         []CmdMapEntry
	Source         []byte
	SourceFile     string
	InitialLine    int
	MaxStackDepth  int
	MaxExceptDepth int
	Namespace      string
	Prebuilt       bool
}

// Option customizes a Build call, following the teacher's vm.Option shape
// (vm/vm.go's Option func(*Instance) error).
type Option func(*Object) error

// CompileEpoch sets the compile epoch recorded on the built Object.
func CompileEpoch(epoch int) Option {
	return func(o *Object) error { o.compileEpoch = epoch; return nil }
}

// Build validates spec's shape and returns a refcounted Object. Every
// literal the code stream is retained by the returned Object (refcount
// incremented once per reference recorded in s.Literals); Release(obj)
// gives those references back.
//
// Shape validation decodes the entire code stream (reusing Decode, so the
// decoder and the builder can never disagree about instruction boundaries)
// and checks that every LIT/LVT/AUX operand addresses an in-bounds slot,
// that exception ranges stay within the code, and that cmdMap entries stay
// within both the code and the source.
func Build(s Spec, opts ...Option) (*Object, error) {
	instrs, err := Decode(s.Code)
	if err != nil {
		return nil, errors.Wrap(err, "bytecode: build")
	}
	for _, ins := range instrs {
		if err := checkOperandBounds(ins, s); err != nil {
			return nil, errors.Wrap(err, "bytecode: build")
		}
	}
	for i, er := range s.Exceptions {
		if er.PCStart < 0 || er.PCEnd > len(s.Code) || er.PCStart > er.PCEnd {
			return nil, errors.Errorf("bytecode: build: exception range %d has invalid pc window [%d,%d)", i, er.PCStart, er.PCEnd)
		}
	}
	for i, e := range s.CmdMap {
		if e.CodeStart < 0 || e.CodeStart+e.CodeLen > len(s.Code) {
			return nil, errors.Errorf("bytecode: build: cmdMap entry %d code range out of bounds", i)
		}
		if e.SrcStart < 0 || e.SrcStart+e.SrcLen > len(s.Source) {
			return nil, errors.Errorf("bytecode: build: cmdMap entry %d source range out of bounds", i)
		}
	}

	o := &Object{
		code:           append([]byte(nil), s.Code...),
		literals:       append([]*value.Value(nil), s.Literals...),
		locals:         append([]LocalInfo(nil), s.Locals...),
		exceptions:     append([]ExceptionRange(nil), s.Exceptions...),
		aux:            append([]AuxData(nil), s.Aux...),
		cmdMap:         append([]CmdMapEntry(nil), s.CmdMap...),
		numCommands:    len(s.CmdMap),
		maxStackDepth:  s.MaxStackDepth,
		maxExceptDepth: s.MaxExceptDepth,
		source:         append([]byte(nil), s.Source...),
		sourceFile:     s.SourceFile,
		initialLine:    s.InitialLine,
		namespace:      s.Namespace,
		prebuilt:       s.Prebuilt,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errors.Wrap(err, "bytecode: build")
		}
	}
	for _, lit := range o.literals {
		value.Retain(lit)
	}
	Retain(o)
	return o, nil
}

func checkOperandBounds(ins Instruction, s Spec) error {
	for i, k := range ins.Op.Operands() {
		v := ins.Operands[i]
		switch k {
		case LIT1, LIT4:
			if v < 0 || int(v) >= len(s.Literals) {
				return errors.Errorf("pc %d: %s operand %d indexes literal %d, out of %d", ins.PC, ins.Op.Name(), i, v, len(s.Literals))
			}
		case LVT1, LVT4:
			if v < 0 || int(v) >= len(s.Locals) {
				return errors.Errorf("pc %d: %s operand %d indexes local %d, out of %d", ins.PC, ins.Op.Name(), i, v, len(s.Locals))
			}
		case AUX4:
			if v < 0 || int(v) >= len(s.Aux) {
				return errors.Errorf("pc %d: %s operand %d indexes aux %d, out of %d", ins.PC, ins.Op.Name(), i, v, len(s.Aux))
			}
		case OFFSET1, OFFSET4:
			target := ins.PC + int(v)
			if target < 0 || target > len(s.Code) {
				return errors.Errorf("pc %d: %s operand %d branches to %d, out of code bounds [0,%d]", ins.PC, ins.Op.Name(), i, target, len(s.Code))
			}
		}
	}
	return nil
}
