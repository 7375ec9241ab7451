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

// Package bytecode models a compiled instruction stream: a read-only
// bytecode object (opcode stream, literal pool, compiled-local catalog,
// exception ranges, auxiliary data and a source-position cross-reference),
// plus the decoder and disassembler that walk it.
//
// The opcode/operand-signature table in opcode.go is the single source of
// truth consumed by both the instruction decoder (decode.go) and the
// disassembler (disasm.go), so the two can never drift out of sync with
// each other.
//
// Building a bytecode object goes through Build, which validates operand
// shape (every LIT/AUX/LVT operand must reference an in-bounds slot) before
// handing back a refcounted, read-only Object. Nothing in this package
// parses source text or executes instructions; it only describes and
// introspects a program that some other component (out of scope) compiled
// or executed.
package bytecode
