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

import "strings"

// Error is this package's typed, machine-readable error, mirroring
// variable.Error: a Code() tag list plus a human-readable message.
type Error struct {
	code []string
	msg  string
}

func newError(msg string, code ...string) *Error {
	return &Error{code: code, msg: msg}
}

// Code returns the error's machine-readable tag list.
func (e *Error) Code() []string {
	return e.code
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return strings.Join(e.code, " ")
}

// ErrDisassembleBytecode reports an attempt to disassemble an Object built
// with Prebuilt(true) (spec.md §6: "Never disassembles a bytecode object
// marked 'prebuilt'").
var ErrDisassembleBytecode = newError("disassembly not available for this bytecode object", "DISASSEMBLE", "BYTECODE")
