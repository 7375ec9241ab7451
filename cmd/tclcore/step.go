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

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tcltk/tcl-sub007/bytecode"
)

// stepInstructions prints one instruction per key press (raw mode) or per
// newline (non-raw fallback), waiting on r between each.
func stepInstructions(instrs []bytecode.Instruction, r *bufio.Reader, w io.Writer, raw bool) error {
	for _, ins := range instrs {
		fmt.Fprintf(w, "%4d %s", ins.PC, ins.Op.Name())
		for _, v := range ins.Operands {
			fmt.Fprintf(w, " %d", v)
		}
		fmt.Fprint(w, "\n")

		if raw {
			if _, err := r.ReadByte(); err != nil {
				return err
			}
		} else {
			if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
				return err
			}
		}
	}
	return nil
}
