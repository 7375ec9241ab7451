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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcltk/tcl-sub007/bytecode"
	"github.com/tcltk/tcl-sub007/value"
)

func loadObject(path string) (*bytecode.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open listing")
	}
	defer f.Close()

	spec, err := bytecode.Assemble(path, f)
	if err != nil {
		return nil, errors.Wrap(err, "assemble")
	}
	return bytecode.Build(spec)
}

func newDisasmCmd() *cobra.Command {
	var dict bool
	cmd := &cobra.Command{
		Use:   "disasm <listing>",
		Short: "assemble a textual instruction listing and print its disassembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := loadObject(args[0])
			if err != nil {
				return err
			}
			defer bytecode.Release(obj)

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			if !dict {
				return bytecode.Disassemble(obj, out)
			}
			d, err := bytecode.DisassembleDict(obj)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(value.GetString(d)))
			return err
		},
	}
	cmd.Flags().BoolVar(&dict, "dict", false, "print the structured dictionary form instead of the text listing")
	return cmd
}

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <listing>",
		Short: "single-step through an assembled listing's instructions on the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := loadObject(args[0])
			if err != nil {
				return err
			}
			defer bytecode.Release(obj)

			instrs, err := bytecode.Decode(obj.Code())
			if err != nil {
				return err
			}

			restore, err := setRawIO()
			if err != nil {
				// fall back to line-buffered stepping when the terminal
				// can't be put in raw mode (e.g. piped stdin/CI).
				return stepInstructions(instrs, bufio.NewReader(os.Stdin), cmd.OutOrStdout(), false)
			}
			defer restore()
			return stepInstructions(instrs, bufio.NewReader(os.Stdin), cmd.OutOrStdout(), true)
		},
	}
}

func newAssembleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "assemble <listing>",
		Short: "assemble a textual instruction listing and write out its raw code bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open listing")
			}
			defer f.Close()

			spec, err := bytecode.Assemble(args[0], f)
			if err != nil {
				return errors.Wrap(err, "assemble")
			}

			w := os.Stdout
			if out != "" {
				w, err = os.Create(out)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer w.Close()
			}
			_, err = w.Write(spec.Code)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write raw code bytes to `file` instead of stdout")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tclcore",
		Short: "assemble and disassemble bytecode instruction streams",
	}
	root.AddCommand(newDisasmCmd(), newStepCmd(), newAssembleCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tclcore: %+v\n", err)
		os.Exit(1)
	}
}
