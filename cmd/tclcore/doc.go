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

// The tclcore command is a small shell around the bytecode package: it
// assembles textual instruction listings into bytecode objects, prints
// their structural disassembly, and can step through one instruction at
// a time on an interactive terminal. It does not parse or execute Tcl
// scripts; it operates directly on already-compiled instruction streams.
package main
