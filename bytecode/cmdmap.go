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

// CmdMapEntry is one reconstructed command boundary: the pc range the
// command's bytecode occupies and the source-text range it was compiled
// from (spec.md §4.5).
type CmdMapEntry struct {
	CodeStart, CodeLen int
	SrcStart, SrcLen   int
}

// escapeMarker introduces the 4-byte big-endian escape form. It collides
// with the one-byte encoding of -1 (0xFF in two's complement), so -1 is
// excluded from the one-byte form below even though it otherwise fits a
// signed byte — this mirrors tclDisassemble.c's cmdMap reader, which always
// treats a raw 0xFF byte as the escape marker before ever reinterpreting it
// as a signed delta.
const escapeMarker = 0xFF

// EncodeCmdMapValue encodes a single delta or length field per spec.md
// §4.5: one byte if it fits a signed 8-bit range (and isn't -1, which would
// be indistinguishable from the escape marker), otherwise a 0xFF marker
// followed by a 4-byte big-endian value.
func EncodeCmdMapValue(v int32) []byte {
	if v >= -128 && v <= 127 && v != -1 {
		return []byte{byte(int8(v))}
	}
	b := make([]byte, 5)
	b[0] = escapeMarker
	binary.BigEndian.PutUint32(b[1:], uint32(v))
	return b
}

// DecodeCmdMapValue decodes a single field encoded by EncodeCmdMapValue
// starting at data[pos], returning the value and the position of the next
// field.
func DecodeCmdMapValue(data []byte, pos int) (int32, int, error) {
	if pos >= len(data) {
		return 0, 0, errors.Errorf("bytecode: cmdMap truncated at offset %d", pos)
	}
	if data[pos] == escapeMarker {
		if pos+5 > len(data) {
			return 0, 0, errors.Errorf("bytecode: cmdMap escape truncated at offset %d", pos)
		}
		return int32(binary.BigEndian.Uint32(data[pos+1 : pos+5])), pos + 5, nil
	}
	return int32(int8(data[pos])), pos + 1, nil
}

// EncodeCmdMap serializes entries into the on-disk delta-coded form from
// spec.md §4.5: four parallel runs (codeDelta, codeLen, srcDelta, srcLen),
// each one entry per command, concatenated in that order. codeDelta/srcDelta
// are deltas from the previous entry's absolute offset (running sum);
// codeLen/srcLen are encoded directly, matching tclDisassemble.c reading
// lengths without accumulating them.
func EncodeCmdMap(entries []CmdMapEntry) []byte {
	var codeDeltas, codeLens, srcDeltas, srcLens []byte
	prevCode, prevSrc := 0, 0
	for _, e := range entries {
		codeDeltas = append(codeDeltas, EncodeCmdMapValue(int32(e.CodeStart-prevCode))...)
		codeLens = append(codeLens, EncodeCmdMapValue(int32(e.CodeLen))...)
		srcDeltas = append(srcDeltas, EncodeCmdMapValue(int32(e.SrcStart-prevSrc))...)
		srcLens = append(srcLens, EncodeCmdMapValue(int32(e.SrcLen))...)
		prevCode = e.CodeStart
		prevSrc = e.SrcStart
	}
	out := make([]byte, 0, len(codeDeltas)+len(codeLens)+len(srcDeltas)+len(srcLens))
	out = append(out, codeDeltas...)
	out = append(out, codeLens...)
	out = append(out, srcDeltas...)
	out = append(out, srcLens...)
	return out
}

// DecodeCmdMap reconstructs numCommands entries from data produced by
// EncodeCmdMap.
func DecodeCmdMap(data []byte, numCommands int) ([]CmdMapEntry, error) {
	pos := 0
	readRun := func() ([]int32, error) {
		out := make([]int32, numCommands)
		for i := 0; i < numCommands; i++ {
			v, next, err := DecodeCmdMapValue(data, pos)
			if err != nil {
				return nil, err
			}
			out[i] = v
			pos = next
		}
		return out, nil
	}

	codeDeltas, err := readRun()
	if err != nil {
		return nil, errors.Wrap(err, "bytecode: decoding cmdMap code deltas")
	}
	codeLens, err := readRun()
	if err != nil {
		return nil, errors.Wrap(err, "bytecode: decoding cmdMap code lengths")
	}
	srcDeltas, err := readRun()
	if err != nil {
		return nil, errors.Wrap(err, "bytecode: decoding cmdMap source deltas")
	}
	srcLens, err := readRun()
	if err != nil {
		return nil, errors.Wrap(err, "bytecode: decoding cmdMap source lengths")
	}

	entries := make([]CmdMapEntry, numCommands)
	codeOff, srcOff := 0, 0
	for i := 0; i < numCommands; i++ {
		codeOff += int(codeDeltas[i])
		srcOff += int(srcDeltas[i])
		entries[i] = CmdMapEntry{
			CodeStart: codeOff,
			CodeLen:   int(codeLens[i]),
			SrcStart:  srcOff,
			SrcLen:    int(srcLens[i]),
		}
	}
	return entries, nil
}

// FindCommand returns the entry whose pc window contains pc (srcStart <=
// pos < srcStart+srcLen is the condition the caller applies on the source
// side; here we match on the code side per spec.md §8's cross-reference
// invariant), and false if pc falls in a prologue covered by no command.
func FindCommand(entries []CmdMapEntry, pc int) (CmdMapEntry, bool) {
	for _, e := range entries {
		if pc >= e.CodeStart && pc < e.CodeStart+e.CodeLen {
			return e, true
		}
	}
	return CmdMapEntry{}, false
}
