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

// IDX4 index-expression arithmetic (spec.md §4.5/§8): an IDX4 operand
// encodes one of:
//
//	raw >= 0     plain zero-based position
//	raw == -1    "end" (one past the last valid position — an exclusive,
//	             "after everything" sentinel used by range-style ops)
//	raw <= -2    "end-n" where n = -(raw+2), an inclusive position counting
//	             back from the last element (end-0 is the last element)
//
// This is spec.md's own, simpler encoding, not Tcl 9's TclIndexEncode.

// EncodeIndexEnd returns the IDX4 raw value for the exclusive "end"
// sentinel.
func EncodeIndexEnd() int32 {
	return -1
}

// EncodeIndexEndMinus returns the IDX4 raw value for "end-n", n >= 0.
func EncodeIndexEndMinus(n int32) int32 {
	return -(n + 2)
}

// DecodeIndex resolves a raw IDX4 operand against a container of the given
// length, per the arithmetic above. Results are clamped to 0 when the
// "end-n" arithmetic would otherwise underflow (spec.md §8 boundary
// behavior: "end-0x7FFFFFFE against a string of length 0x7FFFFFFE is
// position 0").
func DecodeIndex(raw int32, length int) int {
	if raw >= 0 {
		return int(raw)
	}
	if raw == -1 {
		return length
	}
	n := -(raw + 2)
	pos := length - 1 - int(n)
	if pos < 0 {
		return 0
	}
	return pos
}

// ResolveIndex is like DecodeIndex but additionally collapses indices that
// fall above length to the caller-supplied after sentinel (spec.md §8:
// "Integer-index values outside [0, TCL_SIZE_MAX-1] collapse to the
// caller-supplied 'before'/'after' sentinels"). before is accepted for
// symmetry with that rule; DecodeIndex already floors "end-n" underflow at
// 0, so no currently-defined encoding reaches it.
func ResolveIndex(raw int32, length int, before, after int) int {
	pos := DecodeIndex(raw, length)
	if pos > length {
		return after
	}
	return pos
}
