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
	"strings"
)

// maxEscapedSourceRunes caps how much of a command's source snippet the
// text disassembly shows before truncating with "...". Disassembler text
// richness beyond this structural minimum is out of scope (spec.md
// Non-goals).
const maxEscapedSourceRunes = 60

// escapeSource renders s for the text disassembly listing per spec.md
// §4.5: '"', \f, \n, \r, \t, \v become their escape sequences; code points
// below 0x20 or in [0x7F, 0xFFFF] become \uXXXX; above 0xFFFF become
// \UXXXXXXXX. A truncated string gets a trailing "..." before the closing
// quote.
func escapeSource(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	truncated := false
	n := 0
	for _, r := range s {
		if n >= maxEscapedSourceRunes {
			truncated = true
			break
		}
		n++
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7F && r <= 0xFFFF):
				fmt.Fprintf(&b, `\u%04X`, r)
			case r > 0xFFFF:
				fmt.Fprintf(&b, `\U%08X`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	if truncated {
		b.WriteString("...")
	}
	b.WriteByte('"')
	return b.String()
}
