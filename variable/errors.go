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

package variable

import (
	"fmt"
	"strings"
)

// Error is the typed, machine-readable error produced by this package, per
// spec.md §7. Code is a list of uppercase tags (e.g. ["WRITE", "CONST"]);
// Name is the offending variable or element name, when applicable.
type Error struct {
	code []string
	Name string
	msg  string
}

func newError(msg, name string, code ...string) *Error {
	return &Error{code: code, Name: name, msg: msg}
}

// Code returns the error's machine-readable tag list. Callers should not
// mutate the returned slice.
func (e *Error) Code() []string {
	return e.code
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", strings.Join(e.code, " "), e.Name)
	}
	return strings.Join(e.code, " ")
}

// Error code families from spec.md §7.
var (
	// ErrNoSuchVar reports that lookup failed to resolve a name to any
	// variable cell.
	ErrNoSuchVar = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: no such variable", name), name, "LOOKUP", "VARIABLE")
	}
	// ErrNoSuchElement reports a missing array element with no default.
	ErrNoSuchElement = func(arrayName, elem string) *Error {
		return newError(fmt.Sprintf("can't read %q: no such element in array", arrayName+"("+elem+")"), arrayName, "LOOKUP", "ELEMENT")
	}
	// ErrIsArray reports a scalar-shaped access against an array cell.
	ErrIsArray = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: variable is array", name), name, "READ", "ARRAY")
	}
	// ErrNeedArray reports an array-element access against a non-array cell,
	// grouped with the other LOOKUP-family errors below: distinct from
	// ErrWriteArray's "scalar write against an actual array" condition
	// despite the similar wording.
	ErrNeedArray = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: variable isn't array", name), name, "LOOKUP", "ARRAY")
	}
	// ErrDanglingVar reports a link whose target no longer exists.
	ErrDanglingVar = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: dangling upvar", name), name, "LOOKUP", "VARIABLE")
	}
	// ErrDanglingElement reports a link to an array element whose array
	// no longer exists.
	ErrDanglingElement = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: dangling element", name), name, "LOOKUP", "ELEMENT")
	}
	// ErrBadNamespace reports a qualified name whose namespace path does
	// not resolve.
	ErrBadNamespace = func(name string) *Error {
		return newError(fmt.Sprintf("can't read %q: bad namespace", name), name, "LOOKUP", "VARNAME")
	}
	// ErrWriteConst reports a write attempt against a constant cell.
	ErrWriteConst = func(name string) *Error {
		return newError(fmt.Sprintf("can't set %q: constant variables can't be set", name), name, "WRITE", "CONST")
	}
	// ErrUnsetConst reports an unset attempt against a constant cell.
	ErrUnsetConst = func(name string) *Error {
		return newError(fmt.Sprintf("can't unset %q: constant variables can't be unset", name), name, "UNSET", "CONST")
	}
	// ErrWriteArray reports a scalar write against an array cell.
	ErrWriteArray = func(name string) *Error {
		return newError(fmt.Sprintf("can't set %q: variable is array", name), name, "WRITE", "ARRAY")
	}
	// ErrWriteVarname reports a malformed name at write time.
	ErrWriteVarname = func(name string) *Error {
		return newError(fmt.Sprintf("can't set %q: bad variable name", name), name, "WRITE", "VARNAME")
	}
	// ErrUnsetVarname reports a malformed name at unset time.
	ErrUnsetVarname = func(name string) *Error {
		return newError(fmt.Sprintf("can't unset %q: bad variable name", name), name, "UNSET", "VARNAME")
	}
	// ErrUpvarInverted refuses a namespace link into a shorter-lived
	// frame-local.
	ErrUpvarInverted = newError("bad variable name: upvar won't create namespace variable that refers to procedure variable", "", "UPVAR", "INVERTED")
	// ErrUpvarSelf refuses a self-alias.
	ErrUpvarSelf = newError("can't upvar from variable to itself", "", "UPVAR", "SELF")
	// ErrUpvarTraced refuses aliasing a traced variable.
	ErrUpvarTraced = newError("variable has trace: can't use for upvar", "", "UPVAR", "TRACED")
	// ErrUpvarExists refuses overwriting an existing defined variable.
	ErrUpvarExists = newError("variable already exists", "", "UPVAR", "EXISTS")
	// ErrUpvarLocalElement refuses a link whose "here" name looks like an
	// array element.
	ErrUpvarLocalElement = newError("bad variable name: can't make a scalar variable look like an array element", "", "UPVAR", "LOCAL_ELEMENT")
	// ErrIndexOutOfRange reports an end±k arithmetic index that over- or
	// underflows.
	ErrIndexOutOfRange = newError("index out of range", "", "VALUE", "INDEX", "OUTOFRANGE")
	// ErrArgumentMissing reports a missing option value.
	ErrArgumentMissing = newError("missing argument", "", "ARGUMENT", "MISSING")
	// ErrArgumentDoubled reports an option specified more than once.
	ErrArgumentDoubled = newError("argument specified more than once", "", "ARGUMENT", "DOUBLED")
	// ErrArgumentFormat reports a malformed option.
	ErrArgumentFormat = newError("bad argument format", "", "ARGUMENT", "FORMAT")
	// ErrArraySearchChanged is the "for" wording pinned by spec.md §8
	// scenario 6 / tclVar.c's array-changed-during-iteration message.
	ErrArraySearchChanged = newError("array changed during iteration", "", "READ", "array", "for")
)
