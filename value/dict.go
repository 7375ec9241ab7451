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

package value

import (
	"strings"

	"github.com/pkg/errors"
)

// dictPair is one key/value entry of a DictType value, kept in insertion
// order so that structured introspection output (disassembly dictionaries,
// array dumps) reads back deterministically.
type dictPair struct {
	key string
	val *Value
}

// DictType is a container-shaped value-type holding ordered string-keyed
// entries, kept in Payload.Any as []dictPair. It exists for components that
// need to hand back a structured Value (rather than a flat list) to a
// caller, such as the bytecode disassembler's dictionary output (spec.md
// §4.5/§6).
var DictType = &Type{
	Name: "dict",
	Free: func(v *Value) {
		v.rep.pl.Any = nil
	},
	Duplicate: func(v *Value) Payload {
		pairs := v.rep.pl.Any.([]dictPair)
		dup := make([]dictPair, len(pairs))
		for i, p := range pairs {
			dup[i] = dictPair{key: p.key, val: Retain(Duplicate(p.val))}
		}
		return Payload{Any: dup}
	},
	UpdateStringFromInternal: func(v *Value) []byte {
		pairs := v.rep.pl.Any.([]dictPair)
		parts := make([]string, 0, len(pairs)*2)
		for _, p := range pairs {
			parts = append(parts, p.key, string(GetString(p.val)))
		}
		return []byte(strings.Join(parts, " "))
	},
	Length: func(v *Value) int {
		return len(v.rep.pl.Any.([]dictPair))
	},
}

// NewDict returns a Value whose internal representation is an ordered dict
// built from keys and vals, which must be the same length. Each value is
// retained by the dict.
func NewDict(keys []string, vals []*Value) *Value {
	pairs := make([]dictPair, len(keys))
	for i, k := range keys {
		pairs[i] = dictPair{key: k, val: Retain(vals[i])}
	}
	return NewTyped(DictType, Payload{Any: pairs})
}

// DictGet looks key up in v's ordered entries. v must already carry a
// DictType representation: DictType has no string parser, so any other
// value yields an error.
func DictGet(v *Value, key string) (*Value, bool, error) {
	if err := CoerceTo(v, DictType); err != nil {
		return nil, false, errors.Wrap(err, "value: not a dict")
	}
	for _, p := range v.rep.pl.Any.([]dictPair) {
		if p.key == key {
			return p.val, true, nil
		}
	}
	return nil, false, nil
}

// DictKeys returns the ordered keys of v.
func DictKeys(v *Value) ([]string, error) {
	if err := CoerceTo(v, DictType); err != nil {
		return nil, errors.Wrap(err, "value: not a dict")
	}
	pairs := v.rep.pl.Any.([]dictPair)
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.key
	}
	return keys, nil
}

func init() {
	_ = Register(DictType)
}
