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
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// IntType is the value-type for Values whose internal representation is a
// machine integer (Payload.Int). It has no Free hook: the payload owns
// nothing beyond the int64 itself.
var IntType = &Type{
	Name: "int",
	Duplicate: func(v *Value) Payload {
		return v.rep.pl
	},
	UpdateStringFromInternal: func(v *Value) []byte {
		return []byte(strconv.FormatInt(v.rep.pl.Int, 10))
	},
	ParseStringToInternal: func(v *Value) (Payload, error) {
		n, err := strconv.ParseInt(string(GetString(v)), 0, 64)
		if err != nil {
			return Payload{}, errors.Wrap(err, "not an integer")
		}
		return Payload{Int: n}, nil
	},
}

// BigIntType is the value-type used when variable.Incr (spec.md §4.2 incr)
// widens a machine integer that would otherwise overflow. The payload's
// Any field holds a *big.Int; Int is unused.
var BigIntType = &Type{
	Name: "bignum",
	Free: func(v *Value) {
		v.rep.pl.Any = nil
	},
	Duplicate: func(v *Value) Payload {
		b := v.rep.pl.Any.(*big.Int)
		return Payload{Any: new(big.Int).Set(b)}
	},
	UpdateStringFromInternal: func(v *Value) []byte {
		return []byte(v.rep.pl.Any.(*big.Int).String())
	},
	ParseStringToInternal: func(v *Value) (Payload, error) {
		b, ok := new(big.Int).SetString(string(GetString(v)), 0)
		if !ok {
			return Payload{}, errors.New("not an integer")
		}
		return Payload{Any: b}, nil
	},
}

// DoubleType is the value-type for Values internally represented as a
// float64 (the IEEE bit pattern is kept in Payload.Int via math.Float64bits
// so that Payload needs no third field).
var DoubleType = &Type{
	Name: "double",
	Duplicate: func(v *Value) Payload {
		return v.rep.pl
	},
	UpdateStringFromInternal: func(v *Value) []byte {
		return []byte(strconv.FormatFloat(Float64FromPayload(v.rep.pl), 'g', -1, 64))
	},
	ParseStringToInternal: func(v *Value) (Payload, error) {
		f, err := strconv.ParseFloat(string(GetString(v)), 64)
		if err != nil {
			return Payload{}, errors.Wrap(err, "not a double")
		}
		return PayloadFromFloat64(f), nil
	},
}

// PayloadFromFloat64 encodes f as a Payload suitable for DoubleType.
func PayloadFromFloat64(f float64) Payload {
	return Payload{Int: int64(math.Float64bits(f))}
}

// Float64FromPayload decodes a Payload built by PayloadFromFloat64.
func Float64FromPayload(pl Payload) float64 {
	return math.Float64frombits(uint64(pl.Int))
}

func init() {
	_ = Register(IntType)
	_ = Register(BigIntType)
	_ = Register(DoubleType)
}
