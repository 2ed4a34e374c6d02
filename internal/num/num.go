// Copyright 2024 The TOML Authors
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

// Package num converts the raw digit bytes the value lexer defers
// (§3.1: "raw byte slice ... to defer numeric conversion until a target
// numeric width is requested") into concrete numeric values.
//
// Integers are represented internally as [apd.Decimal], the same
// arbitrary-precision decimal type the teacher codebase uses as its
// canonical number representation (cue/types.go, internal/core/adt),
// so that converting to any caller-requested width from i8 up through
// i128/u64 (§6, §8 P5) never needs ad hoc bignum code in this package.
package num

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// StripUnderscores removes the internal single underscores TOML allows
// between digits (§4.4), rejecting leading, trailing, or doubled ones,
// or one not flanked by digits on both sides. Hex letters count as
// digits here, so base-16 input such as "dead_beef" is accepted.
func StripUnderscores(raw []byte) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	for i, c := range raw {
		if c != '_' {
			out = append(out, c)
			continue
		}
		if i == 0 || i == len(raw)-1 {
			return nil, fmt.Errorf("underscore must be between digits")
		}
		if !isHexDigitByte(raw[i-1]) || !isHexDigitByte(raw[i+1]) {
			return nil, fmt.Errorf("underscore must be between digits")
		}
	}
	return out, nil
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigitByte(c byte) bool {
	return isDigitByte(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseDecimalInteger parses a base-10 integer (optional sign, digits,
// internal underscores) into an arbitrary-precision Decimal. raw must
// already have passed the leading-zero shape check (§4.4: a leading zero
// is legal only when the whole integer part is "0").
func ParseDecimalInteger(raw []byte) (*apd.Decimal, error) {
	clean, err := StripUnderscores(raw)
	if err != nil {
		return nil, err
	}
	d, _, err := apd.NewFromString(string(clean))
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", raw, err)
	}
	return d, nil
}

// ParseRadixInteger parses digits (no sign, no prefix) in the given base
// (2, 8, or 16) with internal underscores into an arbitrary-precision
// Decimal.
func ParseRadixInteger(raw []byte, base int) (*apd.Decimal, error) {
	clean, err := StripUnderscores(raw)
	if err != nil {
		return nil, err
	}
	bi, ok := new(big.Int).SetString(string(clean), base)
	if !ok {
		return nil, fmt.Errorf("invalid base-%d integer %q", base, raw)
	}
	coeff := new(apd.BigInt).SetMathBigInt(bi)
	return apd.NewWithBigInt(coeff, 0), nil
}

// ParseDecimalFloat parses a decimal float (sign, integer part,
// optional fraction, optional exponent; underscores as in integers)
// whose lexical shape has already been validated by the caller (§4.4)
// into a float64.
func ParseDecimalFloat(raw []byte) (float64, error) {
	clean, err := stripFloatUnderscores(raw)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(string(clean), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q: %w", raw, err)
	}
	return f, nil
}

// stripFloatUnderscores is StripUnderscores generalized to skip the '.'
// and 'e'/'E'/'+'/'-' separators that delimit the integer/fraction/
// exponent parts when deciding whether an underscore neighbor is a
// digit.
func stripFloatUnderscores(raw []byte) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	for i, c := range raw {
		if c != '_' {
			out = append(out, c)
			continue
		}
		if i == 0 || i == len(raw)-1 || !isDigitByte(raw[i-1]) || !isDigitByte(raw[i+1]) {
			return nil, fmt.Errorf("underscore must be between digits")
		}
	}
	return out, nil
}

// Overflow is returned by the width-narrowing conversions when the
// decimal magnitude does not fit.
type Overflow struct {
	Width string
}

func (e *Overflow) Error() string { return fmt.Sprintf("integer overflows %s", e.Width) }

// Int64 narrows d to an int64, reporting Overflow if it does not fit.
func Int64(d *apd.Decimal) (int64, error) {
	bi, err := bigInt(d)
	if err != nil {
		return 0, err
	}
	if !bi.IsInt64() {
		return 0, &Overflow{Width: "int64"}
	}
	return bi.Int64(), nil
}

// Uint64 narrows d to a uint64, reporting Overflow if it does not fit or
// is negative.
func Uint64(d *apd.Decimal) (uint64, error) {
	bi, err := bigInt(d)
	if err != nil {
		return 0, err
	}
	if bi.Sign() < 0 || !bi.IsUint64() {
		return 0, &Overflow{Width: "uint64"}
	}
	return bi.Uint64(), nil
}

// BigInt returns d as a *big.Int, for callers requesting i128/u128-style
// widths that have no native Go type.
func BigInt(d *apd.Decimal) (*big.Int, error) { return bigInt(d) }

func bigInt(d *apd.Decimal) (*big.Int, error) {
	var rounded apd.Decimal
	ctx := apd.BaseContext.WithPrecision(39) // enough for an unsigned 128-bit value
	if _, err := ctx.RoundToIntegralExact(&rounded, d); err != nil {
		return nil, fmt.Errorf("not an integer: %w", err)
	}
	coeff := rounded.Coeff.MathBigInt()
	bi := new(big.Int)
	switch {
	case rounded.Exponent > 0:
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(rounded.Exponent)), nil)
		bi.Mul(coeff, pow)
	case rounded.Exponent < 0:
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-rounded.Exponent)), nil)
		bi.Quo(coeff, pow)
	default:
		bi.Set(coeff)
	}
	if rounded.Negative {
		bi.Neg(bi)
	}
	return bi, nil
}

// FormatInt renders d in canonical base-10 form: minimal digits, sign
// only if negative (§4.6).
func FormatInt(d *apd.Decimal) string {
	bi, err := bigInt(d)
	if err != nil {
		return d.Text('f')
	}
	return bi.String()
}

// FormatFloat renders f per §4.6: shortest round-trip decimal, "nan"/
// "-nan" preserving sign, "inf"/"-inf" for infinities.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// TOML floats always show a decimal point or exponent; Go's 'g' may
	// print a bare integer like "5" for 5.0.
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
