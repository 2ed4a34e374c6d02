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

package num_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tomlforge/toml/internal/num"
)

func TestParseDecimalIntegerUnderscores(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		want string
		err  bool
	}{
		{desc: "plain", in: "1234", want: "1234"},
		{desc: "grouped thousands", in: "1_000_000", want: "1000000"},
		{desc: "negative", in: "-17", want: "-17"},
		{desc: "leading underscore rejected", in: "_1", err: true},
		{desc: "trailing underscore rejected", in: "1_", err: true},
		{desc: "doubled underscore rejected", in: "1__2", err: true},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			d, err := num.ParseDecimalInteger([]byte(e.in))
			if e.err {
				qt.Assert(t, qt.IsNotNil(err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(num.FormatInt(d), e.want))
		})
	}
}

func TestParseRadixInteger(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		base int
		want string
	}{
		{desc: "binary", in: "1101_0110", base: 2, want: "214"},
		{desc: "octal", in: "01234567", base: 8, want: "342391"},
		{desc: "hex mixed case", in: "dead_BEEF", base: 16, want: "3735928559"},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			d, err := num.ParseRadixInteger([]byte(e.in), e.base)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(num.FormatInt(d), e.want))
		})
	}
}

func TestInt64OverflowReported(t *testing.T) {
	d, err := num.ParseDecimalInteger([]byte("99999999999999999999999999999999"))
	qt.Assert(t, qt.IsNil(err))
	_, err = num.Int64(d)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.ErrorAs(err, new(*num.Overflow)))
}

func TestUint64RejectsNegative(t *testing.T) {
	d, err := num.ParseDecimalInteger([]byte("-1"))
	qt.Assert(t, qt.IsNil(err))
	_, err = num.Uint64(d)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestFormatFloat(t *testing.T) {
	examples := []struct {
		desc string
		in   float64
		want string
	}{
		{desc: "integral value gets decimal point", in: 5, want: "5.0"},
		{desc: "fraction", in: 3.25, want: "3.25"},
		{desc: "negative", in: -0.5, want: "-0.5"},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			qt.Assert(t, qt.Equals(num.FormatFloat(e.in), e.want))
		})
	}
}

func TestFormatFloatSpecials(t *testing.T) {
	qt.Assert(t, qt.Equals(num.FormatFloat(1.0/zero()), "inf"))
	qt.Assert(t, qt.Equals(num.FormatFloat(-1.0/zero()), "-inf"))
}

func zero() float64 { return 0 }
