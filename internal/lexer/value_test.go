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

package lexer_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tomlforge/toml/internal/lexer"
	"github.com/tomlforge/toml/internal/tree"
)

func TestParseValueNumbers(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		kind tree.Kind
		err  bool
	}{
		{desc: "integer just digits", in: `1234`, kind: tree.KindInteger},
		{desc: "integer zero", in: `0`, kind: tree.KindInteger},
		{desc: "integer sign", in: `+99`, kind: tree.KindInteger},
		{desc: "integer hex uppercase", in: `0xDEADBEEF`, kind: tree.KindInteger},
		{desc: "integer hex lowercase", in: `0xdead_beef`, kind: tree.KindInteger},
		{desc: "integer octal", in: `0o01234567`, kind: tree.KindInteger},
		{desc: "integer binary", in: `0b11010110`, kind: tree.KindInteger},
		{desc: "integer leading zero rejected", in: `0123`, err: true},
		{desc: "integer underscore at edge rejected", in: `_123`, err: true},
		{desc: "float zero", in: `0.0`, kind: tree.KindFloat},
		{desc: "float pi", in: `3.1415`, kind: tree.KindFloat},
		{desc: "float signed exponent", in: `1e-10`, kind: tree.KindFloat},
		{desc: "float leading zero rejected", in: `03.14`, err: true},
		{desc: "float missing fraction digit rejected", in: `1.`, err: true},
		{desc: "special inf", in: `inf`, kind: tree.KindFloat},
		{desc: "special negative inf", in: `-inf`, kind: tree.KindFloat},
		{desc: "special nan", in: `nan`, kind: tree.KindFloat},
		{desc: "bool true", in: `true`, kind: tree.KindBoolean},
		{desc: "bool false", in: `false`, kind: tree.KindBoolean},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			p := lexer.NewValueParser([]byte(e.in), lexer.DatetimeMode{})
			got, err := p.ParseValue()
			if e.err {
				qt.Assert(t, qt.IsNotNil(err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got.Kind, e.kind))
			qt.Assert(t, qt.Equals(p.Pos(), len(e.in)))
		})
	}
}

func TestParseValueDatetimeDispatch(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		kind tree.Kind
	}{
		{desc: "offset datetime", in: "1979-05-27T07:32:00Z", kind: tree.KindOffsetDatetime},
		{desc: "local datetime", in: "1979-05-27T07:32:00", kind: tree.KindLocalDatetime},
		{desc: "local date", in: "1979-05-27", kind: tree.KindLocalDate},
		{desc: "local time", in: "07:32:00", kind: tree.KindLocalTime},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			p := lexer.NewValueParser([]byte(e.in), lexer.DatetimeMode{})
			got, err := p.ParseValue()
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got.Kind, e.kind))
		})
	}
}

func TestParseValueArray(t *testing.T) {
	p := lexer.NewValueParser([]byte("[1, 2, 3]"), lexer.DatetimeMode{})
	got, err := p.ParseValue()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind, tree.KindArray))
	qt.Assert(t, qt.HasLen(got.Array, 3))
}

func TestParseValueArrayMultilineWithComments(t *testing.T) {
	in := "[\n  1, # one\n  2,\n  3\n]"
	p := lexer.NewValueParser([]byte(in), lexer.DatetimeMode{})
	got, err := p.ParseValue()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got.Array, 3))
}

func TestParseValueInlineTable(t *testing.T) {
	p := lexer.NewValueParser([]byte(`{ x = 1, y.z = 2 }`), lexer.DatetimeMode{})
	got, err := p.ParseValue()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind, tree.KindTable))
	qt.Assert(t, qt.Equals(got.Table.Kind, tree.TableInline))
	_, ok := got.Table.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	yv, ok := got.Table.Get("y")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(yv.Table.Kind, tree.TableDotted))
}

func TestParseValueInlineTableDuplicateKeyRejected(t *testing.T) {
	p := lexer.NewValueParser([]byte(`{ x = 1, x = 2 }`), lexer.DatetimeMode{})
	_, err := p.ParseValue()
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseValueStringQuoteVariants(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		want string
	}{
		{desc: "basic", in: `"hi"`, want: "hi"},
		{desc: "literal", in: `'hi'`, want: "hi"},
		{desc: "multiline basic", in: "\"\"\"\nhi\"\"\"", want: "hi"},
		{desc: "multiline literal", in: "'''\nhi'''", want: "hi"},
		{desc: "multiline with embedded quotes", in: `"""a""b"""`, want: `a""b`},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			p := lexer.NewValueParser([]byte(e.in), lexer.DatetimeMode{})
			got, err := p.ParseValue()
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got.Str, e.want))
		})
	}
}
