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
)

func TestScanBasicBody(t *testing.T) {
	examples := []struct {
		desc string
		in   string
		want string
		err  bool
	}{
		{desc: "plain text", in: `hello`, want: "hello"},
		{desc: "escaped quote", in: `a\"b`, want: `a"b`},
		{desc: "escaped backslash", in: `a\\b`, want: `a\b`},
		{desc: "escaped newline letter", in: `a\nb`, want: "a\nb"},
		{desc: "escaped tab", in: `a\tb`, want: "a\tb"},
		{desc: "short unicode escape", in: `\u00e9`, want: "é"},
		{desc: "long unicode escape", in: `\U0001F600`, want: "😀"},
		{desc: "unknown escape", in: `\q`, err: true},
		{desc: "surrogate codepoint rejected", in: `\uD800`, err: true},
		{desc: "raw newline illegal in single-line", in: "a\nb", err: true},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			got, err := lexer.ScanBasicBody([]byte(e.in))
			if e.err {
				qt.Assert(t, qt.IsNotNil(err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got, e.want))
		})
	}
}

func TestScanLiteralBody(t *testing.T) {
	got, err := lexer.ScanLiteralBody([]byte(`C:\Users\nodejs`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, `C:\Users\nodejs`))
}

func TestScanMultilineBasicBodyLineContinuation(t *testing.T) {
	// "The quick brown \
	//   fox jumps over \
	//   the lazy dog."
	in := "The quick brown \\\n    fox jumps over \\\n    the lazy dog."
	got, err := lexer.ScanMultilineBasicBody([]byte(in))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "The quick brown fox jumps over the lazy dog."))
}

func TestTrimLeadingNewline(t *testing.T) {
	qt.Assert(t, qt.DeepEquals(lexer.TrimLeadingNewline([]byte("\nabc")), []byte("abc")))
	qt.Assert(t, qt.DeepEquals(lexer.TrimLeadingNewline([]byte("\r\nabc")), []byte("abc")))
	qt.Assert(t, qt.DeepEquals(lexer.TrimLeadingNewline([]byte("abc")), []byte("abc")))
}
