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

package toml_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"golang.org/x/tools/txtar"

	"github.com/tomlforge/toml"
)

// TestGoldenRoundTrip parses each archive entry's in.toml and checks the
// canonical rendering matches want.toml exactly (§8 P1: parse then render
// is idempotent on already-canonical text).
func TestGoldenRoundTrip(t *testing.T) {
	data, err := os.ReadFile("testdata/golden.txtar")
	qt.Assert(t, qt.IsNil(err))
	archive := txtar.Parse(data)

	cases := map[string]struct{ in, want string }{}
	for _, f := range archive.Files {
		dir, leaf, ok := strings.Cut(f.Name, "/")
		if !ok {
			continue
		}
		c := cases[dir]
		switch leaf {
		case "in.toml":
			c.in = string(f.Data)
		case "want.toml":
			c.want = string(f.Data)
		}
		cases[dir] = c
	}
	qt.Assert(t, qt.IsTrue(len(cases) > 0))

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := toml.FromStr(c.in)
			qt.Assert(t, qt.IsNil(err))
			got, err := toml.ToString(doc)
			qt.Assert(t, qt.IsNil(err))
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("canonical rendering mismatch (-want +got):\n%s\nfull value: %s",
					diff, fmt.Sprint(pretty.Formatter(got)))
			}
		})
	}
}
