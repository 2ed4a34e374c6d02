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

package token_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tomlforge/toml/internal/token"
)

func TestFilePosition(t *testing.T) {
	// "ab\ncde\nf" -- line starts at offsets 0, 3, 7.
	f := token.NewFile()
	f.AddLine(3)
	f.AddLine(7)

	examples := []struct {
		desc   string
		offset int
		line   int
		column int
	}{
		{desc: "first line first byte", offset: 0, line: 1, column: 1},
		{desc: "first line last byte", offset: 2, line: 1, column: 3},
		{desc: "second line first byte", offset: 3, line: 2, column: 1},
		{desc: "third line first byte", offset: 7, line: 3, column: 1},
	}
	for _, e := range examples {
		t.Run(e.desc, func(t *testing.T) {
			pos := f.Position(e.offset)
			qt.Assert(t, qt.Equals(pos.Offset, e.offset))
			qt.Assert(t, qt.Equals(pos.Line, e.line))
			qt.Assert(t, qt.Equals(pos.Column, e.column))
		})
	}
}

func TestFileAddLineIgnoresOutOfOrder(t *testing.T) {
	f := token.NewFile()
	f.AddLine(5)
	f.AddLine(5)  // duplicate
	f.AddLine(3)  // out of order, must be ignored
	qt.Assert(t, qt.Equals(f.Position(4).Line, 1))
	qt.Assert(t, qt.Equals(f.Position(6).Line, 2))
}

func TestPositionIsValid(t *testing.T) {
	var zero token.Position
	qt.Assert(t, qt.IsFalse(zero.IsValid()))
	qt.Assert(t, qt.Equals(zero.String(), "-"))

	valid := token.Position{Offset: 4, Line: 2, Column: 1}
	qt.Assert(t, qt.IsTrue(valid.IsValid()))
	qt.Assert(t, qt.Equals(valid.String(), "2:1"))
}
