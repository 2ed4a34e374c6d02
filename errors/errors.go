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

// Package errors defines the error taxonomy at the parser/writer boundary.
//
// The pivotal type is [Error], a single struct type, tagged by [Kind],
// that the parser, builder, and writer report every failure as. [List] aggregates
// several Errors for callers that want to keep scanning instead of
// failing on the first problem.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomlforge/toml/internal/token"
)

// Kind identifies a failure mode from the parser/builder/writer taxonomy.
type Kind int

const (
	_ Kind = iota
	InvalidEncoding
	Eof
	IllegalChar
	UnterminatedString
	InvalidEscape
	InvalidNumber
	InvalidDatetime
	Expected
	DuplicateKey
	InvalidTableHeader
	InvalidKeyPath
	UnexpectedChar
	UnsupportedType
	UnsupportedValue
	Custom
)

func (k Kind) String() string {
	switch k {
	case InvalidEncoding:
		return "InvalidEncoding"
	case Eof:
		return "Eof"
	case IllegalChar:
		return "IllegalChar"
	case UnterminatedString:
		return "UnterminatedString"
	case InvalidEscape:
		return "InvalidEscape"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidDatetime:
		return "InvalidDatetime"
	case Expected:
		return "Expected"
	case DuplicateKey:
		return "DuplicateKey"
	case InvalidTableHeader:
		return "InvalidTableHeader"
	case InvalidKeyPath:
		return "InvalidKeyPath"
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnsupportedType:
		return "UnsupportedType"
	case UnsupportedValue:
		return "UnsupportedValue"
	case Custom:
		return "Custom"
	}
	return "Unknown"
}

// Error is the boundary error type. Errors raised by the parser, builder,
// and writer themselves are *Error values (use [errors.As] from the
// standard library to recover one, or [Is]/[As] below). Errors from an
// underlying io.Reader or io.Writer, the io.EOF of a second Decode call,
// the integer-overflow error of Walk, and the rejection from NewDatetime
// are returned as they are, not as *Error.
type Error struct {
	Kind Kind

	// Pos is the byte position where the error was detected; the zero
	// Position (IsValid() == false) means no meaningful location.
	Pos token.Position

	// Key and Table carry the offending dotted key and the table path it
	// was applied against, for DuplicateKey, InvalidTableHeader, and
	// InvalidKeyPath. Table is rendered as "root table" when empty.
	Key   string
	Table string

	format string
	args   []interface{}

	// Wrapped is a lower-level error this one was derived from, if any.
	Wrapped error
}

// Msg returns the unformatted message and its arguments, for callers that
// want to localize or otherwise post-process the text (mirrors
// cue/errors.Error.Msg).
func (e *Error) Msg() (string, []interface{}) {
	return e.format, e.args
}

// Error renders "<message> (at position <N>)" per §7, falling back to
// just the message when the position is not meaningful.
func (e *Error) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if !e.Pos.IsValid() {
		return msg
	}
	return fmt.Sprintf("%s (at position %d)", msg, e.Pos.Offset)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// newf builds an *Error with a formatted message.
func newf(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, format: format, args: args}
}

// New wraps errors.New for callers that just need an opaque error and do
// not care about the taxonomy.
func New(msg string) error { return errors.New(msg) }

// Is delegates to the standard library; *Error supports it transparently
// because it only overrides Unwrap, not Is/As.
func Is(err, target error) bool { return errors.Is(err, target) }

// As delegates to the standard library.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// --- constructors for each taxonomy member (§7) ---

func NewInvalidEncoding(pos token.Position) *Error {
	return newf(InvalidEncoding, pos, "input is not valid UTF-8")
}

func NewEOF(pos token.Position, context string) *Error {
	return newf(Eof, pos, "unexpected end of input while parsing %s", context)
}

func NewIllegalChar(pos token.Position, c byte, context string) *Error {
	return newf(IllegalChar, pos, "illegal character %q in %s", c, context)
}

func NewUnterminatedString(pos token.Position) *Error {
	return newf(UnterminatedString, pos, "unterminated string literal")
}

func NewInvalidEscape(pos token.Position, seq string) *Error {
	return newf(InvalidEscape, pos, "invalid escape sequence %q", seq)
}

func NewInvalidNumber(pos token.Position, msg string) *Error {
	return newf(InvalidNumber, pos, "invalid number: %s", msg)
}

func NewInvalidDatetime(pos token.Position) *Error {
	return newf(InvalidDatetime, pos, "invalid date-time")
}

func NewExpected(pos token.Position, token string) *Error {
	return newf(Expected, pos, "expected %s", token)
}

func NewDuplicateKey(pos token.Position, key, table string) *Error {
	return &Error{Kind: DuplicateKey, Pos: pos, Key: key, Table: table,
		format: "duplicate key %q in %s", args: []interface{}{key, tableName(table)}}
}

func NewInvalidTableHeader(pos token.Position, key string) *Error {
	return &Error{Kind: InvalidTableHeader, Pos: pos, Key: key,
		format: "invalid table header %q", args: []interface{}{key}}
}

func NewInvalidKeyPath(pos token.Position, key, table string) *Error {
	return &Error{Kind: InvalidKeyPath, Pos: pos, Key: key, Table: table,
		format: "invalid key path %q in %s", args: []interface{}{key, tableName(table)}}
}

func NewUnexpectedChar(pos token.Position, c byte) *Error {
	return newf(UnexpectedChar, pos, "unexpected character %q", c)
}

func NewUnsupportedType(msg string) *Error {
	return newf(UnsupportedType, token.Position{}, "unsupported type: %s", msg)
}

func NewUnsupportedValue(msg string) *Error {
	return newf(UnsupportedValue, token.Position{}, "unsupported value: %s", msg)
}

func NewCustom(msg string) *Error {
	return newf(Custom, token.Position{}, "%s", msg)
}

func tableName(table string) string {
	if table == "" {
		return "root table"
	}
	return table
}

// List aggregates multiple Errors for a caller that wants to keep parsing
// past the first structural violation, gathering every diagnostic in one
// pass (grounded on cue/errors.List). Every parse entry point in this
// module fails fast per §7 and none builds a List; callers fill one
// themselves.
type List struct {
	errs []*Error
}

// Add appends err to the list.
func (l *List) Add(err *Error) { l.errs = append(l.errs, err) }

// Len reports how many errors have been collected.
func (l *List) Len() int { return len(l.errs) }

// Errs returns the collected errors in the order they were added.
func (l *List) Errs() []*Error { return l.errs }

// Err returns nil if the list is empty, the sole error if there is
// exactly one, or the list itself (as an error) otherwise.
func (l *List) Err() error {
	switch len(l.errs) {
	case 0:
		return nil
	case 1:
		return l.errs[0]
	default:
		return l
	}
}

func (l *List) Error() string {
	var b strings.Builder
	for i, e := range l.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
