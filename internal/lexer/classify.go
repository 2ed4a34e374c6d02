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

package lexer

// The byte classifier (§4.2): pure predicates over bytes defining the
// TOML character classes. Kept free of any scanning state so they can be
// reused by the builder and the writer's key-quoting decision.

// IsWhitespace reports whether c is TOML's inline whitespace: tab or
// space.
func IsWhitespace(c byte) bool { return c == 0x09 || c == 0x20 }

// IsBareKeyChar reports whether c may appear in an unquoted key.
func IsBareKeyChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '-'
}

// IsDatetimeChar reports whether c can appear inside a datetime literal.
func IsDatetimeChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '+' || c == '-' || c == '.' || c == ':':
		return true
	case c == 'T' || c == 't' || c == 'Z' || c == 'z':
		return true
	}
	return false
}

// IsCommentLegal reports whether c may appear in a comment body.
func IsCommentLegal(c byte) bool {
	return c == 0x09 || (c >= 0x20 && c <= 0x7E) || c >= 0x80
}

// IsBasicStringBody reports whether c may appear unescaped inside a
// single-line basic string.
func IsBasicStringBody(c byte) bool {
	switch {
	case c == 0x09 || c == 0x20 || c == 0x21:
		return true
	case c >= 0x23 && c <= 0x5B:
		return true
	case c >= 0x5D && c <= 0x7E:
		return true
	case c >= 0x80:
		return true
	}
	return false
}

// IsMultilineBasicBody reports whether c may appear unescaped inside a
// multiline basic string, which additionally allows raw newlines.
func IsMultilineBasicBody(c byte) bool {
	return c == 0x0A || IsBasicStringBody(c)
}

// IsLiteralBody reports whether c may appear inside a single-line
// literal string.
func IsLiteralBody(c byte) bool {
	switch {
	case c == 0x09:
		return true
	case c >= 0x20 && c <= 0x26:
		return true
	case c >= 0x28 && c <= 0x7E:
		return true
	case c >= 0x80:
		return true
	}
	return false
}

// IsMultilineLiteralBody reports whether c may appear unescaped inside a
// multiline literal string, additionally allowing raw newlines.
func IsMultilineLiteralBody(c byte) bool {
	return c == 0x0A || IsLiteralBody(c)
}

// IsLegalAnywhere reports whether c is legal in any context that does
// not further restrict it (used to sanity-check raw input bytes).
func IsLegalAnywhere(c byte) bool {
	return c == 0x09 || c == 0x0A || c == 0x0D || (c >= 0x20 && c <= 0x7E) || c >= 0x80
}

// UTF8Len returns the byte length of a UTF-8 sequence starting with
// lead, or 0 if lead cannot start a valid sequence.
func UTF8Len(lead byte) int {
	switch {
	case lead <= 0x7F:
		return 1
	case lead >= 0xC0 && lead <= 0xDF:
		return 2
	case lead >= 0xE0 && lead <= 0xEF:
		return 3
	case lead >= 0xF0 && lead <= 0xF7:
		return 4
	}
	return 0
}
