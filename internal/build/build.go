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

// Package build is the tree builder (§4.5, component B): it walks a TOML
// document statement by statement, maintaining the "current table"
// pointer described in §4.5 and enforcing the five-table-kind invariants
// of §3.3 (I1-I6) as each header or key-value line is applied.
//
// The state-machine shape (current table / current table-array pointer,
// one statement per top-level loop iteration) is grounded on
// cue/encoding/toml's Decoder.nextRootNode, generalized from "build a CUE
// ast.File" to "build a tree.Document" and from go-toml/v2's streamed
// token Kinds to navigating tree.Table directly, since this module owns
// its value lexer rather than delegating to an external TOML library.
package build

import (
	"strings"

	"github.com/tomlforge/toml/errors"
	"github.com/tomlforge/toml/internal/lexer"
	"github.com/tomlforge/toml/internal/token"
	"github.com/tomlforge/toml/internal/tree"
)

// Config configures a Build call.
type Config struct {
	// Datetime controls the §4.3/§9 Q3 fast-vs-strict datetime validation
	// mode. The zero value is strict.
	Datetime lexer.DatetimeMode
}

// Build parses data as a complete TOML document and returns the resulting
// tree, or the first structural or lexical error encountered (§7:
// "fail fast ... no recovery").
func Build(data []byte, cfg Config) (*tree.Document, error) {
	b := &builder{
		data: data,
		mode: cfg.Datetime,
		root: tree.NewDocument(),
		file: token.NewFile(),
	}
	b.current = b.root
	if err := b.run(); err != nil {
		return nil, err
	}
	return b.root, nil
}

type builder struct {
	data []byte
	pos  int
	mode lexer.DatetimeMode
	file *token.File

	root    *tree.Table
	current *tree.Table
	// currentPath is the dotted rendering of the header that opened
	// current, for DuplicateKey/InvalidKeyPath errors; empty when current
	// is the root, which the error message renders as "root table".
	currentPath string
}

func (b *builder) posAt(offset int) token.Position { return b.file.Position(offset) }

func (b *builder) curPos() token.Position { return b.posAt(b.pos) }

// recordLines scans data[from:to] for line starts so later Position calls
// stay accurate even across multiline strings/arrays that a single
// statement may have consumed.
func (b *builder) recordLines(from, to int) {
	for i := from; i < to && i < len(b.data); i++ {
		if b.data[i] == '\n' {
			b.file.AddLine(i + 1)
		}
	}
}

func (b *builder) run() error {
	for {
		b.skipInlineWS()
		if b.pos >= len(b.data) {
			return nil
		}
		c := b.data[b.pos]
		switch {
		case c == '\n':
			b.file.AddLine(b.pos + 1)
			b.pos++
			continue
		case c == '\r' && b.pos+1 < len(b.data) && b.data[b.pos+1] == '\n':
			b.pos += 2
			b.file.AddLine(b.pos)
			continue
		case c == '#':
			if err := b.skipComment(); err != nil {
				return err
			}
			continue
		case c == '[':
			if err := b.parseHeader(); err != nil {
				return err
			}
		default:
			if err := b.parseKeyValue(); err != nil {
				return err
			}
		}
		if err := b.expectLineEnd(); err != nil {
			return err
		}
	}
}

func (b *builder) skipInlineWS() {
	for b.pos < len(b.data) && lexer.IsWhitespace(b.data[b.pos]) {
		b.pos++
	}
}

// skipComment consumes a '#' through end-of-line, validating each byte is
// comment-legal (§4.2) and, outside fast mode, that multi-byte UTF-8
// sequences are well formed (§9 Q3: fast mode skips UTF-8 validation in
// comments specifically).
func (b *builder) skipComment() error {
	start := b.pos
	b.pos++ // consume '#'
	for b.pos < len(b.data) {
		c := b.data[b.pos]
		if c == '\n' || (c == '\r' && b.pos+1 < len(b.data) && b.data[b.pos+1] == '\n') {
			break
		}
		if !lexer.IsCommentLegal(c) {
			return errors.NewIllegalChar(b.posAt(b.pos), c, "comment")
		}
		if !b.mode.Fast {
			n := lexer.UTF8Len(c)
			if n == 0 || b.pos+n > len(b.data) {
				return errors.NewInvalidEncoding(b.posAt(b.pos))
			}
			b.pos += n
			continue
		}
		b.pos++
	}
	_ = start
	return nil
}

// expectLineEnd requires that, after a statement, only inline whitespace
// and an optional comment remain before a newline or end-of-input.
func (b *builder) expectLineEnd() error {
	b.skipInlineWS()
	if b.pos >= len(b.data) {
		return nil
	}
	if b.data[b.pos] == '#' {
		return b.skipComment()
	}
	if b.data[b.pos] == '\n' {
		b.file.AddLine(b.pos + 1)
		b.pos++
		return nil
	}
	if b.data[b.pos] == '\r' && b.pos+1 < len(b.data) && b.data[b.pos+1] == '\n' {
		b.pos += 2
		b.file.AddLine(b.pos)
		return nil
	}
	return errors.NewExpected(b.curPos(), "newline")
}

// parseKeyPath parses a dotted sequence of bare or quoted keys, used for
// both header paths and key-value assignment paths (§4.4/§4.5).
func (b *builder) parseKeyPath() ([]string, error) {
	var keys []string
	for {
		b.skipInlineWS()
		k, err := b.parseOneKey()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		b.skipInlineWS()
		if b.pos < len(b.data) && b.data[b.pos] == '.' {
			b.pos++
			continue
		}
		return keys, nil
	}
}

func (b *builder) parseOneKey() (string, error) {
	if b.pos >= len(b.data) {
		return "", errors.NewExpected(b.curPos(), "key")
	}
	c := b.data[b.pos]
	if c == '"' || c == '\'' {
		vp := lexer.NewValueParser(b.data, b.mode)
		vp.Seek(b.pos)
		v, err := vp.ParseValue()
		if err != nil {
			return "", b.classify(err, b.curPos())
		}
		b.pos = vp.Pos()
		return v.Str, nil
	}
	start := b.pos
	for b.pos < len(b.data) && lexer.IsBareKeyChar(b.data[b.pos]) {
		b.pos++
	}
	if b.pos == start {
		return "", errors.NewExpected(b.curPos(), "key")
	}
	return string(b.data[start:b.pos]), nil
}

// parseHeader parses a `[path]` or `[[path]]` line (§4.5 TableHeader /
// ArrayHeader).
func (b *builder) parseHeader() error {
	startPos := b.curPos()
	b.pos++ // consume first '['
	isArray := false
	if b.pos < len(b.data) && b.data[b.pos] == '[' {
		isArray = true
		b.pos++
	}
	b.skipInlineWS()
	keys, err := b.parseKeyPath()
	if err != nil {
		return err
	}
	b.skipInlineWS()
	fullKey := strings.Join(keys, ".")
	if isArray {
		if !b.consumeLit("]]") {
			return errors.NewExpected(b.curPos(), "]]")
		}
	} else {
		if !b.consumeLit("]") {
			return errors.NewExpected(b.curPos(), "]")
		}
	}
	parent, err := b.navigateParent(keys, startPos, fullKey)
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if isArray {
		t, err := insertArrayElem(parent, last, startPos, fullKey)
		if err != nil {
			return err
		}
		b.current = t
	} else {
		t, err := insertTable(parent, last, startPos, fullKey)
		if err != nil {
			return err
		}
		b.current = t
	}
	b.currentPath = fullKey
	return nil
}

func (b *builder) consumeLit(lit string) bool {
	if b.pos+len(lit) > len(b.data) || string(b.data[b.pos:b.pos+len(lit)]) != lit {
		return false
	}
	b.pos += len(lit)
	return true
}

// navigateParent walks path[:len(path)-1] from the document root (§4.5
// step 1, shared by TableHeader and ArrayHeader): implicit segments
// become UndefinedTable, existing Table/UndefinedTable/DottedKeyTable
// entries are descended into, and ArrayOfTables segments address their
// last element (I5). Any other shape is InvalidTableHeader.
func (b *builder) navigateParent(path []string, pos token.Position, fullKey string) (*tree.Table, error) {
	t := b.root
	for _, seg := range path[:len(path)-1] {
		v, ok := t.Get(seg)
		if !ok {
			child := tree.NewTable(tree.TableUndefined)
			t.Set(seg, tree.TableValue(child))
			t = child
			continue
		}
		switch v.Kind {
		case tree.KindTable:
			switch v.Table.Kind {
			case tree.TableDefined, tree.TableUndefined, tree.TableDotted:
				t = v.Table
				continue
			}
		case tree.KindArrayOfTables:
			if len(v.ArrayOfTables) == 0 {
				return nil, errors.NewInvalidTableHeader(pos, fullKey)
			}
			t = v.ArrayOfTables[len(v.ArrayOfTables)-1]
			continue
		}
		return nil, errors.NewInvalidTableHeader(pos, fullKey)
	}
	return t, nil
}

// insertTable applies I2: a [a.b] header succeeds only if a.b is absent
// or an UndefinedTable, upgrading it to Table in either case.
func insertTable(parent *tree.Table, key string, pos token.Position, fullKey string) (*tree.Table, error) {
	v, ok := parent.Get(key)
	if !ok {
		nt := tree.NewTable(tree.TableDefined)
		parent.Set(key, tree.TableValue(nt))
		return nt, nil
	}
	if v.Kind == tree.KindTable && v.Table.Kind == tree.TableUndefined {
		v.Table.Kind = tree.TableDefined
		return v.Table, nil
	}
	return nil, errors.NewInvalidTableHeader(pos, fullKey)
}

// insertArrayElem applies I3: a [[a.b]] header succeeds only if a.b is
// absent or an ArrayOfTables, appending a fresh Table element either way.
func insertArrayElem(parent *tree.Table, key string, pos token.Position, fullKey string) (*tree.Table, error) {
	nt := tree.NewTable(tree.TableDefined)
	v, ok := parent.Get(key)
	if !ok {
		parent.Set(key, tree.ArrayOfTablesValue([]*tree.Table{nt}))
		return nt, nil
	}
	if v.Kind != tree.KindArrayOfTables {
		return nil, errors.NewInvalidTableHeader(pos, fullKey)
	}
	parent.Set(key, tree.ArrayOfTablesValue(append(v.ArrayOfTables, nt)))
	return nt, nil
}

// parseKeyValue parses a `key = value` statement, possibly with a dotted
// key, and inserts it under the current table (§4.5 KeyValuePair).
func (b *builder) parseKeyValue() error {
	pos := b.curPos()
	keys, err := b.parseKeyPath()
	if err != nil {
		return err
	}
	b.skipInlineWS()
	if b.pos >= len(b.data) || b.data[b.pos] != '=' {
		return errors.NewExpected(b.curPos(), "'='")
	}
	b.pos++
	b.skipInlineWS()
	valueStart := b.pos
	vp := lexer.NewValueParser(b.data, b.mode)
	vp.Seek(b.pos)
	val, err := vp.ParseValue()
	if err != nil {
		return b.classify(err, b.posAt(valueStart))
	}
	b.recordLines(valueStart, vp.Pos())
	b.pos = vp.Pos()

	target := b.current
	fullKey := strings.Join(keys, ".")
	if len(keys) > 1 {
		target, err = b.dottedTraverse(target, keys, pos, fullKey)
		if err != nil {
			return err
		}
	}
	last := keys[len(keys)-1]
	if target.Has(last) {
		return errors.NewDuplicateKey(pos, fullKey, b.currentPath)
	}
	target.Set(last, val)
	return nil
}

// dottedTraverse applies I4: each prefix segment of a dotted key must
// traverse through an absent slot (created as DottedKeyTable) or an
// existing DottedKeyTable; an UndefinedTable in the way is upgraded to
// DottedKeyTable in place (it may already have subtable-header children
// from an earlier [a.b.c] that implicitly created it). Any other kind
// (Table, InlineTable, ArrayOfTables) is InvalidKeyPath.
func (b *builder) dottedTraverse(current *tree.Table, keys []string, pos token.Position, fullKey string) (*tree.Table, error) {
	t := current
	for _, seg := range keys[:len(keys)-1] {
		v, ok := t.Get(seg)
		if !ok {
			child := tree.NewTable(tree.TableDotted)
			t.Set(seg, tree.TableValue(child))
			t = child
			continue
		}
		if v.Kind == tree.KindTable {
			switch v.Table.Kind {
			case tree.TableUndefined:
				v.Table.Kind = tree.TableDotted
				t = v.Table
				continue
			case tree.TableDotted:
				t = v.Table
				continue
			}
		}
		return nil, errors.NewInvalidKeyPath(pos, fullKey, b.currentPath)
	}
	return t, nil
}

// classify turns the lightweight lexical errors the value lexer and
// datetime parser raise into the taxonomy-tagged boundary *errors.Error,
// attaching the position where the value started.
func (b *builder) classify(err error, pos token.Position) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unterminated"):
		if strings.Contains(msg, "string") {
			return errors.NewUnterminatedString(pos)
		}
		return errors.NewEOF(pos, msg)
	case strings.Contains(msg, "datetime"):
		return errors.NewInvalidDatetime(pos)
	case strings.Contains(msg, "escape") || strings.Contains(msg, "unicode"):
		return errors.NewInvalidEscape(pos, msg)
	case strings.Contains(msg, "number") || strings.Contains(msg, "float") || strings.Contains(msg, "integer"):
		return errors.NewInvalidNumber(pos, msg)
	case strings.Contains(msg, "illegal character") || strings.Contains(msg, "invalid UTF-8"):
		return errors.NewIllegalChar(pos, 0, msg)
	case strings.Contains(msg, "expected"):
		return errors.NewExpected(pos, msg)
	default:
		return errors.NewCustom(msg)
	}
}
