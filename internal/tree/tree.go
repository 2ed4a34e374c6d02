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

// Package tree is the typed document model (§3.1, §3.3): the tagged
// Value variant produced by parsing and consumed by the writer, and the
// Table container with the four definition-style kinds (TableKind) the
// builder's invariants are expressed against; an array of tables is a
// separate value kind, not a TableKind.
//
// Mirrors the tagged-node approach of cue/ast, generalized to TOML's
// value categories instead of CUE's expression grammar.
package tree

import "github.com/cockroachdb/apd/v3"

// Kind tags the category of a Value, §3.1's ParsedValue variant list.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindOffsetDatetime
	KindLocalDatetime
	KindLocalDate
	KindLocalTime
	KindArray
	KindTable
	KindArrayOfTables
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindOffsetDatetime:
		return "OffsetDatetime"
	case KindLocalDatetime:
		return "LocalDatetime"
	case KindLocalDate:
		return "LocalDate"
	case KindLocalTime:
		return "LocalTime"
	case KindArray:
		return "Array"
	case KindTable:
		return "Table"
	case KindArrayOfTables:
		return "ArrayOfTables"
	}
	return "Invalid"
}

// SpecialFloat tags one of the four special float forms (§3.1).
type SpecialFloat int

const (
	NotSpecial SpecialFloat = iota
	PosInf
	NegInf
	PosNaN
	NegNaN
)

// TableKind tags how a Table entry came into existence (§3.3). The tag
// governs which later definitions are legal against that entry.
type TableKind int

const (
	// TableDefined: a bracketed [a.b] header has explicitly defined it.
	TableDefined TableKind = iota
	// TableUndefined: created implicitly by a parent header or key-path
	// traversal. May be upgraded to TableDefined or TableDotted.
	TableUndefined
	// TableDotted: created or reached by dotted-key assignment.
	TableDotted
	// TableInline: created by an inline `{ ... }` literal. Closed on
	// creation.
	TableInline
)

func (k TableKind) String() string {
	switch k {
	case TableDefined:
		return "Table"
	case TableUndefined:
		return "UndefinedTable"
	case TableDotted:
		return "DottedKeyTable"
	case TableInline:
		return "InlineTable"
	}
	return "Unknown"
}

// Value is the tagged union described in §3.1. Only the fields relevant
// to Kind are meaningful; callers should always switch on Kind first.
//
// Numbers retain their raw digit bytes (Raw) alongside a decoded
// arbitrary-precision Num, so the caller-requested numeric width (§6,
// visit_i64 "promoted on request") can be resolved lazily without
// committing to float64/int64 at parse time.
type Value struct {
	Kind Kind

	// KindString
	Str string

	// KindInteger: raw digit bytes as they appeared in the source (no
	// underscores stripped) plus the decoded arbitrary precision value.
	Raw []byte
	Num *apd.Decimal

	// KindFloat: Special tags one of the four non-finite forms; Float64
	// holds the decoded value when Special == NotSpecial. Raw retains
	// the source digits for diagnostics.
	Special SpecialFloat
	Float64 float64

	// KindBoolean
	Bool bool

	// datetime variants
	OffsetDatetime OffsetDatetime
	LocalDatetime  LocalDatetime
	LocalDate      LocalDate
	LocalTime      LocalTime

	// KindArray
	Array []Value

	// KindTable, KindArrayOfTables
	Table         *Table
	ArrayOfTables []*Table
}

// Table is a mapping from key to Value, tagged by its TableKind (§3.3).
// Iteration order is insertion order; the writer decides sort order
// independently (§4.6, Q2).
type Table struct {
	Kind TableKind

	keys   []string
	values map[string]Value
}

// NewTable returns an empty Table of the given kind.
func NewTable(kind TableKind) *Table {
	return &Table{Kind: kind, values: make(map[string]Value)}
}

// Has reports whether key exists directly on this table (not a dotted
// path).
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Get returns the value stored at key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set inserts or overwrites key with v. Callers enforcing I1 (key
// uniqueness) must call Has first; Set itself does not check.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of direct entries.
func (t *Table) Len() int { return len(t.keys) }

// TableValue wraps t as a Value of KindTable, for embedding as an
// UndefinedTable/DottedKeyTable/InlineTable child under a parent Table.
func TableValue(t *Table) Value {
	return Value{Kind: KindTable, Table: t}
}

// ArrayOfTablesValue wraps tables as a Value of KindArrayOfTables.
func ArrayOfTablesValue(tables []*Table) Value {
	return Value{Kind: KindArrayOfTables, ArrayOfTables: tables}
}

// IsTableLike reports whether v's Kind is one the builder treats as a
// "subtable" grouping for the purposes of §4.6 step 1's partition
// (Table/UndefinedTable/DottedKeyTable/ArrayOfTables), as opposed to an
// "inline" scalar/array/inline-table leaf value.
func (v Value) IsTableLike() bool {
	switch v.Kind {
	case KindTable:
		switch v.Table.Kind {
		case TableDefined, TableUndefined, TableDotted:
			return true
		case TableInline:
			return false
		}
	case KindArrayOfTables:
		return true
	}
	return false
}

// Document is the root of a parsed TOML document: a Table of kind
// TableDefined (the root is never "undefined" or "inline").
type Document = Table

// NewDocument returns an empty root document.
func NewDocument() *Document {
	return NewTable(TableDefined)
}
