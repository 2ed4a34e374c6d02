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

// Package toml parses and emits TOML 1.0.0 (§6, public surface).
//
// The package exposes three parse entry points ([FromStr], [FromSlice],
// [FromReader]), an emit entry point ([ToString]) plus a streaming form
// ([WriteTo]), and the [Visitor] binding channel external data-binding
// layers use to consume a parsed [Document] without depending on this
// package's tree types directly.
//
// The Decoder/Encoder wrapper shape is grounded on
// cuelang.org/go/encoding/toml's Decoder (read-the-whole-stream-then-
// parse, since the underlying parser has no incremental mode).
package toml

import (
	"fmt"
	"io"
	"math"

	"github.com/tomlforge/toml/errors"
	"github.com/tomlforge/toml/format"
	"github.com/tomlforge/toml/internal/build"
	"github.com/tomlforge/toml/internal/lexer"
	"github.com/tomlforge/toml/internal/num"
	"github.com/tomlforge/toml/internal/tree"
)

// Document is the parsed tree: a root table of typed values, arrays,
// and nested tables (§3.3).
type Document = tree.Document

// Config is the parser's construction-time configuration (§3.4); FromSlice
// passes it on to the lexer as a lexer.DatetimeMode.
type Config struct {
	// Fast skips the year range, days-per-month, and time/offset range
	// checks of datetimes (a date still needs month 1..12 and day 1..31),
	// and skips UTF-8 validation within comments
	// (§4.3, §9 Q3). The zero value is strict.
	Fast bool
}

// FromStr parses text, which must already be valid UTF-8, as a complete
// TOML document (§6).
func FromStr(text string) (*Document, error) {
	return FromSlice([]byte(text), Config{})
}

// FromSlice parses data as a complete TOML document. Strings, keys, and
// (outside Fast mode) comments are validated as UTF-8 per context; other
// bytes are treated as opaque per §4.1.
func FromSlice(data []byte, cfg Config) (*Document, error) {
	return build.Build(data, build.Config{Datetime: lexer.DatetimeMode{Fast: cfg.Fast}})
}

// FromReader pulls all bytes from r and parses them as a complete TOML
// document. Unlike FromSlice, the result never borrows from the input.
func FromReader(r io.Reader, cfg Config) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// io.ReadAll's buffer is always freshly allocated, so the "owned, no
	// borrowing from input" guarantee of §6 holds without an extra copy.
	return FromSlice(data, cfg)
}

// ToString renders doc as canonical TOML text (§6's `to_string`).
func ToString(doc *Document) (string, error) {
	return format.String(doc, format.DefaultConfig)
}

// WriteTo streams doc as canonical TOML text into w (§6's streaming
// writer form).
func WriteTo(w io.Writer, doc *Document) error {
	return format.Write(w, doc, format.DefaultConfig)
}

// Decoder implements the decoding state for a stream of TOML input.
//
// Note that a TOML stream never decodes multiple documents; subsequent
// calls to [Decoder.Decode] return [io.EOF].
type Decoder struct {
	r       io.Reader
	cfg     Config
	decoded bool
}

// NewDecoder creates a decoder reading from r. Note that r is not
// consumed here; [Decoder.Decode] reads it lazily.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// SetFast toggles §4.3/§9 Q3 fast-mode datetime and comment validation
// for subsequent Decode calls, returning d for chaining.
func (d *Decoder) SetFast(fast bool) *Decoder {
	d.cfg.Fast = fast
	return d
}

// Decode reads and parses the entire underlying stream.
func (d *Decoder) Decode() (*Document, error) {
	if d.decoded {
		return nil, io.EOF
	}
	d.decoded = true
	return FromReader(d.r, d.cfg)
}

// Encoder writes a [Document] as canonical TOML text to an underlying
// writer.
type Encoder struct {
	w   io.Writer
	cfg format.Config
}

// NewEncoder creates an encoder writing to w, using the Q2-resolved
// default of sorted table/key order.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, cfg: format.DefaultConfig}
}

// SetSorted toggles lexicographic key ordering (§9 Q2), returning e for
// chaining.
func (e *Encoder) SetSorted(sorted bool) *Encoder {
	e.cfg.Sorted = sorted
	return e
}

// Encode renders doc and writes it to the underlying writer.
func (e *Encoder) Encode(doc *Document) error {
	return format.Write(e.w, doc, e.cfg)
}

// --- §6 binding channel ---

// Sentinel keys identify which datetime variant a single-key
// [Visitor.VisitMap] call carries, per §6: "datetime variants ->
// visit_map with a SINGLE synthetic key equal to a well-known sentinel
// per variant". Implementations consuming the channel recognize these
// reserved strings rather than treating the map as ordinary TOML data.
const (
	SentinelOffsetDatetime = "$__offset_datetime__"
	SentinelLocalDatetime  = "$__local_datetime__"
	SentinelLocalDate      = "$__local_date__"
	SentinelLocalTime      = "$__local_time__"
)

// Visitor is the external data-binding collaborator (§6, §1 "treated as
// an external visitor whose required capabilities are specified but
// whose internals are not"): [Walk] invokes exactly one method per
// [tree.Value] it is given, picked by the value's kind.
type Visitor interface {
	VisitString(s string) error
	VisitI64(i int64) error
	VisitF64(f float64) error
	VisitBool(b bool) error
	VisitSeq(elems []tree.Value) error
	VisitMap(t *tree.Table) error
}

// Walk dispatches v to the matching Visitor method. Datetime variants
// are delivered as a VisitMap call against a synthetic one-entry table
// whose single key is the matching Sentinel* constant and whose value
// is the §3.2 fixed-size binary encoding, carried as a string purely as
// a byte container (never interpreted as text).
func Walk(v tree.Value, visitor Visitor) error {
	switch v.Kind {
	case tree.KindString:
		return visitor.VisitString(v.Str)
	case tree.KindInteger:
		i, err := num.Int64(v.Num)
		if err != nil {
			return err
		}
		return visitor.VisitI64(i)
	case tree.KindFloat:
		return visitor.VisitF64(floatValue(v))
	case tree.KindBoolean:
		return visitor.VisitBool(v.Bool)
	case tree.KindArray:
		return visitor.VisitSeq(v.Array)
	case tree.KindArrayOfTables:
		elems := make([]tree.Value, len(v.ArrayOfTables))
		for i, t := range v.ArrayOfTables {
			elems[i] = tree.TableValue(t)
		}
		return visitor.VisitSeq(elems)
	case tree.KindTable:
		return visitor.VisitMap(v.Table)
	case tree.KindOffsetDatetime:
		enc := tree.EncodeOffsetDatetime(v.OffsetDatetime)
		return visitSentinel(visitor, SentinelOffsetDatetime, enc[:])
	case tree.KindLocalDatetime:
		enc := tree.EncodeLocalDatetime(v.LocalDatetime)
		return visitSentinel(visitor, SentinelLocalDatetime, enc[:])
	case tree.KindLocalDate:
		enc := tree.EncodeLocalDate(v.LocalDate)
		return visitSentinel(visitor, SentinelLocalDate, enc[:])
	case tree.KindLocalTime:
		enc := tree.EncodeLocalTime(v.LocalTime)
		return visitSentinel(visitor, SentinelLocalTime, enc[:])
	}
	return errors.NewUnsupportedType(fmt.Sprintf("value kind %s", v.Kind))
}

func floatValue(v tree.Value) float64 {
	switch v.Special {
	case tree.PosInf:
		return math.Inf(1)
	case tree.NegInf:
		return math.Inf(-1)
	case tree.PosNaN:
		return math.NaN()
	case tree.NegNaN:
		return math.Copysign(math.NaN(), -1)
	default:
		return v.Float64
	}
}

func visitSentinel(visitor Visitor, key string, encoded []byte) error {
	t := tree.NewTable(tree.TableInline)
	t.Set(key, tree.Value{Kind: tree.KindString, Str: string(encoded)})
	return visitor.VisitMap(t)
}

// DecodeAnyDatetime implements the §6 "generic wrapper variant ... accepts
// any of the four" binding-channel capability. A [Visitor.VisitMap]
// implementation that wants to bind into a single generic field rather
// than committing to one of the four kind-specific sentinels up front
// calls DecodeAnyDatetime on the table it was handed; it recognizes
// whichever of the four reserved sentinel keys is present (there is no
// separate "any" sentinel on the wire — the original's AnyDatetime target
// type accepts the same four reserved field names any kind-specific
// target does, per staticintlucas/soml's value/datetime/de.rs) and
// decodes its §3.2 binary payload into the matching [tree.AnyDatetime]
// variant. It reports an unsupported-type error if t is not a
// single-entry table keyed by one of the four sentinels.
func DecodeAnyDatetime(t *tree.Table) (tree.AnyDatetime, error) {
	if t.Len() != 1 {
		return tree.AnyDatetime{}, errors.NewUnsupportedType("datetime wrapper table")
	}
	key := t.Keys()[0]
	v, _ := t.Get(key)
	if v.Kind != tree.KindString {
		return tree.AnyDatetime{}, errors.NewUnsupportedType("datetime wrapper value")
	}
	enc := []byte(v.Str)
	switch key {
	case SentinelOffsetDatetime:
		return tree.AnyDatetime{Kind: tree.AnyOffsetDatetime, OffsetDatetime: tree.DecodeOffsetDatetime(enc)}, nil
	case SentinelLocalDatetime:
		return tree.AnyDatetime{Kind: tree.AnyLocalDatetime, LocalDatetime: tree.DecodeLocalDatetime(enc)}, nil
	case SentinelLocalDate:
		return tree.AnyDatetime{Kind: tree.AnyLocalDate, LocalDate: tree.DecodeLocalDate(enc)}, nil
	case SentinelLocalTime:
		return tree.AnyDatetime{Kind: tree.AnyLocalTime, LocalTime: tree.DecodeLocalTime(enc)}, nil
	default:
		return tree.AnyDatetime{}, errors.NewUnsupportedType(fmt.Sprintf("datetime sentinel %q", key))
	}
}

// --- §6 compatibility aliases ---

// Date is a synonym for [tree.LocalDate] (§6: "type names Date and Time
// are synonyms for LocalDate and LocalTime").
type Date = tree.LocalDate

// Time is a synonym for [tree.LocalTime].
type Time = tree.LocalTime

// Datetime is the compatibility shape of §3.2/Q1.
type Datetime = tree.Datetime

// NewDatetime constructs a [Datetime], rejecting invalid component
// combinations at construction time (the Q1 resolution).
var NewDatetime = tree.NewDatetime
