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

// Package format is the tree writer (§4.6, component W): it renders a
// tree.Document as canonical TOML text, choosing per key whether to emit
// a value inline, as a bracketed table header, or as an array-of-tables
// header, and escaping strings correctly.
//
// The per-table partition/recursion shape is grounded on cue/format's
// printer (one node kind decides its own rendering, recursing into
// children) generalized from CUE's expression tree to TOML's table-kind
// tags; the inline-vs-header decision itself is grounded on
// pelletier/go-toml/v2's marshaler.go shape-selection logic referenced
// in the design (§2, "W").
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tomlforge/toml/errors"
	"github.com/tomlforge/toml/internal/lexer"
	"github.com/tomlforge/toml/internal/num"
	"github.com/tomlforge/toml/internal/tree"
)

// Config controls rendering choices left open by the design (§9 Q2).
type Config struct {
	// Sorted, when true, emits every table's keys (and inline tables')
	// in lexicographic byte order, for deterministic output. Q2 resolves
	// this true by default; when false, keys are emitted in each table's
	// insertion order.
	Sorted bool
}

// DefaultConfig is the Q2-resolved default: sorted output.
var DefaultConfig = Config{Sorted: true}

// String renders doc as a canonical TOML document (the public
// `to_string` entry point of §6).
func String(doc *tree.Document, cfg Config) (string, error) {
	var b strings.Builder
	if err := Write(&b, doc, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams doc as canonical TOML text into w (§6's streaming writer
// form).
func Write(w io.Writer, doc *tree.Document, cfg Config) error {
	sw := &stringWriter{w: w}
	if err := writeTable(sw, doc, nil, false, cfg); err != nil {
		return err
	}
	return sw.err
}

// stringWriter adapts io.Writer to the byte-string writes this package
// performs, capturing the first error instead of threading it through
// every call (mirrors cue/format's internal printer sink).
type stringWriter struct {
	w     io.Writer
	err   error
	wrote bool
}

func (s *stringWriter) writeString(str string) {
	if s.err != nil || str == "" {
		return
	}
	_, s.err = io.WriteString(s.w, str)
	if s.err == nil {
		s.wrote = true
	}
}

// writeTable renders t's body, and its own header unless headerWritten is
// true (the caller already emitted a "[[path]]" array-of-tables header for
// this exact table, per §4.6 step 1).
func writeTable(w *stringWriter, t *tree.Table, path []string, headerWritten bool, cfg Config) error {
	keys := append([]string(nil), t.Keys()...)
	if cfg.Sorted {
		sort.Strings(keys)
	}
	var inline, sub []string
	for _, k := range keys {
		v, _ := t.Get(k)
		if v.IsTableLike() {
			sub = append(sub, k)
		} else {
			inline = append(inline, k)
		}
	}

	if !headerWritten && len(path) > 0 && (len(inline) > 0 || len(sub) == 0) {
		writeHeader(w, path, false)
	}
	for _, k := range inline {
		v, _ := t.Get(k)
		rendered, err := renderValue(v, cfg)
		if err != nil {
			return err
		}
		w.writeString(renderKey(k))
		w.writeString(" = ")
		w.writeString(rendered)
		w.writeString("\n")
	}
	for _, k := range sub {
		v, _ := t.Get(k)
		childPath := append(append([]string{}, path...), k)
		switch v.Kind {
		case tree.KindArrayOfTables:
			for _, elem := range v.ArrayOfTables {
				writeHeader(w, childPath, true)
				if err := writeTable(w, elem, childPath, true, cfg); err != nil {
					return err
				}
			}
		case tree.KindTable:
			if err := writeTable(w, v.Table, childPath, false, cfg); err != nil {
				return err
			}
		}
	}
	if w.err != nil {
		return w.err
	}
	return nil
}

// writeHeader renders a table or array-of-tables header, separating it
// from whatever precedes it with a blank line (§4.6: every header starts
// a fresh block except the very first thing in the document).
func writeHeader(w *stringWriter, path []string, isArray bool) {
	if w.wrote {
		w.writeString("\n")
	}
	rendered := make([]string, len(path))
	for i, p := range path {
		rendered[i] = renderKey(p)
	}
	if isArray {
		w.writeString("[[" + strings.Join(rendered, ".") + "]]\n")
	} else {
		w.writeString("[" + strings.Join(rendered, ".") + "]\n")
	}
}

// renderKey emits key bare iff every byte is a bare-key char (§4.6);
// otherwise as a single-line basic string.
func renderKey(key string) string {
	if key != "" && allBareKeyChars(key) {
		return key
	}
	return `"` + renderBasicBody(key) + `"`
}

func allBareKeyChars(key string) bool {
	for i := 0; i < len(key); i++ {
		if !lexer.IsBareKeyChar(key[i]) {
			return false
		}
	}
	return true
}

// renderValue renders v in "inline" position: as the right-hand side of
// a key-value pair, an array element, or an inline-table field.
func renderValue(v tree.Value, cfg Config) (string, error) {
	switch v.Kind {
	case tree.KindString:
		return renderString(v.Str), nil
	case tree.KindInteger:
		return num.FormatInt(v.Num), nil
	case tree.KindFloat:
		return renderFloat(v), nil
	case tree.KindBoolean:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case tree.KindOffsetDatetime:
		return renderOffsetDatetime(v.OffsetDatetime), nil
	case tree.KindLocalDatetime:
		return renderLocalDatetime(v.LocalDatetime), nil
	case tree.KindLocalDate:
		return renderDate(v.LocalDate), nil
	case tree.KindLocalTime:
		return renderTime(v.LocalTime), nil
	case tree.KindArray:
		return renderArray(v.Array, cfg)
	case tree.KindTable:
		if v.Table.Kind != tree.TableInline {
			return "", errors.NewUnsupportedType("cannot render a header table as an inline value")
		}
		return renderInlineTable(v.Table, cfg)
	}
	return "", errors.NewUnsupportedType(fmt.Sprintf("value kind %s", v.Kind))
}

func renderArray(elems []tree.Value, cfg Config) (string, error) {
	parts := make([]string, len(elems))
	for i, e := range elems {
		r, err := renderValue(e, cfg)
		if err != nil {
			return "", err
		}
		parts[i] = r
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func renderInlineTable(t *tree.Table, cfg Config) (string, error) {
	keys := append([]string(nil), t.Keys()...)
	if cfg.Sorted {
		sort.Strings(keys)
	}
	if len(keys) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := t.Get(k)
		r, err := renderValue(v, cfg)
		if err != nil {
			return "", err
		}
		parts[i] = renderKey(k) + " = " + r
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func renderFloat(v tree.Value) string {
	switch v.Special {
	case tree.PosInf:
		return "inf"
	case tree.NegInf:
		return "-inf"
	case tree.PosNaN:
		return "nan"
	case tree.NegNaN:
		return "-nan"
	default:
		return num.FormatFloat(v.Float64)
	}
}

func renderDate(d tree.LocalDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// renderTime renders t as "HH:MM:SS" with a fractional part only when
// nonzero, trimmed of trailing zeros (§4.3 canonical rendering).
func renderTime(t tree.LocalTime) string {
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond == 0 {
		return base
	}
	frac := fmt.Sprintf("%09d", t.Nanosecond)
	frac = strings.TrimRight(frac, "0")
	return base + "." + frac
}

// renderOffset renders o as "Z" for the Z sentinel, else "±HH:MM".
func renderOffset(o tree.Offset) string {
	if o.Z {
		return "Z"
	}
	minutes := o.Minutes
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

func renderLocalDatetime(dt tree.LocalDatetime) string {
	return renderDate(dt.Date) + "T" + renderTime(dt.Time)
}

func renderOffsetDatetime(dt tree.OffsetDatetime) string {
	return renderLocalDatetime(dt.Datetime) + renderOffset(dt.Offset)
}

// renderString picks single-line vs multiline basic-string form (§4.6):
// any embedded LF forces the multiline form with a leading newline
// immediately after the opening delimiter.
func renderString(s string) string {
	if strings.ContainsRune(s, '\n') {
		return `"""` + "\n" + renderMultilineBasicBody(s) + `"""`
	}
	return `"` + renderBasicBody(s) + `"`
}

// renderBasicBody escapes a single-line basic string body: CR, quote,
// backslash, backspace, form-feed, tab, and LF are escaped via their
// short form; other C0/DEL controls as \uXXXX (§4.6).
func renderBasicBody(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// renderMultilineBasicBody escapes a multiline basic string body: raw
// newlines and tabs pass through, but a run of 3 or more consecutive
// quotes (which would be mistaken for the closing delimiter), or a
// quote as the very last character (which would merge with it), gets
// its quote escaped.
func renderMultilineBasicBody(s string) string {
	runes := []rune(s)
	var b strings.Builder
	quoteRun := 0
	for i, r := range runes {
		if r == '"' {
			quoteRun++
		} else {
			quoteRun = 0
		}
		switch r {
		case '\\':
			b.WriteString(`\\`)
			quoteRun = 0
		case '\r':
			b.WriteString(`\r`)
		case '\n', '\t':
			b.WriteRune(r)
		case '"':
			if quoteRun >= 3 || i == len(runes)-1 {
				b.WriteString(`\"`)
				quoteRun = 0
			} else {
				b.WriteByte('"')
			}
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
