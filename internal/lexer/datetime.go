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

import (
	"github.com/tomlforge/toml/internal/tree"
)

// DatetimeMode selects strict or fast datetime validation (§4.3, §9 Q3).
// Fast, when true, skips the year range, the per-month day count, and
// the hour/minute/second and offset range checks; a date must still have
// a month in 1..12 and a day in 1..31. It is construction-time
// configuration of a ValueParser or a build, never per-call state.
type DatetimeMode struct {
	Fast bool
}

var errInvalidDatetime = errInvalid("invalid datetime")

type invalidError string

func (e invalidError) Error() string { return string(e) }
func errInvalid(msg string) error    { return invalidError(msg) }

func digit2(b []byte) (int, bool) {
	if len(b) < 2 || !isDigit(b[0]) || !isDigit(b[1]) {
		return 0, false
	}
	return int(b[0]-'0')*10 + int(b[1]-'0'), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ParseLocalDate parses exactly the bytes "YYYY-MM-DD" into a
// tree.LocalDate. Strict mode validates the year range and the calendar;
// with mode.Fast set only month 1..12 and day 1..31 are checked.
func ParseLocalDate(b []byte, mode DatetimeMode) (tree.LocalDate, int, error) {
	if len(b) < 10 || b[4] != '-' || b[7] != '-' {
		return tree.LocalDate{}, 0, errInvalidDatetime
	}
	for _, i := range [4]int{0, 1, 2, 3} {
		if !isDigit(b[i]) {
			return tree.LocalDate{}, 0, errInvalidDatetime
		}
	}
	year := int(b[0]-'0')*1000 + int(b[1]-'0')*100 + int(b[2]-'0')*10 + int(b[3]-'0')
	month, ok1 := digit2(b[5:7])
	day, ok2 := digit2(b[8:10])
	if !ok1 || !ok2 {
		return tree.LocalDate{}, 0, errInvalidDatetime
	}
	if !mode.Fast {
		if year < 1 || year > 9999 || month < 1 || month > 12 {
			return tree.LocalDate{}, 0, errInvalidDatetime
		}
		if day < 1 || day > int(tree.DaysInMonth(year, month)) {
			return tree.LocalDate{}, 0, errInvalidDatetime
		}
	} else if month < 1 || month > 12 || day < 1 || day > 31 {
		return tree.LocalDate{}, 0, errInvalidDatetime
	}
	return tree.LocalDate{Year: int16(year), Month: uint8(month), Day: uint8(day)}, 10, nil
}

// ParseLocalTime parses "HH:MM:SS[.FFFFFFFFF]" into a tree.LocalTime.
// Extra fractional digits beyond nine are truncated, not rounded (§4.3).
func ParseLocalTime(b []byte, mode DatetimeMode) (tree.LocalTime, int, error) {
	if len(b) < 8 || b[2] != ':' || b[5] != ':' {
		return tree.LocalTime{}, 0, errInvalidDatetime
	}
	hour, ok1 := digit2(b[0:2])
	minute, ok2 := digit2(b[3:5])
	second, ok3 := digit2(b[6:8])
	if !ok1 || !ok2 || !ok3 {
		return tree.LocalTime{}, 0, errInvalidDatetime
	}
	if !mode.Fast {
		if hour > 23 || minute > 59 || second > 60 {
			return tree.LocalTime{}, 0, errInvalidDatetime
		}
	}
	n := 8
	var nsec uint32
	if n < len(b) && b[n] == '.' {
		j := n + 1
		start := j
		for j < len(b) && isDigit(b[j]) {
			j++
		}
		if j == start {
			return tree.LocalTime{}, 0, errInvalidDatetime
		}
		digits := b[start:j]
		if len(digits) > 9 {
			digits = digits[:9] // truncate, not round
		}
		mult := uint32(1)
		for k := len(digits); k < 9; k++ {
			mult *= 10
		}
		var v uint32
		for _, c := range digits {
			v = v*10 + uint32(c-'0')
		}
		nsec = v * mult
		n = j
	}
	return tree.LocalTime{
		Hour: uint8(hour), Minute: uint8(minute), Second: uint8(second), Nanosecond: nsec,
	}, n, nil
}

// ParseOffset parses "Z"/"z" or "±HH:MM" into a tree.Offset.
func ParseOffset(b []byte, mode DatetimeMode) (tree.Offset, int, error) {
	if len(b) == 0 {
		return tree.Offset{}, 0, errInvalidDatetime
	}
	if b[0] == 'Z' || b[0] == 'z' {
		return tree.Offset{Z: true}, 1, nil
	}
	if (b[0] != '+' && b[0] != '-') || len(b) < 6 || b[3] != ':' {
		return tree.Offset{}, 0, errInvalidDatetime
	}
	hour, ok1 := digit2(b[1:3])
	minute, ok2 := digit2(b[4:6])
	if !ok1 || !ok2 {
		return tree.Offset{}, 0, errInvalidDatetime
	}
	if !mode.Fast && (hour > 23 || minute > 59) {
		return tree.Offset{}, 0, errInvalidDatetime
	}
	total := hour*60 + minute
	if b[0] == '-' {
		total = -total
	}
	return tree.Offset{Minutes: int16(total)}, 6, nil
}

// ParseLocalDatetime parses a date, a {T,t,' '} separator, then a time.
func ParseLocalDatetime(b []byte, mode DatetimeMode) (tree.LocalDatetime, int, error) {
	date, n, err := ParseLocalDate(b, mode)
	if err != nil {
		return tree.LocalDatetime{}, 0, err
	}
	if n >= len(b) || (b[n] != 'T' && b[n] != 't' && b[n] != ' ') {
		return tree.LocalDatetime{}, 0, errInvalidDatetime
	}
	n++
	t, m, err := ParseLocalTime(b[n:], mode)
	if err != nil {
		return tree.LocalDatetime{}, 0, err
	}
	return tree.LocalDatetime{Date: date, Time: t}, n + m, nil
}

// ParseOffsetDatetime parses a local-datetime then an offset.
func ParseOffsetDatetime(b []byte, mode DatetimeMode) (tree.OffsetDatetime, int, error) {
	dt, n, err := ParseLocalDatetime(b, mode)
	if err != nil {
		return tree.OffsetDatetime{}, 0, err
	}
	off, m, err := ParseOffset(b[n:], mode)
	if err != nil {
		return tree.OffsetDatetime{}, 0, err
	}
	return tree.OffsetDatetime{Datetime: dt, Offset: off}, n + m, nil
}
