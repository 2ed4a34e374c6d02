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

package tree

import (
	"encoding/binary"
	"fmt"
)

// LocalDate is a calendar date with no time-of-day or offset component.
type LocalDate struct {
	Year  int16 // 1..9999
	Month uint8 // 1..12
	Day   uint8 // 1..daysInMonth(Year, Month)
}

// LocalTime is a time-of-day with no date or offset component. Second may
// be 60 to represent a leap second, per §4.3.
type LocalTime struct {
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond uint32 // 0..999_999_999
}

// Offset is a UTC offset: either the Z sentinel or a signed minute count.
type Offset struct {
	Z       bool
	Minutes int16 // -1439..1439, meaningless when Z is true
}

// LocalDatetime combines a LocalDate and LocalTime with no offset.
type LocalDatetime struct {
	Date LocalDate
	Time LocalTime
}

// OffsetDatetime combines a LocalDatetime with a UTC Offset.
type OffsetDatetime struct {
	Datetime LocalDatetime
	Offset   Offset
}

// AnyDatetimeKind tags which of the four fixed-shape variants an
// AnyDatetime holds.
type AnyDatetimeKind int

const (
	AnyOffsetDatetime AnyDatetimeKind = iota
	AnyLocalDatetime
	AnyLocalDate
	AnyLocalTime
)

// AnyDatetime is the sum over the four datetime variants: the decoded
// shape of §6's generic binding-channel wrapper, which accepts any of
// the four kind-specific sentinel keys rather than requiring one chosen
// in advance. Built by toml.DecodeAnyDatetime from a visited sentinel
// table, never by the builder — the tree itself always stores one
// concrete datetime kind.
type AnyDatetime struct {
	Kind           AnyDatetimeKind
	OffsetDatetime OffsetDatetime
	LocalDatetime  LocalDatetime
	LocalDate      LocalDate
	LocalTime      LocalTime
}

// Datetime is the compatibility shape from §3.2/Q1: an optional date,
// optional time, optional offset, with the concrete variant inferred from
// which components are present. Q1 is resolved in favor of tightening at
// construction time (see NewDatetime): this module never holds an
// invalid combination in memory.
type Datetime struct {
	HasDate bool
	HasTime bool
	HasZone bool
	Date    LocalDate
	Time    LocalTime
	Zone    Offset
}

// NewDatetime validates a combination of components against the four
// legal shapes (date only, date+time, date+time+offset; time only) and
// rejects every other permutation (e.g. offset without time). This is
// the Q1 resolution: invalid combinations are refused at construction,
// not deferred to serialization.
func NewDatetime(hasDate bool, date LocalDate, hasTime bool, time LocalTime, hasZone bool, zone Offset) (Datetime, error) {
	if hasZone && !hasTime {
		return Datetime{}, fmt.Errorf("toml: invalid date-time: offset without time")
	}
	if hasZone && !hasDate {
		return Datetime{}, fmt.Errorf("toml: invalid date-time: offset without date")
	}
	if !hasDate && !hasTime {
		return Datetime{}, fmt.Errorf("toml: invalid date-time: neither date nor time present")
	}
	return Datetime{
		HasDate: hasDate, HasTime: hasTime, HasZone: hasZone,
		Date: date, Time: time, Zone: zone,
	}, nil
}

// --- fixed-size binary encodings (§3.2) ---

// EncodeLocalDate writes the 4-byte encoding: u16 year LE, u8 month, u8 day.
func EncodeLocalDate(d LocalDate) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(d.Year))
	b[2] = d.Month
	b[3] = d.Day
	return b
}

// DecodeLocalDate reads the 4-byte encoding produced by EncodeLocalDate.
func DecodeLocalDate(b []byte) LocalDate {
	return LocalDate{
		Year:  int16(binary.LittleEndian.Uint16(b[0:2])),
		Month: b[2],
		Day:   b[3],
	}
}

// EncodeLocalTime writes the 8-byte encoding: u8 hour, u8 minute, u8
// second, 1 padding byte, u32 nanosecond LE.
func EncodeLocalTime(t LocalTime) [8]byte {
	var b [8]byte
	b[0] = t.Hour
	b[1] = t.Minute
	b[2] = t.Second
	b[3] = 0
	binary.LittleEndian.PutUint32(b[4:8], t.Nanosecond)
	return b
}

// DecodeLocalTime reads the 8-byte encoding produced by EncodeLocalTime.
func DecodeLocalTime(b []byte) LocalTime {
	return LocalTime{
		Hour:       b[0],
		Minute:     b[1],
		Second:     b[2],
		Nanosecond: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// EncodeLocalDatetime writes the 12-byte encoding: LocalDate || LocalTime.
func EncodeLocalDatetime(dt LocalDatetime) [12]byte {
	var b [12]byte
	d := EncodeLocalDate(dt.Date)
	t := EncodeLocalTime(dt.Time)
	copy(b[0:4], d[:])
	copy(b[4:12], t[:])
	return b
}

// DecodeLocalDatetime reads the 12-byte encoding produced by
// EncodeLocalDatetime.
func DecodeLocalDatetime(b []byte) LocalDatetime {
	return LocalDatetime{
		Date: DecodeLocalDate(b[0:4]),
		Time: DecodeLocalTime(b[4:12]),
	}
}

// offsetAbsentSentinel marks the Z offset in the padding byte of the
// 14-byte OffsetDatetime encoding, per §3.2 ("Z encoded as a
// distinguished sentinel ... held in the padding byte").
const offsetAbsentSentinel = 1

// EncodeOffsetDatetime writes the 14-byte encoding: LocalDatetime || i16
// minutes LE, with the Z sentinel held in the LocalTime's padding byte.
func EncodeOffsetDatetime(dt OffsetDatetime) [14]byte {
	var b [14]byte
	ldt := EncodeLocalDatetime(dt.Datetime)
	copy(b[0:12], ldt[:])
	if dt.Offset.Z {
		b[7] = offsetAbsentSentinel
		binary.LittleEndian.PutUint16(b[12:14], 0)
	} else {
		binary.LittleEndian.PutUint16(b[12:14], uint16(dt.Offset.Minutes))
	}
	return b
}

// DecodeOffsetDatetime reads the 14-byte encoding produced by
// EncodeOffsetDatetime.
func DecodeOffsetDatetime(b []byte) OffsetDatetime {
	dt := DecodeLocalDatetime(b[0:12])
	dt.Time.Nanosecond = DecodeLocalTime(b[4:12]).Nanosecond
	var off Offset
	if b[7] == offsetAbsentSentinel {
		off = Offset{Z: true}
	} else {
		off = Offset{Minutes: int16(binary.LittleEndian.Uint16(b[12:14]))}
	}
	return OffsetDatetime{Datetime: dt, Offset: off}
}

// IsLeapYear reports whether year is a leap year under the proleptic
// Gregorian calendar rule used by §4.3: divisible by 4 and not by 100,
// unless also divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonthTable = [...]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month (1..12) of
// year, accounting for leap years in February.
func DaysInMonth(year int, month int) uint8 {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonthTable[month-1]
}
