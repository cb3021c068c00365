/*
Adapted from SqlString.js: https://github.com/mysqljs/sqlstring/blob/master/lib/SqlString.js
Copyright (c) 2016 Tim Griesser (tgriesser@gmail.com)
Copyright (c) 2012 Felix Geisendörfer (felix@debuggable.com) and contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package escape converts single Go values and identifiers into literal SQL
// text using the default convention: double-quoted identifiers and
// single-quoted, backslash-escaped string literals.
//
// Every function here is pure and total. Values without a dedicated rule fall
// back to their JSON encoding instead of failing.
package escape

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// Null is the SQL keyword emitted for absent values.
	Null = "NULL"

	// TimezoneLocal formats dates in the process's local wall-clock time.
	TimezoneLocal = "local"

	// TimezoneUTC formats dates in UTC with no offset applied.
	TimezoneUTC = "Z"
)

// offsetPattern matches "+HH", "-HH:MM", "+HHMM" and the space-signed forms
// that appear when a "+" is URL-decoded. It is unanchored.
var offsetPattern = regexp.MustCompile(`([+\- ])(\d\d):?(\d\d)?`)

// specialChars lists every byte String escapes with a backslash.
const specialChars = "\x00\b\t\n\r\x1a\"'\\"

var replacements = [256]string{
	0x00: `\0`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\r': `\r`,
	0x1a: `\Z`,
	'"':  `\"`,
	'\'': `\'`,
	'\\': `\\`,
}

// Rules are the quoting routines Literal dispatches to. Dialects replace the
// string, binary and structural forms while sharing the rest of the dispatch.
type Rules struct {
	// String quotes text.
	String func(s string) string

	// Binary renders byte slices.
	Binary func(b []byte) string

	// Structural receives the JSON encoding of maps, slices, structs and other
	// values with no dedicated rule. Nil leaves the JSON as is.
	Structural func(json string) string
}

// Default is the rule set used by Literal.
var Default = Rules{
	String: String,
	Binary: Binary,
}

// Literal renders value as SQL literal text using Default.
func Literal(value any, timezone string) string {
	return Default.Literal(value, timezone)
}

// Literal renders value as SQL literal text.
//
// Dates are shifted according to timezone before formatting: "local" uses the
// local wall clock, "Z" (or an unparseable offset) leaves the instant in UTC,
// and "+HH", "-HH:MM" style offsets are applied before reading UTC fields.
func (r Rules) Literal(value any, timezone string) string {
	switch v := value.(type) {
	case nil:
		return Null
	case string:
		return r.String(v)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return r.Binary(v)
	case time.Time:
		return r.String(Date(v, timezone))
	case driver.Valuer:
		return r.valuer(v, timezone)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return Number(rv.Float(), 32)
	case reflect.Float64:
		return Number(rv.Float(), 64)
	case reflect.String:
		return r.String(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return r.Literal(rv.Elem().Interface(), timezone)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return r.Binary(rv.Bytes())
		}
	}

	return r.structural(value)
}

func (r Rules) valuer(v driver.Valuer, timezone string) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null
	}
	dv, err := v.Value()
	if err != nil {
		return r.structural(v)
	}
	if _, ok := dv.(driver.Valuer); ok {
		return r.structural(dv)
	}
	return r.Literal(dv, timezone)
}

// structural encodes values with no SQL-specific rule as JSON text. Values
// JSON cannot represent are quoted in their fmt form.
func (r Rules) structural(value any) string {
	out, err := json.Marshal(value)
	if err != nil {
		return r.String(fmt.Sprint(value))
	}
	if r.Structural == nil {
		return string(out)
	}
	return r.Structural(string(out))
}

// String wraps s in single quotes, backslash-escaping NUL, backspace, tab,
// newline, carriage return, Ctrl-Z, both quote characters and backslash.
func String(s string) string {
	i := strings.IndexAny(s, specialChars)
	if i < 0 {
		return "'" + s + "'"
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteByte('\'')
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if r := replacements[c]; r != "" {
			b.WriteString(r)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}

// Binary renders b as a hex literal: X'<hex>'.
func Binary(b []byte) string {
	return "X'" + hex.EncodeToString(b) + "'"
}

// Number renders f the way JavaScript converts numbers to strings: plain
// decimal notation between 1e-6 and 1e21, exponent notation outside it.
func Number(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bitSize)
		mant, exp, _ := strings.Cut(s, "e")
		// Go pads the exponent to two digits ("1e-07").
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// Date formats t as "YYYY-MM-DD HH:MM:SS.mmm" in the given timezone.
func Date(t time.Time, timezone string) string {
	if timezone == TimezoneLocal {
		t = t.In(time.Local)
	} else {
		if offset, ok := Offset(timezone); ok && offset != 0 {
			t = t.Add(offset)
		}
		t = t.UTC()
	}

	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// Offset parses a timezone offset. "Z" is zero; otherwise the first
// "±HH[:MM]" run is used. ok is false when nothing matches.
func Offset(timezone string) (offset time.Duration, ok bool) {
	if timezone == TimezoneUTC {
		return 0, true
	}

	m := offsetPattern.FindStringSubmatch(timezone)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}

	offset = time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if m[1] == "-" {
		offset = -offset
	}
	return offset, true
}

// Identifier splits name on "." and double-quotes every segment except a bare
// "*", so "users.name" becomes "users"."name" and "users.*" becomes "users".*.
func Identifier(name string) string {
	return Segments(name, func(segment string) string {
		return `"` + segment + `"`
	})
}

// Segments applies quote to every dot-separated segment of name, passing "*"
// through unchanged. Dialect escapers use it to honor the same splitting
// contract as Identifier.
func Segments(name string, quote func(string) string) string {
	segments := strings.Split(name, ".")
	for i, segment := range segments {
		if segment != "*" {
			segments[i] = quote(segment)
		}
	}
	return strings.Join(segments, ".")
}
