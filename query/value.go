// Copyright © 2016 Abcum Ltd
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

package query

import "strconv"

// Kind tags the dynamic type a raw text value coerces to. Every stored
// value is text; Kind is always derived at read time, never persisted.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// Value pairs a raw textual value with its opportunistically coerced
// kind. Floats keep their original text so they round-trip exactly as
// the caller supplied them; only ints and bools are given native Go
// representations, since those never lose precision.
type Value struct {
	Raw   string
	Kind  Kind
	Int   int64
	Bool  bool
}

// Coerce classifies a raw text value per spec §4.A: an integer literal
// becomes KindInt, a literal with a fractional/exponent part stays text
// but is tagged KindFloat (comparable as a float on demand), "true"/
// "false" become KindBool, anything else is KindString.
func Coerce(raw string) Value {
	if raw == "true" {
		return Value{Raw: raw, Kind: KindBool, Bool: true}
	}
	if raw == "false" {
		return Value{Raw: raw, Kind: KindBool, Bool: false}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{Raw: raw, Kind: KindInt, Int: n}
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Raw: raw, Kind: KindFloat}
	}
	return Value{Raw: raw, Kind: KindString}
}

// Float returns the value's float64 interpretation and whether one is
// possible at all (KindInt and KindFloat both qualify).
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		f, err := strconv.ParseFloat(v.Raw, 64)
		return f, err == nil
	}
	return 0, false
}

// Numeric reports whether the value coerces to a number.
func (v Value) Numeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// FormatNumber renders a float the way the engine reports derived
// numeric results: whole values print without a trailing ".0", non-whole
// values keep their fractional digits.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
