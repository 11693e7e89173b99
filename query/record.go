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

import "bytes"

// Field is a single ordered (name, raw text) pair. A vector of Fields —
// not a map — is the record representation throughout the engine, so
// that insertion order survives filtering, projection, and output
// (§9 "preserving ordered hash-like records").
type Field struct {
	Name  string
	Value string
}

// Record is an entry's ordered field list.
type Record []Field

// Get implements FieldGetter by linear scan; records are small (field
// count is bounded by what one `add` call supplies) so a transient index
// buys nothing here.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Getter adapts a Record to the FieldGetter shape Predicate.Eval wants.
func (r Record) Getter() FieldGetter {
	return r.Get
}

// Project applies a projection mode to a record, emitting a new record
// of the surviving fields in their original order (§4.D). Mode None
// returns r unchanged.
func Project(mode ProjectionMode, set map[string]bool, r Record) Record {
	switch mode {
	case ProjectionInclude:
		out := make(Record, 0, len(r))
		for _, f := range r {
			if set[f.Name] {
				out = append(out, f)
			}
		}
		return out
	case ProjectionExclude:
		out := make(Record, 0, len(r))
		for _, f := range r {
			if !set[f.Name] {
				out = append(out, f)
			}
		}
		return out
	default:
		return r
	}
}

// MarshalJSON gives Record (and so any struct embedding it) a stable,
// order-preserving JSON object encoding — plain encoding/json maps lose
// field order, which the engine must not do (§4 "Record JSON shape").
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, f.Name)
		buf.WriteByte(':')
		writeJSONValue(&buf, f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// writeJSONValue writes a raw field value using its coerced kind, so
// numbers and booleans serialise unquoted.
func writeJSONValue(buf *bytes.Buffer, raw string) {
	v := Coerce(raw)
	switch v.Kind {
	case KindInt, KindFloat:
		buf.WriteString(raw)
	case KindBool:
		buf.WriteString(raw)
	default:
		writeJSONString(buf, raw)
	}
}
