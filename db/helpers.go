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

package db

import (
	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
	"github.com/abcum/tempo/util/ints"
)

// parseFields turns a flat `field val field val…` tail into a Record,
// enforcing that the list is even and non-empty per spec.md §6 ("field
// count must be even and ≥ 2").
func parseFields(command string, toks []string) (query.Record, error) {
	if len(toks) == 0 || len(toks)%2 != 0 {
		return nil, argErr(command, "expected an even, non-empty field/value list")
	}
	fields := make(query.Record, 0, len(toks)/2)
	for i := 0; i < len(toks); i += 2 {
		fields = append(fields, query.Field{Name: toks[i], Value: toks[i+1]})
	}
	return fields, nil
}

// runPipeline streams entries through filter and projection per §4.E.
// LIMIT caps the underlying collaborator scan itself (§4.C), so the
// pipeline never materialises more than that cap's worth of raw entries.
func runPipeline(tx kvs.TX, key string, spec *query.QuerySpec, reverse bool) ([]kvs.Entry, error) {

	count := 0
	if spec.HasCount {
		count = ints.Below(spec.Count, 0)
	}

	var entries []kvs.Entry
	var err error
	if reverse {
		entries, err = tx.ScanReverse(key, spec.Min, spec.Max, count)
	} else {
		entries, err = tx.Scan(key, spec.Min, spec.Max, count)
	}
	if err != nil {
		return nil, collabErr(err)
	}

	out := make([]kvs.Entry, 0, len(entries))
	for _, e := range entries {
		if spec.Filter != nil && !spec.Filter.Eval(e.Fields.Getter()) {
			continue
		}
		fields := query.Project(spec.Projection, spec.ProjectionSet, e.Fields)
		out = append(out, kvs.Entry{ID: e.ID, Fields: fields})
	}

	return out, nil
}

// recordReply renders a record as the native alternating name/value
// reply shape, coercing each value to its opportunistic type.
func recordReply(r query.Record) []interface{} {
	out := make([]interface{}, 0, len(r)*2)
	for _, f := range r {
		out = append(out, f.Name, coercedValue(f.Value))
	}
	return out
}

// coercedValue returns a value in its opportunistically coerced Go
// form: int64 for integers, the original text for floats (to round-trip
// exactly, per spec.md §4.A), bool for booleans, and the raw string
// otherwise.
func coercedValue(raw string) interface{} {
	v := query.Coerce(raw)
	switch v.Kind {
	case query.KindInt:
		return v.Int
	case query.KindBool:
		return v.Bool
	default:
		return raw
	}
}

// entryReply renders one (id, fields) pair as the native `[id, fields]`
// shape used by range-family commands.
func entryReply(e kvs.Entry) []interface{} {
	return []interface{}{e.ID.String(), recordReply(e.Fields)}
}

func idsOf(entries []kvs.Entry) []query.ID {
	out := make([]query.ID, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
