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
	"fmt"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
)

// writeEntry dispatches to the stream or hash sink per §4.H. The
// collaborator spec.md §1 assumes exposes only stream primitives, so
// the "hash" sink is modeled as a single-field stream entry whose value
// is the payload's JSON text, rather than a true secondary hash
// structure — see DESIGN.md.
func writeEntry(tx kvs.TX, storage query.Storage, dest string, id query.ID, fields query.Record) error {
	if storage == query.StorageHash {
		return writeHashEntry(tx, dest, id, fields)
	}
	return writeStreamEntry(tx, dest, id, fields)
}

// writeStreamEntry appends (ts, fields) via the collaborator; an empty
// record is stored as a single field "value" with an empty value (§4.H).
func writeStreamEntry(tx kvs.TX, dest string, id query.ID, fields query.Record) error {
	if len(fields) == 0 {
		fields = query.Record{{Name: "value", Value: ""}}
	}
	return collabErr(tx.Append(dest, id, fields))
}

// writeHashEntry stringifies the payload as JSON and stores it as a
// single field at id.
func writeHashEntry(tx kvs.TX, dest string, id query.ID, fields query.Record) error {
	text, err := fields.MarshalJSON()
	if err != nil {
		return argErr("copy", "failed to encode hash payload: %v", err)
	}
	return collabErr(tx.Append(dest, id, query.Record{{Name: "value", Value: string(text)}}))
}

// flattenBucket joins each bucket field's name and kind with "_" (§4.H:
// "per-bucket output fields are flattened using field_kind names"),
// producing an ordinary ordered record suitable for either sink.
func flattenBucket(b Bucket) query.Record {
	var out query.Record
	for _, f := range b.Fields {
		for i := 0; i+1 < len(f.Pairs); i += 2 {
			kind, _ := f.Pairs[i].(string)
			out = append(out, query.Field{
				Name:  f.Name + "_" + kind,
				Value: valueToText(f.Pairs[i+1]),
			})
		}
	}
	return out
}

func valueToText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		return query.FormatNumber(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
