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
)

// cmdAdd implements `add K ts field val [field val]…`.
func cmdAdd(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) < 3 {
		return nil, argErr("add", "expected a timestamp and at least one field/value pair")
	}

	id, err := query.ParseID(args[0])
	if err != nil {
		return nil, argErr("add", "malformed id %q", args[0])
	}

	fields, err := parseFields("add", args[1:])
	if err != nil {
		return nil, err
	}

	if err := tx.Append(keys[0], id, fields); err != nil {
		return nil, collabErr(err)
	}

	return id.String(), nil
}

// cmdBulkAdd implements `bulk_add K (ts json_encoded_record)…`. Unlike
// add, a failure on one pair does not abort the remaining ones — each
// entry is atomic on its own per spec.md §4.I, but the bulk call as a
// whole is not.
func cmdBulkAdd(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) == 0 || len(args)%2 != 0 {
		return nil, argErr("bulk_add", "expected (timestamp, JSON record) pairs")
	}

	added := make([]interface{}, 0, len(args)/2)

	for i := 0; i < len(args); i += 2 {

		id, err := query.ParseID(args[i])
		if err != nil {
			added = append(added, nil)
			continue
		}

		fields, err := decodeOrderedRecord(args[i+1])
		if err != nil {
			added = append(added, nil)
			continue
		}

		if err := tx.Append(keys[0], id, fields); err != nil {
			added = append(added, nil)
			continue
		}

		added = append(added, id.String())
	}

	return added, nil
}
