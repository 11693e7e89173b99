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

const getPopOptions = query.OptLabels | query.OptRedact | query.OptFormat

// cmdGet implements `get K ts [LABELS…|REDACT…] [FORMAT …]`.
func cmdGet(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) == 0 {
		return nil, argErr("get", "expected a timestamp")
	}

	id, err := query.ParseID(args[0])
	if err != nil {
		return nil, argErr("get", "malformed id %q", args[0])
	}

	spec := &query.QuerySpec{}
	if err := query.ParseOptions(args[1:], getPopOptions, spec); err != nil {
		return nil, argErr("get", err.Error())
	}

	entry, err := getUnique(tx, keys[0], id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	fields := query.Project(spec.Projection, spec.ProjectionSet, entry.Fields)

	return formatRecordReply("get", spec.Format, fields)
}

// cmdPop implements `pop K ts [opts]`: as get, then deletes the id.
func cmdPop(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	reply, err := cmdGet(tx, keys, args)
	if err != nil || reply == nil {
		return reply, err
	}

	id, _ := query.ParseID(args[0])
	if _, err := tx.Delete(keys[0], []query.ID{id}); err != nil {
		return nil, collabErr(err)
	}

	return reply, nil
}

// getUnique performs a point lookup and then re-verifies uniqueness
// with a bounded scan over exactly [id, id]. kvs.TX.Get is typed to
// return at most one Entry, so it cannot itself surface a collaborator
// that hands back more than one record for what must be a unique id —
// but nothing stops a kvs.DB implementation other than the shipped
// memory backend from violating that contract under corruption. A scan
// bounded to a single id that still yields more than one entry is
// exactly spec.md §7's "point lookup returns more than one entry for a
// unique id", so it is reported as an InvariantViolation rather than
// silently resolved by picking whichever entry Get happened to return.
func getUnique(tx kvs.TX, key string, id query.ID) (*kvs.Entry, error) {

	entry, err := tx.Get(key, id)
	if err != nil {
		return nil, collabErr(err)
	}
	if entry == nil {
		return nil, nil
	}

	dup, err := tx.Scan(key, id, id, 2)
	if err != nil {
		return nil, collabErr(err)
	}
	if len(dup) > 1 {
		return nil, &InvariantViolation{Reason: fmt.Sprintf("%s: point lookup for id %s returned %d entries", key, id, len(dup))}
	}

	return entry, nil
}

// formatRecordReply renders fields as the native alternating
// name/value reply, or as JSON text when FORMAT json was requested.
func formatRecordReply(command string, format query.Format, fields query.Record) (interface{}, error) {
	if format == query.FormatJSON {
		text, err := jsonRecordText(fields)
		if err != nil {
			return nil, argErr(command, "failed to encode JSON reply: %v", err)
		}
		return text, nil
	}
	return recordReply(fields), nil
}

func jsonRecordText(fields query.Record) (string, error) {
	b, err := fields.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
