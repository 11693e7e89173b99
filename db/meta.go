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

// cmdSize implements `size K`.
func cmdSize(tx kvs.TX, keys []string, args []string) (interface{}, error) {
	exists, err := tx.Exists(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}
	if !exists {
		return nil, nil
	}
	n, err := tx.Len(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}
	return int64(n), nil
}

// cmdExists implements `exists K ts`.
func cmdExists(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) != 1 {
		return nil, argErr("exists", "expected a single timestamp")
	}

	id, err := query.ParseID(args[0])
	if err != nil {
		return nil, argErr("exists", "malformed id %q", args[0])
	}

	entry, err := tx.Get(keys[0], id)
	if err != nil {
		return nil, collabErr(err)
	}
	if entry == nil {
		return int64(0), nil
	}
	return int64(1), nil
}

// cmdSpan implements `span K`.
func cmdSpan(tx kvs.TX, keys []string, args []string) (interface{}, error) {
	first, last, err := tx.Span(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}
	if first == nil {
		return nil, nil
	}
	return []interface{}{first.String(), last.String()}, nil
}

// cmdInfo implements `info K`, a pass-through of the collaborator's
// metadata probe.
func cmdInfo(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	exists, err := tx.Exists(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}
	if !exists {
		return nil, nil
	}

	n, err := tx.Len(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}
	first, last, err := tx.Span(keys[0])
	if err != nil {
		return nil, collabErr(err)
	}

	info := []interface{}{"length", int64(n)}
	if first != nil {
		info = append(info, "first_id", first.String(), "last_id", last.String())
	}
	return info, nil
}

// cmdTimes implements `times K [min max]`.
func cmdTimes(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	min, max := query.MinID, query.MaxID
	var err error

	switch len(args) {
	case 0:
	case 2:
		if min, err = query.ParseBound(args[0]); err != nil {
			return nil, argErr("times", "malformed min bound %q", args[0])
		}
		if max, err = query.ParseBound(args[1]); err != nil {
			return nil, argErr("times", "malformed max bound %q", args[1])
		}
	default:
		return nil, argErr("times", "expected zero or two (min, max) arguments")
	}

	entries, err := tx.Scan(keys[0], min, max, 0)
	if err != nil {
		return nil, collabErr(err)
	}

	out := make([]interface{}, len(entries))
	for i, e := range entries {
		out[i] = e.ID.String()
	}
	return out, nil
}
