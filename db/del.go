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

// cmdDel implements `del K id…`.
func cmdDel(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) == 0 {
		return nil, argErr("del", "expected at least one id")
	}

	ids := make([]query.ID, 0, len(args))
	for _, tok := range args {
		id, err := query.ParseID(tok)
		if err != nil {
			return nil, argErr("del", "malformed id %q", tok)
		}
		ids = append(ids, id)
	}

	n, err := tx.Delete(keys[0], ids)
	if err != nil {
		return nil, collabErr(err)
	}

	return int64(n), nil
}
