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
	"strconv"
	"strings"

	"github.com/abcum/tempo/kvs"
)

// cmdTrimLength implements `trimlength K n [approximate]`: retain only
// the newest n entries.
func cmdTrimLength(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	if len(args) == 0 || len(args) > 2 {
		return nil, argErr("trimlength", "expected a count and an optional `approximate` flag")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, argErr("trimlength", "expected a non-negative count, got %q", args[0])
	}

	approximate := false
	if len(args) == 2 {
		approximate = strings.EqualFold(args[1], "approximate")
	}

	if err := tx.Trim(keys[0], n, approximate); err != nil {
		return nil, collabErr(err)
	}

	return nil, nil
}
