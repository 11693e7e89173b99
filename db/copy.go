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

// copyOptions excludes FORMAT: copy's output goes to a sink, not back to
// the caller, so there is nothing to serialise (§4.C).
const copyOptions = query.OptLimit | query.OptAggregation | query.OptFilter | query.OptLabels | query.OptRedact | query.OptStorage

// cmdCopy implements `copy K_src K_dst min max [opts]`: filters, projects
// and optionally aggregates the source range, then replays the result
// into K_dst via the requested sink (§4.H).
func cmdCopy(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	spec, err := parseRangeArgs("copy", args, copyOptions)
	if err != nil {
		return nil, err
	}

	entries, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}

	dest := keys[1]
	n := 0

	if spec.Aggregate != nil {
		buckets, err := Aggregate(spec.Aggregate, entries)
		if err != nil {
			return nil, err
		}
		for _, b := range buckets {
			id := query.ID{Timestamp: b.Key}
			if err := writeEntry(tx, spec.Storage, dest, id, flattenBucket(b)); err != nil {
				return nil, err
			}
			n++
		}
		return int64(n), nil
	}

	for _, e := range entries {
		if err := writeEntry(tx, spec.Storage, dest, e.ID, e.Fields); err != nil {
			return nil, err
		}
		n++
	}

	return int64(n), nil
}
