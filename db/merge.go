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

const mergeOptions = query.OptLimit | query.OptFilter | query.OptLabels | query.OptRedact

// cmdMerge implements `merge K_a K_b K_dst min max [opts]`: a two-pointer
// ordered merge of two filtered/projected ranges into K_dst (§4.G). On a
// full tie the left side's entry is kept and both pointers advance,
// which is how same-id duplicates across the two sources collapse to one.
func cmdMerge(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	spec, err := parseRangeArgs("merge", args, mergeOptions)
	if err != nil {
		return nil, err
	}

	left, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}
	right, err := runPipeline(tx, keys[1], spec, false)
	if err != nil {
		return nil, err
	}

	merged := mergeOrdered(left, right)

	dest := keys[2]
	for _, e := range merged {
		if err := writeEntry(tx, query.StorageTimeseries, dest, e.ID, e.Fields); err != nil {
			return nil, err
		}
	}

	return int64(len(merged)), nil
}

// mergeOrdered walks both already-sorted slices with two pointers. The
// tail flush below intentionally starts each loop from the live pointer
// (i, j), not from 0: indexing from a fixed start would replay entries
// already merged into the output, a bug in the routine this was modeled
// on that is fixed here rather than reproduced.
func mergeOrdered(left, right []kvs.Entry) []kvs.Entry {

	out := make([]kvs.Entry, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch c := query.Compare(left[i].ID, right[j].ID); {
		case c < 0:
			out = append(out, left[i])
			i++
		case c > 0:
			out = append(out, right[j])
			j++
		default:
			out = append(out, left[i])
			i++
			j++
		}
	}

	for ; i < len(left); i++ {
		out = append(out, left[i])
	}
	for ; j < len(right); j++ {
		out = append(out, right[j])
	}

	return out
}
