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

const (
	countOptions    = query.OptFilter
	rangeOptions    = query.OptLimit | query.OptAggregation | query.OptFilter | query.OptLabels | query.OptRedact | query.OptFormat
	remrangeOptions = query.OptLimit | query.OptFilter
)

// parseRangeArgs parses `K min max [opts]` for every range-family
// command, filling a fresh QuerySpec.
func parseRangeArgs(command string, args []string, allowed query.Option) (*query.QuerySpec, error) {

	if len(args) < 2 {
		return nil, argErr(command, "expected a min and max bound")
	}

	min, err := query.ParseBound(args[0])
	if err != nil {
		return nil, argErr(command, "malformed min bound %q", args[0])
	}
	max, err := query.ParseBound(args[1])
	if err != nil {
		return nil, argErr(command, "malformed max bound %q", args[1])
	}

	spec := &query.QuerySpec{Min: min, Max: max}
	if err := query.ParseOptions(args[2:], allowed, spec); err != nil {
		return nil, argErr(command, err.Error())
	}

	return spec, nil
}

// cmdCount implements `count K min max [FILTER …]`.
func cmdCount(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	spec, err := parseRangeArgs("count", args, countOptions)
	if err != nil {
		return nil, err
	}

	entries, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}

	return int64(len(entries)), nil
}

// cmdRange implements `range K min max [opts]`.
func cmdRange(tx kvs.TX, keys []string, args []string) (interface{}, error) {
	return rangeLike("range", tx, keys, args, false)
}

// cmdRevRange implements `revrange K min max [opts]`.
func cmdRevRange(tx kvs.TX, keys []string, args []string) (interface{}, error) {
	return rangeLike("revrange", tx, keys, args, true)
}

// cmdPopRange implements `poprange K min max [opts]`: as range, then
// deletes the matched ids.
func cmdPopRange(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	spec, err := parseRangeArgs("poprange", args, rangeOptions)
	if err != nil {
		return nil, err
	}

	entries, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}

	reply, err := shapeRangeReply(spec, entries)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Delete(keys[0], idsOf(entries)); err != nil {
		return nil, collabErr(err)
	}

	return reply, nil
}

// cmdRemRange implements `remrange K min max [opts]`: count of ids
// deleted.
func cmdRemRange(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	spec, err := parseRangeArgs("remrange", args, remrangeOptions)
	if err != nil {
		return nil, err
	}

	entries, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}

	n, err := tx.Delete(keys[0], idsOf(entries))
	if err != nil {
		return nil, collabErr(err)
	}

	return int64(n), nil
}

func rangeLike(command string, tx kvs.TX, keys []string, args []string, reverse bool) (interface{}, error) {

	spec, err := parseRangeArgs(command, args, rangeOptions)
	if err != nil {
		return nil, err
	}

	entries, err := runPipeline(tx, keys[0], spec, reverse)
	if err != nil {
		return nil, err
	}

	return shapeRangeReply(spec, entries)
}

// shapeRangeReply implements §6's range reply shape: a flat alternating
// [bucket_ts, bucket_fields]… list when AGGREGATION is set, otherwise
// [id, fields]… — either rendered as JSON text when FORMAT json was
// requested.
func shapeRangeReply(spec *query.QuerySpec, entries []kvs.Entry) (interface{}, error) {

	if spec.Aggregate != nil {
		buckets, err := Aggregate(spec.Aggregate, entries)
		if err != nil {
			return nil, err
		}
		if spec.Format == query.FormatJSON {
			return bucketsJSON(buckets)
		}
		return bucketsReply(buckets), nil
	}

	if spec.Format == query.FormatJSON {
		return entriesJSON(entries)
	}

	out := make([]interface{}, len(entries))
	for i, e := range entries {
		out[i] = entryReply(e)
	}
	return out, nil
}
