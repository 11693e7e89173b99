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
	"strings"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
)

const statsOptions = query.OptFilter | query.OptLabels

// distinctGroup is one unique LABELS tuple seen in the scanned range,
// plus how many entries carried it.
type distinctGroup struct {
	fields query.Record
	count  int64
}

// groupByLabels scans K's range and groups entries by their projected
// LABELS tuple, preserving the order each tuple was first seen in.
// LABELS is mandatory for this command family (§6): without it there is
// no tuple to group by.
func groupByLabels(command string, tx kvs.TX, keys []string, args []string) ([]distinctGroup, error) {

	spec, err := parseRangeArgs(command, args, statsOptions)
	if err != nil {
		return nil, err
	}
	if spec.Projection != query.ProjectionInclude {
		return nil, argErr(command, "LABELS is required")
	}

	entries, err := runPipeline(tx, keys[0], spec, false)
	if err != nil {
		return nil, err
	}

	var order []string
	byKey := make(map[string]*distinctGroup)

	for _, e := range entries {
		key := tupleKey(e.Fields)
		g, ok := byKey[key]
		if !ok {
			g = &distinctGroup{fields: e.Fields}
			byKey[key] = g
			order = append(order, key)
		}
		g.count++
	}

	out := make([]distinctGroup, len(order))
	for i, key := range order {
		out[i] = *byKey[key]
	}
	return out, nil
}

func tupleKey(r query.Record) string {
	var b strings.Builder
	for _, f := range r {
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(f.Value)
		b.WriteByte(0)
	}
	return b.String()
}

// cmdDistinct implements `distinct K min max LABELS name+`: the unique
// label tuples seen, in first-occurrence order.
func cmdDistinct(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	groups, err := groupByLabels("distinct", tx, keys, args)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, len(groups))
	for i, g := range groups {
		out[i] = recordReply(g.fields)
	}
	return out, nil
}

// cmdCountDistinct implements `count_distinct K min max LABELS name+`.
func cmdCountDistinct(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	groups, err := groupByLabels("count_distinct", tx, keys, args)
	if err != nil {
		return nil, err
	}
	return int64(len(groups)), nil
}

// cmdBasicStats implements `basic_stats K min max LABELS name+`: each
// distinct tuple's fields plus how many entries carried it.
func cmdBasicStats(tx kvs.TX, keys []string, args []string) (interface{}, error) {

	groups, err := groupByLabels("basic_stats", tx, keys, args)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, len(groups))
	for i, g := range groups {
		row := recordReply(g.fields)
		row = append(row, "count", g.count)
		out[i] = row
	}
	return out, nil
}
