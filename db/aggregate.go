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
	"encoding/json"
	"math"
	"sort"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
	statmath "github.com/abcum/tempo/util/math"
)

// Bucket is one aggregation window's finalised output (§4.F).
type Bucket struct {
	Key    uint64
	Fields []BucketField
}

// BucketField is one requested field's `[kind, value, kind, value …]`
// output, grouped by field name while preserving the order fields were
// first requested in (§9: "keep it explicit... rather than wrapping in
// a nested map-of-map").
type BucketField struct {
	Name  string
	Pairs []interface{}
}

// accumulator is the per-(field, kind) running state for one bucket,
// implementing the table in spec.md §4.F. A fresh accumulator is
// created per bucket per requested (field, kind) pair.
type accumulator struct {
	kind query.AggKind

	count int64
	sum   float64

	// Welford incremental mean/variance, shared by avg and stdev.
	n     int64
	mean  float64
	m2    float64

	median []float64

	haveMinMax bool
	minRaw     string
	maxRaw     string

	haveFirst bool
	firstRaw  string
	lastRaw   string
}

func newAccumulator(kind query.AggKind) *accumulator {
	return &accumulator{kind: kind}
}

// Add feeds one entry's raw field value (and whether the field was
// present at all) into the accumulator.
func (a *accumulator) Add(raw string, present bool) {

	switch a.kind {

	case query.AggCount:
		if present {
			a.count++
		}

	case query.AggRate:
		a.count++

	case query.AggSum:
		f := 0.0
		if present {
			if v := query.Coerce(raw); v.Numeric() {
				f, _ = v.Float()
			}
		}
		a.sum += f

	case query.AggAvg, query.AggStdev:
		if !present {
			return
		}
		v := query.Coerce(raw)
		f, ok := v.Float()
		if !ok {
			return
		}
		a.n++
		delta := f - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (f - a.mean)

	case query.AggMedian:
		if !present {
			return
		}
		if v := query.Coerce(raw); v.Numeric() {
			f, _ := v.Float()
			a.median = append(a.median, f)
		}

	case query.AggMin, query.AggMax, query.AggRange:
		if !present {
			return
		}
		if !a.haveMinMax {
			a.minRaw, a.maxRaw = raw, raw
			a.haveMinMax = true
			return
		}
		if lessRaw(raw, a.minRaw) {
			a.minRaw = raw
		}
		if lessRaw(a.maxRaw, raw) {
			a.maxRaw = raw
		}

	case query.AggFirst:
		if present && !a.haveFirst {
			a.firstRaw = raw
			a.haveFirst = true
		}

	case query.AggLast:
		if present {
			a.lastRaw = raw
		}
	}
}

// lessRaw compares two raw field values numerically when both parse as
// numbers, and lexicographically otherwise (§4.F "numeric if parseable
// else lexicographic").
func lessRaw(a, b string) bool {
	av, bv := query.Coerce(a), query.Coerce(b)
	if av.Numeric() && bv.Numeric() {
		af, _ := av.Float()
		bf, _ := bv.Float()
		return af < bf
	}
	return a < b
}

// Finalize renders the accumulator's result per its finaliser column.
func (a *accumulator) Finalize(bucket uint64) interface{} {

	switch a.kind {

	case query.AggCount:
		return a.count

	case query.AggRate:
		if bucket == 0 {
			return 0.0
		}
		return float64(a.count) / float64(bucket)

	case query.AggSum:
		return a.sum

	case query.AggAvg:
		return a.mean

	case query.AggStdev:
		if a.n < 2 {
			return 0.0
		}
		return math.Sqrt(a.m2 / float64(a.n-1))

	case query.AggMedian:
		if len(a.median) == 0 {
			return 0.0
		}
		// Delegates to the batch median helper: a bucket's values are
		// already bounded by the range scan's count cap, so collecting
		// them before sorting costs nothing the pipeline doesn't already
		// pay for.
		return statmath.Median(a.median)

	case query.AggMin:
		return rawOrNumber(a.minRaw, a.haveMinMax)

	case query.AggMax:
		return rawOrNumber(a.maxRaw, a.haveMinMax)

	case query.AggRange:
		if !a.haveMinMax {
			return 0.0
		}
		minV, minOK := query.Coerce(a.minRaw).Float()
		maxV, maxOK := query.Coerce(a.maxRaw).Float()
		if !minOK || !maxOK {
			return 0.0
		}
		return maxV - minV

	case query.AggFirst:
		return a.firstRaw

	case query.AggLast:
		return a.lastRaw
	}

	return nil
}

func rawOrNumber(raw string, have bool) interface{} {
	if !have {
		return 0.0
	}
	return coercedValue(raw)
}

// Aggregate buckets entries by floor(ts/bucket)*bucket and runs every
// requested (field, kind) accumulator per bucket, per §4.F.
func Aggregate(agg *query.Aggregate, entries []kvs.Entry) ([]Bucket, error) {

	if agg.Bucket == 0 {
		return nil, argErr("AGGREGATION", "time bucket must be positive")
	}

	type bucketState struct {
		key  uint64
		accs []*accumulator
	}

	var order []uint64
	states := make(map[uint64]*bucketState)

	for _, e := range entries {
		key := e.ID.Timestamp - (e.ID.Timestamp % agg.Bucket)
		st, ok := states[key]
		if !ok {
			st = &bucketState{key: key}
			for _, af := range agg.Fields {
				st.accs = append(st.accs, newAccumulator(af.Kind))
			}
			states[key] = st
			order = append(order, key)
		}
		for i, af := range agg.Fields {
			raw, present := e.Fields.Get(af.Field)
			st.accs[i].Add(raw, present)
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]Bucket, 0, len(order))
	for _, key := range order {
		st := states[key]
		out = append(out, Bucket{Key: key, Fields: groupBucketFields(agg, st.accs, agg.Bucket)})
	}

	return out, nil
}

// groupBucketFields flattens the per-(field,kind) accumulators into
// BucketFields grouped by field name, preserving the order field names
// were first requested in; a field requested under multiple kinds gets
// repeating [kind, value, kind, value …] pairs.
func groupBucketFields(agg *query.Aggregate, accs []*accumulator, bucket uint64) []BucketField {

	var order []string
	byName := make(map[string]*BucketField)

	for i, af := range agg.Fields {
		bf, ok := byName[af.Field]
		if !ok {
			bf = &BucketField{Name: af.Field}
			byName[af.Field] = bf
			order = append(order, af.Field)
		}
		bf.Pairs = append(bf.Pairs, af.Kind.String(), accs[i].Finalize(bucket))
	}

	out := make([]BucketField, len(order))
	for i, name := range order {
		out[i] = *byName[name]
	}
	return out
}

// bucketsReply renders buckets as the flat alternating
// [bucket_ts, bucket_fields]… native reply (§6).
func bucketsReply(buckets []Bucket) []interface{} {
	out := make([]interface{}, 0, len(buckets)*2)
	for _, b := range buckets {
		fields := make([]interface{}, 0, len(b.Fields)*2)
		for _, f := range b.Fields {
			fields = append(fields, f.Name, f.Pairs)
		}
		out = append(out, b.Key, fields)
	}
	return out
}

// bucketsJSON renders the same flat shape as JSON text.
func bucketsJSON(buckets []Bucket) (string, error) {
	b, err := json.Marshal(bucketsReply(buckets))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// entriesJSON renders `[id, fields]…` entries as JSON text, relying on
// query.Record's order-preserving MarshalJSON for each fields object.
func entriesJSON(entries []kvs.Entry) (string, error) {
	out := make([]interface{}, len(entries))
	for i, e := range entries {
		out[i] = []interface{}{e.ID.String(), e.Fields}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
