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
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
)

// sampleStdev is the reference sample-stdev (divisor n-1) the accumulator's
// AggStdev finalizer is checked against.
func sampleStdev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func buildS1Entries() []kvs.Entry {
	pattern := []int{31, 41, 59, 26, 53, 58, 97, 93, 23, 84}
	var entries []kvs.Entry
	for i := 10; i < 50; i++ {
		bucket := (i / 10) * 100
		value := bucket + pattern[i%10]
		entries = append(entries, kvs.Entry{
			ID:     query.ID{Timestamp: uint64(i)},
			Fields: query.Record{{Name: "value", Value: strconv.Itoa(value)}},
		})
	}
	return entries
}

func TestAggregateS1Correctness(t *testing.T) {
	entries := buildS1Entries()

	agg := &query.Aggregate{
		Bucket: 10,
		Fields: []query.AggField{
			{Field: "value", Kind: query.AggMin},
			{Field: "value", Kind: query.AggMax},
			{Field: "value", Kind: query.AggAvg},
			{Field: "value", Kind: query.AggMedian},
			{Field: "value", Kind: query.AggSum},
			{Field: "value", Kind: query.AggCount},
			{Field: "value", Kind: query.AggRange},
			{Field: "value", Kind: query.AggFirst},
			{Field: "value", Kind: query.AggLast},
			{Field: "value", Kind: query.AggStdev},
		},
	}

	buckets, err := Aggregate(agg, entries)
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	expectedKeys := []uint64{10, 20, 30, 40}
	expectedMin := []interface{}{int64(123), int64(223), int64(323), int64(423)}
	expectedMax := []interface{}{int64(197), int64(297), int64(397), int64(497)}
	expectedAvg := []float64{156.5, 256.5, 356.5, 456.5}
	expectedMedian := []float64{155.5, 255.5, 355.5, 455.5}
	expectedSum := []float64{1565, 2565, 3565, 4565}

	for i, b := range buckets {
		// invariant 6: bucket keys are multiples of the time bucket.
		assert.Equal(t, expectedKeys[i], b.Key)
		assert.Zero(t, b.Key%agg.Bucket)

		require.Len(t, b.Fields, 1)
		pairs := b.Fields[0].Pairs
		byKind := make(map[string]interface{})
		for p := 0; p < len(pairs); p += 2 {
			byKind[pairs[p].(string)] = pairs[p+1]
		}

		assert.Equal(t, expectedMin[i], byKind["min"])
		assert.Equal(t, expectedMax[i], byKind["max"])
		assert.Equal(t, expectedAvg[i], byKind["avg"])
		assert.Equal(t, expectedMedian[i], byKind["median"])
		assert.Equal(t, expectedSum[i], byKind["sum"])
		assert.Equal(t, int64(10), byKind["count"])
		assert.Equal(t, 74.0, byKind["range"])
	}

	// first/last for bucket 10, per spec.
	pairs := buckets[0].Fields[0].Pairs
	byKind := make(map[string]interface{})
	for p := 0; p < len(pairs); p += 2 {
		byKind[pairs[p].(string)] = pairs[p+1]
	}
	assert.Equal(t, "131", byKind["first"])
	assert.Equal(t, "184", byKind["last"])

	// stdev matches the reference sample-stdev (divisor n-1) of the
	// bucket's raw values.
	bucketValues := []float64{131, 141, 159, 126, 153, 158, 197, 193, 123, 184}
	assert.InDelta(t, sampleStdev(bucketValues), byKind["stdev"], 1e-9)
}

func TestAggregateEmptyBucketDefaults(t *testing.T) {
	agg := &query.Aggregate{
		Bucket: 10,
		Fields: []query.AggField{{Field: "value", Kind: query.AggStdev}},
	}
	buckets, err := Aggregate(agg, nil)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestAggregateSingleValueStdevIsZero(t *testing.T) {
	entries := []kvs.Entry{
		{ID: query.ID{Timestamp: 1}, Fields: query.Record{{Name: "v", Value: "10"}}},
	}
	agg := &query.Aggregate{Bucket: 10, Fields: []query.AggField{{Field: "v", Kind: query.AggStdev}}}
	buckets, err := Aggregate(agg, entries)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 0.0, buckets[0].Fields[0].Pairs[1])
}

func TestAggregateRateCountsPresenceRegardlessOfField(t *testing.T) {
	entries := []kvs.Entry{
		{ID: query.ID{Timestamp: 1}, Fields: query.Record{{Name: "v", Value: "1"}}},
		{ID: query.ID{Timestamp: 2}, Fields: query.Record{{Name: "v", Value: "2"}}},
	}
	agg := &query.Aggregate{Bucket: 10, Fields: []query.AggField{{Field: "v", Kind: query.AggRate}}}
	buckets, err := Aggregate(agg, entries)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 0.2, buckets[0].Fields[0].Pairs[1])
}

func TestAggregateRejectsZeroBucket(t *testing.T) {
	agg := &query.Aggregate{Bucket: 0}
	_, err := Aggregate(agg, nil)
	assert.Error(t, err)
}

func TestAggregateMultipleKindsSameFieldPreserveRequestOrder(t *testing.T) {
	entries := []kvs.Entry{
		{ID: query.ID{Timestamp: 1}, Fields: query.Record{{Name: "v", Value: "5"}}},
	}
	agg := &query.Aggregate{Bucket: 10, Fields: []query.AggField{
		{Field: "v", Kind: query.AggMax},
		{Field: "v", Kind: query.AggMin},
	}}
	buckets, err := Aggregate(agg, entries)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Fields, 1)
	pairs := buckets[0].Fields[0].Pairs
	assert.Equal(t, []interface{}{"max", int64(5), "min", int64(5)}, pairs)
}
