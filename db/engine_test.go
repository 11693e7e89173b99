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

package db_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcum/tempo/cnf"
	"github.com/abcum/tempo/db"
	"github.com/abcum/tempo/kvs"
	_ "github.com/abcum/tempo/kvs/memory"
)

func newTestEngine(t *testing.T) *db.Engine {
	opts := &cnf.Options{}
	opts.DB.Path = "memory"
	store, err := kvs.New(opts)
	require.NoError(t, err)
	return db.NewEngine(store)
}

func mustDispatch(t *testing.T, e *db.Engine, command string, keys []string, args []string) interface{} {
	reply, err := e.Dispatch(command, keys, args)
	require.NoError(t, err)
	return reply
}

// TestDispatchUnknownCommand exercises the LookupError path.
func TestDispatchUnknownCommand(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Dispatch("bogus", []string{"K"}, nil)
	assert.Error(t, err)
	var lookup *db.LookupError
	assert.ErrorAs(t, err, &lookup)
}

// TestDispatchWrongKeyArity exercises the dispatcher's own arity check.
func TestDispatchWrongKeyArity(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Dispatch("add", []string{"K", "extra"}, []string{"1", "f", "v"})
	assert.Error(t, err)
}

func TestKeyArityReportsRegisteredCommands(t *testing.T) {
	e := newTestEngine(t)
	n, ok := e.KeyArity("copy")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = e.KeyArity("merge")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = e.KeyArity("nope")
	assert.False(t, ok)
}

func TestCaseInsensitiveLookup(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "ADD", []string{"K"}, []string{"1", "v", "1"})
	reply := mustDispatch(t, e, "SIZE", []string{"K"}, nil)
	assert.Equal(t, int64(1), reply)
}

// --- S2: filter compound ---

func TestFilterCompound(t *testing.T) {
	e := newTestEngine(t)

	mustDispatch(t, e, "add", []string{"K"}, []string{"1", "name", "april", "rating", "high"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"2", "name", "april", "rating", "low"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"3", "name", "may", "rating", "high"})

	reply := mustDispatch(t, e, "range", []string{"K"}, []string{
		"-", "+", "FILTER", "name", "=", "april", "AND", "rating", "=", "high",
	})

	entries, ok := reply.([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)
}

// --- S3: range sentinels ---

func TestRangeSentinels(t *testing.T) {
	e := newTestEngine(t)
	const base = uint64(1000000)

	for i := uint64(1); i <= 9; i++ {
		ts := base + i*1000
		mustDispatch(t, e, "add", []string{"K"}, []string{strconv.FormatUint(ts, 10), "v", "1"})
	}

	lower := mustDispatch(t, e, "range", []string{"K"}, []string{"-", strconv.FormatUint(base+4000, 10)})
	lowerEntries := lower.([]interface{})
	assert.Len(t, lowerEntries, 4)

	upper := mustDispatch(t, e, "range", []string{"K"}, []string{strconv.FormatUint(base+2000, 10), "+"})
	upperEntries := upper.([]interface{})
	assert.Len(t, upperEntries, 8)
}

// --- S4: projection preserves original field order ---

func TestProjectionLabelsPreservesOriginalOrder(t *testing.T) {
	e := newTestEngine(t)

	mustDispatch(t, e, "add", []string{"K"}, []string{
		"1", "id", "x1", "name", "ada", "last_name", "lovelace", "coolness", "high",
	})

	reply := mustDispatch(t, e, "range", []string{"K"}, []string{"-", "+", "LABELS", "last_name", "name"})
	entries := reply.([]interface{})
	require.Len(t, entries, 1)

	pair := entries[0].([]interface{})
	fields := pair[1].([]interface{})
	// name appears before last_name in the original record, regardless of
	// the order the LABELS clause named them in.
	assert.Equal(t, []interface{}{"name", "ada", "last_name", "lovelace"}, fields)
}

func TestProjectionRedactPreservesOrder(t *testing.T) {
	e := newTestEngine(t)

	mustDispatch(t, e, "add", []string{"K"}, []string{
		"1", "id", "x1", "name", "ada", "age", "36", "income", "0", "coolness", "high",
	})

	reply := mustDispatch(t, e, "range", []string{"K"}, []string{"-", "+", "REDACT", "age", "income"})
	entries := reply.([]interface{})
	require.Len(t, entries, 1)

	pair := entries[0].([]interface{})
	fields := pair[1].([]interface{})
	assert.Equal(t, []interface{}{"id", "x1", "name", "ada", "coolness", "high"}, fields)
}

// --- S5: dedup on duplicate add ---

func TestDedupOnDuplicateAdd(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Dispatch("add", []string{"K"}, []string{"1000", "active", "1"})
	require.NoError(t, err)

	_, err = e.Dispatch("add", []string{"K"}, []string{"1000", "active", "1"})
	assert.Error(t, err)
	var collab *db.CollaboratorError
	assert.ErrorAs(t, err, &collab)

	size := mustDispatch(t, e, "size", []string{"K"}, nil)
	assert.Equal(t, int64(1), size)
}

// --- S6: trim and size ---

func TestTrimAndSize(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 200; i++ {
		mustDispatch(t, e, "add", []string{"K"}, []string{strconv.Itoa(i), "v", strconv.Itoa(i)})
	}

	_, err := e.Dispatch("trimlength", []string{"K"}, []string{"100"})
	require.NoError(t, err)

	size := mustDispatch(t, e, "size", []string{"K"}, nil)
	assert.Equal(t, int64(100), size)

	reply := mustDispatch(t, e, "range", []string{"K"}, []string{"-", "+"})
	entries := reply.([]interface{})
	require.Len(t, entries, 100)

	first := entries[0].([]interface{})
	assert.Equal(t, "100", first[0])
	last := entries[99].([]interface{})
	assert.Equal(t, "199", last[0])
}

// --- Invariant 2/3: size tracks deletions; poprange empties its own range ---

func TestDelThenSize(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"K"}, []string{"1", "v", "1"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"2", "v", "2"})

	n := mustDispatch(t, e, "del", []string{"K"}, []string{"1"})
	assert.Equal(t, int64(1), n)

	size := mustDispatch(t, e, "size", []string{"K"}, nil)
	assert.Equal(t, int64(1), size)
}

func TestPopRangeThenRangeIsEmpty(t *testing.T) {
	e := newTestEngine(t)
	for i := 1; i <= 5; i++ {
		mustDispatch(t, e, "add", []string{"K"}, []string{strconv.Itoa(i), "v", strconv.Itoa(i)})
	}

	popped := mustDispatch(t, e, "poprange", []string{"K"}, []string{"2", "4"})
	assert.Len(t, popped.([]interface{}), 3)

	reply := mustDispatch(t, e, "range", []string{"K"}, []string{"2", "4"})
	assert.Empty(t, reply.([]interface{}))
}

// --- Invariant 4: copy with no options is a faithful clone ---

func TestCopyFaithfulClone(t *testing.T) {
	e := newTestEngine(t)
	for i := 1; i <= 5; i++ {
		mustDispatch(t, e, "add", []string{"K"}, []string{strconv.Itoa(i), "v", strconv.Itoa(i * 10)})
	}

	n := mustDispatch(t, e, "copy", []string{"K", "K2"}, []string{"-", "+"})
	assert.Equal(t, int64(5), n)

	src := mustDispatch(t, e, "range", []string{"K"}, []string{"-", "+"})
	dst := mustDispatch(t, e, "range", []string{"K2"}, []string{"-", "+"})
	assert.Equal(t, src, dst)
}

// --- Invariant 5: merge length under disjoint and overlapping id sets ---

func TestMergeDisjointIdSets(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"A"}, []string{"1", "v", "1"})
	mustDispatch(t, e, "add", []string{"A"}, []string{"3", "v", "3"})
	mustDispatch(t, e, "add", []string{"B"}, []string{"2", "v", "2"})
	mustDispatch(t, e, "add", []string{"B"}, []string{"4", "v", "4"})

	n := mustDispatch(t, e, "merge", []string{"A", "B", "DST"}, []string{"-", "+"})
	assert.Equal(t, int64(4), n)

	reply := mustDispatch(t, e, "range", []string{"DST"}, []string{"-", "+"})
	entries := reply.([]interface{})
	require.Len(t, entries, 4)
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.([]interface{})[0].(string)
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
}

func TestMergeFullyOverlappingIdSets(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"A"}, []string{"1", "v", "a1"})
	mustDispatch(t, e, "add", []string{"A"}, []string{"2", "v", "a2"})
	mustDispatch(t, e, "add", []string{"B"}, []string{"1", "v", "b1"})
	mustDispatch(t, e, "add", []string{"B"}, []string{"2", "v", "b2"})

	n := mustDispatch(t, e, "merge", []string{"A", "B", "DST"}, []string{"-", "+"})
	assert.Equal(t, int64(2), n)
}

// --- Invariant 7: count matches the length of the equivalent range+filter ---

func TestCountMatchesFilteredRangeLength(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"K"}, []string{"1", "region", "us"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"2", "region", "eu"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"3", "region", "us"})

	count := mustDispatch(t, e, "count", []string{"K"}, []string{"-", "+", "FILTER", "region", "=", "us"})
	rangeReply := mustDispatch(t, e, "range", []string{"K"}, []string{"-", "+", "FILTER", "region", "=", "us"})

	assert.Equal(t, int64(len(rangeReply.([]interface{}))), count)
}

// --- bulk_add: per-entry atomicity, not call-wide ---

func TestBulkAddPartialFailureDoesNotAbortOthers(t *testing.T) {
	e := newTestEngine(t)

	reply := mustDispatch(t, e, "bulk_add", []string{"K"}, []string{
		"1", `{"v":"1"}`,
		"not-a-number", `{"v":"2"}`,
		"3", `{"v":"3"}`,
	})

	added := reply.([]interface{})
	require.Len(t, added, 3)
	assert.Equal(t, "1", added[0])
	assert.Nil(t, added[1])
	assert.Equal(t, "3", added[2])

	size := mustDispatch(t, e, "size", []string{"K"}, nil)
	assert.Equal(t, int64(2), size)
}

// --- distinct / count_distinct / basic_stats ---

func TestDistinctFamilyRequiresLabels(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"K"}, []string{"1", "region", "us"})

	_, err := e.Dispatch("distinct", []string{"K"}, []string{"-", "+"})
	assert.Error(t, err)
}

func TestDistinctGroupsByLabelTuple(t *testing.T) {
	e := newTestEngine(t)
	mustDispatch(t, e, "add", []string{"K"}, []string{"1", "region", "us", "host", "a"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"2", "region", "us", "host", "a"})
	mustDispatch(t, e, "add", []string{"K"}, []string{"3", "region", "eu", "host", "b"})

	distinct := mustDispatch(t, e, "distinct", []string{"K"}, []string{"-", "+", "LABELS", "region", "host"})
	assert.Len(t, distinct.([]interface{}), 2)

	count := mustDispatch(t, e, "count_distinct", []string{"K"}, []string{"-", "+", "LABELS", "region", "host"})
	assert.Equal(t, int64(2), count)

	stats := mustDispatch(t, e, "basic_stats", []string{"K"}, []string{"-", "+", "LABELS", "region", "host"})
	rows := stats.([]interface{})
	require.Len(t, rows, 2)
	firstRow := rows[0].([]interface{})
	assert.Contains(t, firstRow, "count")
}
