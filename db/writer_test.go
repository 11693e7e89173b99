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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcum/tempo/cnf"
	"github.com/abcum/tempo/kvs"
	_ "github.com/abcum/tempo/kvs/memory"
	"github.com/abcum/tempo/query"
)

func openMemoryTX(t *testing.T) kvs.TX {
	opts := &cnf.Options{}
	opts.DB.Path = "memory"
	store, err := kvs.New(opts)
	require.NoError(t, err)
	tx, err := store.Begin(true)
	require.NoError(t, err)
	return tx
}

func TestFlattenBucketJoinsNameAndKind(t *testing.T) {
	b := Bucket{
		Key: 10,
		Fields: []BucketField{
			{Name: "temp", Pairs: []interface{}{"avg", 1.5, "max", int64(9)}},
		},
	}
	out := flattenBucket(b)
	assert.Equal(t, query.Record{
		{Name: "temp_avg", Value: "1.5"},
		{Name: "temp_max", Value: "9"},
	}, out)
}

func TestValueToText(t *testing.T) {
	assert.Equal(t, "hello", valueToText("hello"))
	assert.Equal(t, "9", valueToText(int64(9)))
	assert.Equal(t, "1.5", valueToText(1.5))
	assert.Equal(t, "3", valueToText(3.0))
	assert.Equal(t, "true", valueToText(true))
	assert.Equal(t, "false", valueToText(false))
}

func TestWriteStreamEntryWrapsEmptyFields(t *testing.T) {
	tx := openMemoryTX(t)
	require.NoError(t, writeEntry(tx, query.StorageTimeseries, "K", query.ID{Timestamp: 1}, nil))

	entry, err := tx.Get("K", query.ID{Timestamp: 1})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, query.Record{{Name: "value", Value: ""}}, entry.Fields)
}

func TestWriteHashEntryStoresJSONText(t *testing.T) {
	tx := openMemoryTX(t)
	fields := query.Record{{Name: "a", Value: "1"}, {Name: "b", Value: "two"}}
	require.NoError(t, writeEntry(tx, query.StorageHash, "K", query.ID{Timestamp: 1}, fields))

	entry, err := tx.Get("K", query.ID{Timestamp: 1})
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "value", entry.Fields[0].Name)
	assert.Equal(t, `{"a":1,"b":"two"}`, entry.Fields[0].Value)
}
