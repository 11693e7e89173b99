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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
)

// corruptTX is a minimal kvs.TX whose Scan violates the collaborator's
// uniqueness contract: bounding a scan to [id, id] still yields two
// entries. It exists only to prove getUnique's InvariantViolation path
// is reachable — the shipped memory backend cannot produce this, since
// gkvlite's Collection is keyed storage and can hold at most one value
// per encoded key, but kvs.DB is a pluggable interface and nothing in
// the engine depends on that structural guarantee holding for every
// future backend.
type corruptTX struct{}

func (corruptTX) Closed() bool  { return false }
func (corruptTX) Cancel() error { return nil }
func (corruptTX) Commit() error { return nil }

func (corruptTX) Append(key string, id query.ID, fields query.Record) error {
	return nil
}

func (corruptTX) Get(key string, id query.ID) (*kvs.Entry, error) {
	return &kvs.Entry{ID: id, Fields: query.Record{{Name: "v", Value: "1"}}}, nil
}

func (corruptTX) Scan(key string, min, max query.ID, count int) ([]kvs.Entry, error) {
	return []kvs.Entry{
		{ID: min, Fields: query.Record{{Name: "v", Value: "1"}}},
		{ID: min, Fields: query.Record{{Name: "v", Value: "2"}}},
	}, nil
}

func (corruptTX) ScanReverse(key string, min, max query.ID, count int) ([]kvs.Entry, error) {
	return nil, nil
}

func (corruptTX) Delete(key string, ids []query.ID) (int, error) { return 0, nil }
func (corruptTX) Len(key string) (int, error)                    { return 0, nil }
func (corruptTX) Trim(key string, n int, approximate bool) error { return nil }
func (corruptTX) Span(key string) (*query.ID, *query.ID, error)  { return nil, nil, nil }
func (corruptTX) Exists(key string) (bool, error)                { return false, nil }

func TestGetUniqueRaisesInvariantViolationOnDuplicateScan(t *testing.T) {
	_, err := getUnique(corruptTX{}, "K", query.ID{Timestamp: 1})
	require.Error(t, err)

	var inv *InvariantViolation
	assert.True(t, errors.As(err, &inv))
}

func TestGetUniquePassesThroughOnSingleEntry(t *testing.T) {
	tx := openMemoryTX(t)
	require.NoError(t, tx.Append("K", query.ID{Timestamp: 1}, query.Record{{Name: "v", Value: "1"}}))

	entry, err := getUnique(tx, "K", query.ID{Timestamp: 1})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, query.ID{Timestamp: 1}, entry.ID)
}

func TestGetUniqueMissingIdReturnsNil(t *testing.T) {
	tx := openMemoryTX(t)
	entry, err := getUnique(tx, "K", query.ID{Timestamp: 1})
	require.NoError(t, err)
	assert.Nil(t, entry)
}
