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

// Package memory is the engine's only shipped stream collaborator
// backend: an in-process, ordered key-value store built on gkvlite, one
// gkvlite.Collection per series key.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/steveyen/gkvlite"

	"github.com/abcum/tempo/cnf"
	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/query"
)

func init() {
	kvs.Register("memory", New)
}

// Backend is a single in-process gkvlite store shared by every TX
// opened against it.
type Backend struct {
	mu    sync.Mutex
	store *gkvlite.Store
}

// New opens a fresh in-memory backend. opts is accepted for symmetry
// with other registered backends; memory has nothing in cnf.Options to
// configure beyond selecting it as opts.DB.Path.
func New(opts *cnf.Options) (kvs.DB, error) {
	store, err := gkvlite.NewStore(nil)
	if err != nil {
		return nil, &kvs.DBError{Err: err}
	}
	return &Backend{store: store}, nil
}

// Begin opens a transaction. The backend has no on-disk log to commit
// or roll back, so writable transactions apply immediately and Cancel
// is a no-op recorded only to satisfy kvs.TX's Closed() contract.
func (b *Backend) Begin(writable bool) (kvs.TX, error) {
	return &tx{backend: b}, nil
}

// Close releases the backend. gkvlite's in-memory store needs no
// explicit teardown.
func (b *Backend) Close() error {
	return nil
}

func (b *Backend) collection(key string, create bool) *gkvlite.Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.store.GetCollection(key)
	if c == nil && create {
		c = b.store.SetCollection(key, nil)
	}
	return c
}

type tx struct {
	backend *Backend
	closed  bool
}

func (t *tx) Closed() bool {
	return t.closed
}

func (t *tx) Cancel() error {
	t.closed = true
	return nil
}

func (t *tx) Commit() error {
	t.closed = true
	return nil
}

// Append stores fields under id, rejecting a regressive append per
// spec.md §3 ("Appending an id ≤ the current maximum fails").
func (t *tx) Append(key string, id query.ID, fields query.Record) error {

	c := t.backend.collection(key, true)

	if max, err := c.MaxItem(false); err == nil && max != nil {
		if query.Compare(decodeKey(max.Key), id) >= 0 {
			return &kvs.RegressiveError{Key: key, ID: id.String(), Max: decodeKey(max.Key).String()}
		}
	}

	val, err := encodeFields(fields)
	if err != nil {
		return &kvs.DBError{Err: err}
	}

	if err := c.Set(encodeKey(id), val); err != nil {
		return &kvs.DBError{Err: err}
	}

	return nil
}

// Get performs a point lookup.
func (t *tx) Get(key string, id query.ID) (*kvs.Entry, error) {

	c := t.backend.collection(key, false)
	if c == nil {
		return nil, nil
	}

	val, err := c.Get(encodeKey(id))
	if err != nil {
		return nil, &kvs.DBError{Err: err}
	}
	if val == nil {
		return nil, nil
	}

	fields, err := decodeFields(val)
	if err != nil {
		return nil, &kvs.DBError{Err: err}
	}

	return &kvs.Entry{ID: id, Fields: fields}, nil
}

// Scan returns entries between min and max inclusive, ascending, capped
// at count when count > 0.
func (t *tx) Scan(key string, min, max query.ID, count int) ([]kvs.Entry, error) {
	return t.scan(key, min, max, count, false)
}

// ScanReverse is Scan in descending order.
func (t *tx) ScanReverse(key string, min, max query.ID, count int) ([]kvs.Entry, error) {
	return t.scan(key, min, max, count, true)
}

func (t *tx) scan(key string, min, max query.ID, count int, reverse bool) ([]kvs.Entry, error) {

	c := t.backend.collection(key, false)
	if c == nil {
		return nil, nil
	}

	var out []kvs.Entry
	var visitErr error

	lo, hi := encodeKey(min), encodeKey(max)
	if max == query.MaxID {
		hi = maxKey
	}

	visit := func(i *gkvlite.Item) bool {
		if count > 0 && len(out) >= count {
			return false
		}
		if reverse && bytesCompare(i.Key, hi) > 0 {
			return true
		}
		if reverse && bytesCompare(i.Key, lo) < 0 {
			return false
		}
		if !reverse && bytesCompare(i.Key, lo) < 0 {
			return true
		}
		if !reverse && bytesCompare(i.Key, hi) > 0 {
			return false
		}
		fields, err := decodeFields(i.Val)
		if err != nil {
			visitErr = err
			return false
		}
		out = append(out, kvs.Entry{ID: decodeKey(i.Key), Fields: fields})
		return true
	}

	var err error
	if reverse {
		err = c.VisitItemsDescend(hi, true, visit)
	} else {
		err = c.VisitItemsAscend(lo, true, visit)
	}
	if err != nil {
		return nil, &kvs.DBError{Err: err}
	}
	if visitErr != nil {
		return nil, &kvs.DBError{Err: visitErr}
	}

	return out, nil
}

// Delete removes the given ids, returning how many were present.
func (t *tx) Delete(key string, ids []query.ID) (int, error) {

	c := t.backend.collection(key, false)
	if c == nil {
		return 0, nil
	}

	var n int
	for _, id := range ids {
		ok, err := c.Delete(encodeKey(id))
		if err != nil {
			return n, &kvs.DBError{Err: err}
		}
		if ok {
			n++
		}
	}

	return n, nil
}

// Len returns the number of entries in the series.
func (t *tx) Len(key string) (int, error) {
	c := t.backend.collection(key, false)
	if c == nil {
		return 0, nil
	}
	n, _, err := c.GetTotals()
	if err != nil {
		return 0, &kvs.DBError{Err: err}
	}
	return int(n), nil
}

// Trim retains only the newest n entries.
func (t *tx) Trim(key string, n int, approximate bool) error {

	c := t.backend.collection(key, false)
	if c == nil {
		return nil
	}

	total, _, err := c.GetTotals()
	if err != nil {
		return &kvs.DBError{Err: err}
	}
	if int(total) <= n {
		return nil
	}

	drop := int(total) - n
	var victims [][]byte

	err = c.VisitItemsAscend(minKey, false, func(i *gkvlite.Item) bool {
		if len(victims) >= drop {
			return false
		}
		victims = append(victims, append([]byte(nil), i.Key...))
		return true
	})
	if err != nil {
		return &kvs.DBError{Err: err}
	}

	for _, k := range victims {
		if _, err := c.Delete(k); err != nil {
			return &kvs.DBError{Err: err}
		}
	}

	return nil
}

// Span returns the first and last entry ids.
func (t *tx) Span(key string) (first, last *query.ID, err error) {

	c := t.backend.collection(key, false)
	if c == nil {
		return nil, nil, nil
	}

	minItem, err := c.MinItem(false)
	if err != nil {
		return nil, nil, &kvs.DBError{Err: err}
	}
	if minItem == nil {
		return nil, nil, nil
	}
	maxItem, err := c.MaxItem(false)
	if err != nil {
		return nil, nil, &kvs.DBError{Err: err}
	}

	fid := decodeKey(minItem.Key)
	lid := decodeKey(maxItem.Key)

	return &fid, &lid, nil
}

// Exists reports whether key holds any entries.
func (t *tx) Exists(key string) (bool, error) {
	n, err := t.Len(key)
	return n > 0, err
}

func bytesCompare(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// encodeFields / decodeFields serialise a Record to the collection's
// value bytes. JSON is used only as the on-heap wire form between the
// gkvlite collection and the engine — it is never exposed to callers
// directly (FORMAT json re-marshals query.Record, whose MarshalJSON
// preserves field order; here order is carried structurally instead).
type storedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func encodeFields(fields query.Record) ([]byte, error) {
	out := make([]storedField, len(fields))
	for i, f := range fields {
		out[i] = storedField{Name: f.Name, Value: f.Value}
	}
	return json.Marshal(out)
}

func decodeFields(val []byte) (query.Record, error) {
	var stored []storedField
	if err := json.Unmarshal(val, &stored); err != nil {
		return nil, err
	}
	out := make(query.Record, len(stored))
	for i, f := range stored {
		out[i] = query.Field{Name: f.Name, Value: f.Value}
	}
	return out, nil
}
