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

// Package kvs is the stream collaborator spec.md §1 treats as external:
// an append-only keyed stream store offering ordered scan, reverse scan,
// point lookup, bulk delete, append-with-explicit-id, length, trim, and
// a span probe. The engine (package db) never reaches past this
// interface into a concrete backend.
package kvs

import "github.com/abcum/tempo/query"

// Entry is one stored (id, fields) pair as the collaborator returns it.
type Entry struct {
	ID     query.ID
	Fields query.Record
}

// TX is one atomic transaction against the stream collaborator. The
// engine opens exactly one TX per dispatched command and commits or
// cancels it before returning, modeling spec.md §5's "single atomic
// scripted transaction" execution model.
type TX interface {
	Closed() bool
	Cancel() error
	Commit() error

	// Append stores fields under id, failing with *RegressiveError if id
	// is not strictly greater than the series' current maximum id.
	Append(key string, id query.ID, fields query.Record) error

	// Get performs a point lookup. A nil Entry with a nil error means
	// the id is absent.
	Get(key string, id query.ID) (*Entry, error)

	// Scan returns entries with min <= id <= max in ascending order,
	// capped at count entries when count > 0.
	Scan(key string, min, max query.ID, count int) ([]Entry, error)

	// ScanReverse is Scan in descending id order.
	ScanReverse(key string, min, max query.ID, count int) ([]Entry, error)

	// Delete removes the given ids, returning how many were present.
	Delete(key string, ids []query.ID) (int, error)

	// Len returns the number of entries in the series, or 0 if absent.
	Len(key string) (int, error)

	// Trim retains only the newest n entries, dropping the rest.
	// approximate permits a backend to trim coarser than exactly n.
	Trim(key string, n int, approximate bool) error

	// Span returns the first and last entry ids, or nil, nil if the
	// series is empty or absent.
	Span(key string) (first, last *query.ID, err error)

	// Exists reports whether the key holds any entries at all.
	Exists(key string) (bool, error)
}

// DB is a backing datastore capable of opening transactions against it,
// following the teacher's pluggable-backend shape (kvs/ds.go) even
// though only one backend — kvs/memory — ships with the engine.
type DB interface {
	Begin(writable bool) (TX, error)
	Close() error
}
