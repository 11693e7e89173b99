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

package memory

import (
	"encoding/binary"
	"strconv"

	"github.com/abcum/tempo/query"
)

// encodeKey renders a composite id as a fixed-width 16-byte key — an
// 8-byte big-endian timestamp followed by an 8-byte big-endian numeric
// sequence — so gkvlite's ascending byte-order scan matches composite
// id order exactly (see SPEC_FULL.md §4, "Encoded id key").
func encodeKey(id query.ID) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[0:8], id.Timestamp)
	binary.BigEndian.PutUint64(key[8:16], uint64(id.SequenceNumeric()))
	return key
}

// decodeKey is encodeKey's inverse, recovering the timestamp and the
// numeric sequence (rendered back to its decimal text form).
func decodeKey(key []byte) query.ID {
	ts := binary.BigEndian.Uint64(key[0:8])
	seq := binary.BigEndian.Uint64(key[8:16])
	id := query.ID{Timestamp: ts}
	if seq != 0 {
		id.Sequence = strconv.FormatUint(seq, 10)
	}
	return id
}

var (
	minKey = encodeKey(query.MinID)
	maxKey = []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
)
