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

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/xid"
)

// ID is a composite entry identifier: a non-negative timestamp plus a
// sequence token that disambiguates collisions at the same timestamp.
type ID struct {
	Timestamp uint64
	Sequence  string
}

// String renders an id back to its wire form, "timestamp[-sequence]".
func (id ID) String() string {
	if id.Sequence == "" {
		return strconv.FormatUint(id.Timestamp, 10)
	}
	return fmt.Sprintf("%d-%s", id.Timestamp, id.Sequence)
}

// SequenceNumeric parses Sequence as an integer for the merge planner's
// numeric tie-break (§4.G); a non-numeric or empty sequence sorts as 0.
func (id ID) SequenceNumeric() int64 {
	n, _ := strconv.ParseInt(id.Sequence, 10, 64)
	return n
}

// NextSequence returns a fresh globally unique, sortable xid string. The
// cli console uses it for session ids; bulk_add does not call it and
// stores every id exactly as given.
func NextSequence() string {
	return xid.New().String()
}

// MinID and MaxID are the decoded forms of the "-" and "+" range
// sentinels: the lowest and highest possible composite ids.
var (
	MinID = ID{Timestamp: 0, Sequence: ""}
	MaxID = ID{Timestamp: ^uint64(0), Sequence: "\xff\xff\xff\xff\xff\xff\xff\xff"}
)

// ParseID splits a token on its first "-" per §4.A: the left side is the
// numeric timestamp, the right side (if any) is the textual sequence.
// "-" and "+" are handled by ParseBound, not here.
func ParseID(tok string) (ID, error) {
	i := strings.IndexByte(tok, '-')
	tsPart, seq := tok, ""
	if i >= 0 {
		tsPart, seq = tok[:i], tok[i+1:]
	}
	ts, err := strconv.ParseUint(tsPart, 10, 64)
	if err != nil {
		return ID{}, &ParseError{Found: tok, Expected: []string{"composite id"}}
	}
	return ID{Timestamp: ts, Sequence: seq}, nil
}

// ParseBound parses a range endpoint: "-" and "+" map to the reserved
// sentinels, anything else is a composite id.
func ParseBound(tok string) (ID, error) {
	switch tok {
	case "-":
		return MinID, nil
	case "+":
		return MaxID, nil
	default:
		return ParseID(tok)
	}
}

// Compare orders two ids per the merge planner's rule (§4.G): numeric
// timestamp first, then numeric sequence. It returns -1, 0, or 1.
func Compare(a, b ID) int {
	switch {
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	}
	as, bs := a.SequenceNumeric(), b.SequenceNumeric()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
