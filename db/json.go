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
	"fmt"
	"strings"

	"github.com/abcum/tempo/query"
)

// decodeOrderedRecord turns a JSON object's text into a Record,
// preserving the field order it appeared in on the wire — plain
// json.Unmarshal into a map would lose it, and field order is part of
// this engine's data model (spec.md §3).
func decodeOrderedRecord(raw string) (query.Record, error) {

	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var rec query.Record

	for dec.More() {

		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string field name")
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}

		rec = append(rec, query.Field{Name: name, Value: rawJSONToText(val)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return rec, nil
}

// rawJSONToText renders a JSON scalar back to the engine's raw-text
// value form: quoted strings are unescaped, everything else (numbers,
// booleans, null) keeps its literal source text.
func rawJSONToText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err == nil {
			return unquoted
		}
	}
	return s
}
