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
	"strings"
)

// ParseError represents an error that occurred while compiling a query
// tail. The db package wraps these into an ArgumentError at its
// boundary; query itself stays free of db's error taxonomy.
type ParseError struct {
	Found    string
	Expected []string
}

// Error returns the string representation of the error.
func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected token `%s`", e.Found)
	}
	return fmt.Sprintf("found `%s` but expected `%s`", e.Found, strings.Join(e.Expected, ", "))
}

func lookup(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.String()
	}
	return out
}
