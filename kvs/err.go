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

package kvs

import "fmt"

// RegressiveError occurs when an append's id is not strictly greater
// than the series' current maximum id.
type RegressiveError struct {
	Key string
	ID  string
	Max string
}

// Error returns the string representation of the error.
func (e *RegressiveError) Error() string {
	return fmt.Sprintf("id `%s` is not greater than the current maximum `%s` for key `%s`", e.ID, e.Max, e.Key)
}

// DBError wraps an unexpected failure from the underlying store.
type DBError struct {
	Err error
}

// Error returns the string representation of the error.
func (e *DBError) Error() string {
	return fmt.Sprintf("datastore error: %v", e.Err)
}
