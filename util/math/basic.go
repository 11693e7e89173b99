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

package math

import "sort"

// Sum returns the total of all values in the slice.
func Sum(vals []float64) float64 {
	var out float64
	for _, v := range vals {
		out += v
	}
	return out
}

// Copy returns a new slice holding a copy of vals.
func Copy(vals []float64) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)
	return out
}

// Sort returns a new, ascending sorted copy of vals.
func Sort(vals []float64) []float64 {
	out := Copy(vals)
	sort.Float64s(out)
	return out
}
