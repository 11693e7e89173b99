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

package ints

// Min returns the smallest of the given values.
func Min(vals ...int) int {
	out := vals[0]
	for _, v := range vals[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

// Max returns the largest of the given values.
func Max(vals ...int) int {
	out := vals[0]
	for _, v := range vals[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

// Below clamps v so that it never drops below min.
func Below(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// Above clamps v so that it never rises above max.
func Above(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// Between clamps v to the inclusive range [min, max].
func Between(min, max, v int) int {
	return Above(Below(v, min), max)
}
