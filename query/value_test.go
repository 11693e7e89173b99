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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInt(t *testing.T) {
	v := Coerce("42")
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(42), v.Int)
	assert.True(t, v.Numeric())
}

func TestCoerceNegativeInt(t *testing.T) {
	v := Coerce("-7")
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(-7), v.Int)
}

func TestCoerceFloat(t *testing.T) {
	v := Coerce("3.50")
	assert.Equal(t, KindFloat, v.Kind)
	assert.True(t, v.Numeric())
	f, ok := v.Float()
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)
	// raw text is preserved exactly, trailing zero and all.
	assert.Equal(t, "3.50", v.Raw)
}

func TestCoerceBool(t *testing.T) {
	assert.Equal(t, KindBool, Coerce("true").Kind)
	assert.True(t, Coerce("true").Bool)
	assert.Equal(t, KindBool, Coerce("false").Kind)
	assert.False(t, Coerce("false").Bool)
}

func TestCoerceString(t *testing.T) {
	v := Coerce("hello")
	assert.Equal(t, KindString, v.Kind)
	assert.False(t, v.Numeric())
	_, ok := v.Float()
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3.0))
	assert.Equal(t, "-3", FormatNumber(-3.0))
	assert.Equal(t, "3.5", FormatNumber(3.5))
	assert.Equal(t, "0", FormatNumber(0.0))
}
