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

func sampleRecord() Record {
	return Record{
		{Name: "temp", Value: "21.5"},
		{Name: "unit", Value: "celsius"},
		{Name: "active", Value: "true"},
	}
}

func TestRecordGet(t *testing.T) {
	r := sampleRecord()
	v, ok := r.Get("unit")
	assert.True(t, ok)
	assert.Equal(t, "celsius", v)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestProjectInclude(t *testing.T) {
	r := sampleRecord()
	out := Project(ProjectionInclude, toSet([]string{"unit"}), r)
	assert.Equal(t, Record{{Name: "unit", Value: "celsius"}}, out)
}

func TestProjectExclude(t *testing.T) {
	r := sampleRecord()
	out := Project(ProjectionExclude, toSet([]string{"unit"}), r)
	assert.Equal(t, Record{
		{Name: "temp", Value: "21.5"},
		{Name: "active", Value: "true"},
	}, out)
}

func TestProjectNonePassesThrough(t *testing.T) {
	r := sampleRecord()
	out := Project(ProjectionNone, nil, r)
	assert.Equal(t, r, out)
}

func TestProjectPreservesOrder(t *testing.T) {
	r := Record{
		{Name: "c", Value: "3"},
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
	}
	out := Project(ProjectionInclude, toSet([]string{"a", "b", "c"}), r)
	assert.Equal(t, []string{"c", "a", "b"}, []string{out[0].Name, out[1].Name, out[2].Name})
}

func TestRecordMarshalJSONOrderAndKinds(t *testing.T) {
	r := sampleRecord()
	b, err := r.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `{"temp":21.5,"unit":"celsius","active":true}`, string(b))
}

func TestRecordMarshalJSONEscapesStrings(t *testing.T) {
	r := Record{{Name: "note", Value: "a \"quoted\" value"}}
	b, err := r.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `{"note":"a \"quoted\" value"}`, string(b))
}
