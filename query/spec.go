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

// ProjectionMode selects how LABELS/REDACT shape a record's field list.
type ProjectionMode int

const (
	ProjectionNone ProjectionMode = iota
	ProjectionInclude
	ProjectionExclude
)

// Format selects the output serialisation for commands that support it.
type Format int

const (
	FormatNative Format = iota
	FormatJSON
	FormatMsgpack
)

// Storage selects the sink shape for copy's destination.
type Storage int

const (
	StorageTimeseries Storage = iota
	StorageHash
)

// AggKind enumerates the eleven aggregation kinds of §4.F.
type AggKind int

const (
	AggCount AggKind = iota
	AggSum
	AggAvg
	AggMedian
	AggStdev
	AggMin
	AggMax
	AggRange
	AggFirst
	AggLast
	AggRate
)

var aggKindNames = map[string]AggKind{
	"count":  AggCount,
	"sum":    AggSum,
	"avg":    AggAvg,
	"median": AggMedian,
	"stdev":  AggStdev,
	"min":    AggMin,
	"max":    AggMax,
	"range":  AggRange,
	"first":  AggFirst,
	"last":   AggLast,
	"rate":   AggRate,
}

// String renders the aggregation kind back to its wire name, used to
// build the field_kind flattened names of §4.H.
func (k AggKind) String() string {
	for name, kind := range aggKindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// AggField is one `kind(field)` entry in an AGGREGATION clause.
type AggField struct {
	Field string
	Kind  AggKind
}

// Aggregate is the compiled `AGGREGATION bucket (kind(field))+` clause.
type Aggregate struct {
	Bucket uint64
	Fields []AggField
}

// Option is the bit-flag vocabulary a command uses to restrict which
// keywords its own grammar accepts (§4.C: "each command restricts the
// accepted subset of options").
type Option int

const (
	OptLimit Option = 1 << iota
	OptAggregation
	OptFilter
	OptLabels
	OptRedact
	OptFormat
	OptStorage
)

// QuerySpec is the compiled form of a query tail (§3).
type QuerySpec struct {
	Min ID
	Max ID

	Count    int
	HasCount bool

	Filter Predicate

	Projection     ProjectionMode
	ProjectionSet  map[string]bool

	Aggregate    *Aggregate
	ParseTS      bool

	Storage Storage
	Format  Format
}
