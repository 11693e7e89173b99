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
	"strconv"
	"strings"
)

var topLevelKeywords = []Token{LIMIT, AGGREGATION, FILTER, LABELS, REDACT, FORMAT, STORAGE}

// ParseOptions consumes the option tail following `(min, max)` per §4.C,
// filling in spec in place. allowed restricts which keywords the
// calling command accepts; a keyword outside that set is reported the
// same as an altogether unknown one.
func ParseOptions(args []string, allowed Option, spec *QuerySpec) error {

	p := NewParser(args)
	var seen Option

	for {
		tok, lit, found := p.mightBe(topLevelKeywords...)
		if !found {
			if p.eof() {
				break
			}
			_, lit := p.scan()
			return &ParseError{Found: lit, Expected: []string{"option keyword"}}
		}

		var bit Option
		switch tok {
		case LIMIT:
			bit = OptLimit
		case AGGREGATION:
			bit = OptAggregation
		case FILTER:
			bit = OptFilter
		case LABELS:
			bit = OptLabels
		case REDACT:
			bit = OptRedact
		case FORMAT:
			bit = OptFormat
		case STORAGE:
			bit = OptStorage
		}

		if allowed&bit == 0 {
			return &ParseError{Found: lit, Expected: []string{"an option accepted by this command"}}
		}
		if seen&bit != 0 {
			return &ParseError{Found: lit, Expected: []string{"each option at most once"}}
		}
		seen |= bit

		switch tok {

		case LIMIT:
			toks := takeUntilKeyword(p)
			if len(toks) == 0 {
				return &ParseError{Found: "LIMIT", Expected: []string{"count"}}
			}
			count, err := strconv.Atoi(toks[0])
			if err != nil || count < 0 {
				return &ParseError{Found: toks[0], Expected: []string{"non-negative count"}}
			}
			spec.Count = count
			spec.HasCount = true
			// offset, if present, is parsed lexically and discarded per §9.

		case AGGREGATION:
			toks := takeUntilKeyword(p)
			if err := parseAggregate(toks, spec); err != nil {
				return err
			}
			spec.ParseTS = true

		case FILTER:
			toks := takeUntilKeyword(p)
			pred, err := CompileFilter(toks)
			if err != nil {
				return err
			}
			spec.Filter = pred

		case LABELS:
			toks := takeUntilKeyword(p)
			if len(toks) == 0 {
				return &ParseError{Found: "LABELS", Expected: []string{"field name"}}
			}
			if seen&OptRedact != 0 {
				return &ParseError{Found: "LABELS", Expected: []string{"not combined with REDACT"}}
			}
			spec.Projection = ProjectionInclude
			spec.ProjectionSet = toSet(toks)

		case REDACT:
			toks := takeUntilKeyword(p)
			if len(toks) == 0 {
				return &ParseError{Found: "REDACT", Expected: []string{"field name"}}
			}
			if seen&OptLabels != 0 {
				return &ParseError{Found: "REDACT", Expected: []string{"not combined with LABELS"}}
			}
			spec.Projection = ProjectionExclude
			spec.ProjectionSet = toSet(toks)

		case FORMAT:
			_, lit, err := p.shouldBe(IDENT)
			if err != nil {
				return &ParseError{Found: "FORMAT", Expected: []string{"json", "msgpack"}}
			}
			switch strings.ToLower(lit) {
			case "json":
				spec.Format = FormatJSON
			case "msgpack":
				spec.Format = FormatMsgpack
			default:
				return &ParseError{Found: lit, Expected: []string{"json", "msgpack"}}
			}

		case STORAGE:
			_, lit, err := p.shouldBe(IDENT)
			if err != nil {
				return &ParseError{Found: "STORAGE", Expected: []string{"timeseries", "hash"}}
			}
			switch strings.ToLower(lit) {
			case "timeseries":
				spec.Storage = StorageTimeseries
			case "hash":
				spec.Storage = StorageHash
			default:
				return &ParseError{Found: lit, Expected: []string{"timeseries", "hash"}}
			}
		}
	}

	return nil
}

// takeUntilKeyword greedily collects raw arguments up to (but not
// including) the next top-level option keyword or EOF.
func takeUntilKeyword(p *Parser) []string {
	var out []string
	for {
		tok, lit := p.scan()
		if tok == EOF {
			return out
		}
		isKeyword := false
		for _, k := range topLevelKeywords {
			if tok == k {
				isKeyword = true
				break
			}
		}
		if isKeyword {
			p.unscan()
			return out
		}
		out = append(out, lit)
	}
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// parseAggregate compiles `bucket (kind(field))+` into spec.Aggregate.
func parseAggregate(toks []string, spec *QuerySpec) error {

	if len(toks) < 2 {
		return &ParseError{Found: "AGGREGATION", Expected: []string{"bucket kind(field)..."}}
	}

	bucket, err := strconv.ParseUint(toks[0], 10, 64)
	if err != nil || bucket == 0 {
		return &ParseError{Found: toks[0], Expected: []string{"positive time bucket"}}
	}

	agg := &Aggregate{Bucket: bucket}

	for _, tok := range toks[1:] {
		open := strings.IndexByte(tok, '(')
		if open < 0 || !strings.HasSuffix(tok, ")") {
			return &ParseError{Found: tok, Expected: []string{"kind(field)"}}
		}
		kindName := tok[:open]
		field := tok[open+1 : len(tok)-1]
		if field == "" {
			return &ParseError{Found: tok, Expected: []string{"kind(field)"}}
		}
		kind, ok := aggKindNames[strings.ToLower(kindName)]
		if !ok {
			return &ParseError{Found: kindName, Expected: []string{"aggregation kind"}}
		}
		agg.Fields = append(agg.Fields, AggField{Field: field, Kind: kind})
	}

	spec.Aggregate = agg
	return nil
}
