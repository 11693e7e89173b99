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
	"encoding/csv"
	"strings"
)

// FieldGetter looks up a field's raw text by name, reporting whether it
// is present at all.
type FieldGetter func(name string) (string, bool)

// Predicate is a compiled filter expression, per the teacher's "compile
// to a small AST node and walk it" strategy rather than nested closures.
type Predicate interface {
	Eval(get FieldGetter) bool
}

// Cmp is a single `field OP value` comparison.
type Cmp struct {
	Field string
	Op    Token
	Value Value
}

// Eval implements Predicate.
func (c *Cmp) Eval(get FieldGetter) bool {

	raw, ok := get(c.Field)
	if !ok {
		return false
	}

	field := Coerce(raw)

	if c.Value.Numeric() && field.Numeric() {
		lf, _ := field.Float()
		rf, _ := c.Value.Float()
		switch c.Op {
		case EQ:
			return lf == rf
		case NEQ:
			return lf != rf
		case LT:
			return lf < rf
		case LTE:
			return lf <= rf
		case GT:
			return lf > rf
		case GTE:
			return lf >= rf
		}
		return false
	}

	switch c.Op {
	case EQ:
		return raw == c.Value.Raw
	case NEQ:
		return raw != c.Value.Raw
	case LT:
		return raw < c.Value.Raw
	case LTE:
		return raw <= c.Value.Raw
	case GT:
		return raw > c.Value.Raw
	case GTE:
		return raw >= c.Value.Raw
	}

	return false
}

// Contains is a `field = (v1, v2, …)` / `field != (v1, v2, …)` set
// membership test.
type Contains struct {
	Field    string
	Set      []string
	Negated  bool
}

// Eval implements Predicate.
func (c *Contains) Eval(get FieldGetter) bool {
	raw, ok := get(c.Field)
	if !ok {
		return false
	}
	var in bool
	for _, v := range c.Set {
		if raw == v {
			in = true
			break
		}
	}
	if c.Negated {
		return !in
	}
	return in
}

// All is a conjunction of predicates (AND).
type All []Predicate

// Eval implements Predicate.
func (a All) Eval(get FieldGetter) bool {
	for _, p := range a {
		if !p.Eval(get) {
			return false
		}
	}
	return true
}

// Any is a disjunction of predicates (OR).
type Any []Predicate

// Eval implements Predicate.
func (a Any) Eval(get FieldGetter) bool {
	for _, p := range a {
		if p.Eval(get) {
			return true
		}
	}
	return false
}

// CompileFilter compiles the token sequence following FILTER into a
// single predicate per §4.B: operator runs of a kind fold into one
// joiner (Any for OR), and the resulting groups are ANDed together at
// the top level, so `p1 OR p2 AND p3` yields `(p1 OR p2) AND (p3)`.
func CompileFilter(args []string) (Predicate, error) {

	p := NewParser(args)

	first, err := parseCondition(p)
	if err != nil {
		return nil, err
	}

	var groups [][]Predicate
	cur := []Predicate{first}

	for {
		joiner, _, found := p.mightBe(AND, OR)
		if !found {
			break
		}
		next, err := parseCondition(p)
		if err != nil {
			return nil, err
		}
		if joiner == OR {
			cur = append(cur, next)
		} else {
			groups = append(groups, cur)
			cur = []Predicate{next}
		}
	}
	groups = append(groups, cur)

	if !p.eof() {
		_, lit := p.s.Scan()
		return nil, &ParseError{Found: lit, Expected: []string{"AND", "OR", "end of filter"}}
	}

	var anded []Predicate
	for _, g := range groups {
		if len(g) == 1 {
			anded = append(anded, g[0])
		} else {
			anded = append(anded, Any(g))
		}
	}
	if len(anded) == 1 {
		return anded[0], nil
	}
	return All(anded), nil
}

func parseCondition(p *Parser) (Predicate, error) {

	_, field, err := p.shouldBe(IDENT)
	if err != nil {
		return nil, &ParseError{Found: field, Expected: []string{"field name"}}
	}

	op, _, err := p.shouldBe(EQ, NEQ, LT, LTE, GT, GTE)
	if err != nil {
		return nil, err
	}

	_, lit, err := p.shouldBe(IDENT)
	if err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"field value"}}
	}

	if (op == EQ || op == NEQ) && strings.HasPrefix(lit, "(") {
		set, err := parseCSVList(lit)
		if err != nil {
			return nil, err
		}
		return &Contains{Field: field, Set: set, Negated: op == NEQ}, nil
	}

	return &Cmp{Field: field, Op: op, Value: Coerce(lit)}, nil
}

// parseCSVList parses a "(v1, v2, …)" token into its member values,
// supporting double-quoted values with "" escapes via encoding/csv.
func parseCSVList(tok string) ([]string, error) {

	if !strings.HasPrefix(tok, "(") || !strings.HasSuffix(tok, ")") {
		return nil, &ParseError{Found: tok, Expected: []string{"(v1, v2, …)"}}
	}

	inner := tok[1 : len(tok)-1]

	r := csv.NewReader(strings.NewReader(inner))
	r.TrimLeadingSpace = true

	record, err := r.Read()
	if err != nil {
		return nil, &ParseError{Found: tok, Expected: []string{"comma-separated value list"}}
	}

	return record, nil
}
