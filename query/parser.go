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

// Parser wraps a Scanner with a one-token pushback buffer, following
// the teacher's shouldBe/mightBe/unscan idiom but walking a token list
// instead of a rune stream.
type Parser struct {
	s   *Scanner
	buf struct {
		n   int
		tok Token
		lit string
	}
}

// NewParser returns a Parser over the given pre-split arguments.
func NewParser(args []string) *Parser {
	return &Parser{s: NewScanner(args)}
}

// scan returns the next token, consulting the pushback buffer first.
func (p *Parser) scan() (tok Token, lit string) {
	if p.buf.n != 0 {
		p.buf.n = 0
		return p.buf.tok, p.buf.lit
	}
	tok, lit = p.s.Scan()
	p.buf.tok, p.buf.lit = tok, lit
	return
}

// unscan pushes the previously read token back onto the buffer.
func (p *Parser) unscan() {
	p.buf.n = 1
}

func (p *Parser) in(tok Token, toks []Token) bool {
	for _, t := range toks {
		if tok == t {
			return true
		}
	}
	return false
}

// mightBe consumes the next token if it matches one of expected,
// otherwise pushes it back.
func (p *Parser) mightBe(expected ...Token) (tok Token, lit string, found bool) {
	tok, lit = p.scan()
	if found = p.in(tok, expected); !found {
		p.unscan()
	}
	return
}

// shouldBe consumes the next token and errors if it does not match one
// of expected.
func (p *Parser) shouldBe(expected ...Token) (tok Token, lit string, err error) {
	tok, lit = p.scan()
	if found := p.in(tok, expected); !found {
		p.unscan()
		err = &ParseError{Found: lit, Expected: lookup(expected)}
	}
	return
}

// rest returns the remaining unconsumed raw arguments.
func (p *Parser) rest() []string {
	if p.buf.n != 0 {
		return append([]string{p.buf.lit}, p.s.Remaining()...)
	}
	return p.s.Remaining()
}

// eof reports whether the parser has nothing left to consume.
func (p *Parser) eof() bool {
	tok, _, found := p.mightBe(EOF)
	if found {
		return tok == EOF
	}
	return false
}
