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

// Scanner walks a pre-split argument list one token at a time. There is
// no whitespace to skip and no rune-level lexing to do — the transport
// has already tokenized the command line — so the scanner's only job is
// classifying each argument and handing back its literal text.
type Scanner struct {
	args []string
	pos  int
}

// NewScanner returns a Scanner over args.
func NewScanner(args []string) *Scanner {
	return &Scanner{args: args}
}

// Scan returns the next token and its literal text, advancing the
// cursor. At the end of args it returns EOF forever.
func (s *Scanner) Scan() (tok Token, lit string) {
	if s.pos >= len(s.args) {
		return EOF, ""
	}
	lit = s.args[s.pos]
	s.pos++
	return Lookup(lit), lit
}

// Remaining returns the arguments not yet consumed by Scan.
func (s *Scanner) Remaining() []string {
	return s.args[s.pos:]
}
