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

package db

import "fmt"

// ArgumentError covers every way a dispatched command's own arguments
// can be wrong: missing/extra args, an uneven field list, a malformed
// id, an unknown aggregation kind, a malformed filter expression,
// conflicting options, and so on (spec.md §7).
type ArgumentError struct {
	Command string
	Reason  string
}

// Error returns the string representation of the error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// LookupError is raised by the dispatcher when the command name does
// not resolve, case-insensitively, to any registered command.
type LookupError struct {
	Command string
}

// Error returns the string representation of the error.
func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown command `%s`", e.Command)
}

// CollaboratorError wraps a failure returned by the stream collaborator
// (kvs), propagated verbatim per spec.md §7.
type CollaboratorError struct {
	Err error
}

// Error returns the string representation of the error.
func (e *CollaboratorError) Error() string {
	return e.Err.Error()
}

// Unwrap lets callers use errors.As/errors.Is through to the underlying
// kvs error.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// InvariantViolation is raised when the collaborator hands back more
// than one entry for what should be a unique id — storage corruption,
// per spec.md §7, not a caller mistake.
type InvariantViolation struct {
	Reason string
}

// Error returns the string representation of the error.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// argErr keeps command-file call sites terse.
func argErr(command, format string, args ...interface{}) error {
	return &ArgumentError{Command: command, Reason: fmt.Sprintf(format, args...)}
}

// collabErr wraps any error coming back from a kvs.TX call.
func collabErr(err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Err: err}
}
