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

// Package db is the engine: the query compiler, range pipeline,
// aggregation engine, merge/copy planner, and the command dispatcher
// that ties them to the kvs stream collaborator.
package db

import (
	"errors"
	"strings"
	"sync"

	"github.com/abcum/tempo/kvs"
	"github.com/abcum/tempo/log"
)

// handler executes one command body against an already-open
// transaction. keys has already been arity-checked by the dispatcher.
type handler func(tx kvs.TX, keys []string, args []string) (interface{}, error)

type command struct {
	name     string
	keyArity int
	fn       handler
}

// Engine is the process-wide command table plus the backing datastore,
// modeling spec.md §9's "global command table... static registry built
// at initialisation with case-folded secondary index".
type Engine struct {
	store kvs.DB

	mu     sync.Mutex
	byName map[string]*command // case-preserving primary index
	folded map[string]*command // lazily built case-folded secondary index
}

// NewEngine wires an Engine around an already-opened kvs datastore and
// registers every command named in spec.md §6.
func NewEngine(store kvs.DB) *Engine {
	e := &Engine{
		store:  store,
		byName: make(map[string]*command),
	}
	e.register()
	return e
}

func (e *Engine) add(name string, keyArity int, fn handler) {
	e.byName[name] = &command{name: name, keyArity: keyArity, fn: fn}
}

// lookup resolves name per §4.I: case-preserving first, falling back to
// a lazily built case-folded map.
func (e *Engine) lookup(name string) *command {

	if c, ok := e.byName[name]; ok {
		return c
	}

	e.mu.Lock()
	if e.folded == nil {
		e.folded = make(map[string]*command, len(e.byName))
		for n, c := range e.byName {
			e.folded[strings.ToLower(n)] = c
		}
	}
	e.mu.Unlock()

	return e.folded[strings.ToLower(name)]
}

// KeyArity reports how many leading key tokens commandName expects, for
// callers (such as the cli console) that must split a raw token stream
// into (command, keys, args) themselves before calling Dispatch.
func (e *Engine) KeyArity(commandName string) (int, bool) {
	c := e.lookup(commandName)
	if c == nil {
		return 0, false
	}
	return c.keyArity, true
}

// Dispatch resolves commandName and runs it against keys/args inside a
// single atomic transaction (spec.md §5). Splitting the raw invocation
// text into (commandName, keys, args) is the host transport's job —
// out of scope per spec.md §1 — so Dispatch takes them pre-split.
func (e *Engine) Dispatch(commandName string, keys []string, args []string) (interface{}, error) {

	log.Debugf("dispatch %s %s", commandName, strings.Join(keys, " "))

	c := e.lookup(commandName)
	if c == nil {
		return nil, &LookupError{Command: commandName}
	}

	if len(keys) != c.keyArity {
		return nil, argErr(c.name, "expected %d key(s), got %d", c.keyArity, len(keys))
	}

	tx, err := e.store.Begin(true)
	if err != nil {
		return nil, logCollaboratorFailure(commandName, keys, collabErr(err))
	}

	reply, err := c.fn(tx, keys, args)
	if err != nil {
		tx.Cancel()
		return nil, logCollaboratorFailure(commandName, keys, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, logCollaboratorFailure(commandName, keys, collabErr(err))
	}

	return reply, nil
}

// logCollaboratorFailure logs at Error when err is a CollaboratorError or
// an InvariantViolation, per SPEC_FULL.md §2.1, and returns err unchanged
// so callers can return the result of this call directly.
func logCollaboratorFailure(commandName string, keys []string, err error) error {

	var ce *CollaboratorError
	var iv *InvariantViolation

	switch {
	case errors.As(err, &ce):
		log.Errorf("dispatch %s %s: collaborator error: %v", commandName, strings.Join(keys, " "), ce)
	case errors.As(err, &iv):
		log.Errorf("dispatch %s %s: invariant violation: %v", commandName, strings.Join(keys, " "), iv)
	}

	return err
}

// register builds the static command table (§4.I / §6). copy consumes
// two keys, merge three, every other command one.
func (e *Engine) register() {
	e.add("add", 1, cmdAdd)
	e.add("bulk_add", 1, cmdBulkAdd)
	e.add("del", 1, cmdDel)
	e.add("size", 1, cmdSize)
	e.add("exists", 1, cmdExists)
	e.add("span", 1, cmdSpan)
	e.add("info", 1, cmdInfo)
	e.add("get", 1, cmdGet)
	e.add("pop", 1, cmdPop)
	e.add("count", 1, cmdCount)
	e.add("range", 1, cmdRange)
	e.add("revrange", 1, cmdRevRange)
	e.add("poprange", 1, cmdPopRange)
	e.add("remrange", 1, cmdRemRange)
	e.add("trimlength", 1, cmdTrimLength)
	e.add("times", 1, cmdTimes)
	e.add("copy", 2, cmdCopy)
	e.add("merge", 3, cmdMerge)
	e.add("distinct", 1, cmdDistinct)
	e.add("count_distinct", 1, cmdCountDistinct)
	e.add("basic_stats", 1, cmdBasicStats)
}
