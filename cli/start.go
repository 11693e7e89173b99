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

package cli

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abcum/tempo/cnf"
	"github.com/abcum/tempo/db"
	"github.com/abcum/tempo/kvs"
	_ "github.com/abcum/tempo/kvs/memory"
	"github.com/abcum/tempo/log"
	"github.com/abcum/tempo/query"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the store and serve the command console",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(opts)
	},
}

// serve opens the configured kvs backend, builds an Engine around it,
// and accepts line-oriented command connections until the listener is
// closed — standing in for the "host transport" spec.md §1 treats as
// external, just enough to drive the engine end-to-end from a checkout.
func serve(opts *cnf.Options) error {

	store, err := kvs.New(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	engine := db.NewEngine(store)

	addr := fmt.Sprintf("%s:%d", opts.Node.Host, opts.Port.Tcp)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	log.Infof("Listening for connections on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handleConn(engine, conn)
	}
}

func handleConn(engine *db.Engine, conn net.Conn) {

	defer conn.Close()

	session := query.NextSequence()
	logger := log.WithField("session", session)
	logger.Info("console connected")
	defer logger.Info("console disconnected")

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, err := dispatchLine(engine, line)
		if err != nil {
			logger.Error(err)
			fmt.Fprintf(conn, "ERR %s\n", err)
			continue
		}

		fmt.Fprintf(conn, "%v\n", reply)

	}

}

// dispatchLine splits a whitespace-tokenized console line into
// (command, keys, args) — command first, then as many key tokens as the
// command's arity requires, then the remaining option/value tokens —
// and hands it to the engine.
func dispatchLine(engine *db.Engine, line string) (interface{}, error) {

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	name := fields[0]

	arity, ok := engine.KeyArity(name)
	if !ok {
		return nil, &db.LookupError{Command: name}
	}

	if len(fields) < 1+arity {
		return nil, fmt.Errorf("%s: expected %d key(s)", name, arity)
	}

	keys := fields[1 : 1+arity]
	args := fields[1+arity:]

	return engine.Dispatch(name, keys, args)
}
