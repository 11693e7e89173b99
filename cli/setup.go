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
	"os"

	"github.com/abcum/tempo/log"
)

// setup fills in defaults and validates the parsed flags, following the
// teacher's empty-string/zero-default-then-validate pattern.
func setup() {

	// --------------------------------------------------
	// DB
	// --------------------------------------------------

	if opts.DB.Path == "" {
		opts.DB.Path = "memory"
	}

	if opts.DB.Path != "memory" {
		log.Fatalf("Invalid db-path %s. Only the memory backend is implemented.", opts.DB.Path)
	}

	if opts.DB.Base == "" {
		opts.DB.Base = "tempo"
	}

	// --------------------------------------------------
	// Node
	// --------------------------------------------------

	if opts.Node.Host == "" {
		opts.Node.Host = "0.0.0.0"
	}

	if opts.Node.Name == "" {
		opts.Node.Name, _ = os.Hostname()
	}

	// --------------------------------------------------
	// Ports
	// --------------------------------------------------

	if opts.Port.Tcp == 0 {
		opts.Port.Tcp = 33693
	}

	if opts.Port.Tcp < 0 || opts.Port.Tcp > 65535 {
		log.Fatalf("Invalid port %d. Please specify a valid port number for --port", opts.Port.Tcp)
	}

	// --------------------------------------------------
	// Logging
	// --------------------------------------------------

	switch opts.Logging.Level {
	case "":
		opts.Logging.Level = "info"
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		log.Fatal("Incorrect log level specified")
	}

	switch opts.Logging.Output {
	case "":
		opts.Logging.Output = "stdout"
	case "none", "stdout", "stderr", "stackdriver":
	default:
		log.Fatal("Incorrect log output specified")
	}

	switch opts.Logging.Format {
	case "":
		opts.Logging.Format = "text"
	case "text", "json":
	default:
		log.Fatal("Incorrect log format specified")
	}

	log.SetLevel(opts.Logging.Level)
	log.SetFormat(opts.Logging.Format)
	log.SetOutput(opts.Logging.Output)

}
