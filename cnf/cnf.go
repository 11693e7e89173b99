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

package cnf

// Options defines global configuration options
type Options struct {
	DB struct {
		Path string // Path to store the data file (only "memory" is implemented)
		Base string // Base key name; accepted but not used by the memory backend, so series keys are not prefixed
	}

	Node struct {
		Host string // Hostname or bind address for the console
		Name string // Name of this node, used for logs
	}

	Port struct {
		Tcp int // Port on which to serve the command console
	}

	Logging struct {
		Level  string // Stores the configured logging level
		Output string // Stores the configured logging output: none, stdout, stderr, stackdriver
		Format string // Stores the configured logging encoding: text or json
	}
}
