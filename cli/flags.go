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

var flags = map[string]string{
	"db-path": `Path to the data file. Only "memory" is currently implemented.`,
	"db-base": `Name of the root key. Accepted, but the memory backend does not use it, so series keys are not prefixed.`,
	"bind":    `The hostname or ip address the command console listens on.`,
	"name":    `The name of this node, used for logs. Defaults to the hostname.`,
	"port":    `The port on which to serve the command console.`,
}
