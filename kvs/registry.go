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

package kvs

import (
	"fmt"

	"github.com/abcum/tempo/cnf"
)

var backends = make(map[string]func(*cnf.Options) (DB, error))

// Register registers a backend constructor under name, enabling its use
// as the engine's datastore. Backend packages call this from an init()
// (see kvs/memory), following the teacher's kvs/ds.go registry shape.
func Register(name string, constructor func(*cnf.Options) (DB, error)) {
	backends[name] = constructor
}

// New opens the backend named by opts.DB.Path ("memory" is the only
// backend that ships; the registry exists so another storage engine
// could be added without touching the rest of the package).
func New(opts *cnf.Options) (DB, error) {
	constructor, ok := backends[opts.DB.Path]
	if !ok {
		return nil, fmt.Errorf("no registered datastore for path %q", opts.DB.Path)
	}
	return constructor(opts)
}
