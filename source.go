// Copyright 2013 Richard Lehane. All rights reserved.
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

package mscfb

import "os"

// fileSource adapts *os.File to Source by asking the filesystem for
// its length once at construction, rather than requiring every caller
// to implement Size() themselves. File I/O policy - whether to mmap,
// read once, or stream - is deliberately a caller concern (spec.md
// §1); this is the thin default for the common "open a path" case.
type fileSource struct {
	*os.File
	size int64
}

// OpenFile opens path and wraps it as a Source suitable for Open.
func OpenFile(path string) (Source, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, wrapIOError("opening file", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, wrapIOError("statting file", err)
	}
	return &fileSource{File: f, size: fi.Size()}, f.Close, nil
}

func (s *fileSource) Size() int64 { return s.size }
