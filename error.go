// Copyright 2015 Richard Lehane. All rights reserved.
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

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrorKind discriminates the error taxonomy of spec.md §7. Every error
// the package returns carries exactly one of these.
type ErrorKind int

const (
	KindInvalidFileFormat ErrorKind = iota
	KindInvalidDifat
	KindInvalidEntryIndex
	KindInvalidEntrySize
	KindInvalidEntryChain
	KindIOError
	KindParseError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidFileFormat:
		return "invalid file format"
	case KindInvalidDifat:
		return "invalid difat"
	case KindInvalidEntryIndex:
		return "invalid entry index"
	case KindInvalidEntrySize:
		return "invalid entry size"
	case KindInvalidEntryChain:
		return "invalid entry chain"
	case KindIOError:
		return "io error"
	case KindParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every operation in this
// package. It carries a Kind sufficient to distinguish the seven
// taxonomy members of spec.md §7, a descriptive message, and (for
// IoError) the wrapped underlying error.
type Error struct {
	Kind ErrorKind
	msg  string
	val  int64
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("mscfb: %s: %s (%s)", e.Kind, e.msg, e.err)
	}
	if e.val != 0 {
		return fmt.Sprintf("mscfb: %s: %s (%s)", e.Kind, e.msg, humanize.Comma(e.val))
	}
	return fmt.Sprintf("mscfb: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Typ preserves the teacher's (*Error).Typ() accessor name for the
// discriminant, alongside the more idiomatic Kind field.
func (e *Error) Typ() ErrorKind { return e.Kind }

func newError(kind ErrorKind, msg string, val int64) *Error {
	return &Error{Kind: kind, msg: msg, val: val}
}

func wrapIOError(msg string, err error) *Error {
	return &Error{Kind: KindIOError, msg: msg, err: err}
}
