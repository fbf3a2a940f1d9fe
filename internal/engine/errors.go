// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"errors"
	"fmt"
)

// Kind is an error classification, not a type name, matching spec §7.
type Kind int

const (
	KindAuthorityMismatch Kind = iota
	KindHistoryDuplicate
	KindHistoryGap
	KindInvalidStep
	KindStoreFailure
	KindProgrammerError
)

func (k Kind) String() string {
	switch k {
	case KindAuthorityMismatch:
		return "AuthorityMismatch"
	case KindHistoryDuplicate:
		return "HistoryDuplicate"
	case KindHistoryGap:
		return "HistoryGap"
	case KindInvalidStep:
		return "InvalidStep"
	case KindStoreFailure:
		return "StoreFailure"
	case KindProgrammerError:
		return "ProgrammerError"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with context. The resolver does not panic: a failed
// dice roll is an ordinary result with success=false, a step handler's
// KindInvalidStep error is turned into a persisted result with
// failed=true, and KindProgrammerError / KindStoreFailure are returned
// to the caller as errors.
type Error struct {
	Kind    Kind
	Message string
	Resend  int // meaningful only for KindHistoryGap
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func ResendFrom(start int) *Error {
	return &Error{Kind: KindHistoryGap, Message: "history gap", Resend: start}
}

// As is a thin re-export so callers don't need a second import for the
// common case of testing a returned error's Kind.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
