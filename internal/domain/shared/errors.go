// Package shared holds the types every domain package of the UOM service builds on:
// the error taxonomy, pagination, transactions and change notifications.
package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error into one of the fixed service error kinds.
type Kind uint8

// Error kinds. The zero value is not a valid kind.
const (
	KindDatabase Kind = iota + 1
	KindInvalidData
	KindResourceConflict
	KindResourceNotFound
	KindServiceUnavailable
	KindUnexpected
)

type kindInfo struct {
	code   int
	symbol string
	key    string
}

var kinds = map[Kind]kindInfo{
	KindDatabase:           {1001, "DATABASE_ERROR", "error.database"},
	KindInvalidData:        {1002, "INVALID_DATA", "error.invalid_data"},
	KindResourceConflict:   {1003, "RESOURCE_CONFLICT", "error.resource_conflict"},
	KindResourceNotFound:   {1004, "RESOURCE_NOT_FOUND", "error.resource_not_found"},
	KindServiceUnavailable: {1005, "SERVICE_UNAVAILABLE", "error.service_unavailable"},
	KindUnexpected:         {1006, "UNEXPECTED_ERROR", "error.unexpected"},
}

// Code returns the numeric error code.
func (k Kind) Code() int {
	return kinds[k].code
}

// Symbol returns the symbolic name, e.g. RESOURCE_NOT_FOUND.
func (k Kind) Symbol() string {
	if info, ok := kinds[k]; ok {
		return info.symbol
	}
	return "UNKNOWN"
}

// MessageKey returns the catalog key of the kind's default message.
func (k Kind) MessageKey() string {
	return kinds[k].key
}

func (k Kind) String() string {
	return k.Symbol()
}

// Kinds returns every defined kind in code order.
func Kinds() []Kind {
	return []Kind{
		KindDatabase,
		KindInvalidData,
		KindResourceConflict,
		KindResourceNotFound,
		KindServiceUnavailable,
		KindUnexpected,
	}
}

// Error is the single error type returned across layer boundaries.
// Key and Args name a catalog message that is resolved at the edge; Detail is
// a literal used when no key is set.
type Error struct {
	Kind   Kind
	Key    string
	Args   []string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Symbol())
	if e.Key != "" {
		b.WriteString(": ")
		b.WriteString(e.Key)
		if len(e.Args) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(e.Args, ", "))
			b.WriteString("]")
		}
	} else if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil && e.Detail != e.Err.Error() {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target carrying a
// key must also match the key.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

// Sentinels for errors.Is checks by kind.
var (
	ErrDatabase           = &Error{Kind: KindDatabase}
	ErrInvalidData        = &Error{Kind: KindInvalidData}
	ErrResourceConflict   = &Error{Kind: KindResourceConflict}
	ErrResourceNotFound   = &Error{Kind: KindResourceNotFound}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
	ErrUnexpected         = &Error{Kind: KindUnexpected}
)

// Message keys used by the constructors below.
const (
	KeyNotFound      = "crud.not.found"
	KeyAlreadyExists = "crud.already.exists"
)

// NotFound reports that entity has no record where field equals value.
func NotFound(entity, field string, value any) *Error {
	return &Error{
		Kind: KindResourceNotFound,
		Key:  KeyNotFound,
		Args: []string{entity, field, fmt.Sprint(value)},
	}
}

// AlreadyExists reports that entity already has a record where field equals value.
func AlreadyExists(entity, field string, value any) *Error {
	return &Error{
		Kind: KindResourceConflict,
		Key:  KeyAlreadyExists,
		Args: []string{entity, field, fmt.Sprint(value)},
	}
}

// InvalidData wraps a validation failure.
func InvalidData(err error) *Error {
	return &Error{Kind: KindInvalidData, Detail: err.Error(), Err: err}
}

// InvalidDataf builds a validation failure from a catalog key.
func InvalidDataf(key string, args ...string) *Error {
	return &Error{Kind: KindInvalidData, Key: key, Args: args}
}

// ServiceUnavailable reports a dependency that cannot serve requests right now.
func ServiceUnavailable(err error) *Error {
	return &Error{Kind: KindServiceUnavailable, Detail: err.Error(), Err: err}
}

// Database reports a storage failure that should keep its own kind.
func Database(err error) *Error {
	return &Error{Kind: KindDatabase, Detail: err.Error(), Err: err}
}

// Unexpected wraps err as an unexpected error, surfacing its message as detail.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Detail: err.Error(), Err: err}
}

// KindOf returns the kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// Normalize returns err unchanged when it already carries a kind and wraps
// anything else, persistence failures included, as an unexpected error.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}
