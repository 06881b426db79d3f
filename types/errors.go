package types

import (
	"errors"
	"fmt"
)

type FetchErrorKind string

const (
	// FetchUnavailable marks a transient failure: network, timeout, datastore down.
	FetchUnavailable FetchErrorKind = "unavailable"
	FetchNotFound    FetchErrorKind = "not_found"
	FetchInvalid     FetchErrorKind = "invalid"
	FetchRejected    FetchErrorKind = "rejected"
)

// FetchError is returned by every backend operation that fails.
type FetchError struct {
	Op   string
	Kind FetchErrorKind
	Err  error
}

func NewFetchError(op string, kind FetchErrorKind, err error) *FetchError {
	return &FetchError{Op: op, Kind: kind, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Temporary() bool {
	return e.Kind == FetchUnavailable
}

func fetchKind(err error) (FetchErrorKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}

	return "", false
}

func IsNotFound(err error) bool {
	kind, ok := fetchKind(err)
	return ok && kind == FetchNotFound
}

func IsTemporary(err error) bool {
	kind, ok := fetchKind(err)
	return ok && kind == FetchUnavailable
}

func IsInvalid(err error) bool {
	kind, ok := fetchKind(err)
	return ok && (kind == FetchInvalid || kind == FetchRejected)
}
