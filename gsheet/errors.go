package gsheet

import (
	"errors"
	"fmt"
)

// ErrBadLocator indicates the spreadsheet URL does not identify a spreadsheet.
var ErrBadLocator = errors.New("not a valid spreadsheet URL")

// ErrSheetNotFound indicates the named sheet does not exist in the spreadsheet.
var ErrSheetNotFound = errors.New("sheet not found")

// AuthError reports a credential construction or authorization failure.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError reports a failure to resolve or fetch spreadsheet data.
// Locator resolution, sheet resolution, permission and network failures
// are all collapsed into this one kind.
type FetchError struct {
	Locator string
	Sheet   string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loading sheet %q from %q: %v", e.Sheet, e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
