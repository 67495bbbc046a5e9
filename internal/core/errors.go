package core

import "errors"

// Reasons a user submission or inbound event was dropped. None of these are
// surfaced to the user; they only show up in debug logs.
var (
	ErrEmptySubmission = errors.New("empty submission")
	ErrMissingTarget   = errors.New("directed send without target")
	ErrMissingBody     = errors.New("directed send without body")
	ErrForeignRoom     = errors.New("broadcast for a room that is not current")
)
