package service

import "errors"

var (
	// ErrInvalidReference marks a malformed submission: missing assignment
	// reference, or an owner that is not exactly one of user/group.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrNotFound marks a referenced entity that does not exist, or a
	// lookup with no matching rows.
	ErrNotFound = errors.New("not found")
)
