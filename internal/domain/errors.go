package domain

import "errors"

// ErrNotFound is returned by repositories when no row matches, including rows
// owned by someone else.
var ErrNotFound = errors.New("record not found")
