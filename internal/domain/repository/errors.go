package repository

import "errors"

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("not found")
