package db

import (
	"errors"
)

// ErrorInvalidRequest is a user facing error returned by repositories.
var ErrorInvalidRequest = errors.New("invalid request")

// ErrorNoRecord is returned by repositories when a lookup by ID matches no
// record.
var ErrorNoRecord = errors.New("no record found")
