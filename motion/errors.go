package motion

import (
	"github.com/pkg/errors"
)

var (
	// ErrFileNotFound is returned when a configuration file cannot be opened.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedLine is returned for a directive without a value.
	ErrMalformedLine = errors.New("malformed line")
	// ErrValueConversion is returned when a directive is not of the requested type.
	ErrValueConversion = errors.New("value conversion")
)
