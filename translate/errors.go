package translate

import (
	"github.com/pkg/errors"

	"motion2constatus/constatus"
	"motion2constatus/motion"
)

var (
	// ErrWrite is returned when a constatus configuration cannot be written.
	ErrWrite = errors.New("write error")
	// ErrIncludeDepth is returned when camera includes nest deeper than allowed,
	// which in practice means they form a cycle.
	ErrIncludeDepth = errors.New("include depth exceeded")
)

// Kind labels the failure class of an error returned by a translation.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, motion.ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, motion.ErrMalformedLine):
		return "malformed_line"
	case errors.Is(err, motion.ErrValueConversion):
		return "value_conversion"
	case errors.Is(err, constatus.ErrMissingSource):
		return "missing_source"
	case errors.Is(err, ErrWrite):
		return "write_error"
	case errors.Is(err, ErrIncludeDepth):
		return "include_depth"
	}
	return "other"
}
