package internal

import "errors"

var (
	// ErrInvalidPattern is returned when the find pattern does not compile
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrNonUTF8 is returned when an input line or file is not valid UTF-8
	ErrNonUTF8 = errors.New("input is not valid UTF-8")
	// ErrIO wraps failures opening, reading or writing a source
	ErrIO = errors.New("i/o failure")
)
