package metainfo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotADictionary reports a value that was expected to be a
	// dictionary (the root, the info value, a file entry) but was not.
	ErrNotADictionary = errors.New("expected a dictionary")
	// ErrFieldNotFound matches any FieldNotFoundError under errors.Is.
	ErrFieldNotFound = errors.New("required field not found")
	// ErrInvalidString reports a byte string that was expected to be text
	// but was not valid UTF-8.
	ErrInvalidString = errors.New("byte string is not valid UTF-8")
	// ErrInvalidPath reports a path list element that was not a byte string.
	ErrInvalidPath = errors.New("file path is not a list of strings")
	// ErrInvalidPieceLength reports a piece length outside the valid
	// numeric domain.
	ErrInvalidPieceLength = errors.New("invalid piece length")
	// ErrInvalidFileLength reports a negative file length.
	ErrInvalidFileLength = errors.New("invalid file length")
	// ErrMismatchedPieceLength reports a pieces string whose length is not
	// a multiple of 20 bytes.
	ErrMismatchedPieceLength = errors.New("pieces length is not a multiple of 20 bytes")
)

// FieldNotFoundError reports a required dictionary key that was absent or
// held the wrong type. Field uses bracket paths for nested keys, such as
// "info[piece length]" or "file[path]".
type FieldNotFoundError struct {
	Field string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("couldn't find field %s", e.Field)
}

func (e FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}
