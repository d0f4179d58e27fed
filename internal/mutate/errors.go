package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// PinnedError is returned for operations the trailing "add new task" row
// does not support (delete, archive, tag).
type PinnedError struct {
	Op  string
	Key string
}

func (e PinnedError) Error() string {
	return fmt.Sprintf("cannot %s the trailing item", e.Op)
}

// PayloadError wraps a tag drop payload that could not be decoded.
type PayloadError struct {
	Err error
}

func (e PayloadError) Error() string {
	return "malformed tag payload: " + e.Err.Error()
}

func (e PayloadError) Unwrap() error { return e.Err }

var ErrDuplicateTag = errors.New("tag already exists")

// IsNotFound reports whether err is a lookup failure (a stale key).
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
