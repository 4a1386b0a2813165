package iconset

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInputNotFound matches every *InputNotFoundError via errors.Is.
var ErrInputNotFound = errors.New("source icon not found")

// InputNotFoundError is returned when the source path is missing or is not a
// regular file. Nothing has been written when it is returned.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("The specified icon path does not exist: %s", e.Path)
}

// Is reports whether target is ErrInputNotFound.
func (e *InputNotFoundError) Is(target error) bool {
	return target == ErrInputNotFound
}
