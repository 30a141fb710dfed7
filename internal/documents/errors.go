package documents

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Domain errors for catalog operations.
var (
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("document reference already exists")
	ErrInvalidReference = errors.New("invalid document reference")
)

// ParseRef validates ref against the storage reference format.
func ParseRef(ref string) (uuid.UUID, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return id, nil
}
