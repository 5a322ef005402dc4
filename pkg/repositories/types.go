package repositories

import (
	"errors"
	"fmt"
)

type ErrNotFound struct {
	SlotID int
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("slot %d not found", e.SlotID)
}

func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
