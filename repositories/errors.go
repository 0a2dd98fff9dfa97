package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrUnknownKey       = errors.New("unknown record key")
	ErrStoreUnavailable = errors.New("event store is unavailable")
)

// NotFoundError: запрошен ключ, который ещё ни разу не записывался.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// StorageError оборачивает неудачное чтение или запись. Запись не повторяется.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("event store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
