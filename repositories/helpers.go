package repositories

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// classifyDBError помечает ошибки недоступности хранилища (нет соединения,
// база заблокирована), чтобы их можно было отличить от прочих сбоев.
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" { // connection_exception
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}

func storageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: classifyDBError(err)}
}
