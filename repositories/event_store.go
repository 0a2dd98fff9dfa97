package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Ключи документов хранилища.
const (
	KeyRace        = "race"
	KeyCheckpoints = "checkpoints"
)

var knownKeys = map[string]bool{
	KeyRace:        true,
	KeyCheckpoints: true,
}

// EventStore: персистентное хранилище документов соревнования по фиксированным ключам.
type EventStore interface {
	Exists(ctx context.Context, key string) (bool, error)

	// Get декодирует документ в dst; *NotFoundError, если ключ не записан.
	Get(ctx context.Context, key string, dst interface{}) error

	// Put полностью перезаписывает документ (не merge) и возвращается после коммита.
	Put(ctx context.Context, key string, record interface{}) error

	// Delete удаляет документ; отсутствующий ключ ошибкой не считается.
	Delete(ctx context.Context, key string) error

	// Transact выполняет fn в одной транзакции: все изменения fn фиксируются вместе,
	// ошибка fn откатывает их. Транзакции выполняются строго по очереди.
	// Внутри fn можно пользоваться только tx.
	Transact(ctx context.Context, fn func(tx EventTx) error) error
}

// EventTx: операции над документами внутри Transact.
type EventTx interface {
	Exists(key string) (bool, error)
	Get(key string, dst interface{}) error
	Put(key string, record interface{}) error
	Delete(key string) error
}

type sqlEventStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLEventStore работает и с PostgreSQL, и с SQLite: оба драйвера принимают $N.
func NewSQLEventStore(db *sql.DB) EventStore {
	return &sqlEventStore{db: db, now: time.Now}
}

const (
	selectPayloadQuery = `SELECT payload FROM event_records WHERE record_key = $1`
	existsQuery        = `SELECT EXISTS (SELECT 1 FROM event_records WHERE record_key = $1)`
	upsertQuery        = `INSERT INTO event_records (record_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	deleteQuery = `DELETE FROM event_records WHERE record_key = $1`
)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkKey(key string) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func (s *sqlEventStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	return recordExists(ctx, s.db, key)
}

func (s *sqlEventStore) Get(ctx context.Context, key string, dst interface{}) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return getRecord(ctx, s.db, key, dst)
}

func (s *sqlEventStore) Put(ctx context.Context, key string, record interface{}) error {
	return s.Transact(ctx, func(tx EventTx) error {
		return tx.Put(key, record)
	})
}

func (s *sqlEventStore) Delete(ctx context.Context, key string) error {
	return s.Transact(ctx, func(tx EventTx) error {
		return tx.Delete(key)
	})
}

func (s *sqlEventStore) Transact(ctx context.Context, fn func(tx EventTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin", "", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlEventTx{ctx: ctx, tx: tx, now: s.now}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageError("commit", "", err)
	}
	return nil
}

type sqlEventTx struct {
	ctx context.Context
	tx  *sql.Tx
	now func() time.Time
}

func (t *sqlEventTx) Exists(key string) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	return recordExists(t.ctx, t.tx, key)
}

func (t *sqlEventTx) Get(key string, dst interface{}) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return getRecord(t.ctx, t.tx, key, dst)
}

func (t *sqlEventTx) Put(key string, record interface{}) error {
	if err := checkKey(key); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return storageError("encode", key, err)
	}
	if _, err := t.tx.ExecContext(t.ctx, upsertQuery, key, string(payload), t.now().UTC()); err != nil {
		return storageError("write", key, err)
	}
	return nil
}

func (t *sqlEventTx) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := t.tx.ExecContext(t.ctx, deleteQuery, key); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

func recordExists(ctx context.Context, q queryRower, key string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, existsQuery, key).Scan(&exists); err != nil {
		return false, storageError("exists", key, err)
	}
	return exists, nil
}

func getRecord(ctx context.Context, q queryRower, key string, dst interface{}) error {
	var payload string
	err := q.QueryRowContext(ctx, selectPayloadQuery, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Key: key}
		}
		return storageError("read", key, err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return storageError("decode", key, err)
	}
	return nil
}
