package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema таблица хранилища "ключ - значение"
const Schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	selectValueSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteValueSQL = `DELETE FROM kv_store WHERE key = $1`
)

// pgxQuerier подмножество *pgxpool.Pool, используемое хранилищем
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore хранит списки расчётов в таблице kv_store
type PostgresStore struct {
	db pgxQuerier
}

// NewPostgresStore создаёт хранилище поверх пула соединений
func NewPostgresStore(db pgxQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создаёт таблицу kv_store, если её нет
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create kv_store: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.db.Exec(ctx, upsertValueSQL, key, value)
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, deleteValueSQL, key)
	return err
}
