package mysql

import (
	"context"
	"database/sql"
	"errors"

	"auction-coordinator/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the kv_entries table if it does not exist yet.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS kv_entries (
            k VARCHAR(255) PRIMARY KEY,
            v MEDIUMBLOB NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
        )
    `
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT v FROM kv_entries WHERE k = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *MySQLStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
        INSERT INTO kv_entries (k, v) VALUES (?, ?)
        ON DUPLICATE KEY UPDATE v = VALUES(v)
    `
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}
