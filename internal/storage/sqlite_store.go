package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const (
	cacheTable   = "suggestions_cache"
	historyTable = "search_history"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS suggestions_cache (
	cache_key TEXT PRIMARY KEY,
	payload BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS search_history (
	query TEXT PRIMARY KEY,
	seq INTEGER NOT NULL
);
`

// SQLiteStore persists the cache in a local database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "suggestions.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sq.Select("payload").From(cacheTable).Where(sq.Eq{"cache_key": key}).ToSql()
	if err != nil {
		return nil, false, err
	}
	var b []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get entry: %w", err)
	}
	return b, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.Insert(cacheTable).
		Columns("cache_key", "payload").
		Values(key, value).
		Suffix("ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete(cacheTable).Where(sq.Eq{"cache_key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("cache_key").From(cacheTable).OrderBy("cache_key").ToSql()
	if err != nil {
		return nil, err
	}
	return s.strings(ctx, query, args...)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	for _, table := range []string{cacheTable, historyTable} {
		query, args, err := sq.Delete(table).ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLiteStore) PushQuery(ctx context.Context, q string, max int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := sq.Insert(historyTable).
		Columns("query", "seq").
		Values(q, sq.Expr("(SELECT COALESCE(MAX(seq), 0) + 1 FROM search_history)")).
		Suffix("ON CONFLICT(query) DO UPDATE SET seq = excluded.seq").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("push query: %w", err)
	}
	if max > 0 {
		query, args, err = sq.Delete(historyTable).
			Where("query NOT IN (SELECT query FROM search_history ORDER BY seq DESC LIMIT ?)", max).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecentQueries(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("query").From(historyTable).OrderBy("seq DESC").ToSql()
	if err != nil {
		return nil, err
	}
	return s.strings(ctx, query, args...)
}

func (s *SQLiteStore) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
