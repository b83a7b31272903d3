package kvpkg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLStore implements Store on top of a single relational table so the same
// code runs against postgres (lib/pq) and sqlite3 (mattn/go-sqlite3).
// Queries are written with ? placeholders and rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore returns a Store backed by the given database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const schemaQuery = `
CREATE TABLE IF NOT EXISTS ledger_kv (
    namespace TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    version BIGINT NOT NULL,
    PRIMARY KEY (namespace, key)
)
`

// EnsureSchema creates the keyspace table if it does not exist yet.
// It is idempotent and safe to run on every startup.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaQuery)
	return err
}

const getQuery = `
SELECT value, version FROM ledger_kv
WHERE namespace = ? AND key = ?
`

// Get reads one key. A missing key is reported as Version 0, not an error.
func (s *SQLStore) Get(ctx context.Context, namespace, key string) (Entry, error) {
	l := zerolog.Ctx(ctx)

	e := Entry{Namespace: namespace, Key: key}

	var value string

	row := s.db.QueryRowContext(ctx, s.db.Rebind(getQuery), namespace, key)

	err := row.Scan(&value, &e.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, nil
		}

		l.Error().Err(err).Send()

		return e, err
	}

	e.Value = []byte(value)

	return e, nil
}

const listKeysQuery = `
SELECT key FROM ledger_kv
WHERE namespace = ?
`

// ListKeys scans all keys of a namespace.
func (s *SQLStore) ListKeys(ctx context.Context, namespace string) ([]string, error) {
	l := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(listKeysQuery), namespace)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, err
	}
	defer rows.Close()

	keys := []string{}

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			l.Error().Err(err).Send()
			return nil, err
		}

		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, err
	}

	return keys, nil
}

const insertQuery = `
INSERT INTO ledger_kv (namespace, key, value, version)
VALUES (?, ?, ?, 1)
`

const updateCheckedQuery = `
UPDATE ledger_kv
SET value = ?, version = version + 1
WHERE namespace = ? AND key = ? AND version = ?
`

const selectVersionQuery = `
SELECT version FROM ledger_kv
WHERE namespace = ? AND key = ?
`

// Commit applies all sets in one database transaction, each write guarded by
// its check's version. The version comparison happens inside the UPDATE (or
// as a unique-key INSERT for must-not-exist checks), so a concurrent commit
// that touched any checked key makes this one fail with ErrCommitConflict
// before anything becomes visible.
func (s *SQLStore) Commit(ctx context.Context, checks []Check, sets []Set) error {
	l := zerolog.Ctx(ctx)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	type checkKey struct{ namespace, key string }

	pending := make(map[checkKey]int64, len(checks))
	for _, c := range checks {
		pending[checkKey{c.Namespace, c.Key}] = c.Version
	}

	for _, set := range sets {
		version, checked := pending[checkKey{set.Namespace, set.Key}]
		delete(pending, checkKey{set.Namespace, set.Key})

		switch {
		case checked && version == 0:
			_, err := tx.ExecContext(ctx, tx.Rebind(insertQuery), set.Namespace, set.Key, string(set.Value))
			if err != nil {
				if isUniqueViolation(err) {
					return ErrCommitConflict
				}

				l.Error().Err(err).Send()

				return err
			}
		case checked:
			res, err := tx.ExecContext(ctx, tx.Rebind(updateCheckedQuery), string(set.Value), set.Namespace, set.Key, version)
			if err != nil {
				l.Error().Err(err).Send()
				return err
			}

			affected, err := res.RowsAffected()
			if err != nil {
				l.Error().Err(err).Send()
				return err
			}

			if affected != 1 {
				return ErrCommitConflict
			}
		default:
			if err := s.upsert(ctx, tx, set); err != nil {
				return err
			}
		}
	}

	// Checks without a matching set still gate the commit.
	for key, version := range pending {
		var current int64

		row := tx.QueryRowContext(ctx, tx.Rebind(selectVersionQuery), key.namespace, key.key)

		err := row.Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			current = 0
		} else if err != nil {
			l.Error().Err(err).Send()
			return err
		}

		if current != version {
			return ErrCommitConflict
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return err
	}

	return nil
}

const updateQuery = `
UPDATE ledger_kv
SET value = ?, version = version + 1
WHERE namespace = ? AND key = ?
`

// upsert writes a key without a version precondition.
func (s *SQLStore) upsert(ctx context.Context, tx *sqlx.Tx, set Set) error {
	l := zerolog.Ctx(ctx)

	res, err := tx.ExecContext(ctx, tx.Rebind(updateQuery), string(set.Value), set.Namespace, set.Key)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if affected == 1 {
		return nil
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(insertQuery), set.Namespace, set.Key, string(set.Value))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCommitConflict
		}

		l.Error().Err(err).Send()

		return err
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return true
	}

	return false
}
