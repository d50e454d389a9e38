package breach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/5w1tchy/passwarden/internal/repository/sqlconnect"
)

const (
	countQuery = `SELECT count FROM breached_hashes WHERE prefix = $1 AND suffix = $2`

	Schema = `CREATE TABLE IF NOT EXISTS breached_hashes (
  prefix char(5)  NOT NULL,
  suffix char(35) NOT NULL,
  count  integer  NOT NULL,
  PRIMARY KEY (prefix, suffix)
)`

	upsertQuery = `INSERT INTO breached_hashes (prefix, suffix, count) VALUES ($1, $2, $3)
ON CONFLICT (prefix, suffix) DO UPDATE SET count = EXCLUDED.count`
)

// SQLChecker looks hashes up in a local mirror table:
//
//	breached_hashes(prefix char(5), suffix char(35), count int, primary key (prefix, suffix))
type SQLChecker struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLChecker(db *sql.DB) *SQLChecker {
	return &SQLChecker{db: db, timeout: 2 * time.Second}
}

func (s *SQLChecker) IsCompromised(ctx context.Context, pw string) (bool, error) {
	n, err := s.Count(ctx, pw)
	return n > 0, err
}

func (s *SQLChecker) Count(ctx context.Context, pw string) (int, error) {
	if pw == "" {
		return 0, pwerr.Invalid("password", "must not be empty")
	}
	prefix, suffix := split(pw)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var n int
	err := s.db.QueryRowContext(ctx, countQuery, prefix, suffix).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pwerr.ErrBreachLookup, err)
	}
	return n, nil
}

// ImportSQL loads a corpus in ScanCorpus format into breached_hashes in one
// transaction, creating the table if needed. Existing counts are replaced.
func ImportSQL(ctx context.Context, db *sql.DB, r io.Reader) (int, error) {
	n := 0
	err := sqlconnect.WithinTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, Schema); err != nil {
			return fmt.Errorf("create breached_hashes: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, upsertQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		return ScanCorpus(r, func(hash string, count int) error {
			if _, err := stmt.ExecContext(ctx, hash[:prefixLen], hash[prefixLen:], count); err != nil {
				return err
			}
			n++
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
