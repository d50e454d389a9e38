package lookupstats

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type countChecker struct{ n int }

func (c countChecker) IsCompromised(ctx context.Context, pw string) (bool, error) {
	return c.n > 0, nil
}
func (c countChecker) Count(ctx context.Context, pw string) (int, error) { return c.n, nil }

func TestRecorderFlushesOnShutdown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO breach_lookup_events (source, outcome, looked_up_at) VALUES ($1,$2,$3),($4,$5,$6)`)).
		WithArgs("api", "hit", sqlmock.AnyArg(), "api", "miss", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	r := Start(db, 16, 1, nil)
	r.Record("api", Hit)
	r.Record("api", Miss)
	r.Shutdown()

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAfterShutdownIsDropped(t *testing.T) {
	r := Start(nil, 64, 1, nil)
	r.Shutdown()
	r.Shutdown()
	for i := 0; i < 32; i++ {
		r.Record("api", Hit)
	}
	require.Zero(t, len(r.ch), "events queued after shutdown are never flushed")

	var nilRec *Recorder
	nilRec.Record("api", Hit)
	nilRec.Shutdown()
}

func TestWrapPreservesCounter(t *testing.T) {
	r := Start(nil, 16, 1, nil)
	defer r.Shutdown()

	w := r.Wrap("api", countChecker{n: 3})
	c, ok := w.(counter)
	require.True(t, ok)
	n, err := c.Count(context.Background(), "password")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	plain := r.Wrap("api", breach.CheckerFunc(func(ctx context.Context, pw string) (bool, error) {
		return false, errors.New("down")
	}))
	_, ok = plain.(counter)
	require.False(t, ok)
	_, err = plain.IsCompromised(context.Background(), "password")
	require.Error(t, err)

	require.Nil(t, r.Wrap("api", nil))
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS breach_lookup_events")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
