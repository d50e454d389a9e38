package breach

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	no := CheckerFunc(func(context.Context, string) (bool, error) { return false, nil })
	yes := CheckerFunc(func(context.Context, string) (bool, error) { return true, nil })
	boom := errors.New("boom")
	fail := CheckerFunc(func(context.Context, string) (bool, error) { return false, boom })

	ctx := context.Background()

	hit, err := Chain{no, nil, no}.IsCompromised(ctx, "x")
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = Chain{no, yes, fail}.IsCompromised(ctx, "x")
	require.NoError(t, err)
	assert.True(t, hit, "stops at first positive")

	_, err = Chain{fail, yes}.IsCompromised(ctx, "x")
	assert.ErrorIs(t, err, boom)
}

func TestBloomChecker(t *testing.T) {
	input := strings.Join([]string{
		"# leaked",
		"5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8:9659365",
		"",
		"7c4a8d09ca3762af61e59520943dc26494f8941b",
		"B1B3773A05C0ED0176787A4F1574FF0075F7521E:0",
	}, "\n")
	b, added, err := LoadBloom(strings.NewReader(input), 100, 0.001)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	ctx := context.Background()
	for _, pw := range []string{"password", "123456"} {
		hit, err := b.IsCompromised(ctx, pw)
		require.NoError(t, err)
		assert.True(t, hit, pw)
	}

	b.Add("hunter2")
	hit, _ := b.IsCompromised(ctx, "hunter2")
	assert.True(t, hit)
}

func TestLoadBloomRejectsGarbage(t *testing.T) {
	_, _, err := LoadBloom(strings.NewReader("5BAA61E4\n"), 10, 0.01)
	assert.ErrorContains(t, err, "line 1")

	_, _, err = LoadBloom(strings.NewReader("5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8:x\n"), 10, 0.01)
	assert.Error(t, err)
}

func TestBloomAddHash(t *testing.T) {
	b := NewBloomChecker(10, 0.01)
	require.NoError(t, b.AddHash(" 5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8 "))
	hit, err := b.IsCompromised(context.Background(), "password")
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Error(t, b.AddHash("ZZAA61E4C9B93F3F0682250B6CF8331B7EE68FD8"))
	assert.Error(t, b.AddHash("5BAA61E4"))
}

func TestSQLChecker(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	q := regexp.QuoteMeta(countQuery)
	mock.ExpectQuery(q).
		WithArgs("5BAA6", "1E4C9B93F3F0682250B6CF8331B7EE68FD8").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}))
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	s := NewSQLChecker(db)
	ctx := context.Background()

	n, err := s.Count(ctx, "password")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	hit, err := s.IsCompromised(ctx, "unlisted")
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = s.IsCompromised(ctx, "whatever")
	assert.ErrorIs(t, err, pwerr.ErrBreachLookup)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheFailsOpen(t *testing.T) {
	var nilCache *RedisCache
	_, ok := nilCache.Get(context.Background(), "5BAA6")
	assert.False(t, ok)

	disabled := NewRedisCache(nil, 0, nil)
	disabled.Set(context.Background(), "5BAA6", "body")
	_, ok = disabled.Get(context.Background(), "5BAA6")
	assert.False(t, ok)

	// nothing listens on port 1
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	c := NewRedisCache(rdb, time.Minute, nil)
	c.Set(context.Background(), "5BAA6", "body")
	_, ok = c.Get(context.Background(), "5BAA6")
	assert.False(t, ok)
	assert.Equal(t, "pw:range:5BAA6", c.key("5BAA6"))
}

func TestImportSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS breached_hashes")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO breached_hashes"))
	prep.ExpectExec().WithArgs("5BAA6", "1E4C9B93F3F0682250B6CF8331B7EE68FD8", 3861493).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("7C4A8", "D09CA3762AF61E59520943DC26494F8941B", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	input := "# corpus\n5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8:3861493\n\n0000000000000000000000000000000000000000:0\n7C4A8D09CA3762AF61E59520943DC26494F8941B\n"
	n, err := ImportSQL(context.Background(), db, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportSQLRollsBackOnBadLine(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS breached_hashes")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO breached_hashes"))
	mock.ExpectRollback()

	_, err = ImportSQL(context.Background(), db, strings.NewReader("not-a-hash\n"))
	require.ErrorContains(t, err, "line 1")
	require.NoError(t, mock.ExpectationsWereMet())
}
