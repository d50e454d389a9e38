package maintenance

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StartLookupRetention runs a daily job at localTime ("HH:MM") in tzName that
// deletes breach_lookup_events older than keepDays.
// Call once at startup: maintenance.StartLookupRetention(ctx, db, 30, "03:00", "UTC", log)
func StartLookupRetention(ctx context.Context, db *sql.DB, keepDays int, localTime string, tzName string, log *zap.Logger) {
	if keepDays <= 0 {
		keepDays = 30
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "retention"))

	go func() {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			log.Warn("unknown time zone; using local", zap.String("tz", tzName))
			loc = time.Local
		}
		h, m := parseClock(localTime)

		for {
			timer := time.NewTimer(time.Until(nextRun(time.Now().In(loc), h, m)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				n, err := PruneLookupEvents(ctx, db, keepDays)
				if err != nil {
					log.Error("prune breach_lookup_events failed", zap.Error(err))
				} else {
					log.Info("breach_lookup_events pruned", zap.Int64("deleted", n), zap.Int("keep_days", keepDays))
				}
			}
		}
	}()
}

// PruneLookupEvents deletes events older than keepDays and returns how many went.
func PruneLookupEvents(ctx context.Context, db *sql.DB, keepDays int) (int64, error) {
	const idx = `CREATE INDEX IF NOT EXISTS idx_breach_lookup_events_looked_up_at
	             ON breach_lookup_events (looked_up_at);`
	if _, err := db.ExecContext(ctx, idx); err != nil {
		return 0, err
	}
	const q = `DELETE FROM breach_lookup_events WHERE looked_up_at < now() - make_interval(days => $1)`
	res, err := db.ExecContext(ctx, q, keepDays)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// parseClock reads "HH:MM", falling back to 03:00 for anything out of range.
func parseClock(s string) (h, m int) {
	h, m = 3, 0
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return
	}
	return hh, mm
}

func nextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
