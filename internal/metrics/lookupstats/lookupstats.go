// Package lookupstats records breach lookup outcomes off the request path.
// Only the outcome is stored; passwords and hashes never reach the queue.
package lookupstats

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/5w1tchy/passwarden/internal/breach"
	"go.uber.org/zap"
)

type Outcome string

const (
	Hit   Outcome = "hit"
	Miss  Outcome = "miss"
	Error Outcome = "error"
)

type event struct {
	source   string
	outcome  Outcome
	lookedAt time.Time
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
	insertTmpl = `INSERT INTO breach_lookup_events (source, outcome, looked_up_at) VALUES %s`

	Schema = `CREATE TABLE IF NOT EXISTS breach_lookup_events (
  source       text        NOT NULL,
  outcome      text        NOT NULL,
  looked_up_at timestamptz NOT NULL
)`
)

// EnsureSchema creates breach_lookup_events if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, Schema)
	return err
}

// Recorder batches events into breach_lookup_events. With a nil db the
// batches are only summarised in the debug log.
type Recorder struct {
	db   *sql.DB
	log  *zap.Logger
	ch   chan event
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Start spins up workers draining a buffered channel.
// Suggested: buf=10000, workers=2
func Start(db *sql.DB, buf, workers int, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	r := &Recorder{
		db:   db,
		log:  log.With(zap.String("component", "lookupstats")),
		ch:   make(chan event, buf),
		done: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

// Record queues an outcome without blocking. If the buffer is full, the event
// is dropped.
func (r *Recorder) Record(source string, o Outcome) {
	if r == nil {
		return
	}
	// checked on its own: with both cases ready select picks at random, and
	// an event queued after the final drain is never written
	select {
	case <-r.done:
		return
	default:
	}
	ev := event{source: source, outcome: o, lookedAt: time.Now().UTC()}
	select {
	case r.ch <- ev:
	default:
		// buffer full; drop
	}
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func (r *Recorder) Shutdown() {
	if r == nil {
		return
	}
	r.once.Do(func() { close(r.done) })
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]event, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.write(batch); err != nil {
			r.log.Warn("write lookup events", zap.Int("events", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-r.done:
			// drain quickly then flush
			for {
				select {
				case ev := <-r.ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-r.ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

func (r *Recorder) write(batch []event) error {
	if r.db == nil {
		counts := map[Outcome]int{}
		for _, ev := range batch {
			counts[ev.outcome]++
		}
		r.log.Debug("breach lookups",
			zap.Int("hit", counts[Hit]), zap.Int("miss", counts[Miss]), zap.Int("error", counts[Error]))
		return nil
	}

	// VALUES ($1,$2,$3),($4,$5,$6)...
	args := make([]any, 0, len(batch)*3)
	vals := make([]byte, 0, len(batch)*16)
	for i, ev := range batch {
		if i > 0 {
			vals = append(vals, ',')
		}
		p := 3 * i
		vals = append(vals, fmt.Sprintf("($%d,$%d,$%d)", p+1, p+2, p+3)...)
		args = append(args, ev.source, string(ev.outcome), ev.lookedAt)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTO)
	defer cancel()
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(insertTmpl, string(vals)), args...)
	return err
}

// Wrap returns a checker that records every answer of c under source. The
// result still counts leaks when c does.
func (r *Recorder) Wrap(source string, c breach.Checker) breach.Checker {
	if r == nil || c == nil {
		return c
	}
	rc := recording{rec: r, source: source, next: c}
	if _, ok := c.(counter); ok {
		return countingRecording{rc}
	}
	return rc
}

type counter interface {
	Count(ctx context.Context, pw string) (int, error)
}

type recording struct {
	rec    *Recorder
	source string
	next   breach.Checker
}

func (c recording) IsCompromised(ctx context.Context, pw string) (bool, error) {
	hit, err := c.next.IsCompromised(ctx, pw)
	c.observe(hit, err)
	return hit, err
}

func (c recording) observe(hit bool, err error) {
	switch {
	case err != nil:
		c.rec.Record(c.source, Error)
	case hit:
		c.rec.Record(c.source, Hit)
	default:
		c.rec.Record(c.source, Miss)
	}
}

type countingRecording struct{ recording }

func (c countingRecording) Count(ctx context.Context, pw string) (int, error) {
	n, err := c.next.(counter).Count(ctx, pw)
	c.observe(n > 0, err)
	return n, err
}
