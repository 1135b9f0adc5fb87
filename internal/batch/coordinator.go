package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/observability"
)

// Store is the slice of the emails repo the coordinator writes through.
type Store interface {
	InsertBatch(ctx context.Context, records []email.Record) error
	Insert(ctx context.Context, rec email.Record) error
}

// Result is the aggregate outcome of one persistence call. The coordinator
// never surfaces an error: a failed bulk write degrades to per-record inserts
// and whatever could not be written ends up in Failed.
type Result struct {
	Persisted int
	Failed    []email.Record
	FellBack  bool
}

type Coordinator struct {
	store Store
	log   *slog.Logger
	prom  *observability.Prom
}

func NewCoordinator(store Store, log *slog.Logger, prom *observability.Prom) *Coordinator {
	if log == nil {
		log = slog.Default()
	}

	return &Coordinator{
		store: store,
		log:   log,
		prom:  prom,
	}
}

// PersistBulk writes records with one transactional bulk attempt. On bulk
// failure the batch is already rolled back in full, so the coordinator makes
// exactly one switch to sequential per-record writes and keeps going past
// individual failures.
func (c *Coordinator) PersistBulk(ctx context.Context, records []email.Record) Result {
	if len(records) == 0 {
		return Result{}
	}

	start := time.Now()

	err := c.store.InsertBatch(ctx, records)

	if err == nil {
		c.log.InfoContext(ctx, "bulk insert committed", "records", len(records))
		c.observe("bulk", start, len(records), 0)

		return Result{Persisted: len(records)}
	}

	c.log.WarnContext(ctx, "bulk insert failed, falling back to per-record writes",
		"records", len(records), "err", err)

	if c.prom != nil {
		c.prom.BatchFallbacks.Inc()
	}

	res := Result{FellBack: true}

	for _, rec := range records {
		ierr := c.store.Insert(ctx, rec)

		if ierr != nil {
			c.log.WarnContext(ctx, "record skipped on fallback path",
				"userId", rec.UserID, "variant", rec.Variant, "err", ierr)
			res.Failed = append(res.Failed, rec)

			continue
		}

		res.Persisted++
	}

	c.observe("fallback", start, res.Persisted, len(res.Failed))

	return res
}

func (c *Coordinator) observe(outcome string, start time.Time, persisted, failed int) {
	if c.prom == nil {
		return
	}

	c.prom.BatchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	c.prom.RecordsPersisted.Add(float64(persisted))
	c.prom.RecordsFailed.Add(float64(failed))
}
