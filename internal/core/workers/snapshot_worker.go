package workers

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

const DefaultQueueSize = 100

type HistoryLoader interface {
	History(ctx context.Context, userID string) (domain.CompletionHistory, error)
}

type SnapshotJob struct {
	UserID string
}

// SnapshotWorker recomputes a user's progress snapshot after each saved
// session, off the request path.
type SnapshotWorker struct {
	history     HistoryLoader
	snapshots   domain.SnapshotRepository
	granularity progress.Granularity
	now         func() time.Time
	metrics     *metrics.Manager

	jobs chan SnapshotJob
	done chan struct{}
}

func NewSnapshotWorker(history HistoryLoader, snapshots domain.SnapshotRepository, granularity progress.Granularity, queueSize int, m *metrics.Manager) *SnapshotWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &SnapshotWorker{
		history:     history,
		snapshots:   snapshots,
		granularity: granularity,
		now:         time.Now,
		metrics:     m,
		jobs:        make(chan SnapshotJob, queueSize),
		done:        make(chan struct{}),
	}
}

// WithClock replaces the time source used to decide "today".
func (w *SnapshotWorker) WithClock(now func() time.Time) *SnapshotWorker {
	w.now = now
	return w
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		log.Info("snapshot worker started")
		for {
			select {
			case job := <-w.jobs:
				w.setBacklog()
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Info("snapshot worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker loop has returned.
func (w *SnapshotWorker) Done() <-chan struct{} {
	return w.done
}

func (w *SnapshotWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SnapshotJob{UserID: userID}:
		w.setBacklog()
	default:
		log.Warnf("snapshot queue full, dropping job for user %s", userID)
		w.count("dropped")
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job SnapshotJob) {
	start := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.HistSnapshotDuration.Observe(time.Since(start).Seconds())
		}
	}()

	h, err := w.history.History(ctx, job.UserID)
	if err != nil {
		log.Errorf("snapshot worker: fetching history for %s: %v", job.UserID, err)
		w.count("failed")
		return
	}

	next := progress.BuildSnapshot(job.UserID, h, w.now(), w.granularity)

	prev, err := w.snapshots.GetByUserID(ctx, job.UserID)
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		log.Errorf("snapshot worker: loading snapshot for %s: %v", job.UserID, err)
		w.count("failed")
		return
	}

	if prev.SameAs(next) {
		w.count("unchanged")
		return
	}

	if err := w.snapshots.Upsert(ctx, next); err != nil {
		log.Errorf("snapshot worker: storing snapshot for %s: %v", job.UserID, err)
		w.count("failed")
		return
	}

	log.WithFields(log.Fields{
		"user_id": job.UserID,
		"week":    next.Week,
		"current": next.CurrentStreak,
		"longest": next.LongestStreak,
	}).Debug("snapshot updated")
	w.count("updated")
}

func (w *SnapshotWorker) count(outcome string) {
	if w.metrics != nil {
		w.metrics.CounterSnapshotJobs.WithLabelValues(outcome).Inc()
	}
}

func (w *SnapshotWorker) setBacklog() {
	if w.metrics != nil {
		w.metrics.GaugeSnapshotBacklog.Set(float64(len(w.jobs)))
	}
}
