package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/config"
	"github.com/mover-dashboard/dispatch/internal/ingest"
	"github.com/mover-dashboard/dispatch/pkg/logger"
)

type WriterStats struct {
	Pending int   `json:"pending"`
	Written int64 `json:"written"`
	Dropped int64 `json:"dropped"`
}

// Writer sends patches to the store in submission order from a single
// goroutine. Internal errors are retried with linear backoff; a patch that
// still fails, or fails with any other code, is logged and dropped. The
// local board is never rolled back.
type Writer struct {
	store Store
	log   logger.Logger
	conf  config.WriterConfig

	queue chan ingest.Patch

	mu      sync.Mutex
	pending []time.Time
	idle    chan struct{}

	written atomic.Int64
	dropped atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

func NewWriter(store Store, conf config.WriterConfig, log logger.Logger) *Writer {
	if conf.Buffer <= 0 {
		conf.Buffer = 256
	}
	if conf.MaxAttempts <= 0 {
		conf.MaxAttempts = 1
	}

	idle := make(chan struct{})
	close(idle)

	return &Writer{
		store: store,
		log:   log,
		conf:  conf,
		queue: make(chan ingest.Patch, conf.Buffer),
		idle:  idle,
		done:  make(chan struct{}),
	}
}

// Run writes queued patches until Close is called and the queue is drained.
func (w *Writer) Run(ctx context.Context) {
	defer close(w.done)

	for p := range w.queue {
		w.write(ctx, p)
		w.finish()
	}
}

// Close stops accepting patches. Run returns after the queue is drained.
func (w *Writer) Close() {
	w.closeOnce.Do(func() { close(w.queue) })
}

// Done is closed when Run has returned.
func (w *Writer) Done() <-chan struct{} {
	return w.done
}

// Submit queues patches for a change made at at. It blocks while the buffer
// is full and must not be called after Close.
func (w *Writer) Submit(at time.Time, patches ...ingest.Patch) {
	for _, p := range patches {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.idle = make(chan struct{})
		}
		w.pending = append(w.pending, at)
		w.mu.Unlock()

		w.queue <- p
	}
}

func (w *Writer) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = w.pending[1:]
	if len(w.pending) == 0 {
		close(w.idle)
	}
}

func (w *Writer) write(ctx context.Context, p ingest.Patch) {
	log := w.log.With(
		logger.String("kind", string(p.Kind)),
		logger.String("id", p.ID),
		logger.String("op", string(p.Op)),
	)

	var err error
	for attempt := 1; attempt <= w.conf.MaxAttempts; attempt++ {
		if err = w.store.Apply(ctx, p); err == nil {
			w.written.Add(1)
			return
		}
		if dispatch.ErrorCode(err) != dispatch.EINTERNAL || attempt == w.conf.MaxAttempts {
			break
		}

		log.Warn("store write failed, retrying", logger.Int("attempt", attempt), logger.Err(err))

		select {
		case <-time.After(w.conf.RetryDelay * time.Duration(attempt)):
			continue
		case <-ctx.Done():
			err = ctx.Err()
		}
		break
	}

	w.dropped.Add(1)
	log.Error("store write dropped", logger.Strings("fields", p.FieldNames()), logger.Err(err))
}

// Flush waits until every submitted patch has been written or dropped.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PendingSince returns the change time of the oldest patch not yet written. ok is false when the writer is idle.
func (w *Writer) PendingSince() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return time.Time{}, false
	}
	return w.pending[0], true
}

func (w *Writer) Stats() WriterStats {
	w.mu.Lock()
	pending := len(w.pending)
	w.mu.Unlock()

	return WriterStats{
		Pending: pending,
		Written: w.written.Load(),
		Dropped: w.dropped.Load(),
	}
}
