package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/mymetrics"
	"github.com/soartravel/soar/memory"
)

type (
	// RecordResult reports the outcome of one background statement write.
	RecordResult struct {
		UserID   string
		Text     string
		Err      error
		Duration time.Duration
	}

	// Recorder writes user statements to the memory store in the background. Callers never wait on a write;
	// outcomes go to the log, the metrics collector and the optional OnResult hook.
	Recorder struct {
		store    memory.Store
		logger   *slog.Logger
		metrics  *mymetrics.Collector
		onResult func(RecordResult)
		timeout  time.Duration

		sem    chan struct{}
		wg     sync.WaitGroup
		mu     sync.RWMutex
		closed bool
	}

	RecorderOption func(*Recorder)
)

func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithRecorderMetrics(metrics *mymetrics.Collector) RecorderOption {
	return func(r *Recorder) {
		r.metrics = metrics
	}
}

// WithOnResult registers a hook called once per write, from the writing goroutine.
func WithOnResult(fn func(RecordResult)) RecorderOption {
	return func(r *Recorder) {
		r.onResult = fn
	}
}

func WithWriteTimeout(timeout time.Duration) RecorderOption {
	return func(r *Recorder) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func WithConcurrency(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.sem = make(chan struct{}, n)
		}
	}
}

func NewRecorder(store memory.Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:   store,
		timeout: 30 * time.Second,
		sem:     make(chan struct{}, 4),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = mylog.Discard()
	}
	return r
}

// Record schedules text to be stored for userID and returns immediately. The write outlives ctx cancellation.
func (r *Recorder) Record(ctx context.Context, userID string, text string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.report(RecordResult{UserID: userID, Text: text, Err: errors.Wrapf(errors.ErrClosed, "recorder is closed")})
		return
	}

	r.wg.Add(1)
	writeCtx := context.WithoutCancel(ctx)
	go func() {
		defer r.wg.Done()

		r.sem <- struct{}{}
		defer func() { <-r.sem }()

		ctx, cancel := context.WithTimeout(writeCtx, r.timeout)
		defer cancel()

		startedAt := time.Now()
		err := r.store.Add(ctx, text, userID)
		r.report(RecordResult{UserID: userID, Text: text, Err: err, Duration: time.Since(startedAt)})
	}()
}

// Close stops accepting statements and waits for in-flight writes until ctx is done.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "statement writes still in flight")
	}
}

func (r *Recorder) report(result RecordResult) {
	r.metrics.ObserveStatementWrite(result.Err == nil)
	if result.Err != nil {
		r.logger.Warn("failed to store statement in memory", "user_id", result.UserID, "error", result.Err)
	} else {
		r.logger.Info("statement stored in memory", "user_id", result.UserID, "duration", result.Duration)
	}
	if r.onResult != nil {
		r.onResult(result)
	}
}
