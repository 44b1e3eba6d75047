// Package worker runs risk evaluation off the request path. One consumer goroutine
// drains a bounded FIFO queue; every submission gets a correlation id so callers can
// drop responses that arrive after a newer request was made.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/risk"
	"github.com/SscSPs/fincockpit/internal/core/validation"
	"github.com/google/uuid"
)

// DefaultQueueSize bounds the number of messages waiting for the consumer.
const DefaultQueueSize = 32

// ErrClosed is returned by Submit once the worker has been closed.
var ErrClosed = errors.New("findings worker is closed")

// Message is the inbound payload: the full collections state as loosely-typed JSON.
type Message struct {
	CurrentCollectionsState map[string]any `json:"currentCollectionsState"`
}

// Response carries the findings for one message, or the validation error that stopped it.
// Findings is never nil and error is always present, null on success.
type Response struct {
	CorrelationID string               `json:"correlationId"`
	Findings      []domain.RiskFinding `json:"findings"`
	Error         *apperrors.AppError  `json:"error"`
}

// HandleMessage evaluates one message. It is the pure unit of work the worker runs.
func HandleMessage(msg Message, now time.Time) Response {
	state, err := validation.DecodeSnapshot(msg.CurrentCollectionsState)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.NewValidation(err.Error(), nil)
		}
		return Response{Findings: []domain.RiskFinding{}, Error: appErr}
	}
	findings := risk.EvaluateRiskFindings(state, now)
	if findings == nil {
		findings = []domain.RiskFinding{}
	}
	return Response{Findings: findings}
}

type job struct {
	id    string
	msg   Message
	reply chan Response
}

// FindingsWorker serializes risk evaluation onto a single goroutine.
type FindingsWorker struct {
	jobs   chan job
	now    func() time.Time
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// Option configures a FindingsWorker.
type Option func(*FindingsWorker)

// WithClock sets the clock used as the evaluation date.
func WithClock(now func() time.Time) Option {
	return func(w *FindingsWorker) {
		w.now = now
	}
}

// WithLogger sets the logger used for per-message diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *FindingsWorker) {
		w.logger = logger
	}
}

// WithQueueSize sets the queue bound. Non-positive sizes keep the default.
func WithQueueSize(size int) Option {
	return func(w *FindingsWorker) {
		if size > 0 {
			w.jobs = make(chan job, size)
		}
	}
}

// New starts a worker. Close must be called to stop its goroutine.
func New(opts ...Option) *FindingsWorker {
	w := &FindingsWorker{
		jobs:   make(chan job, DefaultQueueSize),
		now:    time.Now,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

func (w *FindingsWorker) run() {
	defer close(w.done)
	for j := range w.jobs {
		start := time.Now()
		resp := HandleMessage(j.msg, w.now())
		resp.CorrelationID = j.id
		if resp.Error != nil {
			w.logger.Warn("Findings message rejected",
				slog.String("correlation_id", j.id),
				slog.String("error", resp.Error.Error()))
		} else {
			w.logger.Debug("Findings evaluated",
				slog.String("correlation_id", j.id),
				slog.Int("count", len(resp.Findings)),
				slog.Duration("latency", time.Since(start)))
		}
		j.reply <- resp
	}
}

// Submit queues msg and returns its correlation id with a channel that receives exactly
// one Response. It blocks while the queue is full, until ctx is done.
func (w *FindingsWorker) Submit(ctx context.Context, msg Message) (string, <-chan Response, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return "", nil, ErrClosed
	}

	j := job{id: uuid.NewString(), msg: msg, reply: make(chan Response, 1)}
	select {
	case w.jobs <- j:
		return j.id, j.reply, nil
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

// Evaluate submits msg and waits for its response.
func (w *FindingsWorker) Evaluate(ctx context.Context, msg Message) (Response, error) {
	_, reply, err := w.Submit(ctx, msg)
	if err != nil {
		return Response{}, err
	}
	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Close stops accepting messages, lets the queue drain and waits for the consumer.
func (w *FindingsWorker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	<-w.done
}
