// Package notification fans emails out to many recipients.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
	"golang.org/x/sync/errgroup"
)

const (
	defaultQueueSize = 1024
	sendTimeout      = 30 * time.Second
)

type job struct {
	msg entity.Message
}

// Dispatcher sends messages through an IEmailService. Notify blocks with a
// concurrency limit; NotifyAsync hands work to a fixed pool of workers.
type Dispatcher struct {
	mailer contract.IEmailService
	logger usecasecontract.IAppLogger
	limit  int

	wg     sync.WaitGroup
	jobs   chan job
	mu     sync.RWMutex
	closed bool
}

var _ contract.INotifier = (*Dispatcher)(nil)

func NewDispatcher(mailer contract.IEmailService, logger usecasecontract.IAppLogger, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		mailer: mailer,
		logger: logger,
		limit:  workers,
		jobs:   make(chan job, defaultQueueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for j := range d.jobs {
				metrics.NotifyQueueDepth.Dec()
				ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
				d.send(ctx, j.msg)
				cancel()
			}
		}()
	}
	return d
}

// Notify sends every message and returns one result per message, in order.
func (d *Dispatcher) Notify(ctx context.Context, messages []entity.Message) entity.DeliveryReport {
	results := make([]entity.DeliveryResult, len(messages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.limit)
	for i, m := range messages {
		i, m := i, m
		g.Go(func() error {
			results[i] = entity.DeliveryResult{To: m.To, Err: d.send(gctx, m)}
			// a failed recipient never cancels the others
			return nil
		})
	}
	_ = g.Wait()
	return entity.DeliveryReport{Results: results}
}

// NotifyAsync enqueues messages and returns. Messages submitted after Close are dropped.
func (d *Dispatcher) NotifyAsync(messages []entity.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warnf("notifier closed, dropping %d messages", len(messages))
		return
	}
	for _, m := range messages {
		metrics.NotifyQueueDepth.Inc()
		d.jobs <- job{msg: m}
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) send(ctx context.Context, m entity.Message) error {
	err := d.mailer.SendEmail(ctx, m.To, m.Subject, m.HTML)
	if err != nil {
		metrics.EmailsFailed.WithLabelValues(string(m.Kind)).Inc()
		d.logger.Errorf("failed to send %s email to %s: %v", m.Kind, m.To, err)
		return err
	}
	metrics.EmailsSent.WithLabelValues(string(m.Kind)).Inc()
	d.logger.Debugf("sent %s email to %s", m.Kind, m.To)
	return nil
}
