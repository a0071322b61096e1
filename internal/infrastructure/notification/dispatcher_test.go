package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []string
	failFor  map[string]bool
	inFlight int32
	peak     int32
	delay    time.Duration
}

func (f *fakeMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	time.Sleep(f.delay)
	if f.failFor[to] {
		return errors.New("mailbox unavailable")
	}
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	return nil
}

func messagesFor(addrs ...string) []entity.Message {
	out := make([]entity.Message, len(addrs))
	for i, a := range addrs {
		out[i] = entity.Message{Kind: entity.MessageKindReminder, To: a, Subject: "s", HTML: "<p>x</p>"}
	}
	return out
}

func TestNotify_ReportsPerRecipient(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]bool{"b@x.io": true}}
	d := NewDispatcher(mailer, nopLogger{}, 2)
	defer d.Close()

	report := d.Notify(context.Background(), messagesFor("a@x.io", "b@x.io", "c@x.io"))

	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.Sent())
	assert.Equal(t, 1, report.Failed())
	require.Len(t, report.Results, 3)
	assert.Equal(t, "b@x.io", report.Results[1].To)
	assert.Error(t, report.Results[1].Err)
}

func TestNotify_BoundsConcurrency(t *testing.T) {
	mailer := &fakeMailer{delay: 10 * time.Millisecond}
	d := NewDispatcher(mailer, nopLogger{}, 3)
	defer d.Close()

	addrs := make([]string, 12)
	for i := range addrs {
		addrs[i] = string(rune('a'+i)) + "@x.io"
	}
	report := d.Notify(context.Background(), messagesFor(addrs...))

	assert.Equal(t, 12, report.Sent())
	assert.LessOrEqual(t, atomic.LoadInt32(&mailer.peak), int32(3))
}

func TestNotifyAsync_DrainedOnClose(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, nopLogger{}, 2)

	d.NotifyAsync(messagesFor("a@x.io", "b@x.io", "c@x.io", "d@x.io"))
	d.Close()

	assert.ElementsMatch(t, []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io"}, mailer.sent)

	// dropped after close, must not panic
	d.NotifyAsync(messagesFor("e@x.io"))
	d.Close()
	assert.Len(t, mailer.sent, 4)
}
