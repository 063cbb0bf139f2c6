package webhook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/sirupsen/logrus"
)

const (
	defaultSinkBuffer = 256
	publishTimeout    = 2 * time.Second
)

// ErrQueueFull - локальный буфер переполнен, событие отброшено
var ErrQueueFull = errors.New("webhook: local queue is full")

// ErrSinkClosed - приемник уже закрыт
var ErrSinkClosed = errors.New("webhook: sink is closed")

// Sink - приемник нотификатора. Deliver не ждет Redis: события
// складываются в буфер, а отдельная горутина перекладывает их в очередь.
type Sink struct {
	publisher WebhookPublisher
	logger    *logrus.Logger

	mu     sync.RWMutex
	queue  chan WebhookEvent
	closed bool
	done   chan struct{}
}

func NewSink(publisher WebhookPublisher, logger *logrus.Logger, buffer int) *Sink {
	if buffer <= 0 {
		buffer = defaultSinkBuffer
	}
	s := &Sink{
		publisher: publisher,
		logger:    logger,
		queue:     make(chan WebhookEvent, buffer),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Sink) Name() string { return "webhook" }

// Deliver ставит событие в буфер
func (s *Sink) Deliver(_ context.Context, env notifier.Envelope) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.queue <- FromEnvelope(env):
		return nil
	default:
		return ErrQueueFull
	}
}

// Close дожидается, пока буфер будет выгружен
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	return nil
}

func (s *Sink) run() {
	defer close(s.done)
	for event := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"room":  event.Room,
				"event": event.Event,
			}).Warn("Failed to enqueue webhook event")
		}
		cancel()
	}
}
