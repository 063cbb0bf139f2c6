// Package scheduler - сторож подтверждений: больницы, не ответившие вовремя,
// заменяются другими.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/pending"
	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval = 10 * time.Second
	DefaultTimeout  = 60 * time.Second
)

// Reassigner - путь переназначения координатора
type Reassigner interface {
	ReassignAfterTimeout(ctx context.Context, incidentID, hospitalID uuid.UUID) (*models.Incident, bool, error)
}

// Watchdog периодически забирает просроченные ожидания из реестра
type Watchdog struct {
	registry   *pending.Registry
	reassigner Reassigner
	logger     *logrus.Logger
	interval   time.Duration
	timeout    time.Duration
	now        func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatchdog(registry *pending.Registry, reassigner Reassigner, logger *logrus.Logger, interval, timeout time.Duration) *Watchdog {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Watchdog{
		registry:   registry,
		reassigner: reassigner,
		logger:     logger,
		interval:   interval,
		timeout:    timeout,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Start запускает тикер. Повторный вызов без Stop ничего не делает.
func (w *Watchdog) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.WithFields(logrus.Fields{
		"interval": w.interval.String(),
		"timeout":  w.timeout.String(),
	}).Info("Starting confirmation watchdog...")

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping confirmation watchdog.")
				return
			case <-ticker.C:
				w.Tick(ctx, w.now())
			}
		}
	}(w.done)
}

// Stop останавливает тикер и ждет завершения текущего прохода
func (w *Watchdog) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Tick - один проход сторожа. Возвращает число обработанных инцидентов:
// переданных другой больнице или оставленных в Rejected. Пустой реестр - пустой проход.
func (w *Watchdog) Tick(ctx context.Context, now time.Time) int {
	expired := w.registry.TakeExpired(now, w.timeout)
	if len(expired) == 0 {
		return 0
	}

	reassigned := 0
	for _, entry := range expired {
		log := w.logger.WithFields(logrus.Fields{
			"component":   "watchdog",
			"incident_id": entry.IncidentID,
			"hospital_id": entry.HospitalID,
			"waited":      now.Sub(entry.DispatchedAt).Round(time.Second).String(),
		})

		_, done, err := w.reassigner.ReassignAfterTimeout(ctx, entry.IncidentID, entry.HospitalID)
		if err != nil {
			log.WithError(err).Error("Failed to reassign unconfirmed incident")
			continue
		}
		if done {
			reassigned++
		}
	}
	return reassigned
}
