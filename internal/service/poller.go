package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Poller периодически вызывает fn: сразу при старте и затем раз в interval.
// Каждый вызов запускается в своей горутине и не ждет предыдущего.
// Stop останавливает тики, но не прерывает уже начатый вызов.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
	logger   *logrus.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	stopChan  chan struct{}
	done      chan struct{}
}

// NewPoller создает планировщик. Запуск - через Start.
func NewPoller(name string, interval time.Duration, fn func(ctx context.Context), logger *logrus.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает цикл опроса. Повторный вызов ничего не делает.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go p.loop(ctx)
	})
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)
	log := p.logger.WithFields(logrus.Fields{
		"component": "poller",
		"poller":    p.name,
	})
	log.WithField("interval", p.interval.String()).Debug("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// первый вызов - сразу
	go p.fn(ctx)

	for {
		select {
		case <-ticker.C:
			go p.fn(ctx)
		case <-p.stopChan:
			log.Debug("Poller stopped")
			return
		case <-ctx.Done():
			log.Debug("Poller stopping due to context cancellation")
			return
		}
	}
}

// Stop останавливает тики и дожидается выхода цикла.
// Безопасен для повторного вызова и для незапущенного планировщика.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
	started := true
	p.startOnce.Do(func() {
		started = false
	})
	if started {
		<-p.done
	}
}
