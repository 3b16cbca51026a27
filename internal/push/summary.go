package push

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// summaryAggregator coalesces the delivery counts of all sends within a
// rolling window into one log line, so one alert notifying dozens of
// gomeros does not flood the log.
type summaryAggregator struct {
	mu     sync.Mutex
	window time.Duration
	logger *logrus.Logger

	targets int
	sent    int
	timer   *time.Timer // nil while idle
}

func newSummaryAggregator(window time.Duration, logger *logrus.Logger) *summaryAggregator {
	return &summaryAggregator{
		window: window,
		logger: logger,
	}
}

// record adds one send to the current window, opening a window if none
// is pending.
func (a *summaryAggregator) record(targets, sent int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.targets += targets
	a.sent += sent

	if a.timer == nil {
		a.timer = time.AfterFunc(a.window, a.flush)
	}
}

func (a *summaryAggregator) flush() {
	a.mu.Lock()
	targets, sent := a.targets, a.sent
	a.targets, a.sent = 0, 0
	a.timer = nil
	a.mu.Unlock()

	a.logger.WithFields(logrus.Fields{
		"component": "push",
		"targets":   targets,
		"delivered": sent,
	}).Info("Push delivery summary")
}
