// Package janitor runs periodic maintenance over the alert store.
package janitor

import (
	"context"

	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor expires stale pending alerts on a cron schedule.
type Janitor struct {
	alerts service.AlertService
	logger *logrus.Logger
	cfg    *config.Config
	cron   *cron.Cron
}

func New(alerts service.AlertService, logger *logrus.Logger, cfg *config.Config) *Janitor {
	return &Janitor{
		alerts: alerts,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Start registers the sweep and begins the schedule.
func (j *Janitor) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.cfg.JanitorSchedule, func() { j.sweep(ctx) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.WithField("schedule", j.cfg.JanitorSchedule).Info("Janitor started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Janitor stopped")
}

func (j *Janitor) sweep(ctx context.Context) {
	log := j.logger.WithFields(logrus.Fields{
		"service": "Janitor",
		"method":  "sweep",
	})

	expired, err := j.alerts.ExpireStalePending(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to expire stale pending alerts")
		return
	}
	if expired > 0 {
		log.WithField("expired", expired).Info("Expired stale pending alerts")
	}
}
