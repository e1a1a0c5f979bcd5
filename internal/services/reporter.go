package services

import (
	"context"

	"auction-coordinator/internal/domain"
	"auction-coordinator/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Reporter periodically logs the size of the subscriber registry. Dead
// subscribers are never pruned, so this is the only visibility into how
// large the fan-out target set has grown.
type Reporter struct {
	cron          *cron.Cron
	registry      domain.SubscriberRegistry
	coordinatorID string
	schedule      string
	log           logger.Logger
}

func NewReporter(registry domain.SubscriberRegistry, coordinatorID, schedule string, log logger.Logger) *Reporter {
	return &Reporter{
		cron:          cron.New(),
		registry:      registry,
		coordinatorID: coordinatorID,
		schedule:      schedule,
		log:           log,
	}
}

func (r *Reporter) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		r.report(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

func (r *Reporter) Stop() {
	r.cron.Stop()
}

func (r *Reporter) report(ctx context.Context) {
	endpoints, err := r.registry.List(ctx, r.coordinatorID)
	if err != nil {
		r.log.Error("Registry report failed", "error", err)
		return
	}
	r.log.Info("Registry report", "coordinator_id", r.coordinatorID, "subscribers", len(endpoints))
}
