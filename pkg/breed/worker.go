package breed

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"

	"github.com/hatchery-labs/breed-client/pkg/metrics"
	"github.com/hatchery-labs/breed-client/pkg/retry"
	"github.com/hatchery-labs/breed-client/pkg/retry/backoff"
)

// RefreshService periodically reloads the breeding machine state so
// displayed counters stay fresh while no action is in flight.
type RefreshService struct {
	log          *logrus.Entry
	orchestrator *Orchestrator
}

func NewRefreshService(orchestrator *Orchestrator) *RefreshService {
	return &RefreshService{
		log:          logrus.StandardLogger().WithField("type", "breed/refresh_service"),
		orchestrator: orchestrator,
	}
}

// Start runs the refresh loop until the context is cancelled.
func (s *RefreshService) Start(ctx context.Context, interval time.Duration) error {
	log := s.log.WithField("method", "Start")

	return retry.Loop(
		func() (err error) {
			refreshCtx := ctx
			if nr, ok := ctx.Value(metrics.NewRelicContextKey).(*newrelic.Application); ok {
				m := nr.StartTransaction("breed_machine_refresh")
				defer m.End()
				refreshCtx = newrelic.NewContext(ctx, m)
			}

			if _, err := s.orchestrator.RefreshMachine(refreshCtx); err != nil {
				log.WithError(err).Warn("failed to refresh machine state")
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}

			return nil
		},
		retry.NonRetriableErrors(context.Canceled),
		retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), interval, 0.1),
	)
}
