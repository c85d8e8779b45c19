package workers

import (
	"context"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/telegram"
	"github.com/apetrov/econ-tracker/internal/correlation"
	"github.com/apetrov/econ-tracker/internal/dashboard"
	"github.com/apetrov/econ-tracker/internal/interpret"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

// RiskWorker re-evaluates correlation patterns on a schedule and pushes an
// alert when the overall risk escalates.
type RiskWorker struct {
	dashboard *dashboard.Service
	interpret *interpret.Service
	engine    *correlation.Engine
	notifier  *telegram.Notifier
}

// NewRiskWorker creates new risk monitor worker
func NewRiskWorker(
	dashboardSvc *dashboard.Service,
	interpretSvc *interpret.Service,
	engine *correlation.Engine,
	notifier *telegram.Notifier,
) *RiskWorker {
	return &RiskWorker{
		dashboard: dashboardSvc,
		interpret: interpretSvc,
		engine:    engine,
		notifier:  notifier,
	}
}

// Name returns worker name
func (rw *RiskWorker) Name() string {
	return "risk_monitor"
}

// Run evaluates the current snapshot and alerts on escalation
// Called periodically by pkg/worker.PeriodicWorker
func (rw *RiskWorker) Run(ctx context.Context) error {
	summaries, err := rw.dashboard.Summaries(ctx, true)
	if err != nil {
		return err
	}

	enriched := rw.interpret.EnrichAll(summaries)
	analysis := rw.engine.Analyze(enriched)

	logger.Debug("risk evaluation finished",
		zap.String("risk", string(analysis.OverallRisk)),
		zap.Int("patterns", len(analysis.Patterns)),
	)

	if rw.notifier != nil {
		if err := rw.notifier.SendRiskAlert(analysis); err != nil {
			logger.Warn("failed to send risk alert", zap.Error(err))
		}
	}

	return nil
}
