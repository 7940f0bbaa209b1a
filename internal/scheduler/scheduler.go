// Package scheduler запускает периодическую сверку зависших выплат.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reconciler - часть движка вознаграждений, которую вызывает планировщик
type Reconciler interface {
	ReconcilePendingWithdrawals(ctx context.Context) (int, error)
}

// Scheduler оборачивает cron с одной задачей сверки
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	logger     *logrus.Logger
	timeout    time.Duration
}

// New регистрирует задачу по расписанию в формате cron ("@every 5m", "*/5 * * * *")
func New(schedule string, reconciler Reconciler, logger *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		logger:     logger,
		timeout:    time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	settled, err := s.reconciler.ReconcilePendingWithdrawals(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Withdrawal reconciliation failed")
		return
	}
	s.logger.WithField("settled", settled).Debug("Withdrawal reconciliation finished")
}

// Run запускает планировщик и ждет отмены контекста, затем дожидается текущей задачи
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting reconciliation scheduler...")
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Reconciliation scheduler stopped.")
	return nil
}
