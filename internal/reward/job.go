package reward

import (
	"context"

	"github.com/gracepath/gracepath-api/internal/logger"
)

// ReconcileJob periodically repairs missed reward unlock cascades
type ReconcileJob struct {
	service Service
}

// NewReconcileJob creates a new reconcile job
func NewReconcileJob(service Service) *ReconcileJob {
	return &ReconcileJob{
		service: service,
	}
}

// Process runs one reconcile pass (implements worker.Job interface)
func (j *ReconcileJob) Process(ctx context.Context) error {
	if err := j.service.Reconcile(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgReconcileListFailed, "error", err)
		return err
	}
	return nil
}
