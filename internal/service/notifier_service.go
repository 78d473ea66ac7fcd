package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ebolarium/baplikasyon/internal/cache"
	"github.com/ebolarium/baplikasyon/internal/events"
)

// NotifierService reacts to case events: it logs activity and drops the
// owner's cached report summary so the next dashboard load is fresh.
type NotifierService struct {
	dispatcher events.Dispatcher
	cache      *cache.ReportCache
	logger     *zap.Logger
}

// NewNotifierService creates the service.
func NewNotifierService(dispatcher events.Dispatcher, reportCache *cache.ReportCache, logger *zap.Logger) *NotifierService {
	return &NotifierService{
		dispatcher: dispatcher,
		cache:      reportCache,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotifierService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCaseCreated, n.handleCaseMutation)
	n.dispatcher.Subscribe(events.EventCaseUpdated, n.handleCaseMutation)
	n.dispatcher.Subscribe(events.EventCaseStatusChanged, n.handleCaseMutation)
	n.dispatcher.Subscribe(events.EventCaseDeleted, n.handleCaseMutation)
}

func (n *NotifierService) handleCaseMutation(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("case_id", event.CaseID),
		zap.String("owner_id", event.OwnerID))
	n.cache.Invalidate(ctx, event.OwnerID)
	return nil
}
