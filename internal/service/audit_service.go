package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/events"
)

// AuditService records account lifecycle events to the structured log.
// It is the only consumer of the dispatcher in this service.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAccountRegistered, a.handleEvent("AccountRegistered"))
	a.dispatcher.Subscribe(events.EventAccountLoggedIn, a.handleEvent("AccountLoggedIn"))
	a.dispatcher.Subscribe(events.EventProfileModified, a.handleEvent("ProfileModified"))
	a.dispatcher.Subscribe(events.EventRoleAssigned, a.handleEvent("RoleAssigned"))
	a.dispatcher.Subscribe(events.EventAccountSuspended, a.handleEvent("AccountSuspended"))
}

func (a *AuditService) handleEvent(name string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		a.logger.Info(name,
			zap.String("event_id", event.ID),
			zap.Int64("account_id", event.AccountID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
}
