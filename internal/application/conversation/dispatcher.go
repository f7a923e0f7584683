package conversation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/conversation"
)

// ActionHandler executes one business action of the intent vocabulary
// against a resolved contact and returns the user-facing reply text.
type ActionHandler interface {
	// Action returns the intent action verb this handler serves
	Action() string

	// Execute runs the action. A "handled outcome" like a missing
	// product is expressed as a normal reply, not an error; only store
	// failures surface as errors.
	Execute(ctx context.Context, contactID uuid.UUID, intent conversation.Intent) (string, error)
}

// IntentDispatcher maps a classified intent onto a registered action
// handler. Dispatch is a pure registry lookup: adding an action means
// registering one handler, control flow never changes.
type IntentDispatcher struct {
	handlers map[string]ActionHandler
	logger   *zap.Logger
}

// NewIntentDispatcher creates a dispatcher with the given handlers
func NewIntentDispatcher(logger *zap.Logger, handlers ...ActionHandler) *IntentDispatcher {
	d := &IntentDispatcher{
		handlers: make(map[string]ActionHandler),
		logger:   logger.Named("dispatcher"),
	}
	for _, h := range handlers {
		d.Register(h)
	}
	return d
}

// Register adds a handler for its action verb. A later registration
// for the same verb replaces the earlier one.
func (d *IntentDispatcher) Register(handler ActionHandler) {
	d.handlers[handler.Action()] = handler
}

// Execute dispatches the intent to its handler. An unrecognized or
// missing action is a no-op success with the generic fallback reply and
// no store access.
func (d *IntentDispatcher) Execute(ctx context.Context, contactID uuid.UUID, intent conversation.Intent) (string, error) {
	handler, ok := d.handlers[intent.Action]
	if !ok {
		d.logger.Debug("unhandled intent action",
			zap.String("action", intent.Action),
			zap.String("contact_id", contactID.String()),
		)
		return ReplyFallback, nil
	}

	return handler.Execute(ctx, contactID, intent)
}
