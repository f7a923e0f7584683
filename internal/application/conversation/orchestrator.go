package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// OrchestratorConfig holds per-message handling policy
type OrchestratorConfig struct {
	// MessageTimeout bounds the whole resolve/dispatch/send sequence
	MessageTimeout time.Duration
	// IdempotencyTTL is how long processed message ids are remembered
	IdempotencyTTL time.Duration
	// ApologizeOnError sends a generic apology when an internal failure
	// prevents handling. Internal detail is never forwarded.
	ApologizeOnError bool
}

// DefaultOrchestratorConfig returns the default handling policy
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		MessageTimeout:   30 * time.Second,
		IdempotencyTTL:   24 * time.Hour,
		ApologizeOnError: true,
	}
}

// Result reports the outcome of one handled message for caller
// telemetry
type Result struct {
	ContactID uuid.UUID
	Reply     string
	Delivered bool
	Duplicate bool
}

// Orchestrator is the thin composition point sequencing
// resolver → dispatcher → sender for each inbound message. Control is
// strictly sequential per message; no state is retained across
// messages beyond the store.
type Orchestrator struct {
	resolver    *IdentityResolver
	dispatcher  *IntentDispatcher
	senders     map[crm.Channel]conversation.ReplySender
	idempotency shared.IdempotencyStore
	cfg         OrchestratorConfig
	logger      *zap.Logger
}

// NewOrchestrator creates a new Orchestrator. The idempotency store may
// be nil, disabling webhook redelivery dedupe.
func NewOrchestrator(
	resolver *IdentityResolver,
	dispatcher *IntentDispatcher,
	senders []conversation.ReplySender,
	idempotency shared.IdempotencyStore,
	cfg OrchestratorConfig,
	logger *zap.Logger,
) *Orchestrator {
	byChannel := make(map[crm.Channel]conversation.ReplySender, len(senders))
	for _, s := range senders {
		byChannel[s.Channel()] = s
	}
	return &Orchestrator{
		resolver:    resolver,
		dispatcher:  dispatcher,
		senders:     byChannel,
		idempotency: idempotency,
		cfg:         cfg,
		logger:      logger.Named("orchestrator"),
	}
}

// HandleMessage handles one inbound chat event: resolve the contact,
// execute the intent, deliver the reply. Store failures propagate after
// logging; the user receives at most a generic apology.
func (o *Orchestrator) HandleMessage(ctx context.Context, msg conversation.InboundMessage, intent conversation.Intent) (*Result, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if o.cfg.MessageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.MessageTimeout)
		defer cancel()
	}

	log := o.logger.With(
		zap.String("channel", msg.Channel.String()),
		zap.String("message_id", msg.MessageID),
	)

	if o.idempotency != nil && msg.MessageID != "" {
		fresh, err := o.idempotency.MarkProcessed(ctx, msg.MessageID, o.cfg.IdempotencyTTL)
		if err != nil {
			// Dedupe is best effort; reprocessing is safe because every
			// mutation downstream is idempotent per identity.
			log.Warn("idempotency check failed", zap.Error(err))
		} else if !fresh {
			log.Info("duplicate message delivery, skipping")
			return &Result{Duplicate: true}, nil
		}
	}

	contact, err := o.resolver.Resolve(ctx, msg.Channel, msg.ExternalID, msg.Seed)
	if err != nil {
		log.Error("contact resolution failed", zap.Error(err))
		o.apologize(ctx, msg, log)
		return nil, err
	}

	reply, err := o.dispatcher.Execute(ctx, contact.ID, intent)
	if err != nil {
		log.Error("intent execution failed",
			zap.String("action", intent.Action),
			zap.Error(err),
		)
		o.apologize(ctx, msg, log)
		return nil, err
	}

	result := &Result{ContactID: contact.ID, Reply: reply}

	if err := o.send(ctx, msg.Channel, msg.ExternalID, reply); err != nil {
		log.Error("reply delivery failed", zap.Error(err))
		return result, err
	}

	result.Delivered = true
	return result, nil
}

// send routes the reply through the channel's sender
func (o *Orchestrator) send(ctx context.Context, channel crm.Channel, recipientKey, text string) error {
	sender, ok := o.senders[channel]
	if !ok {
		return shared.ErrUnsupportedChannel
	}
	return sender.Send(ctx, channel, recipientKey, text)
}

// apologize sends the generic apology on internal failure, best effort
func (o *Orchestrator) apologize(ctx context.Context, msg conversation.InboundMessage, log *zap.Logger) {
	if !o.cfg.ApologizeOnError {
		return
	}
	if err := o.send(ctx, msg.Channel, msg.ExternalID, ReplyApology); err != nil {
		log.Warn("apology delivery failed", zap.Error(err))
	}
}
