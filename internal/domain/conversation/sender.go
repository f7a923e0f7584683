package conversation

import (
	"context"
	"fmt"

	"github.com/omnicrm/backend/internal/domain/crm"
)

// ReplySender delivers a text reply back through a channel's messaging
// API. Implementations make exactly one outbound call per invocation
// and never retry; retry policy belongs to the caller.
type ReplySender interface {
	// Send posts text to the recipient identified by the channel's
	// natural key. A transport failure or non-2xx upstream response is
	// returned as a *DeliveryError, never swallowed.
	Send(ctx context.Context, channel crm.Channel, recipientKey, text string) error

	// Channel returns the channel this sender serves
	Channel() crm.Channel
}

// DeliveryError reports a failed outbound messaging call, carrying the
// channel and the upstream status/body for caller telemetry.
type DeliveryError struct {
	Channel    crm.Channel
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delivery failed on %s: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("delivery failed on %s: HTTP %d: %s", e.Channel, e.StatusCode, e.Body)
}

// Unwrap exposes the underlying transport error, if any
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewDeliveryError builds a DeliveryError from an upstream response
func NewDeliveryError(channel crm.Channel, statusCode int, body string) *DeliveryError {
	return &DeliveryError{Channel: channel, StatusCode: statusCode, Body: body}
}

// NewTransportDeliveryError builds a DeliveryError from a transport failure
func NewTransportDeliveryError(channel crm.Channel, err error) *DeliveryError {
	return &DeliveryError{Channel: channel, Err: err}
}
