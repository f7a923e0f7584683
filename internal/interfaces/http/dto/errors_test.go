package dto

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeBadRequest))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrCodeForbidden))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeDeliveryFailed))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrCodeStoreUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("ERR_NOBODY_KNOWS"))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "delivery error",
			err:      conversation.NewDeliveryError(crm.ChannelWhatsApp, 401, "denied"),
			wantCode: ErrCodeDeliveryFailed,
		},
		{
			name:     "wrapped delivery error",
			err:      fmt.Errorf("send reply: %w", conversation.NewTransportDeliveryError(crm.ChannelMessenger, errors.New("timeout"))),
			wantCode: ErrCodeDeliveryFailed,
		},
		{
			name:     "store error",
			err:      shared.NewStoreError("find contact", errors.New("connection refused")),
			wantCode: ErrCodeStoreUnavailable,
		},
		{
			name:     "unsupported channel",
			err:      shared.ErrUnsupportedChannel,
			wantCode: ErrCodeUnsupportedChannel,
		},
		{
			name:     "not found",
			err:      shared.ErrNotFound,
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "domain validation error",
			err:      shared.NewDomainError("INVALID_EXTERNAL_ID", "External identifier cannot be empty"),
			wantCode: ErrCodeValidation,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			wantCode: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := MapError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, message)
			assert.NotContains(t, message, "connection refused")
			assert.NotContains(t, message, "boom")
		})
	}
}
