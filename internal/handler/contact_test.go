package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/handler"
	"github.com/ilstam/guitarchords/internal/middleware"
)

func TestSendContact(t *testing.T) {
	var got domain.ContactMessage
	h := newHTTPHandler(handler.Services{Contact: &mockContactServicer{
		send: func(_ context.Context, msg domain.ContactMessage) error {
			if msg.Email == "" {
				return fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
			}
			got = msg
			return nil
		},
	}})

	rec := do(t, h, http.MethodPost, "/contact", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "subject": "Hi", "body": "Thanks!",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, domain.ContactMessage{Name: "Alice", Email: "alice@example.com", Subject: "Hi", Body: "Thanks!"}, got)

	rec = do(t, h, http.MethodPost, "/contact", "", map[string]any{"name": "Alice"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "email is not a valid address", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestSendContact_BodyTooLarge(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(64)(newHTTPHandler(handler.Services{Contact: &mockContactServicer{}}))

	rec := do(t, h, http.MethodPost, "/contact", "", map[string]any{"body": strings.Repeat("x", 200)})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
