package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		logged bool
	}{
		{"not found", fmt.Errorf("get user: %w", service.ErrNotFound), http.StatusNotFound, "not_found", false},
		{"already claimed", fmt.Errorf("claim offer: %w", service.ErrAlreadyClaimed), http.StatusConflict, "already_claimed", false},
		{"invalid referrer", service.ErrInvalidReferrer, http.StatusUnprocessableEntity, "invalid_referrer", false},
		{"conflict", fmt.Errorf("create user: %w", service.ErrConflict), http.StatusConflict, "conflict", false},
		{"store unavailable", fmt.Errorf("list: %w", service.ErrStoreUnavailable), http.StatusServiceUnavailable, "store_unavailable", true},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger := zap.New(core)

			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, logger, "Failed to do thing", tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "boom")
			if tt.logged {
				assert.Equal(t, 1, logs.FilterMessage("Failed to do thing").Len())
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}

func TestRespondErrorValidationFields(t *testing.T) {
	verr := &dto.ValidationError{Fields: map[string]string{"email": "must be a valid email"}}
	err := fmt.Errorf("%w: %w", service.ErrValidation, verr)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, zap.NewNop(), "Failed", err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "validation_error", body.Code)
	assert.Equal(t, "must be a valid email", body.Fields["email"])
}
