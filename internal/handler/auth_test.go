package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/event-registration/internal/apperror"
	"github.com/sakif/event-registration/internal/handler"
	"github.com/sakif/event-registration/internal/model"
	"github.com/sakif/event-registration/internal/service"
)

// MockAuthenticator implements handler.Authenticator and records what the
// handler passed in.
type MockAuthenticator struct {
	CapturedEmail    string
	CapturedPassword string
	ReturnResult     *service.AuthResult
	ReturnErr        error
}

func (m *MockAuthenticator) Register(_ context.Context, email, password string) (*service.AuthResult, error) {
	m.CapturedEmail = email
	m.CapturedPassword = password
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnResult, nil
}

func (m *MockAuthenticator) Login(_ context.Context, email, password string) (*service.AuthResult, error) {
	return m.Register(context.Background(), email, password)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAuthHandler_HandleRegister(t *testing.T) {
	logger := quietLogger()

	t.Run("successful registration", func(t *testing.T) {
		mock := &MockAuthenticator{
			ReturnResult: &service.AuthResult{
				User:  &model.User{ID: "user-1", Email: "alice@example.com"},
				Token: "signed.jwt.token",
			},
		}
		h := handler.NewAuthHandler(mock, logger)

		reqBody := `{"email":"alice@example.com","password":"s3cret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			Token string `json:"token"`
		}
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", res.Token)

		assert.Equal(t, "alice@example.com", mock.CapturedEmail)
		assert.Equal(t, "s3cret", mock.CapturedPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := &MockAuthenticator{ReturnErr: apperror.Duplicate("User exists")}
		h := handler.NewAuthHandler(mock, logger)

		reqBody := `{"email":"alice@example.com","password":"s3cret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res struct {
			Msg string `json:"msg"`
		}
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.Equal(t, "User exists", res.Msg)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		mock := &MockAuthenticator{}
		h := handler.NewAuthHandler(mock, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"email":`))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid JSON body")
	})

	t.Run("validation error", func(t *testing.T) {
		mock := &MockAuthenticator{ReturnErr: apperror.ValidationFailed("email", "email is required")}
		h := handler.NewAuthHandler(mock, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"password":"pw"}`))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "email is required")
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	logger := quietLogger()

	t.Run("successful login", func(t *testing.T) {
		mock := &MockAuthenticator{
			ReturnResult: &service.AuthResult{
				User:  &model.User{ID: "user-1", Email: "alice@example.com"},
				Token: "signed.jwt.token",
			},
		}
		h := handler.NewAuthHandler(mock, logger)

		reqBody := `{"email":"alice@example.com","password":"s3cret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleLogin(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "signed.jwt.token")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mock := &MockAuthenticator{ReturnErr: apperror.InvalidCredentials()}
		h := handler.NewAuthHandler(mock, logger)

		reqBody := `{"email":"alice@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleLogin(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res struct {
			Msg string `json:"msg"`
		}
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.Equal(t, "Invalid credentials", res.Msg)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		mock := &MockAuthenticator{}
		h := handler.NewAuthHandler(mock, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`not json`))
		rr := httptest.NewRecorder()

		h.HandleLogin(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
