// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/sec"
	"github.com/taibuivan/artistry/internal/users/account"
	"github.com/taibuivan/artistry/internal/users/auth"
)

// stubAdmins holds a single administrator with a known password.
type stubAdmins struct {
	created  []account.CreateInput
	admin    *account.Account
	password string
	err      error
}

func (s *stubAdmins) Create(_ context.Context, input account.CreateInput) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.created = append(s.created, input)
	return int64(len(s.created)), nil
}

func (s *stubAdmins) VerifyCredentials(_ context.Context, email, password string) (*account.Account, error) {
	if s.admin == nil || s.admin.Email != email || s.password != password {
		return nil, account.ErrInvalidCredentials
	}
	return s.admin, nil
}

type failingIssuer struct{}

func (failingIssuer) GenerateAccessToken(string, string) (string, error) {
	return "", errors.New("signing key unavailable")
}

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret", "artistry.app", time.Hour)
	require.NoError(t, err)
	return tokens
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, handler http.Handler, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return recorder, env
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	tokens := newTokens(t)
	admins := &stubAdmins{
		admin:    &account.Account{ID: 42, Email: "ops@example.com"},
		password: "correct horse",
	}
	routes := auth.NewHandler(auth.NewService(admins, tokens, discardLogger())).Routes()

	recorder, env := post(t, routes, "/login", `{"email":"ops@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))

	claims, err := tokens.VerifyToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestLogin_Rejections(t *testing.T) {
	admins := &stubAdmins{
		admin:    &account.Account{ID: 1, Email: "ops@example.com"},
		password: "correct horse",
	}
	routes := auth.NewHandler(auth.NewService(admins, newTokens(t), discardLogger())).Routes()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"wrong password", `{"email":"ops@example.com","password":"nope nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"who@example.com","password":"correct horse"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"ops@example.com"}`, http.StatusBadRequest},
		{"bad email", `{"email":"ops","password":"correct horse"}`, http.StatusBadRequest},
		{"malformed", `{"email":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, env := post(t, routes, "/login", tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `"Invalid email or password"`, string(env["error"]))
			}
		})
	}
}

func TestLogin_SigningFailure(t *testing.T) {
	admins := &stubAdmins{
		admin:    &account.Account{ID: 1, Email: "ops@example.com"},
		password: "correct horse",
	}
	service := auth.NewService(admins, failingIssuer{}, discardLogger())

	_, err := service.Login(context.Background(), auth.LoginInput{Email: "ops@example.com", Password: "correct horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

func TestRegister(t *testing.T) {
	admins := &stubAdmins{}
	routes := auth.NewHandler(auth.NewService(admins, newTokens(t), discardLogger())).Routes()

	body := `{"first_name":"Ada","last_name":"Lovelace","email":" ada@example.com ",
		"password":"analytical","phone":"5550100","dob":"1815-12-10","gender":"f","address":"London"}`

	recorder, env := post(t, routes, "/register", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"id":1}`, string(env["data"]))
	require.Len(t, admins.created, 1)
	assert.Equal(t, "ada@example.com", admins.created[0].Email)
}

func TestRegister_Conflict(t *testing.T) {
	admins := &stubAdmins{err: apperr.Conflict("Admin with the email already exists!")}
	routes := auth.NewHandler(auth.NewService(admins, newTokens(t), discardLogger())).Routes()

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com",
		"password":"analytical","phone":"5550100","dob":"1815-12-10","gender":"f","address":"London"}`

	recorder, env := post(t, routes, "/register", body)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.JSONEq(t, `"Admin with the email already exists!"`, string(env["error"]))
}

func TestRegister_Validation(t *testing.T) {
	admins := &stubAdmins{}
	routes := auth.NewHandler(auth.NewService(admins, newTokens(t), discardLogger())).Routes()

	recorder, _ := post(t, routes, "/register", `{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, admins.created)
}
