package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rofoportal/internal/dto"
	"rofoportal/internal/service"
	"rofoportal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubAuthService returns a fixed response or error.
type stubAuthService struct {
	resp *dto.LoginResponse
	err  error
}

func (s *stubAuthService) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

var _ service.AuthService = (*stubAuthService)(nil)

func postLogin(t *testing.T, svc service.AuthService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/auth/login", NewAuthHandler(svc).Login)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"username":"brand1_user","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_StatusByErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user store down", store.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"session backend failure", errors.New("redis: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postLogin(t, &stubAuthService{err: tc.err})
			assert.Equal(t, tc.want, w.Code)
			// Internal error text never reaches the client.
			assert.NotContains(t, w.Body.String(), "redis")
		})
	}
}

func TestLogin_SuccessReturnsToken(t *testing.T) {
	w := postLogin(t, &stubAuthService{resp: &dto.LoginResponse{
		AccessToken: "tok",
		TokenType:   "bearer",
		User:        dto.UserResponse{Username: "brand1_user", Role: "brand1"},
	}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
}
