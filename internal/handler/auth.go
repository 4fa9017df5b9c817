package handler

import (
	"errors"
	"net/http"

	"rofoportal/internal/apierror"
	"rofoportal/internal/dto"
	"rofoportal/internal/middleware"
	"rofoportal/internal/service"
	"rofoportal/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, store.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.New("User store unavailable, try again later"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid username or password"))
	case err != nil:
		// Session or token machinery failed, not the credentials.
		c.JSON(http.StatusInternalServerError, apierror.New("Could not log in"))
	default:
		c.JSON(http.StatusOK, resp)
	}
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Logout(c.Request.Context(), claims.SessionID); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not end session"))
		return
	}
	c.Status(http.StatusNoContent)
}
