package handler

import (
	"errors"
	"net/http"

	"rofoportal/internal/apierror"
	"rofoportal/internal/dto"
	"rofoportal/internal/middleware"
	"rofoportal/internal/model"
	"rofoportal/internal/service"
	"rofoportal/internal/store"

	"github.com/gin-gonic/gin"
)

// ForecastHandler serves the role views: load the working table, park drafts,
// and submit adjustments. One handler covers channel, brand1, and brand2; the
// role from the JWT selects the scope.
type ForecastHandler struct{ svc service.ForecastService }

func NewForecastHandler(svc service.ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// roleConfig resolves the caller's editable-role configuration. Admin tokens
// reach admin routes only, so an unresolvable role here is a 403.
func roleConfig(c *gin.Context) (model.RoleConfig, bool) {
	claims := middleware.GetClaims(c)
	role, ok := model.ResolveRole(claims.Role)
	if !ok {
		c.JSON(http.StatusForbidden, apierror.New("Role has no forecast view"))
		return model.RoleConfig{}, false
	}
	return role, true
}

// writeServiceError maps service-layer failures onto the HTTP status taxonomy.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Upstream data store unavailable, try again later"))
	case errors.Is(err, service.ErrPersistFailure):
		c.JSON(http.StatusBadGateway, apierror.New("Could not persist submission, nothing was recorded"))
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, apierror.New("Session expired or logged out"))
	case errors.Is(err, service.ErrNoDraft):
		c.JSON(http.StatusBadRequest, apierror.New("No values to submit: request body empty and no draft on session"))
	case errors.Is(err, service.ErrNoForecastData):
		c.JSON(http.StatusConflict, apierror.New("No forecast rows in scope for this role, nothing to submit"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// Load godoc
// @Summary Load the role's working forecast table
// @Tags forecast
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ForecastTableResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/forecast [get]
func (h *ForecastHandler) Load(c *gin.Context) {
	role, ok := roleConfig(c)
	if !ok {
		return
	}
	resp, err := h.svc.Load(c.Request.Context(), role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveDraft godoc
// @Summary Save in-progress edits on the login session
// @Tags forecast
// @Security BearerAuth
// @Accept json
// @Success 204
// @Router /v1/forecast/draft [put]
func (h *ForecastHandler) SaveDraft(c *gin.Context) {
	if _, ok := roleConfig(c); !ok {
		return
	}
	var req dto.DraftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.SaveDraft(c.Request.Context(), claims.SessionID, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDraft godoc
// @Summary Fetch the session's saved draft
// @Tags forecast
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Router /v1/forecast/draft [get]
func (h *ForecastHandler) GetDraft(c *gin.Context) {
	if _, ok := roleConfig(c); !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.GetDraft(c.Request.Context(), claims.SessionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Validate and record the role's adjustments
// @Tags forecast
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.SubmitResponse
// @Failure 422 {object} dto.RejectedResponse
// @Failure 502 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/forecast/submit [post]
func (h *ForecastHandler) Submit(c *gin.Context) {
	role, ok := roleConfig(c)
	if !ok {
		return
	}
	var req dto.SubmitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, rejected, err := h.svc.Submit(c.Request.Context(), role, claims.SessionID, claims.Username, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if rejected != nil {
		c.JSON(http.StatusUnprocessableEntity, rejected)
		return
	}
	c.JSON(http.StatusOK, resp)
}
