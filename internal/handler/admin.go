package handler

import (
	"fmt"
	"net/http"
	"time"

	"rofoportal/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the read-only aggregation views.
type AdminHandler struct{ svc service.AdminService }

func NewAdminHandler(svc service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// Summary godoc
// @Summary Cross-role dashboard: totals plus a side-by-side sample
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AdminSummaryResponse
// @Router /v1/admin/summary [get]
func (h *AdminHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Download the full baseline-vs-submissions comparison as a workbook
// @Tags admin
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /v1/admin/summary/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	data, err := h.svc.Export(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("forecast_comparison_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Log godoc
// @Summary List the append-only submission audit log
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.LogListResponse
// @Router /v1/admin/log [get]
func (h *AdminHandler) Log(c *gin.Context) {
	resp, err := h.svc.Log(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
