package controllers

import (
	"net/http"

	"venue-backend/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// DashboardSummary is the admin dashboard: counts, total revenue, and
// the six-month revenue series.
// GET /api/reports/dashboard-summary (admin)
func (ctrl *ReportController) DashboardSummary(c *gin.Context) {
	summary, err := ctrl.ReportSvc.DashboardSummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StaffSummary is the reduced counts-only dashboard for staff.
// GET /api/reports/staff (staff)
func (ctrl *ReportController) StaffSummary(c *gin.Context) {
	summary, err := ctrl.ReportSvc.StaffSummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
