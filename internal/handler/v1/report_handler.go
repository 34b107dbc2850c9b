package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/service"
	"github.com/dentware/clinicdesk/internal/views"
)

type ReportHandler struct {
	reportSvc *service.ReportService
}

func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	respondOK(c, h.reportSvc.Summary())
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	r := views.RevenueRange(c.DefaultQuery("range", string(views.RangeWeek)))
	if !r.IsValid() {
		respondError(c, http.StatusBadRequest, "range must be one of week, month, year")
		return
	}
	respondOK(c, h.reportSvc.RevenueSeries(r))
}

func (h *ReportHandler) RevenueByMonth(c *gin.Context) {
	respondOK(c, h.reportSvc.RevenueByMonth())
}

func (h *ReportHandler) NextAppointments(c *gin.Context) {
	respondOK(c, h.reportSvc.NextAppointments(parseQueryInt(c, "limit", 10)))
}

func (h *ReportHandler) TodaysAppointments(c *gin.Context) {
	respondOK(c, h.reportSvc.TodaysAppointments())
}

// monthParam parses an optional 1-12 "month" query value.
func monthParam(c *gin.Context) (*time.Month, bool) {
	raw := c.Query("month")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 12 {
		respondError(c, http.StatusBadRequest, "month must be 1-12")
		return nil, false
	}
	m := time.Month(v)
	return &m, true
}

func (h *ReportHandler) Upcoming(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	respondOK(c, h.reportSvc.UpcomingByMonth(month))
}

func (h *ReportHandler) Completed(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	respondOK(c, h.reportSvc.CompletedByMonth(month))
}

func (h *ReportHandler) TopPatients(c *gin.Context) {
	respondOK(c, h.reportSvc.TopPatients(parseQueryInt(c, "limit", views.DefaultTopN)))
}

func (h *ReportHandler) TopServices(c *gin.Context) {
	respondOK(c, h.reportSvc.TopServices(parseQueryInt(c, "limit", views.DefaultTopN)))
}

func (h *ReportHandler) MonthCalendar(c *gin.Context) {
	year := parseQueryInt(c, "year", 0)
	month := parseQueryInt(c, "month", 0)
	if month < 0 || month > 12 {
		respondError(c, http.StatusBadRequest, "month must be 1-12")
		return
	}
	respondOK(c, h.reportSvc.MonthCalendar(year, time.Month(month)))
}

func (h *ReportHandler) WeekCalendar(c *gin.Context) {
	var anchor time.Time
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "anchor must be formatted 2006-01-02")
			return
		}
		anchor = parsed
	}
	respondOK(c, h.reportSvc.WeekCalendar(anchor))
}

func (h *ReportHandler) Catalog(c *gin.Context) {
	respondOK(c, h.reportSvc.Catalog())
}
