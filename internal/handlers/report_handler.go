package handlers

import (
	"net/http"
	"strconv"
	"time"

	"snackshop-admin/internal/middlewares"
	"snackshop-admin/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Sales serves the sales report for ?from=YYYY-MM-DD&to=YYYY-MM-DD,
// defaulting to the last 30 days.
func (h *ReportHandler) Sales(c *gin.Context) {
	success := false
	defer func() { middlewares.RecordReportBuild("sales", success) }()

	to, ok := queryDate(c, "to")
	if !ok {
		return
	}
	if to.IsZero() {
		to = time.Now()
	} else {
		to = to.AddDate(0, 0, 1).Add(-time.Second)
	}

	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must not be after to"})
		return
	}

	report, err := h.reportService.SalesReport(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}
	success = true
	c.JSON(http.StatusOK, report)
}

// Products serves the catalog report. ?window_days bounds the best-seller
// ranking window (default 30).
func (h *ReportHandler) Products(c *gin.Context) {
	success := false
	defer func() { middlewares.RecordReportBuild("products", success) }()

	windowDays := 30
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window_days"})
			return
		}
		windowDays = parsed
	}

	report, err := h.reportService.ProductReport(time.Now().AddDate(0, 0, -windowDays))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build product report"})
		return
	}
	success = true
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Customers(c *gin.Context) {
	success := false
	defer func() { middlewares.RecordReportBuild("customers", success) }()

	report, err := h.reportService.CustomerReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build customer report"})
		return
	}
	success = true
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	success := false
	defer func() { middlewares.RecordReportBuild("dashboard", success) }()

	data, err := h.reportService.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	success = true
	c.JSON(http.StatusOK, data)
}
