package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

// ReportHandler accepts user reports.
type ReportHandler struct {
	repo repositories.ReportRepository
}

// NewReportHandler builds a ReportHandler.
func NewReportHandler(repo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// CreateReport stores a report.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stored, err := h.repo.Create(c.Request.Context(), report)
	if err != nil {
		logrus.WithError(err).Error("failed to store report")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": stored})
}
