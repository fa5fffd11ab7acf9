package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
)

func TestCreateReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(mocks.ReportRepositoryMock)
	r := gin.New()
	r.POST("/reports", NewReportHandler(repo).CreateReport)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(models.Report{ReporterEmail: "bob@b.c", Subject: "scam listing"}, nil).Once()

	body := bytes.NewBufferString(`{"reporterEmail":"bob@b.c","subject":"scam listing"}`)
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	repo.AssertExpectations(t)
}

func TestCreateReportRejectsBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(mocks.ReportRepositoryMock)
	r := gin.New()
	r.POST("/reports", NewReportHandler(repo).CreateReport)

	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewBufferString(`{`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create")
}
