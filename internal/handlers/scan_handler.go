package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dermacare/internal/pdf"
	"dermacare/internal/ranking"
	"dermacare/internal/services"
)

type ScanHandler struct {
	scans  *services.ScanService
	report *pdf.ReportGenerator
}

func NewScanHandler(scans *services.ScanService, report *pdf.ReportGenerator) *ScanHandler {
	return &ScanHandler{scans: scans, report: report}
}

// @Summary      List my scans
// @Tags         Scans
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /scans [get]
func (h *ScanHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	scans, err := h.scans.ListByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list scans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": scans})
}

// @Summary      Save a scan record
// @Description  Persists a classification result; severity and advice are derived server-side from the label
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        request  body      object{label=string,confidence=number}  true  "Classifier output"
// @Success      201      {object}  models.Scan
// @Failure      400      {object}  map[string]string
// @Router       /scans [post]
func (h *ScanHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Label      string  `json:"label" binding:"required"`
		Confidence float64 `json:"confidence" binding:"required,gte=0,lte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, err := h.scans.CreateFromPrediction(userID, &services.Prediction{
		Label:      req.Label,
		Confidence: req.Confidence,
	}, nil)
	if err != nil {
		if errors.Is(err, ranking.ErrUnknownLabel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown diagnosis label"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scan"})
		return
	}
	c.JSON(http.StatusCreated, scan)
}

// @Summary      Get one scan
// @Tags         Scans
// @Produce      json
// @Param        id  path  string  true  "Scan id"
// @Success      200  {object}  models.Scan
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /scans/{id} [get]
func (h *ScanHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	scan, err := h.scans.GetOwned(c.Param("id"), userID)
	if err != nil {
		writeScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, scan)
}

// @Summary      Delete a scan
// @Tags         Scans
// @Produce      json
// @Param        id  path  string  true  "Scan id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /scans/{id} [delete]
func (h *ScanHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.scans.Delete(c.Param("id"), userID); err != nil {
		writeScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scan deleted"})
}

// @Summary      Download the scan report PDF
// @Tags         Scans
// @Produce      application/pdf
// @Param        id  path  string  true  "Scan id"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /scans/{id}/pdf [get]
func (h *ScanHandler) DownloadPDF(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	scan, err := h.scans.GetOwned(c.Param("id"), userID)
	if err != nil {
		writeScanError(c, err)
		return
	}

	data, err := h.report.ScanReport(scan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="scan_report_%s.pdf"`, scan.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

func writeScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrScanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
	case errors.Is(err, services.ErrNotScanOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan operation failed"})
	}
}
