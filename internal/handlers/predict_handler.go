package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"dermacare/internal/ranking"
	"dermacare/internal/services"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type PredictHandler struct {
	classifier *services.ClassifierService
	scans      *services.ScanService
}

func NewPredictHandler(classifier *services.ClassifierService, scans *services.ScanService) *PredictHandler {
	return &PredictHandler{classifier: classifier, scans: scans}
}

// @Summary      Classify a skin lesion photo
// @Description  Runs the classifier on the uploaded image and maps the label to a severity bucket. Pass save=true to persist the scan.
// @Tags         Predict
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file    true   "Lesion photo"
// @Param        save   formData  string  false  "Persist the result as a scan record"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      503    {object}  map[string]string
// @Router       /predict/skin-disease [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image not provided"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	pred, err := h.classifier.Predict(image, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		case errors.Is(err, services.ErrModelUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Prediction service unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		}
		return
	}

	severity, advice, err := ranking.MapSeverity(pred.Label)
	if err != nil {
		log.Printf("[predict] classifier returned unknown label %q", pred.Label)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		return
	}
	disease, _ := ranking.FullForm(pred.Label)

	resp := gin.H{
		"predicted_label":    pred.Label,
		"predicted_disease":  disease,
		"confidence":         pred.Confidence,
		"confidence_percent": round2(pred.Confidence * 100),
		"explanation":        fmt.Sprintf("The model predicts %s with %.2f%% confidence.", disease, pred.Confidence*100),
		"severity":           severity,
		"advice":             advice,
		"is_safe":            ranking.IsSafe(severity),
	}

	if c.PostForm("save") == "true" {
		scan, err := h.scans.CreateFromPrediction(userID, pred, image)
		if err != nil {
			log.Printf("[predict] failed to persist scan for userID=%d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scan"})
			return
		}
		resp["scan"] = scan
	}

	c.JSON(http.StatusOK, resp)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
