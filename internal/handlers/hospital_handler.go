package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dermacare/internal/ranking"
	"dermacare/internal/utils"
)

const defaultSearchRadiusKM = 10

type HospitalHandler struct {
	places *utils.PlacesClient
	engine *ranking.Engine
}

func NewHospitalHandler(places *utils.PlacesClient, engine *ranking.Engine) *HospitalHandler {
	return &HospitalHandler{places: places, engine: engine}
}

type nearbyHospitalsRequest struct {
	Diagnosis string  `json:"diagnosis" binding:"required"`
	Severity  string  `json:"severity" binding:"required"`
	City      string  `json:"city"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	RadiusKM  float64 `json:"radius_km"`
}

// @Summary      Ranked nearby hospitals
// @Description  Looks up hospitals around the user and ranks them by the severity-weighted suitability score, with up to 3 doctors each
// @Tags         Hospitals
// @Accept       json
// @Produce      json
// @Param        request  body      nearbyHospitalsRequest  true  "Diagnosis, severity and location (city or lat/lon)"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /nearby-hospitals [post]
func (h *HospitalHandler) NearbyHospitals(c *gin.Context) {
	var req nearbyHospitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	severity, ok := ranking.ParseSeverity(req.Severity)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "severity must be Low, Moderate or High"})
		return
	}

	lat, lon := req.Lat, req.Lon
	if lat == 0 && lon == 0 {
		if req.City == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "city or lat/lon required"})
			return
		}
		var err error
		lat, lon, err = h.places.Geocode(req.City)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrCityNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Geocoding service unavailable"})
			}
			return
		}
	}

	radius := req.RadiusKM
	if radius <= 0 {
		radius = defaultSearchRadiusKM
	}

	keyword := ranking.KeywordForDiagnosis(req.Diagnosis)
	candidates, err := h.places.SearchNearbyHospitals(lat, lon, radius, keyword)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Hospital search unavailable"})
		return
	}

	ranked := h.engine.RankHospitals(lat, lon, severity, candidates)

	// doctor attach degrades to an empty list, never fails the request
	for i := range ranked {
		doctors, err := h.places.SearchDoctors("dermatologist near "+ranked[i].Name, ranked[i].Lat, ranked[i].Lon, 5)
		if err != nil {
			log.Printf("[hospitals][doctors] search failed for %q: %v", ranked[i].Name, err)
			continue
		}
		ranked[i].Doctors = ranking.AttachDoctors(severity, ranking.SortDoctors(doctors, severity))
	}

	c.JSON(http.StatusOK, gin.H{
		"diagnosis": req.Diagnosis,
		"severity":  severity,
		"keyword":   keyword,
		"location":  gin.H{"lat": lat, "lon": lon},
		"hospitals": ranked,
	})
}
