package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"dermacare/internal/models"
)

var (
	ErrCityNotFound       = errors.New("city not found")
	ErrServiceUnavailable = errors.New("places service unavailable")
)

// PlacesClient wraps the Google geocode/places REST endpoints. DryRun mode
// answers from fixtures so the service runs without an API key.
type PlacesClient struct {
	APIKey     string
	GeocodeURL string
	PlacesURL  string
	DryRun     bool
	client     *http.Client
}

func NewPlacesClient(apiKey, geocodeURL, placesURL string, timeout time.Duration, dryRun bool) *PlacesClient {
	return &PlacesClient{
		APIKey:     apiKey,
		GeocodeURL: geocodeURL,
		PlacesURL:  placesURL,
		DryRun:     dryRun,
		client:     &http.Client{Timeout: timeout},
	}
}

func (c *PlacesClient) getJSON(rawURL string, out interface{}) error {
	resp, err := c.client.Get(rawURL)
	if err != nil {
		log.Printf("[places][http][err] transport: %v", err)
		return ErrServiceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[places][http][err] read body: %v", err)
		return ErrServiceUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[places][http][err] status=%d body=%.200s", resp.StatusCode, body)
		return ErrServiceUnavailable
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Printf("[places][http][err] decode: %v", err)
		return ErrServiceUnavailable
	}
	return nil
}

// Geocode resolves a city name to coordinates.
func (c *PlacesClient) Geocode(city string) (lat, lon float64, err error) {
	if c.DryRun {
		log.Printf("[places][geocode][dry-run] city=%q", city)
		return 19.0760, 72.8777, nil
	}

	q := url.Values{
		"address": {city},
		"key":     {c.APIKey},
	}
	var out struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(c.GeocodeURL+"?"+q.Encode(), &out); err != nil {
		return 0, 0, err
	}
	if out.Status == "ZERO_RESULTS" || len(out.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}
	loc := out.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

type placesSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Address  string  `json:"formatted_address"`
		Rating   float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchNearbyHospitals runs a nearby search keyed by the diagnosis-derived
// keyword.
func (c *PlacesClient) SearchNearbyHospitals(lat, lon, radiusKM float64, keyword string) ([]models.HospitalCandidate, error) {
	if c.DryRun {
		log.Printf("[places][nearby][dry-run] keyword=%q lat=%.4f lon=%.4f", keyword, lat, lon)
		return []models.HospitalCandidate{
			{Name: "City Skin Clinic", Address: "12 MG Road", Rating: 4.8, Lat: lat + 0.008, Lon: lon + 0.004},
			{Name: "General Hospital", Address: "3 Station Road", Rating: 4.0, Lat: lat + 0.030, Lon: lon - 0.020},
			{Name: "Sunrise Dermatology Center", Address: "78 Lake View", Rating: 4.5, Lat: lat - 0.015, Lon: lon + 0.012},
		}, nil
	}

	q := url.Values{
		"location": {fmt.Sprintf("%f,%f", lat, lon)},
		"radius":   {fmt.Sprintf("%d", int(radiusKM*1000))},
		"keyword":  {keyword},
		"type":     {"hospital"},
		"key":      {c.APIKey},
	}
	var out placesSearchResponse
	if err := c.getJSON(c.PlacesURL+"/nearbysearch/json?"+q.Encode(), &out); err != nil {
		return nil, err
	}

	candidates := make([]models.HospitalCandidate, 0, len(out.Results))
	for _, r := range out.Results {
		address := r.Vicinity
		if address == "" {
			address = r.Address
		}
		candidates = append(candidates, models.HospitalCandidate{
			Name:    r.Name,
			Address: address,
			Rating:  r.Rating,
			Lat:     r.Geometry.Location.Lat,
			Lon:     r.Geometry.Location.Lng,
		})
	}
	return candidates, nil
}

// SearchDoctors runs a text search for doctors around a hospital.
func (c *PlacesClient) SearchDoctors(query string, lat, lon, radiusKM float64) ([]models.DoctorCandidate, error) {
	if c.DryRun {
		log.Printf("[places][doctors][dry-run] query=%q", query)
		return []models.DoctorCandidate{
			{ID: "doc-1", Name: "Dr. Amit", Specialty: "dermatologist", Rating: 4.7, ExperienceYears: 12, DistanceKM: 1.2},
			{ID: "doc-2", Name: "Dr. Sarah", Specialty: "oncologist", Rating: 4.9, ExperienceYears: 18, DistanceKM: 2.5},
			{ID: "doc-3", Name: "Dr. Ravi", Specialty: "general", Rating: 4.2, ExperienceYears: 7, DistanceKM: 0.8},
			{ID: "doc-4", Name: "Dr. Emily", Specialty: "dermatologist", Rating: 4.4, ExperienceYears: 22, DistanceKM: 3.9},
		}, nil
	}

	q := url.Values{
		"query":    {query},
		"location": {fmt.Sprintf("%f,%f", lat, lon)},
		"radius":   {fmt.Sprintf("%d", int(radiusKM*1000))},
		"key":      {c.APIKey},
	}
	var out placesSearchResponse
	if err := c.getJSON(c.PlacesURL+"/textsearch/json?"+q.Encode(), &out); err != nil {
		return nil, err
	}

	doctors := make([]models.DoctorCandidate, 0, len(out.Results))
	for i, r := range out.Results {
		doctors = append(doctors, models.DoctorCandidate{
			ID:         fmt.Sprintf("%s-%d", shortID(r.Name), i),
			Name:       r.Name,
			Specialty:  "dermatologist",
			Rating:     r.Rating,
			DistanceKM: 0,
		})
	}
	return doctors, nil
}

func shortID(name string) string {
	if len(name) > 3 {
		return name[:3]
	}
	return name
}
