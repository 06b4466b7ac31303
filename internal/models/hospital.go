package models

// HospitalCandidate is a transient result from the places lookup; it exists
// only for the duration of one ranking request.
type HospitalCandidate struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type DoctorCandidate struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Rating          float64 `json:"rating"`
	ExperienceYears int     `json:"experience_years"`
	DistanceKM      float64 `json:"distance_km"`
}

// RankedHospital is a hospital candidate with the computed scores attached.
type RankedHospital struct {
	HospitalCandidate
	DistanceKM  float64        `json:"distance_km"`
	MLScore     float64        `json:"ml_score"`
	FinalScore  float64        `json:"final_score"`
	Explanation string         `json:"explanation"`
	Doctors     []RankedDoctor `json:"doctors"`
}

type RankedDoctor struct {
	DoctorCandidate
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}
