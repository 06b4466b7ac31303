package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermacare/internal/models"
)

func TestExplainHospitalClauses(t *testing.T) {
	got := ExplainHospital(SeverityHigh, 4.8, 1.2, 0.9)
	assert.Contains(t, got, "high patient rating (4.8★)")
	assert.Contains(t, got, "suitable for high-severity cases")
	assert.Contains(t, got, "very close to you (1.2 km)")

	got = ExplainHospital(SeverityModerate, 4.1, 5.0, 0.65)
	assert.Contains(t, got, "good rating (4.1★)")
	assert.Contains(t, got, "well-suited for moderate conditions")
	assert.Contains(t, got, "within reasonable distance (5.0 km)")

	got = ExplainHospital(SeverityLow, 4.0, 2.0, 0.5)
	assert.Contains(t, got, "appropriate for routine dermatology care")
}

func TestExplainHospitalGenericFallback(t *testing.T) {
	// low rating, far away, weak ml score for a high-severity case: no
	// specific clause applies
	got := ExplainHospital(SeverityHigh, 3.2, 12.0, 0.4)
	assert.Equal(t, "Recommended because it has overall good match for your condition.", got)
}

func TestScoreDoctorFormula(t *testing.T) {
	d := models.DoctorCandidate{
		Specialty:       "Dermatologist",
		Rating:          4.6,
		ExperienceYears: 12,
		DistanceKM:      2.0,
	}
	// 4.6*2 + 12*0.3 + 5 - 2.0*0.5 = 16.8
	assert.InDelta(t, 16.8, ScoreDoctor(d, SeverityHigh), 1e-9)

	// experience is capped at 20 years
	d.ExperienceYears = 35
	// 9.2 + 20*0.3 + 5 - 1.0 = 19.2
	assert.InDelta(t, 19.2, ScoreDoctor(d, SeverityHigh), 1e-9)

	// no specialty bonus when the specialty does not match the case
	d.Specialty = "Cardiologist"
	assert.InDelta(t, 14.2, ScoreDoctor(d, SeverityHigh), 1e-9)
}

func TestSortDoctorsDescendingAndStable(t *testing.T) {
	doctors := []models.DoctorCandidate{
		{ID: "d1", Specialty: "General", Rating: 4.0, ExperienceYears: 5, DistanceKM: 1},
		{ID: "d2", Specialty: "Dermatologist", Rating: 4.8, ExperienceYears: 15, DistanceKM: 2},
		{ID: "d3", Specialty: "General", Rating: 4.0, ExperienceYears: 5, DistanceKM: 1},
	}

	sorted := SortDoctors(doctors, SeverityModerate)
	require.Len(t, sorted, 3)
	assert.Equal(t, "d2", sorted[0].ID)
	// d1 and d3 score identically; input order is preserved
	assert.Equal(t, "d1", sorted[1].ID)
	assert.Equal(t, "d3", sorted[2].ID)

	// input slice untouched
	assert.Equal(t, "d1", doctors[0].ID)
}

func TestExplainDoctor(t *testing.T) {
	d := models.DoctorCandidate{
		Name:            "Dr. Rao",
		Specialty:       "Oncologist",
		Rating:          4.7,
		ExperienceYears: 18,
		DistanceKM:      1.5,
	}
	got := ExplainDoctor(d, SeverityHigh)
	assert.Contains(t, got, "high patient rating (4.7★)")
	assert.Contains(t, got, "specialist for high severity cases")
	assert.Contains(t, got, "18+ years of experience")
	assert.Contains(t, got, "located nearby")

	// nothing matches
	got = ExplainDoctor(models.DoctorCandidate{Rating: 3.0, DistanceKM: 20}, SeverityModerate)
	assert.Equal(t, "Recommended because of overall good fit for your condition.", got)
}
