package ranking

import (
	"fmt"
	"sort"
	"strings"

	"dermacare/internal/models"
)

// ExplainHospital assembles the recommendation sentence from the applicable
// templated clauses; a generic clause covers the no-match case.
func ExplainHospital(severity Severity, rating, distanceKM, mlScore float64) string {
	var reasons []string

	if rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("high patient rating (%.1f★)", rating))
	} else if rating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("good rating (%.1f★)", rating))
	}

	switch {
	case severity == SeverityHigh && mlScore >= 0.7:
		reasons = append(reasons, "suitable for high-severity cases")
	case severity == SeverityModerate && mlScore >= 0.6:
		reasons = append(reasons, "well-suited for moderate conditions")
	case severity == SeverityLow:
		reasons = append(reasons, "appropriate for routine dermatology care")
	}

	if distanceKM <= 3 {
		reasons = append(reasons, fmt.Sprintf("very close to you (%.1f km)", distanceKM))
	} else if distanceKM <= 7 {
		reasons = append(reasons, fmt.Sprintf("within reasonable distance (%.1f km)", distanceKM))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "overall good match for your condition")
	}

	return "Recommended because it has " + strings.Join(reasons, ", ") + "."
}

var specialtyMatch = map[Severity][]string{
	SeverityHigh:     {"oncologist", "dermatologist"},
	SeverityModerate: {"dermatologist"},
	SeverityLow:      {"dermatologist", "general"},
}

func specialtyMatches(specialty string, severity Severity) bool {
	s := strings.ToLower(specialty)
	for _, m := range specialtyMatch[severity] {
		if s == m {
			return true
		}
	}
	return false
}

// ScoreDoctor is the standalone doctor ranking: rating, capped experience,
// specialty relevance and distance.
func ScoreDoctor(d models.DoctorCandidate, severity Severity) float64 {
	score := d.Rating * 2

	exp := d.ExperienceYears
	if exp > 20 {
		exp = 20
	}
	score += float64(exp) * 0.3

	if specialtyMatches(d.Specialty, severity) {
		score += 5
	}

	score -= d.DistanceKM * 0.5
	return round2(score)
}

func ExplainDoctor(d models.DoctorCandidate, severity Severity) string {
	var reasons []string

	if d.Rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("high patient rating (%.1f★)", d.Rating))
	}
	if specialtyMatches(d.Specialty, severity) {
		reasons = append(reasons, fmt.Sprintf("specialist for %s severity cases", strings.ToLower(string(severity))))
	}
	if d.ExperienceYears >= 10 {
		reasons = append(reasons, fmt.Sprintf("%d+ years of experience", d.ExperienceYears))
	}
	if d.DistanceKM <= 3 {
		reasons = append(reasons, "located nearby")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "overall good fit for your condition")
	}
	return "Recommended because of " + strings.Join(reasons, ", ") + "."
}

// SortDoctors orders doctor candidates by ScoreDoctor descending, stable so
// equal scores keep gateway order.
func SortDoctors(doctors []models.DoctorCandidate, severity Severity) []models.DoctorCandidate {
	out := make([]models.DoctorCandidate, len(doctors))
	copy(out, doctors)
	scores := make([]float64, len(out))
	for i, d := range out {
		scores[i] = ScoreDoctor(d, severity)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	sorted := make([]models.DoctorCandidate, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
