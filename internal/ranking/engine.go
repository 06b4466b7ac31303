package ranking

import (
	"errors"
	"log"
	"math"
	"sort"

	"dermacare/internal/models"
)

// earthRadiusKM is the IUGG mean Earth radius. Chosen over the rounded
// 6371 km so computed distances are reproducible in tests; the two differ
// by under 0.01%.
const earthRadiusKM = 6371.0088

var severityBoost = map[Severity]float64{
	SeverityLow:      0.2,
	SeverityModerate: 0.4,
	SeverityHigh:     0.6,
}

type weights struct {
	rating   float64
	ml       float64
	distance float64
}

var severityWeights = map[Severity]weights{
	SeverityLow:      {rating: 2.0, ml: 2.0, distance: 0.1},
	SeverityModerate: {rating: 2.5, ml: 3.0, distance: 0.2},
	SeverityHigh:     {rating: 3.0, ml: 4.0, distance: 0.4},
}

// Haversine returns the great-circle distance in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

// SuitabilityPredictor estimates hospital fit in [0,1]. The default is the
// hand-tuned linear formula; a failing predictor degrades to a neutral 0.5
// instead of aborting the request.
type SuitabilityPredictor interface {
	PredictSuitability(rating, distanceKM float64, severity Severity) (float64, error)
}

type linearPredictor struct{}

func NewLinearPredictor() SuitabilityPredictor { return linearPredictor{} }

func (linearPredictor) PredictSuitability(rating, distanceKM float64, severity Severity) (float64, error) {
	boost, ok := severityBoost[severity]
	if !ok {
		return 0, errors.New("suitability: unknown severity " + string(severity))
	}
	score := rating*0.15 - distanceKM*0.03 + boost
	return round2(math.Max(0, math.Min(score, 1))), nil
}

type Engine struct {
	predictor SuitabilityPredictor
}

func NewEngine(p SuitabilityPredictor) *Engine {
	if p == nil {
		p = NewLinearPredictor()
	}
	return &Engine{predictor: p}
}

// RankHospitals scores and sorts hospital candidates for one request.
// The sort is stable: ties keep input order so output stays deterministic.
func (e *Engine) RankHospitals(userLat, userLon float64, severity Severity, candidates []models.HospitalCandidate) []models.RankedHospital {
	w := severityWeights[severity]

	ranked := make([]models.RankedHospital, 0, len(candidates))
	for _, h := range candidates {
		dist := round2(Haversine(userLat, userLon, h.Lat, h.Lon))
		mlScore, final := e.score(severity, w, h.Name, h.Rating, dist)

		ranked = append(ranked, models.RankedHospital{
			HospitalCandidate: h,
			DistanceKM:        dist,
			MLScore:           mlScore,
			FinalScore:        final,
			Explanation:       ExplainHospital(severity, h.Rating, dist, mlScore),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

// score computes one candidate's suitability and weighted final score. A
// predictor failure downgrades to a neutral 0.5 rather than failing the
// whole request.
func (e *Engine) score(severity Severity, w weights, name string, rating, dist float64) (mlScore, final float64) {
	mlScore, err := e.predictor.PredictSuitability(rating, dist, severity)
	if err != nil {
		log.Printf("[ranking][ml] prediction failed for %q, using neutral: %v", name, err)
		mlScore = 0.5
	}
	final = round2(rating*w.rating + mlScore*w.ml - dist*w.distance)
	return mlScore, final
}

// AttachDoctors scores the given doctor candidates for a hospital and keeps
// the top 3. Attach-score per hospital doctor: rating doubled for
// high-severity cases.
func AttachDoctors(severity Severity, doctors []models.DoctorCandidate) []models.RankedDoctor {
	mult := 1.0
	if severity == SeverityHigh {
		mult = 2.0
	}

	out := make([]models.RankedDoctor, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, models.RankedDoctor{
			DoctorCandidate: d,
			Score:           round2(d.Rating * mult),
			Explanation:     ExplainDoctor(d, severity),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
