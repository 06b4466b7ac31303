package ranking

import (
	"errors"
	"fmt"
)

var ErrUnknownLabel = errors.New("unknown diagnosis label")

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// HAM10000 label codes.
var classFullForms = map[string]string{
	"akiec": "Actinic Keratoses and Intraepithelial Carcinoma",
	"bcc":   "Basal Cell Carcinoma",
	"bkl":   "Benign Keratosis-like Lesions",
	"df":    "Dermatofibroma",
	"mel":   "Melanoma",
	"nv":    "Melanocytic Nevi",
	"scc":   "Squamous Cell Carcinoma",
	"vasc":  "Vascular Lesions",
}

var labelSeverity = map[string]Severity{
	"mel":   SeverityHigh,
	"bcc":   SeverityHigh,
	"scc":   SeverityHigh,
	"akiec": SeverityModerate,
	"bkl":   SeverityLow,
	"df":    SeverityLow,
	"nv":    SeverityLow,
	"vasc":  SeverityLow,
}

var severityAdvice = map[Severity]string{
	SeverityLow: "This lesion type is usually benign. Keep the area clean, avoid excessive sun exposure " +
		"and monitor for changes in size, color or shape. See a dermatologist if anything changes.",
	SeverityModerate: "This lesion type can progress if untreated. A dermatologist consultation within the " +
		"next few weeks is recommended. Protect the area from sun and do not scratch or irritate it.",
	SeverityHigh: "This lesion type requires prompt medical attention. Please consult a dermatologist or " +
		"oncology clinic as soon as possible. Early evaluation significantly improves outcomes.",
}

// MapSeverity maps a classifier label code to a triage bucket and advice
// text. Unknown labels are an error, never a silent default.
func MapSeverity(label string) (Severity, string, error) {
	sev, ok := labelSeverity[label]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return sev, severityAdvice[sev], nil
}

// FullForm returns the human-readable disease name for a label code.
func FullForm(label string) (string, error) {
	name, ok := classFullForms[label]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return name, nil
}

// IsSafe reports whether a severity bucket needs no urgent follow-up.
func IsSafe(sev Severity) bool {
	return sev == SeverityLow
}

// ParseSeverity validates a severity string coming from a client.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityModerate, SeverityHigh:
		return Severity(s), true
	}
	return "", false
}
