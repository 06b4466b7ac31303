package ranking

// Places-search keyword per disease name. Unknown diagnoses fall back to a
// generic dermatology query.
var diseaseKeywords = map[string]string{
	"Basal Cell Carcinoma":                            "dermatology skin cancer hospital",
	"Melanoma":                                        "oncology dermatology hospital",
	"Squamous Cell Carcinoma":                         "skin cancer hospital",
	"Actinic Keratoses and Intraepithelial Carcinoma": "dermatology clinic",
	"Benign Keratosis-like Lesions":                   "dermatology clinic",
	"Dermatofibroma":                                  "dermatology clinic",
	"Melanocytic Nevi":                                "dermatology clinic",
	"Vascular Lesions":                                "vascular dermatology clinic",
}

func KeywordForDiagnosis(diagnosis string) string {
	if kw, ok := diseaseKeywords[diagnosis]; ok {
		return kw
	}
	return "dermatology hospital"
}
