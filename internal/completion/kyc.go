package completion

import (
	"math"

	dirmodels "fundready/internal/director/models"
)

// AllDirectorsComplete reports whether the director set collectively
// satisfies KYC: non-empty, and every director has both PAN and Aadhaar.
// A business with zero directors can never satisfy KYC.
func AllDirectorsComplete(directors []dirmodels.Director) bool {
	if len(directors) == 0 {
		return false
	}
	for _, director := range directors {
		if !director.HasCompleteKYC() {
			return false
		}
	}
	return true
}

// kycFieldsPerDirector counts the fields tracked by the auxiliary UI metric:
// name, dob, pan, aadhaar_number.
const kycFieldsPerDirector = 4

// KYCFieldCompletionPercent is the auxiliary UI metric: the share of filled
// KYC fields across all directors, rounded to the nearest integer. Returns 0
// when there are no directors. This does not feed the weighted score.
func KYCFieldCompletionPercent(directors []dirmodels.Director) int {
	if len(directors) == 0 {
		return 0
	}

	total := len(directors) * kycFieldsPerDirector
	filled := 0
	for _, director := range directors {
		if director.Name != "" {
			filled++
		}
		if director.DOB != "" {
			filled++
		}
		if director.PAN != "" {
			filled++
		}
		if director.AadhaarNumber != "" {
			filled++
		}
	}

	return int(math.Round(float64(filled) / float64(total) * 100))
}
