package utils

import "fmt"

// Reference glucose ranges in mg/dL, simplified from ADA guidance.
const (
	sugarLowMgDl     = 70.0
	fastingHighMgDl  = 130.0
	postMealHighMgDl = 180.0
	randomHighMgDl   = 200.0
)

// AssessSugarReading flags readings outside the reference range for the
// measurement context. An empty warning means the reading is in range.
func AssessSugarReading(context string, levelMgDl float64) (inRange bool, warning string) {
	if levelMgDl < sugarLowMgDl {
		return false, fmt.Sprintf("low blood sugar: %.0f mg/dL is below %.0f", levelMgDl, sugarLowMgDl)
	}

	var limit float64
	switch context {
	case "fasting":
		limit = fastingHighMgDl
	case "post_meal":
		limit = postMealHighMgDl
	default:
		limit = randomHighMgDl
	}

	if levelMgDl > limit {
		return false, fmt.Sprintf("high blood sugar: %.0f mg/dL is above %.0f (%s)", levelMgDl, limit, context)
	}
	return true, ""
}
