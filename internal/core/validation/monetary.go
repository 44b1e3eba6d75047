package validation

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/SscSPs/fincockpit/internal/apperrors"
)

// ValidateMonetaryValue checks that value is a finite, non-negative number and returns it.
func ValidateMonetaryValue(value any, fieldName string) (float64, error) {
	f, ok := toFloat(value)
	if !ok {
		return 0, apperrors.NewFieldValidation(fieldName, fmt.Sprintf("%s must be a number.", fieldName))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.NewFieldValidation(fieldName, fmt.Sprintf("%s must be a finite number.", fieldName))
	}
	if f < 0 {
		return 0, apperrors.NewFieldValidation(fieldName, fmt.Sprintf("%s cannot be negative.", fieldName))
	}
	return f, nil
}

// toFloat accepts numeric kinds only. Strings are rejected even when they look numeric.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
