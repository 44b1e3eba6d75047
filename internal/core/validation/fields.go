package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the engine's custom tags registered.
// "finite" rejects NaN and ±Inf.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			switch fl.Field().Kind() {
			case reflect.Float32, reflect.Float64:
				f := fl.Field().Float()
				return !math.IsNaN(f) && !math.IsInf(f, 0)
			}
			return true
		})
	})
	return validate
}

// translate maps the first validator failure to a user-facing VALIDATION error.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidation("Invalid input.", nil)
	}
	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required.", field)
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "finite":
		msg = fmt.Sprintf("%s must be a finite number.", field)
	default:
		msg = fmt.Sprintf("%s is invalid.", field)
	}
	return apperrors.NewValidation(msg, map[string]any{"field": field, "rule": fe.Tag()})
}

type incomeExpenseInput struct {
	Category string `json:"category" validate:"required"`
	Date     string `json:"date" validate:"required"`
}

// ValidateIncomeExpenseFields requires a category and a date, then normalizes the record.
func ValidateIncomeExpenseFields(kind domain.RecordKind, raw any) (domain.Record, error) {
	fields, err := asFieldMap(raw)
	if err != nil {
		return domain.Record{}, err
	}
	category, err := textField(fields, "category")
	if err != nil {
		return domain.Record{}, err
	}
	date, err := textField(fields, "date")
	if err != nil {
		return domain.Record{}, err
	}
	in := incomeExpenseInput{Category: strings.TrimSpace(category), Date: strings.TrimSpace(date)}
	if err := Validator().Struct(in); err != nil {
		return domain.Record{}, translate(err)
	}

	rec, err := ValidateAndNormalizeRecord(kind, fields)
	if err != nil {
		return domain.Record{}, err
	}
	rec.Category = in.Category
	rec.Date = in.Date
	rec.Description = strings.TrimSpace(rec.Description)
	return rec, nil
}

type goalInput struct {
	Title           string  `json:"title" validate:"required"`
	TimeframeMonths float64 `json:"timeframeMonths" validate:"finite,gte=0"`
}

// ValidateGoalFields requires a title and a non-negative timeframe, and normalizes the status.
func ValidateGoalFields(raw any) (domain.Record, error) {
	fields, err := asFieldMap(raw)
	if err != nil {
		return domain.Record{}, err
	}
	title, err := textField(fields, "title")
	if err != nil {
		return domain.Record{}, err
	}
	months := 0.0
	if v, ok := fields["timeframeMonths"]; ok && v != nil {
		if months, err = coerceTimeframe(v); err != nil {
			return domain.Record{}, err
		}
	}
	in := goalInput{Title: strings.TrimSpace(title), TimeframeMonths: months}
	if err := Validator().Struct(in); err != nil {
		return domain.Record{}, translate(err)
	}

	rec, err := ValidateAndNormalizeRecord(domain.KindGoal, fields)
	if err != nil {
		return domain.Record{}, err
	}
	rec.Title = in.Title
	rec.TimeframeMonths = in.TimeframeMonths
	return rec, nil
}

func coerceTimeframe(v any) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return 0, nil
		}
		return 0, apperrors.NewFieldValidation("timeframeMonths", "timeframeMonths must be a number.")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, apperrors.NewFieldValidation("timeframeMonths", "timeframeMonths must be a finite number of at least 0.")
	}
	return f, nil
}

// NormalizeGoalStatus maps free-form status text onto the three goal states.
// Unrecognized values become "not started".
func NormalizeGoalStatus(status string) domain.GoalStatus {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	switch domain.GoalStatus(s) {
	case domain.GoalInProgress:
		return domain.GoalInProgress
	case domain.GoalCompleted:
		return domain.GoalCompleted
	}
	return domain.GoalNotStarted
}
