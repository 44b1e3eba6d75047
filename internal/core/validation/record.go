package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/spf13/cast"
)

// MaxRemainingPayments bounds remainingPayments to a hundred years of monthly installments.
const MaxRemainingPayments = 1200

// ValidateAndNormalizeRecord turns a loosely-typed payload into a normalized record of the
// given kind. raw must be a map[string]any or a domain.Record. Text fields default to "",
// tags to an empty list and monetary fields to 0. Fields that do not apply to kind are ignored.
func ValidateAndNormalizeRecord(kind domain.RecordKind, raw any) (domain.Record, error) {
	fields, err := asFieldMap(raw)
	if err != nil {
		return domain.Record{}, err
	}
	if !isKnownKind(kind) {
		return domain.Record{}, apperrors.NewValidation(
			fmt.Sprintf("Unsupported record type %q.", kind),
			map[string]any{"field": "kind", "kind": string(kind)},
		)
	}

	applicable := domain.Record{Kind: kind}.Fields()
	rec := domain.Record{Kind: kind}

	texts := []struct {
		name string
		dst  *string
		trim bool
	}{
		{"id", &rec.ID, true},
		{"recordType", &rec.RecordType, true},
		{"person", &rec.Person, true},
		{"updatedAt", &rec.UpdatedAt, true},
		{"item", &rec.Item, false},
		{"name", &rec.Name, false},
		{"category", &rec.Category, false},
		{"date", &rec.Date, false},
		{"description", &rec.Description, false},
		{"notes", &rec.Notes, false},
		{"loanStartDate", &rec.LoanStartDate, true},
		{"collateralAssetName", &rec.CollateralAssetName, true},
		{"title", &rec.Title, false},
		{"emoji", &rec.Emoji, true},
		{"note", &rec.Note, false},
	}
	for _, t := range texts {
		if _, ok := applicable[t.name]; !ok {
			continue
		}
		s, err := textField(fields, t.name)
		if err != nil {
			return domain.Record{}, err
		}
		if t.trim {
			s = strings.TrimSpace(s)
		}
		*t.dst = s
	}

	tags, err := tagsField(fields)
	if err != nil {
		return domain.Record{}, err
	}
	rec.Tags = tags

	amounts := []struct {
		name string
		dst  *float64
	}{
		{"amount", &rec.Amount},
		{"minimumPayment", &rec.MinimumPayment},
		{"monthlyPayment", &rec.MonthlyPayment},
		{"creditLimit", &rec.CreditLimit},
		{"maxCapacity", &rec.MaxCapacity},
		{"currentBalance", &rec.CurrentBalance},
		{"assetValueOwed", &rec.AssetValueOwed},
		{"assetMarketValue", &rec.AssetMarketValue},
		{"interestRatePercent", &rec.InterestRatePercent},
		{"collateralAssetMarketValue", &rec.CollateralAssetMarketValue},
		{"targetAmount", &rec.TargetAmount},
		{"currentAmount", &rec.CurrentAmount},
	}
	for _, a := range amounts {
		if _, ok := applicable[a.name]; !ok {
			continue
		}
		v, present := fields[a.name]
		if !present || v == nil {
			continue
		}
		f, err := ValidateMonetaryValue(v, a.name)
		if err != nil {
			return domain.Record{}, err
		}
		*a.dst = f
	}

	if _, ok := applicable["remainingPayments"]; ok {
		if v, present := fields["remainingPayments"]; present && v != nil {
			f, err := ValidateMonetaryValue(v, "remainingPayments")
			if err != nil {
				return domain.Record{}, err
			}
			n := math.Round(f)
			if n > MaxRemainingPayments {
				return domain.Record{}, apperrors.NewFieldValidation("remainingPayments",
					fmt.Sprintf("remainingPayments cannot exceed %d.", MaxRemainingPayments))
			}
			rec.RemainingPayments = int(n)
		}
	}

	if kind == domain.KindGoal {
		rec.Status = NormalizeGoalStatus(string(rec.Status))
		if v, present := fields["status"]; present && v != nil {
			rec.Status = NormalizeGoalStatus(cast.ToString(v))
		}
		if v, present := fields["timeframeMonths"]; present && v != nil {
			months, err := coerceTimeframe(v)
			if err != nil {
				return domain.Record{}, err
			}
			rec.TimeframeMonths = months
		}
	}

	return rec, nil
}

func isKnownKind(kind domain.RecordKind) bool {
	for _, name := range domain.CollectionNames {
		if k, _ := domain.KindForCollection(name); k == kind {
			return true
		}
	}
	return false
}

func asFieldMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		if v == nil {
			break
		}
		return v, nil
	case domain.Record:
		return v.Fields(), nil
	case *domain.Record:
		if v != nil {
			return v.Fields(), nil
		}
	}
	return nil, apperrors.NewValidation("Record must be an object.", map[string]any{"field": "record"})
}

func textField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", apperrors.NewFieldValidation(name, fmt.Sprintf("%s must be text.", name))
	}
	return s, nil
}

func tagsField(fields map[string]any) ([]string, error) {
	v, ok := fields["tags"]
	if !ok || v == nil {
		return []string{}, nil
	}
	var parts []string
	if s, isString := v.(string); isString {
		parts = strings.Split(s, ",")
	} else {
		list, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil, apperrors.NewFieldValidation("tags", "tags must be a list of text values.")
		}
		parts = list
	}
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags, nil
}
