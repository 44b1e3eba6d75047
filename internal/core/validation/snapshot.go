package validation

import (
	"fmt"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/go-viper/mapstructure/v2"
)

// DecodeSnapshot decodes a loosely-typed payload (for example a worker message) into a
// snapshot and validates it. Collections missing from the payload stay nil.
func DecodeSnapshot(payload map[string]any) (domain.Snapshot, error) {
	if payload == nil {
		return domain.Snapshot{}, apperrors.NewValidation("Snapshot payload is missing.", map[string]any{"field": "currentCollectionsState"})
	}

	var snap domain.Snapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &snap,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Snapshot{}, apperrors.NewValidation("Snapshot decoder could not be built.", nil)
	}
	if err := decoder.Decode(payload); err != nil {
		return domain.Snapshot{}, apperrors.NewValidation(
			"Snapshot payload is malformed.",
			map[string]any{"field": "currentCollectionsState", "cause": err.Error()},
		)
	}
	snap = snap.Canonical()
	if err := ValidateSnapshot(snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// ValidateSnapshot checks the monetary invariant of every record and id uniqueness
// within each collection. Records without an id are tolerated.
func ValidateSnapshot(snap domain.Snapshot) error {
	for _, name := range domain.CollectionNames {
		rows, _ := snap.Collection(name)
		seen := make(map[string]struct{}, len(rows))
		for i, r := range rows {
			values := monetaryValues(r)
			for _, field := range snapshotMonetaryFields {
				if _, err := ValidateMonetaryValue(values[field], field); err != nil {
					appErr, _ := apperrors.AsAppError(err)
					appErr.Details["collection"] = name
					appErr.Details["index"] = i
					return appErr
				}
			}
			if r.RemainingPayments < 0 {
				return apperrors.NewValidation("remainingPayments cannot be negative.",
					map[string]any{"field": "remainingPayments", "collection": name, "index": i})
			}
			if r.RemainingPayments > MaxRemainingPayments {
				return apperrors.NewValidation(fmt.Sprintf("remainingPayments cannot exceed %d.", MaxRemainingPayments),
					map[string]any{"field": "remainingPayments", "collection": name, "index": i})
			}
			if r.ID == "" {
				continue
			}
			if _, dup := seen[r.ID]; dup {
				return apperrors.NewValidation(
					fmt.Sprintf("Duplicate id %q in %s.", r.ID, name),
					map[string]any{"field": "id", "collection": name, "id": r.ID},
				)
			}
			seen[r.ID] = struct{}{}
		}
	}
	return nil
}

var snapshotMonetaryFields = append(append([]string{}, domain.MonetaryFields...), "timeframeMonths")

func monetaryValues(r domain.Record) map[string]float64 {
	return map[string]float64{
		"amount":                     r.Amount,
		"minimumPayment":             r.MinimumPayment,
		"monthlyPayment":             r.MonthlyPayment,
		"creditLimit":                r.CreditLimit,
		"maxCapacity":                r.MaxCapacity,
		"currentBalance":             r.CurrentBalance,
		"assetValueOwed":             r.AssetValueOwed,
		"assetMarketValue":           r.AssetMarketValue,
		"interestRatePercent":        r.InterestRatePercent,
		"collateralAssetMarketValue": r.CollateralAssetMarketValue,
		"targetAmount":               r.TargetAmount,
		"currentAmount":              r.CurrentAmount,
		"timeframeMonths":            r.TimeframeMonths,
	}
}
