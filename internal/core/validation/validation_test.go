package validation_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMonetaryValue(t *testing.T) {
	valid := []any{0.0, 12.5, 5000, int64(7), float32(1.5), json.Number("42.25")}
	for _, v := range valid {
		got, err := validation.ValidateMonetaryValue(v, "amount")
		require.NoError(t, err, "value %v", v)
		assert.GreaterOrEqual(t, got, 0.0)
	}

	got, err := validation.ValidateMonetaryValue(5000.0, "amount")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, got)

	invalid := []any{math.NaN(), math.Inf(1), math.Inf(-1), -0.01, -5, "100", nil, true, []int{1}}
	for _, v := range invalid {
		_, err := validation.ValidateMonetaryValue(v, "amount")
		require.Error(t, err, "value %v", v)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.True(t, appErr.Recoverable)
		assert.Equal(t, "amount", appErr.Details["field"])
	}
}

func TestValidateAndNormalizeRecord_Defaults(t *testing.T) {
	rec, err := validation.ValidateAndNormalizeRecord(domain.KindExpense, map[string]any{
		"category": "Food",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.KindExpense, rec.Kind)
	assert.Equal(t, "", rec.Notes)
	assert.NotNil(t, rec.Tags)
	assert.Empty(t, rec.Tags)
	assert.Equal(t, 0.0, rec.Amount)
}

func TestValidateAndNormalizeRecord_NotRecordShaped(t *testing.T) {
	for _, raw := range []any{nil, "text", 12, []any{}, map[string]any(nil)} {
		_, err := validation.ValidateAndNormalizeRecord(domain.KindIncome, raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestValidateAndNormalizeRecord_NoteSkipsAmount(t *testing.T) {
	rec, err := validation.ValidateAndNormalizeRecord(domain.KindNote, map[string]any{
		"amount": "not a number",
		"notes":  "remember to call the bank",
	})
	require.NoError(t, err)
	assert.Equal(t, "remember to call the bank", rec.Notes)
}

func TestValidateAndNormalizeRecord_LoanFamily(t *testing.T) {
	rec, err := validation.ValidateAndNormalizeRecord(domain.KindLoan, map[string]any{
		"name":                       "Car loan",
		"amount":                     12000.0,
		"monthlyPayment":             350.0,
		"interestRatePercent":        6.5,
		"remainingPayments":          35.6,
		"loanStartDate":              " 2023-02-01 ",
		"collateralAssetName":        " Sedan ",
		"collateralAssetMarketValue": 15000.0,
		"tags":                       []any{"auto", " ", "secured"},
	})
	require.NoError(t, err)

	assert.Equal(t, 36, rec.RemainingPayments)
	assert.Equal(t, "2023-02-01", rec.LoanStartDate)
	assert.Equal(t, "Sedan", rec.CollateralAssetName)
	assert.Equal(t, 15000.0, rec.CollateralAssetMarketValue)
	assert.Equal(t, []string{"auto", "secured"}, rec.Tags)

	_, err = validation.ValidateAndNormalizeRecord(domain.KindDebt, map[string]any{
		"amount":              100.0,
		"interestRatePercent": -1.0,
	})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "interestRatePercent", appErr.Details["field"])
}

func TestValidateAndNormalizeRecord_RemainingPaymentsBound(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "at bound", value: 1200.0, want: 1200},
		{name: "rounds down to bound", value: 1200.4, want: 1200},
		{name: "just above bound", value: 1200.6, wantErr: true},
		{name: "huge float", value: 1e20, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := validation.ValidateAndNormalizeRecord(domain.KindLoan, map[string]any{
				"name":              "Car",
				"amount":            1000.0,
				"monthlyPayment":    100.0,
				"remainingPayments": tt.value,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				appErr, _ := apperrors.AsAppError(err)
				assert.Equal(t, "remainingPayments", appErr.Details["field"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.RemainingPayments)
		})
	}
}

func TestValidateAndNormalizeRecord_CreditLimit(t *testing.T) {
	_, err := validation.ValidateAndNormalizeRecord(domain.KindCredit, map[string]any{
		"amount":      100.0,
		"creditLimit": math.Inf(1),
	})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "creditLimit", appErr.Details["field"])
}

func TestValidateAndNormalizeRecord_IgnoresForeignFields(t *testing.T) {
	rec, err := validation.ValidateAndNormalizeRecord(domain.KindIncome, map[string]any{
		"amount":         10.0,
		"minimumPayment": -50.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.MinimumPayment)
}

func TestValidateIncomeExpenseFields(t *testing.T) {
	rec, err := validation.ValidateIncomeExpenseFields(domain.KindIncome, map[string]any{
		"category":    "  Salary ",
		"date":        "2024-01-01",
		"amount":      5000,
		"description": "  January pay  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Salary", rec.Category)
	assert.Equal(t, "January pay", rec.Description)
	assert.Equal(t, 5000.0, rec.Amount)

	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"missing category", map[string]any{"date": "2024-01-01", "amount": 1.0}, "category"},
		{"blank category", map[string]any{"category": "   ", "date": "2024-01-01"}, "category"},
		{"missing date", map[string]any{"category": "Rent", "amount": 1.0}, "date"},
		{"negative amount", map[string]any{"category": "Rent", "date": "2024-01-01", "amount": -1.0}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validation.ValidateIncomeExpenseFields(domain.KindExpense, tt.raw)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestValidateGoalFields(t *testing.T) {
	rec, err := validation.ValidateGoalFields(map[string]any{
		"title":           " Emergency fund ",
		"timeframeMonths": "12",
		"status":          "In_Progress",
		"targetAmount":    6000.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Emergency fund", rec.Title)
	assert.Equal(t, 12.0, rec.TimeframeMonths)
	assert.Equal(t, domain.GoalInProgress, rec.Status)

	rec, err = validation.ValidateGoalFields(map[string]any{"title": "Trip", "status": "someday"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalNotStarted, rec.Status)

	_, err = validation.ValidateGoalFields(map[string]any{"title": "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = validation.ValidateGoalFields(map[string]any{"title": "Trip", "timeframeMonths": -3})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = validation.ValidateGoalFields(map[string]any{"title": "Trip", "timeframeMonths": "soon"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNormalizeGoalStatus(t *testing.T) {
	assert.Equal(t, domain.GoalCompleted, validation.NormalizeGoalStatus(" COMPLETED "))
	assert.Equal(t, domain.GoalInProgress, validation.NormalizeGoalStatus("in-progress"))
	assert.Equal(t, domain.GoalNotStarted, validation.NormalizeGoalStatus(""))
}

func TestDecodeSnapshot(t *testing.T) {
	snap, err := validation.DecodeSnapshot(map[string]any{
		"income": []any{
			map[string]any{"id": "income-1", "category": "Salary", "amount": 3000.0, "tags": []any{"work"}},
		},
		"debts": []any{
			map[string]any{"id": "debt-1", "amount": 900.0, "remainingPayments": 12.0},
		},
		"schemaVersion": 2,
	})
	require.NoError(t, err)
	require.Len(t, snap.Income, 1)
	assert.Equal(t, domain.KindIncome, snap.Income[0].Kind)
	assert.Equal(t, []string{"work"}, snap.Income[0].Tags)
	assert.Equal(t, 12, snap.Debts[0].RemainingPayments)
	assert.Nil(t, snap.Goals)

	_, err = validation.DecodeSnapshot(map[string]any{"income": "nope"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = validation.DecodeSnapshot(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateSnapshot(t *testing.T) {
	snap := domain.DefaultSnapshot()
	snap.Expenses = []domain.Record{{ID: "a", Kind: domain.KindExpense, Amount: -5}}
	err := validation.ValidateSnapshot(snap)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "expenses", appErr.Details["collection"])

	snap.Expenses = []domain.Record{{ID: "a", Kind: domain.KindExpense}, {ID: "a", Kind: domain.KindExpense}}
	assert.ErrorIs(t, validation.ValidateSnapshot(snap), apperrors.ErrValidation)

	assert.NoError(t, validation.ValidateSnapshot(domain.DefaultSnapshot()))
}
