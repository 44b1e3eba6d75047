package collections

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
)

// AppendIncomeOrExpense validates raw and appends it to the collection entryType selects:
// "income" goes to income, "savings" to assets, anything else to expenses.
func AppendIncomeOrExpense(state domain.Snapshot, entryType string, raw any, now time.Time) (domain.Snapshot, error) {
	entryType = strings.ToLower(strings.TrimSpace(entryType))

	collection, kind, recordType := domain.CollectionExpenses, domain.KindExpense, entryType
	switch entryType {
	case "income":
		collection, kind = domain.CollectionIncome, domain.KindIncome
	case domain.RecordTypeSavings:
		collection, kind = domain.CollectionAssets, domain.KindAsset
	case "":
		recordType = string(domain.KindExpense)
	}

	rows, err := requireCollection(state, collection)
	if err != nil {
		return state, err
	}
	rec, err := validation.ValidateIncomeExpenseFields(kind, raw)
	if err != nil {
		return state, err
	}
	rec.RecordType = recordType

	rec, err = stamp(rec, recordType, rows, collection, now)
	if err != nil {
		return state, err
	}
	return withCollection(state, collection, appended(rows, rec))
}

// AppendGoal validates raw as a goal and appends it to goals.
func AppendGoal(state domain.Snapshot, raw any, now time.Time) (domain.Snapshot, error) {
	rows, err := requireCollection(state, domain.CollectionGoals)
	if err != nil {
		return state, err
	}
	rec, err := validation.ValidateGoalFields(raw)
	if err != nil {
		return state, err
	}
	rec, err = stamp(rec, string(domain.KindGoal), rows, domain.CollectionGoals, now)
	if err != nil {
		return state, err
	}
	return withCollection(state, domain.CollectionGoals, appended(rows, rec))
}

// AppendRecord appends a record to any collection, applying that collection's validation.
// Persona names must be unique, ignoring case.
func AppendRecord(state domain.Snapshot, collection string, raw any, now time.Time) (domain.Snapshot, error) {
	kind, ok := domain.KindForCollection(collection)
	if !ok {
		return state, unsupportedCollection(collection)
	}
	rows, err := requireCollection(state, collection)
	if err != nil {
		return state, err
	}
	rec, err := normalizeFor(collection, raw)
	if err != nil {
		return state, err
	}
	if collection == domain.CollectionPersonas {
		for _, p := range rows {
			if fold(p.Name) == fold(rec.Name) {
				return state, apperrors.NewValidation(
					fmt.Sprintf("A persona named %q already exists.", p.Name),
					map[string]any{"collection": collection, "field": "name"},
				)
			}
		}
	}
	rec, err = stamp(rec, string(kind), rows, collection, now)
	if err != nil {
		return state, err
	}
	return withCollection(state, collection, appended(rows, rec))
}
