// Package collections implements the immutable state transitions over a snapshot:
// append, update, delete, recurring seed upsert, import merge and persona maintenance.
// Every function returns a new snapshot; the input is never modified and untouched
// collections are shared with the result.
package collections

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
)

// TimestampLayout is the ISO-8601 layout used for ids and updatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t the way records store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func missingCollection(name string) error {
	return apperrors.NewValidation(
		fmt.Sprintf("The %s collection is not available in the current data.", name),
		map[string]any{"collection": name},
	)
}

func unsupportedCollection(name string) error {
	return apperrors.NewValidation(
		fmt.Sprintf("Records in %q cannot be changed this way.", name),
		map[string]any{"collection": name},
	)
}

func notFound(collection, id string) error {
	return apperrors.NewRecordNotFound(collection, id)
}

// requireCollection returns the named collection or a VALIDATION error when it is absent.
func requireCollection(state domain.Snapshot, name string) ([]domain.Record, error) {
	rows, ok := state.Collection(name)
	if !ok {
		return nil, missingCollection(name)
	}
	return rows, nil
}

// nextID builds "<prefix>-<isoTimestamp>-<ordinal>" unique within rows.
func nextID(prefix string, rows []domain.Record, now time.Time) string {
	taken := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		taken[r.ID] = struct{}{}
	}
	ts := Timestamp(now)
	for ordinal := len(rows) + 1; ; ordinal++ {
		id := fmt.Sprintf("%s-%s-%d", prefix, ts, ordinal)
		if _, exists := taken[id]; !exists {
			return id
		}
	}
}

func indexByID(rows []domain.Record, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// stamp assigns an id when none was supplied and sets updatedAt.
func stamp(rec domain.Record, prefix string, rows []domain.Record, collection string, now time.Time) (domain.Record, error) {
	if rec.ID == "" {
		rec.ID = nextID(prefix, rows, now)
	} else if indexByID(rows, rec.ID) >= 0 {
		return domain.Record{}, apperrors.NewValidation(
			fmt.Sprintf("A record with id %q already exists in %s.", rec.ID, collection),
			map[string]any{"collection": collection, "id": rec.ID},
		)
	}
	rec.UpdatedAt = Timestamp(now)
	return rec, nil
}

// appended returns a fresh slice holding rows followed by rec; rows' backing array is not reused.
func appended(rows []domain.Record, recs ...domain.Record) []domain.Record {
	next := make([]domain.Record, 0, len(rows)+len(recs))
	next = append(next, rows...)
	return append(next, recs...)
}

func replaced(rows []domain.Record, idx int, rec domain.Record) []domain.Record {
	next := make([]domain.Record, len(rows))
	copy(next, rows)
	next[idx] = rec
	return next
}

func withCollection(state domain.Snapshot, name string, rows []domain.Record) (domain.Snapshot, error) {
	next, ok := state.WithCollection(name, rows)
	if !ok {
		return state, unsupportedCollection(name)
	}
	return next, nil
}

// normalizeFor applies the validation a collection demands of its records.
func normalizeFor(collection string, raw any) (domain.Record, error) {
	kind, ok := domain.KindForCollection(collection)
	if !ok {
		return domain.Record{}, unsupportedCollection(collection)
	}
	switch collection {
	case domain.CollectionIncome, domain.CollectionExpenses:
		return validation.ValidateIncomeExpenseFields(kind, raw)
	case domain.CollectionGoals:
		return validation.ValidateGoalFields(raw)
	case domain.CollectionPersonas:
		rec, err := validation.ValidateAndNormalizeRecord(kind, raw)
		if err != nil {
			return domain.Record{}, err
		}
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.Name == "" {
			return domain.Record{}, apperrors.NewFieldValidation("name", "name is required.")
		}
		return rec, nil
	}
	return validation.ValidateAndNormalizeRecord(kind, raw)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
