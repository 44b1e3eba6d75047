package collections

import (
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
)

// updatable lists the collections UpdateRecordByCollectionAndId and
// DeleteRecordByCollectionAndId accept. Personas go through RenamePersona/DeletePersona.
var updatable = map[string]bool{
	domain.CollectionIncome:        true,
	domain.CollectionExpenses:      true,
	domain.CollectionAssets:        true,
	domain.CollectionAssetHoldings: true,
	domain.CollectionDebts:         true,
	domain.CollectionCredit:        true,
	domain.CollectionCreditCards:   true,
	domain.CollectionLoans:         true,
	domain.CollectionGoals:         true,
	domain.CollectionNotes:         true,
}

// UpdateRecordByCollectionAndId merges patch over the record with the given id and
// re-validates the result. The original id is kept and updatedAt is overwritten.
func UpdateRecordByCollectionAndId(state domain.Snapshot, collection, id string, patch map[string]any, now time.Time) (domain.Snapshot, error) {
	rows, idx, err := locate(state, collection, id)
	if err != nil {
		return state, err
	}

	merged := rows[idx].Fields()
	for k, v := range patch {
		merged[k] = v
	}
	rec, err := normalizeFor(collection, merged)
	if err != nil {
		return state, err
	}
	rec.ID = rows[idx].ID
	rec.UpdatedAt = Timestamp(now)

	return withCollection(state, collection, replaced(rows, idx, rec))
}

// DeleteRecordByCollectionAndId removes the record with the given id.
func DeleteRecordByCollectionAndId(state domain.Snapshot, collection, id string) (domain.Snapshot, error) {
	rows, idx, err := locate(state, collection, id)
	if err != nil {
		return state, err
	}
	next := make([]domain.Record, 0, len(rows)-1)
	next = append(next, rows[:idx]...)
	next = append(next, rows[idx+1:]...)
	return withCollection(state, collection, next)
}

// FindRecord returns the record with the given id.
func FindRecord(state domain.Snapshot, collection, id string) (domain.Record, error) {
	rows, idx, err := locate(state, collection, id)
	if err != nil {
		return domain.Record{}, err
	}
	return rows[idx], nil
}

func locate(state domain.Snapshot, collection, id string) ([]domain.Record, int, error) {
	if !updatable[collection] {
		return nil, -1, unsupportedCollection(collection)
	}
	rows, err := requireCollection(state, collection)
	if err != nil {
		return nil, -1, err
	}
	idx := indexByID(rows, id)
	if id == "" || idx < 0 {
		return nil, -1, notFound(collection, id)
	}
	return rows, idx, nil
}
