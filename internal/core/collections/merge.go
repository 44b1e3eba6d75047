package collections

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/utils"
	"github.com/google/uuid"
)

// AuditTimelineLimit is the number of timeline entries kept after a merge.
const AuditTimelineLimit = 240

// ImportKey identifies a record across an import: its id when present, otherwise a
// signature of its descriptive and monetary fields.
func ImportKey(r domain.Record) string {
	if id := strings.TrimSpace(r.ID); id != "" {
		return "id:" + id
	}
	return "sig:" + strings.Join([]string{
		fold(r.Person),
		fold(r.Item),
		fold(r.Category),
		fold(r.RecordType),
		utils.CanonicalAmount(r.Amount),
		utils.CanonicalAmount(r.MinimumPayment),
		utils.CanonicalAmount(r.MonthlyPayment),
		utils.CanonicalAmount(r.CreditLimit),
		utils.CanonicalAmount(r.MaxCapacity),
		utils.CanonicalAmount(r.CurrentBalance),
		utils.CanonicalAmount(r.AssetValueOwed),
		utils.CanonicalAmount(r.AssetMarketValue),
		fold(r.Date),
		fold(r.Description),
	}, "|")
}

func personaKey(r domain.Record) string {
	if id := strings.TrimSpace(r.ID); id != "" {
		return "id:" + id
	}
	return "name:" + fold(r.Name)
}

// mergeKeyed keeps the first-seen order of keys; later rows with the same key replace earlier ones.
func mergeKeyed[T any](key func(T) string, groups ...[]T) []T {
	var order []string
	byKey := make(map[string]T)
	for _, rows := range groups {
		for _, r := range rows {
			k := key(r)
			if _, seen := byKey[k]; !seen {
				order = append(order, k)
			}
			byKey[k] = r
		}
	}
	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

// MergeImportedState merges imported into current collection by collection. Imported rows win
// on key collisions; rows only in current keep their position, new rows are appended.
// Collections absent from imported are left as they are.
func MergeImportedState(current, imported domain.Snapshot) domain.Snapshot {
	out := current
	for _, name := range domain.CollectionNames {
		incoming, ok := imported.Collection(name)
		if !ok {
			continue
		}
		existing, _ := current.Collection(name)
		key := ImportKey
		if name == domain.CollectionPersonas {
			key = personaKey
		}
		out, _ = out.WithCollection(name, mergeKeyed(key, existing, incoming))
	}
	out.SchemaVersion = domain.CurrentSchemaVersion
	return out.Canonical()
}

func auditKey(e domain.AuditEntry) string {
	if id := strings.TrimSpace(e.ID); id != "" {
		return "id:" + id
	}
	return "sig:" + fold(e.Timestamp) + "|" + fold(e.ContextTag)
}

// MergeAuditTimeline merges two timelines, newest first, keeping the most recent
// AuditTimelineLimit entries. Incoming entries win on key collisions.
func MergeAuditTimeline(current, incoming []domain.AuditEntry) []domain.AuditEntry {
	merged := mergeKeyed(auditKey, current, incoming)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})
	if len(merged) > AuditTimelineLimit {
		merged = merged[:AuditTimelineLimit]
	}
	return merged
}

// NewAuditEntry builds a timeline entry for a write performed at now.
func NewAuditEntry(contextTag, message, collection, recordID string, now time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		ID:         "audit-" + uuid.NewString(),
		Timestamp:  Timestamp(now),
		ContextTag: contextTag,
		Message:    message,
		Collection: collection,
		RecordID:   recordID,
	}
}
