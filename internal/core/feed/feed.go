// Package feed flattens every collection into one signed, filterable and sortable view.
package feed

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/spf13/cast"
)

// SignedAmount is the cash effect of a record on the month: income counts positive;
// expenses, savings transfers and scheduled liability payments count negative.
func SignedAmount(r domain.Record) float64 {
	switch r.Kind {
	case domain.KindIncome:
		return r.Amount
	case domain.KindExpense:
		return -r.Amount
	case domain.KindAsset:
		if strings.EqualFold(r.RecordType, domain.RecordTypeSavings) {
			return -r.Amount
		}
		return 0
	case domain.KindDebt, domain.KindCredit, domain.KindCreditCard, domain.KindLoan:
		return -r.ScheduledPayment()
	}
	return 0
}

// BuildUnifiedFeed returns every record of the snapshot in collection order, tagged with
// its source collection and signed amount.
func BuildUnifiedFeed(state domain.Snapshot) []domain.FeedRow {
	rows := make([]domain.FeedRow, 0)
	for _, name := range domain.CollectionNames {
		records, _ := state.Collection(name)
		kind, _ := domain.KindForCollection(name)
		for _, r := range records {
			if r.Kind == "" {
				r.Kind = kind
			}
			rows = append(rows, domain.FeedRow{
				Record:               r,
				SourceCollectionName: name,
				SignedAmount:         SignedAmount(r),
			})
		}
	}
	return rows
}

// SortDirection orders BuildSortedAndFilteredCollection results.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Query filters and sorts rows. Zero values disable the corresponding step.
type Query struct {
	Search        string        `json:"search" form:"search"`
	AmountField   string        `json:"amountField" form:"amountField"`
	MinAmount     *float64      `json:"minAmount" form:"minAmount"`
	MaxAmount     *float64      `json:"maxAmount" form:"maxAmount"`
	Tags          []string      `json:"tags" form:"tags"`
	SortField     string        `json:"sortField" form:"sortField"`
	SortDirection SortDirection `json:"sortDirection" form:"sortDirection"`
}

// Fielded is anything exposing a field map, such as domain.Record and domain.FeedRow.
type Fielded interface {
	Fields() map[string]any
}

// BuildSortedAndFilteredCollection applies q to rows and returns a new slice.
// Search is a case-insensitive substring match over the JSON form of each row. The amount
// range is inclusive and drops rows without a numeric amount field. A row matches the tag
// filter when it carries any of the tags. Rows missing the sort field sort last in both
// directions; the sort is stable.
func BuildSortedAndFilteredCollection[T Fielded](rows []T, q Query) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	amountField := q.AmountField
	if amountField == "" {
		amountField = "amount"
	}
	wanted := make(map[string]bool, len(q.Tags))
	for _, tag := range q.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			wanted[tag] = true
		}
	}

	type entry struct {
		row    T
		fields map[string]any
	}
	kept := make([]entry, 0, len(rows))
	for _, row := range rows {
		fields := row.Fields()
		if needle != "" && !matchesSearch(fields, needle) {
			continue
		}
		if (q.MinAmount != nil || q.MaxAmount != nil) && !inRange(fields[amountField], q.MinAmount, q.MaxAmount) {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(fields["tags"], wanted) {
			continue
		}
		kept = append(kept, entry{row: row, fields: fields})
	}

	if q.SortField != "" {
		desc := strings.EqualFold(string(q.SortDirection), string(Descending))
		sort.SliceStable(kept, func(i, j int) bool {
			a, aok := present(kept[i].fields[q.SortField])
			b, bok := present(kept[j].fields[q.SortField])
			switch {
			case !aok || !bok:
				return aok && !bok
			case desc:
				return compare(a, b) > 0
			default:
				return compare(a, b) < 0
			}
		})
	}

	out := make([]T, len(kept))
	for i, e := range kept {
		out[i] = e.row
	}
	return out
}

func matchesSearch(fields map[string]any, needle string) bool {
	raw, err := json.Marshal(fields)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(raw)), needle)
}

func inRange(v any, lo, hi *float64) bool {
	f, err := cast.ToFloat64E(v)
	if v == nil || err != nil {
		return false
	}
	if lo != nil && f < *lo {
		return false
	}
	if hi != nil && f > *hi {
		return false
	}
	return true
}

func hasAnyTag(v any, wanted map[string]bool) bool {
	tags, err := cast.ToStringSliceE(v)
	if err != nil {
		return false
	}
	for _, t := range tags {
		if wanted[strings.ToLower(strings.TrimSpace(t))] {
			return true
		}
	}
	return false
}

func present(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	return v, true
}

// compare orders numbers numerically and everything else as case-insensitive text.
func compare(a, b any) int {
	if isNumber(a) && isNumber(b) {
		x, y := cast.ToFloat64(a), cast.ToFloat64(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(cast.ToString(a)), strings.ToLower(cast.ToString(b)))
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}
