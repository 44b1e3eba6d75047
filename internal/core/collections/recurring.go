package collections

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// RecurringCategory is the category seed rows for liability payments are filed under.
const RecurringCategory = "debt payment"

// RecurringRecordType marks expense rows created by the recurring seed.
const RecurringRecordType = "recurring"

// RecurringFingerprint identifies a recurring expense regardless of case and spacing.
func RecurringFingerprint(r domain.Record) string {
	return strings.Join([]string{
		fold(r.Person),
		fold(r.Item),
		fold(r.Category),
		utils.CanonicalAmount(r.Amount),
		fold(r.Description),
	}, "|")
}

// isLegacyDebtTotal matches the synthetic aggregate row older versions wrote for all debt
// payments combined; keeping it next to per-liability seeds would count payments twice.
func isLegacyDebtTotal(r domain.Record) bool {
	return fold(r.Item) == "debts" &&
		fold(r.Category) == RecurringCategory &&
		fold(r.Description) == "total debt payments"
}

// BuildRecurringSeedRows derives one recurring expense per liability with a scheduled payment.
func BuildRecurringSeedRows(state domain.Snapshot) []domain.Record {
	var seeds []domain.Record
	for _, name := range domain.LiabilityCollections {
		rows, _ := state.Collection(name)
		for _, r := range rows {
			payment := r.ScheduledPayment()
			if payment <= 0 {
				continue
			}
			seeds = append(seeds, domain.Record{
				Kind:        domain.KindExpense,
				RecordType:  RecurringRecordType,
				Person:      r.Person,
				Item:        r.DisplayName(),
				Category:    RecurringCategory,
				Amount:      utils.RoundMoney(payment),
				Description: fmt.Sprintf("%s scheduled payment", liabilityLabel(r.Kind)),
				Tags:        []string{"recurring"},
			})
		}
	}
	return seeds
}

func liabilityLabel(kind domain.RecordKind) string {
	switch kind {
	case domain.KindCreditCard:
		return "credit card"
	case domain.KindCredit:
		return "credit line"
	case domain.KindLoan:
		return "loan"
	}
	return "debt"
}

// UpsertRecurringSeedRows adds the seed rows whose fingerprint is not already present in
// expenses, and strips the legacy aggregate debt-payment row. Seeds without a date are dated now.
func UpsertRecurringSeedRows(state domain.Snapshot, seeds []domain.Record, now time.Time) (domain.Snapshot, error) {
	rows, err := requireCollection(state, domain.CollectionExpenses)
	if err != nil {
		return state, err
	}

	kept := make([]domain.Record, 0, len(rows)+len(seeds))
	present := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if isLegacyDebtTotal(r) {
			continue
		}
		kept = append(kept, r)
		present[RecurringFingerprint(r)] = struct{}{}
	}

	for _, seed := range seeds {
		if seed.Date == "" {
			seed.Date = now.UTC().Format("2006-01-02")
		}
		if seed.RecordType == "" {
			seed.RecordType = RecurringRecordType
		}
		rec, err := validation.ValidateIncomeExpenseFields(domain.KindExpense, seed)
		if err != nil {
			return state, err
		}
		fp := RecurringFingerprint(rec)
		if _, dup := present[fp]; dup {
			continue
		}
		present[fp] = struct{}{}
		rec, err = stamp(rec, RecurringRecordType, kept, domain.CollectionExpenses, now)
		if err != nil {
			return state, err
		}
		kept = append(kept, rec)
	}

	return withCollection(state, domain.CollectionExpenses, kept)
}
