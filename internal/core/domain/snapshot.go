package domain

// CurrentSchemaVersion is the schema version written by DefaultSnapshot.
const CurrentSchemaVersion = 2

// Collection names as they appear in a persisted snapshot.
const (
	CollectionIncome        = "income"
	CollectionExpenses      = "expenses"
	CollectionAssets        = "assets"
	CollectionAssetHoldings = "assetHoldings"
	CollectionDebts         = "debts"
	CollectionCredit        = "credit"
	CollectionCreditCards   = "creditCards"
	CollectionLoans         = "loans"
	CollectionGoals         = "goals"
	CollectionNotes         = "notes"
	CollectionPersonas      = "personas"
)

// CollectionNames lists every collection in persisted order.
var CollectionNames = []string{
	CollectionIncome,
	CollectionExpenses,
	CollectionAssets,
	CollectionAssetHoldings,
	CollectionDebts,
	CollectionCredit,
	CollectionCreditCards,
	CollectionLoans,
	CollectionGoals,
	CollectionNotes,
	CollectionPersonas,
}

// LiabilityCollections hold records with outstanding balances.
var LiabilityCollections = []string{
	CollectionDebts,
	CollectionCredit,
	CollectionLoans,
	CollectionCreditCards,
}

var collectionKinds = map[string]RecordKind{
	CollectionIncome:        KindIncome,
	CollectionExpenses:      KindExpense,
	CollectionAssets:        KindAsset,
	CollectionAssetHoldings: KindAssetHolding,
	CollectionDebts:         KindDebt,
	CollectionCredit:        KindCredit,
	CollectionCreditCards:   KindCreditCard,
	CollectionLoans:         KindLoan,
	CollectionGoals:         KindGoal,
	CollectionNotes:         KindNote,
	CollectionPersonas:      KindPersona,
}

// KindForCollection maps a collection name to the kind of its records.
func KindForCollection(name string) (RecordKind, bool) {
	k, ok := collectionKinds[name]
	return k, ok
}

// Snapshot is the full state of all named collections at a point in time.
// A nil collection is treated as absent. Snapshots are values: writes produce a new
// Snapshot that shares every untouched collection with its parent.
type Snapshot struct {
	Income        []Record `json:"income" mapstructure:"income"`
	Expenses      []Record `json:"expenses" mapstructure:"expenses"`
	Assets        []Record `json:"assets" mapstructure:"assets"`
	AssetHoldings []Record `json:"assetHoldings" mapstructure:"assetHoldings"`
	Debts         []Record `json:"debts" mapstructure:"debts"`
	Credit        []Record `json:"credit" mapstructure:"credit"`
	CreditCards   []Record `json:"creditCards" mapstructure:"creditCards"`
	Loans         []Record `json:"loans" mapstructure:"loans"`
	Goals         []Record `json:"goals" mapstructure:"goals"`
	Notes         []Record `json:"notes" mapstructure:"notes"`
	Personas      []Record `json:"personas" mapstructure:"personas"`
	SchemaVersion int      `json:"schemaVersion" mapstructure:"schemaVersion"`
}

// DefaultSnapshot returns a snapshot with every collection present and empty.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Income:        []Record{},
		Expenses:      []Record{},
		Assets:        []Record{},
		AssetHoldings: []Record{},
		Debts:         []Record{},
		Credit:        []Record{},
		CreditCards:   []Record{},
		Loans:         []Record{},
		Goals:         []Record{},
		Notes:         []Record{},
		Personas:      []Record{},
		SchemaVersion: CurrentSchemaVersion,
	}
}

func (s *Snapshot) slot(name string) *[]Record {
	switch name {
	case CollectionIncome:
		return &s.Income
	case CollectionExpenses:
		return &s.Expenses
	case CollectionAssets:
		return &s.Assets
	case CollectionAssetHoldings:
		return &s.AssetHoldings
	case CollectionDebts:
		return &s.Debts
	case CollectionCredit:
		return &s.Credit
	case CollectionCreditCards:
		return &s.CreditCards
	case CollectionLoans:
		return &s.Loans
	case CollectionGoals:
		return &s.Goals
	case CollectionNotes:
		return &s.Notes
	case CollectionPersonas:
		return &s.Personas
	}
	return nil
}

// Collection returns the named collection. ok is false for unknown names and for
// collections that are absent from the snapshot.
func (s Snapshot) Collection(name string) (rows []Record, ok bool) {
	p := s.slot(name)
	if p == nil || *p == nil {
		return nil, false
	}
	return *p, true
}

// WithCollection returns a copy of s with the named collection replaced.
// ok is false for unknown names.
func (s Snapshot) WithCollection(name string, rows []Record) (Snapshot, bool) {
	p := s.slot(name)
	if p == nil {
		return s, false
	}
	*p = rows
	return s, true
}

// Liabilities returns every record of the liability collections in persisted order.
func (s Snapshot) Liabilities() []Record {
	var out []Record
	for _, name := range LiabilityCollections {
		rows, _ := s.Collection(name)
		out = append(out, rows...)
	}
	return out
}

// Canonical returns a snapshot whose records all carry the kind of the collection they
// live in and a non-nil tag list. Collections that already conform are shared, not copied.
func (s Snapshot) Canonical() Snapshot {
	out := s
	for _, name := range CollectionNames {
		rows, ok := s.Collection(name)
		if !ok {
			continue
		}
		kind, _ := KindForCollection(name)
		if conforms(rows, kind) {
			continue
		}
		fixed := make([]Record, len(rows))
		for i, r := range rows {
			r.Kind = kind
			if r.Tags == nil {
				r.Tags = []string{}
			}
			fixed[i] = r
		}
		out, _ = out.WithCollection(name, fixed)
	}
	if out.SchemaVersion == 0 {
		out.SchemaVersion = CurrentSchemaVersion
	}
	return out
}

func conforms(rows []Record, kind RecordKind) bool {
	for _, r := range rows {
		if r.Kind != kind || r.Tags == nil {
			return false
		}
	}
	return true
}
