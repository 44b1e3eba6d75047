package domain

import "strings"

// RecordKind is the discriminant of the Record tagged union.
type RecordKind string

const (
	KindIncome       RecordKind = "income"
	KindExpense      RecordKind = "expense"
	KindAsset        RecordKind = "asset"
	KindAssetHolding RecordKind = "assetHolding"
	KindDebt         RecordKind = "debt"
	KindCredit       RecordKind = "credit"
	KindCreditCard   RecordKind = "creditCard"
	KindLoan         RecordKind = "loan"
	KindGoal         RecordKind = "goal"
	KindNote         RecordKind = "note"
	KindPersona      RecordKind = "persona"
)

// IsLoanFamily reports whether the kind carries loan terms (rate, remaining payments, collateral).
func (k RecordKind) IsLoanFamily() bool {
	return k == KindDebt || k == KindCredit || k == KindLoan
}

// IsLiability reports whether records of this kind carry an outstanding balance.
func (k RecordKind) IsLiability() bool {
	return k.IsLoanFamily() || k == KindCreditCard
}

// GoalStatus is the lifecycle of a goal record.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not started"
	GoalInProgress GoalStatus = "in progress"
	GoalCompleted  GoalStatus = "completed"
)

// RecordTypeSavings marks asset rows created through the income/expense form.
const RecordTypeSavings = "savings"

// Record is one entry within a collection. Kind decides which fields are meaningful;
// Fields() exposes only those.
type Record struct {
	ID         string     `json:"id" mapstructure:"id"`
	Kind       RecordKind `json:"kind" mapstructure:"kind"`
	RecordType string     `json:"recordType" mapstructure:"recordType"`
	Person     string     `json:"person" mapstructure:"person"`
	UpdatedAt  string     `json:"updatedAt" mapstructure:"updatedAt"`

	Item        string   `json:"item" mapstructure:"item"`
	Name        string   `json:"name" mapstructure:"name"`
	Category    string   `json:"category" mapstructure:"category"`
	Date        string   `json:"date" mapstructure:"date"`
	Description string   `json:"description" mapstructure:"description"`
	Notes       string   `json:"notes" mapstructure:"notes"`
	Tags        []string `json:"tags" mapstructure:"tags"`

	Amount                     float64 `json:"amount" mapstructure:"amount"`
	MinimumPayment             float64 `json:"minimumPayment" mapstructure:"minimumPayment"`
	MonthlyPayment             float64 `json:"monthlyPayment" mapstructure:"monthlyPayment"`
	CreditLimit                float64 `json:"creditLimit" mapstructure:"creditLimit"`
	MaxCapacity                float64 `json:"maxCapacity" mapstructure:"maxCapacity"`
	CurrentBalance             float64 `json:"currentBalance" mapstructure:"currentBalance"`
	AssetValueOwed             float64 `json:"assetValueOwed" mapstructure:"assetValueOwed"`
	AssetMarketValue           float64 `json:"assetMarketValue" mapstructure:"assetMarketValue"`
	InterestRatePercent        float64 `json:"interestRatePercent" mapstructure:"interestRatePercent"`
	RemainingPayments          int     `json:"remainingPayments" mapstructure:"remainingPayments"`
	LoanStartDate              string  `json:"loanStartDate" mapstructure:"loanStartDate"`
	CollateralAssetName        string  `json:"collateralAssetName" mapstructure:"collateralAssetName"`
	CollateralAssetMarketValue float64 `json:"collateralAssetMarketValue" mapstructure:"collateralAssetMarketValue"`

	Title           string     `json:"title,omitempty" mapstructure:"title"`
	Status          GoalStatus `json:"status,omitempty" mapstructure:"status"`
	TimeframeMonths float64    `json:"timeframeMonths,omitempty" mapstructure:"timeframeMonths"`
	TargetAmount    float64    `json:"targetAmount,omitempty" mapstructure:"targetAmount"`
	CurrentAmount   float64    `json:"currentAmount,omitempty" mapstructure:"currentAmount"`

	Emoji string `json:"emoji,omitempty" mapstructure:"emoji"`
	Note  string `json:"note,omitempty" mapstructure:"note"`
}

// MonetaryFields lists every field that must hold a finite, non-negative number.
var MonetaryFields = []string{
	"amount", "minimumPayment", "monthlyPayment", "creditLimit", "maxCapacity",
	"currentBalance", "assetValueOwed", "assetMarketValue", "interestRatePercent",
	"collateralAssetMarketValue", "targetAmount", "currentAmount",
}

// Balance is the outstanding balance of a liability, or the value of any other record.
func (r Record) Balance() float64 {
	if r.Kind == KindCreditCard {
		return r.CurrentBalance
	}
	return r.Amount
}

// Limit is the revolving limit of a card or credit line.
func (r Record) Limit() float64 {
	if r.CreditLimit > 0 {
		return r.CreditLimit
	}
	return r.MaxCapacity
}

// ScheduledPayment is the monthly payment a liability commits the owner to.
func (r Record) ScheduledPayment() float64 {
	switch r.Kind {
	case KindLoan:
		if r.MonthlyPayment > 0 {
			return r.MonthlyPayment
		}
		return r.MinimumPayment
	case KindCreditCard:
		if r.MonthlyPayment > r.MinimumPayment {
			return r.MonthlyPayment
		}
		return r.MinimumPayment
	case KindDebt, KindCredit:
		return r.MinimumPayment
	}
	return 0
}

// DisplayName picks the most descriptive label the record carries.
func (r Record) DisplayName() string {
	for _, candidate := range []string{r.Name, r.Title, r.Item, r.Category, r.Description} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return r.ID
}

// NetHoldingValue is market value minus what is still owed on a holding.
func (r Record) NetHoldingValue() float64 {
	return r.AssetMarketValue - r.AssetValueOwed
}

// Fields returns the kind-specific field map of the record. Fields that do not apply
// to the kind are absent.
func (r Record) Fields() map[string]any {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)

	m := map[string]any{
		"id":          r.ID,
		"kind":        string(r.Kind),
		"recordType":  r.RecordType,
		"person":      r.Person,
		"updatedAt":   r.UpdatedAt,
		"item":        r.Item,
		"category":    r.Category,
		"date":        r.Date,
		"description": r.Description,
		"notes":       r.Notes,
		"tags":        tags,
	}
	if r.Kind != KindNote && r.Kind != KindPersona {
		m["amount"] = r.Amount
	}

	switch r.Kind {
	case KindDebt, KindCredit, KindLoan:
		m["name"] = r.Name
		m["minimumPayment"] = r.MinimumPayment
		m["monthlyPayment"] = r.MonthlyPayment
		m["interestRatePercent"] = r.InterestRatePercent
		m["remainingPayments"] = r.RemainingPayments
		m["loanStartDate"] = r.LoanStartDate
		m["collateralAssetName"] = r.CollateralAssetName
		m["collateralAssetMarketValue"] = r.CollateralAssetMarketValue
		if r.Kind == KindCredit {
			m["creditLimit"] = r.CreditLimit
			m["maxCapacity"] = r.MaxCapacity
		}
	case KindCreditCard:
		m["name"] = r.Name
		m["currentBalance"] = r.CurrentBalance
		m["creditLimit"] = r.CreditLimit
		m["maxCapacity"] = r.MaxCapacity
		m["minimumPayment"] = r.MinimumPayment
		m["monthlyPayment"] = r.MonthlyPayment
		m["interestRatePercent"] = r.InterestRatePercent
	case KindAssetHolding:
		m["name"] = r.Name
		m["assetMarketValue"] = r.AssetMarketValue
		m["assetValueOwed"] = r.AssetValueOwed
	case KindGoal:
		m["title"] = r.Title
		m["status"] = string(r.Status)
		m["timeframeMonths"] = r.TimeframeMonths
		m["targetAmount"] = r.TargetAmount
		m["currentAmount"] = r.CurrentAmount
	case KindPersona:
		m["name"] = r.Name
		m["emoji"] = r.Emoji
		m["note"] = r.Note
	case KindAsset:
		m["name"] = r.Name
	}
	return m
}
