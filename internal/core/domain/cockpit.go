package domain

// BudgetLine compares one category's spend with its plan.
type BudgetLine struct {
	Category string  `json:"category"`
	Actual   float64 `json:"actual"`
	Planned  float64 `json:"planned"`
	RunRate  float64 `json:"runRate"`
	Status   string  `json:"status"`
}

// RecurringItem is an expense recognised as part of the monthly baseline.
type RecurringItem struct {
	RecordID string  `json:"recordId"`
	Item     string  `json:"item"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

type RecurringBaseline struct {
	Items []RecurringItem `json:"items"`
	Total float64         `json:"total"`
}

// Forecast splits the month's outflow by how committed it is.
type Forecast struct {
	Income    float64 `json:"income"`
	Committed float64 `json:"committed"`
	Planned   float64 `json:"planned"`
	Optional  float64 `json:"optional"`
	Remaining float64 `json:"remaining"`
	RiskTier  string  `json:"riskTier"`
}

type WaterfallMonth struct {
	Month           int     `json:"month"`
	StartingBalance float64 `json:"startingBalance"`
	Interest        float64 `json:"interest"`
	Payment         float64 `json:"payment"`
	EndingBalance   float64 `json:"endingBalance"`
}

// DebtWaterfall projects all debt as one balance at a blended APR.
type DebtWaterfall struct {
	TotalDebt      float64          `json:"totalDebt"`
	BlendedAPR     float64          `json:"blendedApr"`
	MonthlyPayment float64          `json:"monthlyPayment"`
	ExtraPayment   float64          `json:"extraPayment"`
	DebtFreeMonth  int              `json:"debtFreeMonth"`
	Months         []WaterfallMonth `json:"months"`
}

type GoalTemplate struct {
	Name            string  `json:"name"`
	TargetAmount    float64 `json:"targetAmount"`
	CurrentAmount   float64 `json:"currentAmount"`
	TimeframeMonths int     `json:"timeframeMonths"`
	RequiredMonthly float64 `json:"requiredMonthly"`
	Affordable      bool    `json:"affordable"`
}

// ScenarioDelta reports a what-if against the current baseline.
type ScenarioDelta struct {
	Name               string  `json:"name"`
	DebtFreeMonth      int     `json:"debtFreeMonth"`
	DebtFreeMonthDelta int     `json:"debtFreeMonthDelta"`
	RunwayMonths       float64 `json:"runwayMonths"`
	RunwayDelta        float64 `json:"runwayDelta"`
}

type ChecklistItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Done  bool   `json:"done"`
}

// Cockpit is the full planning view.
type Cockpit struct {
	AsOf          string            `json:"asOf"`
	Budget        []BudgetLine      `json:"budget"`
	Recurring     RecurringBaseline `json:"recurring"`
	Forecast      Forecast          `json:"forecast"`
	Waterfall     DebtWaterfall     `json:"waterfall"`
	GoalTemplates []GoalTemplate    `json:"goalTemplates"`
	Scenarios     []ScenarioDelta   `json:"scenarios"`
	Provenance    []RiskFinding     `json:"provenance"`
	Checklist     []ChecklistItem   `json:"checklist"`
}
