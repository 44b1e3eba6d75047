package domain

// Severity ranks risk findings.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities: high > medium > low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Comparison is the direction of a threshold rule.
type Comparison string

const (
	GreaterThan Comparison = ">"
	LessThan    Comparison = "<"
)

// FindingSource tells which part of the rule set produced a finding.
type FindingSource string

const (
	SourceThreshold FindingSource = "threshold"
	SourceDrilldown FindingSource = "drilldown"
	SourceCheck     FindingSource = "check"
)

// RiskFinding is one triggered risk rule.
type RiskFinding struct {
	ID          string        `json:"id"`
	Family      string        `json:"family"`
	Title       string        `json:"title"`
	Message     string        `json:"message"`
	Severity    Severity      `json:"severity"`
	Source      FindingSource `json:"source"`
	Metric      string        `json:"metric"`
	MetricValue float64       `json:"metricValue"`
	Threshold   float64       `json:"threshold"`
	Comparison  Comparison    `json:"comparison,omitempty"`
	Collection  string        `json:"collection,omitempty"`
	RecordID    string        `json:"recordId,omitempty"`
}

// AuditEntry is one line of the activity timeline.
type AuditEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	ContextTag string `json:"contextTag"`
	Message    string `json:"message"`
	Collection string `json:"collection,omitempty"`
	RecordID   string `json:"recordId,omitempty"`
}

// PersonaImpact counts the records attributed to a persona.
type PersonaImpact struct {
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// FeedRow is one row of the unified feed.
type FeedRow struct {
	Record
	SourceCollectionName string  `json:"sourceCollectionName"`
	SignedAmount         float64 `json:"signedAmount"`
}

// Fields extends the record field map with the feed tags.
func (r FeedRow) Fields() map[string]any {
	m := r.Record.Fields()
	m["sourceCollectionName"] = r.SourceCollectionName
	m["signedAmount"] = r.SignedAmount
	return m
}
