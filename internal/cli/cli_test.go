package cli

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadState(t *testing.T) {
	c := &common{file: writeFile(t, "state.json", `{"income":[{"id":"inc-1","amount":1000,"category":"Salary"}]}`)}
	svc, err := c.container()
	require.NoError(t, err)

	state, err := c.loadState(context.Background(), svc.Records)
	require.NoError(t, err)
	require.Len(t, state.Income, 1)
	assert.Equal(t, 1000.0, state.Income[0].Amount)
	assert.Nil(t, state.Expenses, "absent collections stay absent")
}

func TestReadState_Errors(t *testing.T) {
	c := &common{}
	svc, err := c.container()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = readState(ctx, svc.Records, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = readState(ctx, svc.Records, writeFile(t, "list.json", `[1, 2]`))
	assert.ErrorContains(t, err, "not a JSON object")

	_, err = readState(ctx, svc.Records, writeFile(t, "bad.json", `{"expenses":[{"id":"e","amount":-1}]}`))
	assert.Error(t, err)
}

func TestContainer_BadDate(t *testing.T) {
	_, err := (&common{date: "14/03/2026"}).container()
	assert.ErrorContains(t, err, "invalid date")
}

func TestSeedCmd_WritesState(t *testing.T) {
	in := writeFile(t, "state.json", `{"expenses":[],"loans":[{"id":"loan-1","name":"Car","amount":9000,"monthlyPayment":310}]}`)
	out := filepath.Join(t.TempDir(), "seeded.json")
	cmd := &seedCmd{common: common{file: in, date: "2026-03-14"}, out: out}

	status := cmd.Execute(context.Background(), flag.NewFlagSet("seed", flag.ContinueOnError))
	require.Equal(t, subcommands.ExitSuccess, status)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload["expenses"], 1)
}

func TestMergeCmd_RequiresImport(t *testing.T) {
	status := (&mergeCmd{}).Execute(context.Background(), flag.NewFlagSet("merge", flag.ContinueOnError))
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestFeedCmd_Query(t *testing.T) {
	c := &feedCmd{search: "rent", tag: "home", sort: "date", desc: true}
	q := c.query()
	assert.Equal(t, "rent", q.Search)
	assert.Equal(t, []string{"home"}, q.Tags)
	assert.Equal(t, feed.Descending, q.SortDirection)

	assert.Nil(t, (&feedCmd{}).query().Tags)
	assert.Equal(t, feed.Ascending, (&feedCmd{}).query().SortDirection)
}

func TestCommands_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		assert.False(t, seen[c.Name()], c.Name())
		seen[c.Name()] = true
		assert.NotEmpty(t, c.Synopsis())
	}
}

func TestDashboardMarkdown(t *testing.T) {
	md := DashboardMarkdown(domain.DashboardHealth{
		NetWorth:    1234.5,
		HealthScore: 72,
		EmergencyFund: domain.EmergencyFundCoverage{
			MonthsCovered: 2, TargetMonths: 6, Shortfall: 800, Status: "building",
		},
	})
	assert.Contains(t, md, "72 / 100")
	assert.Contains(t, md, "| Net worth | $1,234.50 |")
	assert.Contains(t, md, "Shortfall: $800.00.")
}

func TestFindingsMarkdown(t *testing.T) {
	assert.Contains(t, FindingsMarkdown(nil), "No findings.")

	md := FindingsMarkdown([]domain.RiskFinding{{Severity: domain.SeverityHigh, Title: "Cash | flow", Message: "Spending exceeds income"}})
	assert.Contains(t, md, `| high | Cash \| flow | Spending exceeds income |`)
}

func TestPayoffMarkdown_NonConvergent(t *testing.T) {
	md := PayoffMarkdown(domain.PayoffComparison{
		Balance: 1000,
		Base:    domain.PayoffScenario{MonthlyPayment: 5, Months: domain.NonConvergentMonths},
	})
	assert.Contains(t, md, "| Base | $5.00 | never |")
}

func TestProjectionMarkdown_YearlyRows(t *testing.T) {
	points := make([]domain.ProjectionPoint, 0, 24)
	for m := 1; m <= 24; m++ {
		points = append(points, domain.ProjectionPoint{Month: m, ProjectedNetWorth: float64(m * 100)})
	}
	md := ProjectionMarkdown(domain.NetWorthProjection{Profiles: []domain.ProfileProjection{
		{Profile: domain.ProjectionProfile{Name: "base"}, Points: points},
	}})
	assert.Contains(t, md, "| Year | base |")
	assert.Contains(t, md, "| 1 | $1,200.00 |")
	assert.Contains(t, md, "| 2 | $2,400.00 |")
	assert.NotContains(t, md, "| 3 |")
}

func TestCockpitMarkdown_Checklist(t *testing.T) {
	md := CockpitMarkdown(domain.Cockpit{
		AsOf: "2026-03-14",
		Checklist: []domain.ChecklistItem{
			{Label: "Categorize", Count: 0, Done: true},
			{Label: "Confirm", Count: 2},
		},
	})
	assert.Contains(t, md, "# Cockpit as of 2026-03-14")
	assert.Contains(t, md, "- [x] Categorize (0)")
	assert.Contains(t, md, "- [ ] Confirm (2)")
}
