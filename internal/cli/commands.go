package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/google/subcommands"
)

type dashboardCmd struct{ common }

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the dashboard health block" }
func (*dashboardCmd) Usage() string {
	return `fincli dashboard [-f <file>] [-json]

  Displays net worth, ratios, emergency fund coverage and the health score.
`
}
func (c *dashboardCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	health, err := svc.Analytics.Dashboard(ctx, state)
	if err != nil {
		return fail(err)
	}
	return c.print(health, func() string { return DashboardMarkdown(health) })
}

type findingsCmd struct{ common }

func (*findingsCmd) Name() string     { return "findings" }
func (*findingsCmd) Synopsis() string { return "list risk findings" }
func (*findingsCmd) Usage() string {
	return `fincli findings [-f <file>] [-d <date>] [-json]

  Evaluates the risk rules against the snapshot, most severe first.
`
}
func (c *findingsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *findingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	findings, err := svc.Findings.EvaluateFindings(ctx, state)
	if err != nil {
		return fail(err)
	}
	return c.print(findings, func() string { return FindingsMarkdown(findings) })
}

type projectCmd struct{ common }

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project net worth over ten years" }
func (*projectCmd) Usage() string {
	return `fincli project [-f <file>] [-json]

  Projects net worth 120 months ahead under the conservative, base and accelerated profiles.
`
}
func (c *projectCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	proj, err := svc.Analytics.ProjectNetWorth(ctx, state, nil)
	if err != nil {
		return fail(err)
	}
	return c.print(proj, func() string { return ProjectionMarkdown(proj) })
}

type payoffCmd struct {
	balance, rate, payment, extra float64
	asJSON                        bool
}

func (*payoffCmd) Name() string     { return "payoff" }
func (*payoffCmd) Synopsis() string { return "compare loan payoff with and without an extra payment" }
func (*payoffCmd) Usage() string {
	return `fincli payoff -balance <amount> -rate <apr> -payment <amount> [-extra <amount>] [-json]

  Simulates the payoff month by month and reports the months and interest an extra payment saves.
`
}

func (c *payoffCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.balance, "balance", 0, "outstanding balance")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.Float64Var(&c.payment, "payment", 0, "monthly payment")
	f.Float64Var(&c.extra, "extra", 0, "extra monthly payment")
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of rendered markdown")
}

func (c *payoffCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := (&common{}).container()
	if err != nil {
		return fail(err)
	}
	cmp, err := svc.Analytics.ComparePayoff(ctx, c.balance, c.rate, c.payment, c.extra)
	if err != nil {
		return fail(err)
	}
	if c.asJSON {
		return printJSON(os.Stdout, cmp)
	}
	printMarkdown(PayoffMarkdown(cmp))
	return subcommands.ExitSuccess
}

type cardsCmd struct{ common }

func (*cardsCmd) Name() string     { return "cards" }
func (*cardsCmd) Synopsis() string { return "recommend credit card payments" }
func (*cardsCmd) Usage() string {
	return `fincli cards [-f <file>] [-json]

  Splits the card payment pool across cards, highest APR first.
`
}
func (c *cardsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *cardsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	plan, err := svc.Analytics.RecommendCardPayments(ctx, state)
	if err != nil {
		return fail(err)
	}
	return c.print(plan, func() string { return CardPlanMarkdown(plan) })
}

type feedCmd struct {
	common
	search string
	tag    string
	sort   string
	desc   bool
}

func (*feedCmd) Name() string     { return "feed" }
func (*feedCmd) Synopsis() string { return "list every record in one feed" }
func (*feedCmd) Usage() string {
	return `fincli feed [-f <file>] [-q <text>] [-tag <tag>] [-sort <field>] [-desc] [-json]

  Lists every record with its collection and signed amount.
`
}

func (c *feedCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.search, "q", "", "case-insensitive text search")
	f.StringVar(&c.tag, "tag", "", "only rows carrying this tag")
	f.StringVar(&c.sort, "sort", "", "field to sort by, e.g. signedAmount or date")
	f.BoolVar(&c.desc, "desc", false, "sort descending")
}

func (c *feedCmd) query() feed.Query {
	q := feed.Query{Search: c.search, SortField: c.sort, SortDirection: feed.Ascending}
	if c.tag != "" {
		q.Tags = []string{c.tag}
	}
	if c.desc {
		q.SortDirection = feed.Descending
	}
	return q
}

func (c *feedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	rows, err := svc.Analytics.Feed(ctx, state, c.query())
	if err != nil {
		return fail(err)
	}
	return c.print(rows, func() string { return FeedMarkdown(rows) })
}

type cockpitCmd struct{ common }

func (*cockpitCmd) Name() string     { return "cockpit" }
func (*cockpitCmd) Synopsis() string { return "display the planning cockpit" }
func (*cockpitCmd) Usage() string {
	return `fincli cockpit [-f <file>] [-d <date>] [-json]

  Displays budget against actuals, forecast, debt waterfall, goals, scenarios and the reconcile checklist.
`
}
func (c *cockpitCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *cockpitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	view, err := svc.Analytics.Cockpit(ctx, state)
	if err != nil {
		return fail(err)
	}
	return c.print(view, func() string { return CockpitMarkdown(view) })
}

// seedCmd writes the snapshot back with recurring debt payments seeded.
type seedCmd struct {
	common
	out string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "add recurring debt payment expenses" }
func (*seedCmd) Usage() string {
	return `fincli seed [-f <file>] [-o <file>]

  Adds one recurring expense per scheduled liability payment and writes the snapshot as JSON.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.out, "o", "", "output file (defaults to stdout)")
}

func (c *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	state, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	next, err := svc.Records.SeedRecurring(ctx, state)
	if err != nil {
		return fail(err)
	}
	return writeState(c.out, next)
}

type mergeCmd struct {
	common
	imported string
	out      string
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge an exported snapshot into the current one" }
func (*mergeCmd) Usage() string {
	return `fincli merge [-f <file>] -i <imported file> [-o <file>]

  Merges the imported snapshot by id or record signature and writes the result as JSON.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.imported, "i", "", "snapshot file to import")
	f.StringVar(&c.out, "o", "", "output file (defaults to stdout)")
}

func (c *mergeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.imported == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		return subcommands.ExitUsageError
	}
	svc, err := c.container()
	if err != nil {
		return fail(err)
	}
	current, err := c.loadState(ctx, svc.Records)
	if err != nil {
		return fail(err)
	}
	imported, err := readState(ctx, svc.Records, c.imported)
	if err != nil {
		return fail(err)
	}
	merged, err := svc.Records.MergeImportedState(ctx, current, imported)
	if err != nil {
		return fail(err)
	}
	return writeState(c.out, merged)
}

func writeState(path string, state domain.Snapshot) subcommands.ExitStatus {
	if path == "" {
		return printJSON(os.Stdout, state)
	}
	fh, err := os.Create(path)
	if err != nil {
		return fail(err)
	}
	defer fh.Close()
	return printJSON(fh, state)
}
