// Package cli implements the fincli subcommands: each reads a snapshot file, runs one
// engine operation and prints the result as rendered markdown or JSON.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/core/services"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every fincli subcommand.
var Commands = []subcommands.Command{
	&dashboardCmd{},
	&findingsCmd{},
	&projectCmd{},
	&payoffCmd{},
	&cardsCmd{},
	&feedCmd{},
	&cockpitCmd{},
	&seedCmd{},
	&mergeCmd{},
}

// common holds the flags shared by the commands that read a snapshot.
type common struct {
	file   string
	date   string
	asJSON bool
}

func (c *common) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "snapshot.json", "snapshot file to read")
	f.StringVar(&c.date, "d", "", "evaluation date as YYYY-MM-DD (defaults to today)")
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of rendered markdown")
}

// container builds the services, pinned to -d when given.
func (c *common) container() (*portssvc.ServiceContainer, error) {
	var opts []services.ServiceOption
	if c.date != "" {
		day, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", c.date, err)
		}
		opts = append(opts, services.WithClock(func() time.Time { return day }))
	}
	return services.NewServiceContainer(nil, opts...), nil
}

// loadState reads and validates the snapshot file.
func (c *common) loadState(ctx context.Context, svc portssvc.RecordSvcFacade) (domain.Snapshot, error) {
	return readState(ctx, svc, c.file)
}

func readState(ctx context.Context, svc portssvc.RecordSvcFacade, path string) (domain.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s is not a JSON object: %w", path, err)
	}
	return svc.DecodeSnapshot(ctx, payload)
}

func (c *common) print(v any, md func() string) subcommands.ExitStatus {
	if c.asJSON {
		return printJSON(os.Stdout, v)
	}
	printMarkdown(md())
	return subcommands.ExitSuccess
}

func printJSON(w io.Writer, v any) subcommands.ExitStatus {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
