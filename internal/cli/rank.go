package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/pipeline"
	"github.com/matzehuels/hubrank/pkg/report"
)

// rankOpts holds the command-line flags for the rank command.
type rankOpts struct {
	data    dataFlags
	top     int
	all     bool
	format  string
	output  string
	save    bool
	noCache bool
	refresh bool
}

// rankCommand creates the rank command, the main entry point of hubrank.
func (c *CLI) rankCommand() *cobra.Command {
	var opts rankOpts

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank airports by degree centrality",
		Long: `Rank loads the airport and route tables, builds the route graph and prints
the airports with the most routes.

In directed mode an airport's degree is its number of outgoing routes. In
undirected mode every route counts for both of its airports.`,
		Example: `  hubrank rank -a airports.csv -r routes.csv
  hubrank rank --mode undirected --top 25
  hubrank rank --format csv -o ranking.csv --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := report.ValidateFormat(opts.format); err != nil {
				return err
			}
			popts := c.pipelineOptions(cmd, &opts.data)
			if cmd.Flags().Changed("top") {
				popts.Top = opts.top
			}
			if opts.all {
				popts.Top = -1
			}
			popts.Refresh = opts.refresh
			return c.runRank(cmd.Context(), cmd.OutOrStdout(), popts, opts)
		},
	}

	addDataFlags(cmd, &opts.data)
	cmd.Flags().IntVarP(&opts.top, "top", "k", pipeline.DefaultTop, "number of airports to show")
	cmd.Flags().BoolVar(&opts.all, "all", false, "show every airport with a name")
	cmd.Flags().StringVarP(&opts.format, "format", "f", report.FormatTable, "output format: table, json, csv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the report to the configured store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached ranking exists")

	return cmd
}

func (c *CLI) runRank(ctx context.Context, stdout io.Writer, popts pipeline.Options, opts rankOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Status lines only go with the human-readable format on a terminal
	// stream; JSON and CSV on stdout stay clean.
	interactive := opts.format == report.FormatTable || opts.output != ""

	var spinner *Spinner
	if interactive {
		spinner = newSpinner(ctx, "Ranking airports...")
		spinner.Start()
	}
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog.done("ranked airports", "entries", len(res.Ranking), "cached", res.CacheHit)

	rep := report.New(res, popts)
	if err := writeReport(stdout, rep, opts); err != nil {
		return err
	}

	if interactive {
		printStats(res.Stats, popts.Mode, res.CacheHit)
		if res.Stats.Unlabeled > 0 {
			printDetail("%d airports without a name are not ranked", res.Stats.Unlabeled)
		}
	}

	if opts.save {
		if err := c.saveReport(ctx, rep); err != nil {
			return err
		}
		if interactive {
			printSuccess("Saved report %s", rep.ID)
		}
	}
	return nil
}

func writeReport(stdout io.Writer, rep *report.Report, opts rankOpts) error {
	if opts.output == "" {
		return report.Write(stdout, rep, opts.format)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := report.Write(f, rep, opts.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSuccess("Wrote %d airports", len(rep.Entries))
	printFile(opts.output)
	return nil
}

func (c *CLI) saveReport(ctx context.Context, rep *report.Report) error {
	store, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer store.Close(context.WithoutCancel(ctx))

	if _, ok := store.(*report.MemoryStore); ok {
		printWarning("Report store is in-memory; configure [store] backend = \"mongo\" to keep reports")
	}
	return store.Save(ctx, rep)
}
