package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	data      dataFlags
	format    string
	output    string
	top       int
	neighbors bool
	noCache   bool
}

// graphCommand creates the graph command: a summary of the route graph, or
// an export of it with --format.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Summarize or export the route graph",
		Long: `Graph builds the route graph and prints its size and highest-degree airport.

With --format it exports the graph instead. DOT is written as Graphviz source;
svg is rendered with Graphviz; png and pdf additionally need rsvg-convert on
PATH. --top limits the drawing to the highest-degree airports.`,
		Example: `  hubrank graph
  hubrank graph --format dot --top 20 --neighbors > hubs.dot
  hubrank graph --format svg --top 15 -o hubs.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "" {
				if err := pipeline.ValidateFormat(opts.format); err != nil {
					return err
				}
			}
			popts := c.pipelineOptions(cmd, &opts.data)
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), popts, opts)
		},
	}

	addDataFlags(cmd, &opts.data)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "export format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.top, "top", "k", 0, "draw only the top K airports (0 draws all)")
	cmd.Flags().BoolVar(&opts.neighbors, "neighbors", false, "also draw the direct neighbors of the top airports")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered image cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, stdout io.Writer, popts pipeline.Options, opts graphOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Build(ctx, popts)
	if err != nil {
		return err
	}

	if opts.format == "" {
		printGraphSummary(res, popts.Mode)
		return nil
	}

	prog := newProgress(c.Logger)
	data, cached, err := runner.Export(ctx, res, pipeline.ExportOptions{
		Format:    opts.format,
		Top:       opts.top,
		Neighbors: opts.neighbors,
	})
	if err != nil {
		return err
	}
	prog.done("exported graph", "format", opts.format, "bytes", len(data), "cached", cached)

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Exported %s graph", opts.format)
	printFile(opts.output)
	return nil
}

func printGraphSummary(res *pipeline.Result, mode string) {
	s := res.Stats
	scores := centrality.Degree(res.Graph)

	fmt.Println(StyleTitle.Render("Route graph"))
	printKeyValue("Mode", mode)
	printKeyValue("Airports", fmt.Sprintf("%d (%d named)", s.Nodes, s.Nodes-s.Unlabeled))
	printKeyValue("Routes", strconv.Itoa(s.Edges))
	if s.Duplicates > 0 {
		printKeyValue("Duplicates", fmt.Sprintf("%d removed", s.Duplicates))
	}
	printKeyValue("Arcs", strconv.Itoa(s.Arcs))

	if id, degree := scores.Max(); id >= 0 {
		key, _ := res.Registry.Key(id)
		name := res.Labels[id]
		if name == "" {
			name = StyleDim.Render("(unnamed)")
		}
		printKeyValue("Max degree", fmt.Sprintf("%s %s %s", key, name, StyleNumber.Render(strconv.Itoa(degree))))
	}
	if skipped := s.SkippedAirports + s.SkippedRoutes; skipped > 0 {
		printWarning("Skipped %d invalid records", skipped)
	}
}
