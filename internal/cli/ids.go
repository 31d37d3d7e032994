package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/pipeline"
)

// idsCommand prints the id assigned to every airport in the route table.
func (c *CLI) idsCommand() *cobra.Command {
	var (
		data  dataFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "List the graph id of every airport in the route table",
		Long: `Ids prints the identifier registry: the dense id each airport code received,
in the order the codes first appear in the route table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.pipelineOptions(cmd, &data)
			return c.runIDs(cmd.Context(), cmd.OutOrStdout(), popts, limit)
		},
	}

	addDataFlags(cmd, &data)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the first N ids (0 shows all)")

	return cmd
}

func (c *CLI) runIDs(ctx context.Context, stdout io.Writer, popts pipeline.Options, limit int) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Build(ctx, popts)
	if err != nil {
		return err
	}

	keys := res.Registry.Keys()
	if limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}
	rows := make([][]string, len(keys))
	for id, key := range keys {
		rows[id] = []string{strconv.Itoa(id), key, res.Labels[id]}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "Code", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(colorGray)
			case col == 0:
				return base.Align(lipgloss.Right).Foreground(colorCyan)
			}
			return base
		})

	_, err = io.WriteString(stdout, t.Render()+"\n")
	return err
}
