package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/pipeline"
)

// browseCommand opens the interactive ranking browser.
func (c *CLI) browseCommand() *cobra.Command {
	var data dataFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the full ranking interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.pipelineOptions(cmd, &data)
			popts.Top = -1
			return c.runBrowse(cmd.Context(), popts)
		},
	}
	addDataFlags(cmd, &data)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, popts pipeline.Options) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Building route graph...")
	spinner.Start()
	res, err := runner.Build(ctx, popts)
	if err == nil {
		err = runner.Rank(ctx, res, popts)
	}
	spinner.Stop()
	if err != nil {
		return err
	}

	model := NewRankingModel(res.Ranking, res.Mode(), detailFunc(res))
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// detailFunc resolves an entry's code and neighbor codes.
func detailFunc(res *pipeline.Result) func(int) AirportDetail {
	return func(id int) AirportDetail {
		code, _ := res.Registry.Key(id)
		return AirportDetail{Code: code, Neighbors: res.Neighbors(id)}
	}
}
