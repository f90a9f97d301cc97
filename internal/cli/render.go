package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags solveFlags
	var solutionFile string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a game and its winning regions",
		Long: `Draw a game with graphviz, colouring nodes by winner and highlighting
strategy edges.

The game is solved first unless --solution names a solution JSON file
written by "gamesolver solve -f json".`,
		Example: `  gamesolver render game.txt
  gamesolver render game.txt -f svg,pdf -o out/game
  gamesolver render game.txt --solution game.solution.json -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], solutionFile, flags)
		},
	}
	flags.register(cmd, pipeline.FormatSVG)
	cmd.Flags().StringVar(&solutionFile, "solution", "", "render this solution instead of solving")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, solutionFile string, flags solveFlags) error {
	if solutionFile == "" {
		return c.runSolve(ctx, input, flags)
	}

	a, err := pipeline.LoadArena(input)
	if err != nil {
		return err
	}
	f, err := os.Open(solutionFile)
	if err != nil {
		return gerr.Wrap(gerr.ErrCodeFileNotFound, err, "open solution %s", solutionFile)
	}
	solver, sol, err := gio.ReadSolutionJSON(f)
	f.Close()
	if err != nil {
		return err
	}
	if err := sol.CheckPartition(a); err != nil {
		return gerr.Wrap(gerr.ErrCodeInvalidInput, err, "solution does not match %s", input)
	}

	opts := flags.options(c.Config)
	opts.Solver = solver
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	hash, err := pipeline.HashArena(a)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, a, hash, sol, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(a.Len(), a.EdgeCount(), hit)
	paths, err := writeArtifacts(artifacts, opts.Formats, input, flags.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
