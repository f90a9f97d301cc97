package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

// solveFlags holds the flags shared by solve and render.
type solveFlags struct {
	solver         string
	target         []int
	player         int
	compress       bool
	maxStates      int
	formats        string
	output         string
	title          string
	hideStrategies bool
	noCache        bool
	noStore        bool
	refresh        bool
}

func (f *solveFlags) register(cmd *cobra.Command, defaultFormats string) {
	cmd.Flags().StringVarP(&f.solver, "solver", "s", "", "solver: "+fmt.Sprint(pipeline.SolverNames()))
	cmd.Flags().IntSliceVar(&f.target, "target", nil, "target nodes (reachability)")
	cmd.Flags().IntVar(&f.player, "player", 0, "player trying to reach the target (reachability)")
	cmd.Flags().BoolVar(&f.compress, "compress", false, "compress priorities before solving")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "state limit for the safety reduction (0 = unlimited)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", defaultFormats, "output formats: json,yaml,dot,svg,png,pdf")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVar(&f.title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&f.hideStrategies, "hide-strategies", false, "omit strategy edges from diagrams")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.noStore, "no-record", false, "do not store a solve record")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached solutions")
}

// options builds pipeline options; the config supplies the default solver.
func (f *solveFlags) options(cfg Config) pipeline.Options {
	solver := f.solver
	if solver == "" {
		solver = cfg.Solver
	}
	opts := pipeline.Options{
		Solver:         solver,
		Player:         f.player,
		Compress:       f.compress,
		MaxStates:      f.maxStates,
		Refresh:        f.refresh,
		Formats:        parseFormats(f.formats),
		Title:          f.title,
		HideStrategies: f.hideStrategies,
	}
	for _, t := range f.target {
		opts.Target = append(opts.Target, arena.NodeID(t))
	}
	return opts
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a game and print the winning regions",
		Long: `Solve a game read from a text or JSON arena file.

The winning regions and strategies are printed. With --format the solution
is also written as JSON or YAML, or drawn with graphviz.`,
		Example: `  gamesolver solve game.txt
  gamesolver solve game.txt --solver weak -f json
  gamesolver solve game.txt --solver reachability --target 3,4 --player 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd, "")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, input string, flags solveFlags) error {
	a, err := pipeline.LoadArena(input)
	if err != nil {
		return err
	}
	opts := flags.options(c.Config)
	opts.Logger = loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, flags.noCache, flags.noStore)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Solving...")
	spinner.Start()
	result, err := runner.Execute(ctx, a, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Solved %s", input)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.SolveHit)
	printSolution(result.Solution)
	if result.RecordID != "" {
		printDetail("Record: %s", result.RecordID)
	}

	if len(opts.Formats) == 0 {
		return nil
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, flags.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// solversCommand lists the registered solvers.
func (c *CLI) solversCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List available solvers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range pipeline.SolverNames() {
				if name == pipeline.DefaultSolver {
					fmt.Println(StyleHighlight.Render(name) + StyleDim.Render(" (default)"))
					continue
				}
				fmt.Println(name)
			}
			return nil
		},
	}
}
