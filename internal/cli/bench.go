package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

var (
	styleColumn = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	styleHeader = styleColumn.Foreground(colorGray).Bold(true)
)

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		opts     pipeline.BenchOptions
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a solver on generated games of growing size",
		Long: `Time a solver on a generator family for sizes step, 2*step, ... up to
max, printing the fastest of --reps runs per size. The cache is bypassed.

Families: ` + strings.Join(generate.Names(), ", "),
		Example: `  gamesolver bench --family worst-case --max 12
  gamesolver bench --solver weak --family random --max 2000 --step 200 --reps 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Solver == "" {
				opts.Solver = c.Config.Solver
			}
			if opts.Solver == "" {
				opts.Solver = pipeline.DefaultSolver
			}
			opts.Solve.Compress = compress

			printInfo("Benchmarking %s on %s", StyleHighlight.Render(opts.Solver), StyleHighlight.Render(opts.Family))
			printBenchRow(styleHeader, "size", "nodes", "edges", "time", "calls", "attractors")

			prog := newProgress(loggerFromContext(cmd.Context()))
			points, err := pipeline.Bench(cmd.Context(), opts, func(p pipeline.BenchPoint) {
				printBenchRow(styleColumn,
					fmt.Sprint(p.Size),
					fmt.Sprint(p.Nodes),
					fmt.Sprint(p.Edges),
					p.Min.String(),
					fmt.Sprint(p.Stats.Calls),
					fmt.Sprint(p.Stats.Attractors))
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Benchmarked %d sizes", len(points)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Solver, "solver", "s", "", "solver to time")
	cmd.Flags().StringVar(&opts.Family, "family", "worst-case", "generator family")
	cmd.Flags().IntVar(&opts.Max, "max", 10, "largest size")
	cmd.Flags().IntVar(&opts.Step, "step", 1, "size increment")
	cmd.Flags().IntVar(&opts.Reps, "reps", 1, "runs per size")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "base seed for random families")
	cmd.Flags().BoolVar(&compress, "compress", false, "compress priorities before solving")

	return cmd
}

func printBenchRow(style lipgloss.Style, cols ...string) {
	var b strings.Builder
	for _, col := range cols {
		b.WriteString(style.Render(col))
	}
	fmt.Println(b.String())
}
