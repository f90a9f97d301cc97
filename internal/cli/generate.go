package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		size   int
		seed   uint64
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate [family]",
		Short: "Generate a benchmark game",
		Long: `Generate a game from one of the built-in families and write it in the
text format, or as JSON with --json.

Families: ` + strings.Join(generate.Names(), ", "),
		Example: `  gamesolver generate random -n 100 --seed 7 -o random.txt
  gamesolver generate worst-case -n 8`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: generate.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := generate.Lookup(args[0])
			if err != nil {
				return gerr.Wrap(gerr.ErrCodeInvalidInput, err, "generate")
			}
			if size < 1 {
				return gerr.New(gerr.ErrCodeInvalidInput, "size must be positive, got %d", size)
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			a := family(size, seed)

			var buf bytes.Buffer
			if asJSON {
				err = gio.WriteArenaJSON(a, &buf)
			} else {
				err = gio.WriteArena(a, &buf)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done(fmt.Sprintf("Generated %s game with %d nodes", args[0], a.Len()))
			printFile(output)
			printNextStep("Solve it", "gamesolver solve "+output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 10, "size parameter of the family")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed (random family)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of the text format")

	return cmd
}
