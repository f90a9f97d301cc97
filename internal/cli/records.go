package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// recordsCommand creates the records command for browsing stored solves.
func (c *CLI) recordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Browse stored solve records",
	}

	cmd.AddCommand(c.recordsListCommand())
	cmd.AddCommand(c.recordsShowCommand())
	cmd.AddCommand(c.recordsDeleteCommand())
	cmd.AddCommand(c.recordsBrowseCommand())

	return cmd
}

func (c *CLI) recordsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return gerr.New(gerr.ErrCodeInvalidInput, "limit must be positive, got %d", limit)
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			if st == nil {
				printInfo("Records are disabled")
				return nil
			}
			defer st.Close()

			recs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printInfo("No records")
				return nil
			}
			for _, r := range recs {
				fmt.Printf("%s  %s  %s\n",
					StyleHighlight.Render(r.ID),
					StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)),
					StyleValue.Render(fmt.Sprintf("%-16s %d nodes  W0=%d W1=%d  %s",
						r.Solver, r.Nodes, r.W0, r.W1, r.Duration.Round(time.Microsecond))))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records")
	return cmd
}

func (c *CLI) recordsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gerr.ValidateRecordID(args[0]); err != nil {
				return err
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			if st == nil {
				return gerr.New(gerr.ErrCodeNotFound, "records are disabled")
			}
			defer st.Close()

			rec, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func (c *CLI) recordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gerr.ValidateRecordID(args[0]); err != nil {
				return err
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			if st == nil {
				return gerr.New(gerr.ErrCodeNotFound, "records are disabled")
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

func (c *CLI) recordsBrowseCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a record interactively and print its solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			if st == nil {
				printInfo("Records are disabled")
				return nil
			}
			defer st.Close()

			recs, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printInfo("No records")
				return nil
			}

			final, err := tea.NewProgram(NewRecordListModel(recs), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("record browser: %w", err)
			}
			m, ok := final.(RecordListModel)
			if !ok || m.Selected == nil {
				return nil
			}

			r := m.Selected
			printSuccess("Record %s", r.ID)
			printKeyValue("Solver", r.Solver)
			printKeyValue("Arena", r.ArenaHash)
			printStats(r.Nodes, r.Edges, r.Cached)
			printSolution(r.Solution.Solution())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum number of records")
	return cmd
}
