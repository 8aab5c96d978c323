package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyzahq/fyza/internal/goals"
)

func importCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|file.json>",
		Short: "Create financial goals from a YAML or JSON file",
		Long: `Create financial goals from a YAML or JSON file.

The file holds a list of goals, or a mapping with a "goals" list:

  goals:
    - goal_name: Emergency Fund
      target_amount: 500000
      target_date: 2027-12-31
      priority: High

Goals are created concurrently, paced by --write-rate and --concurrency.
A goal whose name, amount and date match one the user already has, or an
earlier entry in the file, is skipped, so a file can be imported again after
a partial failure without duplicating the goals that succeeded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readImportFile(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			err = s.load(cmd.Context())
			if err != nil {
				return err
			}
			seen := map[string]bool{}
			for _, g := range s.store.Goals() {
				seen[goalKey(g)] = true
			}

			batch := s.newStore()
			names := map[goals.Identity]string{}
			skipped := 0
			for i, e := range entries {
				id := batch.AddPending(s.userID())

				for _, fv := range e.fields() {
					err := batch.UpdateField(id, fv.field, fv.value)
					if err != nil {
						return fmt.Errorf("goal %d (%s): %w", i+1, e.GoalName, err)
					}
				}

				g, _ := batch.Get(id)
				key := goalKey(g)
				if seen[key] {
					// pending, so nothing is sent
					_ = batch.RemoveLocal(cmd.Context(), id)
					skipped++
					continue
				}
				seen[key] = true
				names[id] = e.GoalName
			}

			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d goals that already exist\n", skipped)
			}
			if batch.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			total := batch.Len()
			err = batch.SaveAll(cmd.Context(), s.userID())

			var batchErr *goals.BatchError
			if errors.As(err, &batchErr) {
				for _, f := range batchErr.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", names[f.ID], f.Err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d goals\n", batchErr.Total-len(batchErr.Failures), batchErr.Total)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d goals\n", total)
			return printGoals(cmd.OutOrStdout(), batch.Goals())
		},
	}
}

// goalKey identifies a goal for import deduplication
func goalKey(g goals.Goal) string {
	return fmt.Sprintf("%s|%s|%s", strings.TrimSpace(g.Name), strconv.FormatFloat(g.TargetAmount, 'f', -1, 64), g.TargetDate)
}
