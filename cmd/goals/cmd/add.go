package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyzahq/fyza/internal/goals"
	"github.com/fyzahq/fyza/internal/model"
)

func addCmd(s *session) *cobra.Command {
	var name, amount, date, priority string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a financial goal",
		Example: `  goals add --name "Emergency Fund" --amount 500000 --date 2027-12-31 --priority High`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := s.store.AddPending(s.userID())

			fields := []struct {
				field goals.Field
				value string
			}{
				{goals.FieldName, name},
				{goals.FieldTargetAmount, amount},
				{goals.FieldTargetDate, date},
				{goals.FieldPriority, priority},
			}
			for _, f := range fields {
				err := s.store.UpdateField(id, f.field, f.value)
				if err != nil {
					return err
				}
			}

			err := s.store.SaveOne(cmd.Context(), id)
			if err != nil {
				return err
			}

			saved := s.store.Goals()
			goal := saved[len(saved)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", goal.ID, goal.Name)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "goal name")
	flags.StringVar(&amount, "amount", "", "target amount")
	flags.StringVar(&date, "date", "", "target date (YYYY-MM-DD)")
	flags.StringVar(&priority, "priority", string(model.PriorityMedium), "High, Medium or Low")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
