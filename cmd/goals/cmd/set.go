package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyzahq/fyza/internal/goals"
)

func setCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <goal_id> <field> <value>",
		Short: "Change one field of a financial goal and save it",
		Long: `Change one field of a financial goal and save it.

Fields: name, amount, date, priority (or their API names goal_name,
target_amount, target_date). The goal id may be shortened to a unique prefix
of at least four characters.`,
		Example: "  goals set 7d3c1b8e priority Low",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := goals.ParseField(args[1])
			if err != nil {
				return err
			}

			err = s.load(cmd.Context())
			if err != nil {
				return err
			}

			id, err := s.resolve(args[0])
			if err != nil {
				return err
			}

			err = s.store.UpdateField(id, field, args[2])
			if err != nil {
				return err
			}

			err = s.store.SaveOne(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", id)
			return nil
		},
	}
}
