package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <goal_id>",
		Aliases: []string{"delete"},
		Short:   "Delete a financial goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			id, err := s.resolve(args[0])
			if err != nil {
				return err
			}

			err = s.store.RemoveLocal(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}
