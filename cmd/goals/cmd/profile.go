package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyzahq/fyza/internal/client"
	"github.com/fyzahq/fyza/internal/model"
)

func profileCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or save the user profile",
	}

	cmd.AddCommand(profileShowCmd(s))
	cmd.AddCommand(profileSaveCmd(s))
	return cmd
}

func profileShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.api.GetProfile(cmd.Context(), s.userID())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\t%d\n", p.ID)
			fmt.Fprintf(tw, "Name\t%s\n", p.FullName())
			fmt.Fprintf(tw, "Age\t%d\n", p.Age)
			fmt.Fprintf(tw, "Annual income\t%s\n", formatAmount(p.AnnualIncome))
			fmt.Fprintf(tw, "City\t%s\n", p.City)
			fmt.Fprintf(tw, "Occupation\t%s\n", p.Occupation)
			fmt.Fprintf(tw, "Dependents\t%d\n", p.Dependents)
			fmt.Fprintf(tw, "Risk profile\t%s\n", p.RiskProfile)
			return tw.Flush()
		},
	}
}

func profileSaveCmd(s *session) *cobra.Command {
	var in model.Profile

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create the user profile, or update the fields given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.api.GetProfile(cmd.Context(), s.userID())
			if client.IsNotFound(err) {
				// the server assigns the id of a new profile
				p, err = &model.Profile{}, nil
			}
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("first-name") {
				p.FirstName = in.FirstName
			}
			if flags.Changed("last-name") {
				p.LastName = in.LastName
			}
			if flags.Changed("age") {
				p.Age = in.Age
			}
			if flags.Changed("income") {
				p.AnnualIncome = in.AnnualIncome
			}
			if flags.Changed("city") {
				p.City = in.City
			}
			if flags.Changed("occupation") {
				p.Occupation = in.Occupation
			}
			if flags.Changed("dependents") {
				p.Dependents = in.Dependents
			}
			if flags.Changed("risk") {
				p.RiskProfile = in.RiskProfile
			}

			saved, err := s.api.SaveProfile(cmd.Context(), p)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %d (%s)\n", saved.ID, saved.FullName())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.FirstName, "first-name", "", "first name")
	flags.StringVar(&in.LastName, "last-name", "", "last name")
	flags.IntVar(&in.Age, "age", 0, "age in years")
	flags.Float64Var(&in.AnnualIncome, "income", 0, "annual income")
	flags.StringVar(&in.City, "city", "", "city")
	flags.StringVar(&in.Occupation, "occupation", "", "occupation")
	flags.IntVar(&in.Dependents, "dependents", 0, "number of dependents")
	flags.StringVar(&in.RiskProfile, "risk", "", "conservative, moderate or aggressive")

	return cmd
}
