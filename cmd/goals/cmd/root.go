// Package cmd implements the goals CLI, which edits a user's financial goals
// through the goals API.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fyzahq/fyza/internal/client"
	"github.com/fyzahq/fyza/internal/config"
	"github.com/fyzahq/fyza/internal/goals"
	"github.com/fyzahq/fyza/internal/logger"
)

// session is shared by every subcommand once flags are parsed
type session struct {
	cfg     *config.Config
	verbose bool
	api     *client.Client
	store   *goals.Store
	log     *slog.Logger
}

func (s *session) userID() int64 {
	return s.cfg.UserID
}

func RootCmd() *cobra.Command {
	s := &session{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "goals",
		Short: "Manage financial goals",
		Long: `goals lists and edits a user's financial goals through the goals API.

Examples:
  goals list
  goals add --name "Emergency Fund" --amount 500000 --date 2027-12-31 --priority High
  goals set 7d3c1b8e priority Low
  goals import goals.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.cfg.APIURL, "api", s.cfg.APIURL, "goals API URL (env FYZA_API_URL)")
	flags.Int64Var(&s.cfg.UserID, "user", s.cfg.UserID, "owner user id (env FYZA_USER_ID)")
	flags.DurationVar(&s.cfg.HTTPTimeout, "timeout", s.cfg.HTTPTimeout, "per request timeout, 0 for none (env FYZA_HTTP_TIMEOUT)")
	flags.IntVar(&s.cfg.SaveConcurrency, "concurrency", s.cfg.SaveConcurrency, "max parallel requests when saving, 0 for no limit (env FYZA_SAVE_CONCURRENCY)")
	flags.Float64Var(&s.cfg.WriteRate, "write-rate", s.cfg.WriteRate, "max create, update and delete requests per second, 0 for no pacing (env FYZA_WRITE_RATE)")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "log requests and store activity")

	root.AddCommand(listCmd(s))
	root.AddCommand(addCmd(s))
	root.AddCommand(setCmd(s))
	root.AddCommand(rmCmd(s))
	root.AddCommand(importCmd(s))
	root.AddCommand(profileCmd(s))

	return root
}

func (s *session) open(cmd *cobra.Command) error {
	level := slog.LevelError
	if s.verbose {
		level = slog.LevelDebug
	}
	log := logger.Init(logger.Options{
		Development: true,
		Output:      cmd.ErrOrStderr(),
		Level:       level,
	})

	err := s.cfg.ValidateClient()
	if err != nil {
		return err
	}

	api, err := client.New(s.cfg.APIURL,
		client.WithTimeout(s.cfg.HTTPTimeout),
		client.WithWriteRate(s.cfg.WriteRate, s.cfg.WriteBurst),
	)
	if err != nil {
		return err
	}

	s.api = api
	s.log = log
	s.store = s.newStore()
	return nil
}

func (s *session) newStore() *goals.Store {
	return goals.NewStore(s.api,
		goals.WithConcurrency(s.cfg.SaveConcurrency),
		goals.WithLogger(s.log),
	)
}

// load fetches the user's goals into the store
func (s *session) load(ctx context.Context) error {
	err := s.store.Load(ctx, s.userID())
	if err != nil {
		return err
	}
	slog.Debug("financial goals loaded", "user_id", s.userID(), "count", s.store.Len())
	return nil
}

// resolve finds a loaded goal by its id or a unique prefix of it
func (s *session) resolve(ref string) (goals.Identity, error) {
	var matches []goals.Identity
	for _, g := range s.store.Goals() {
		id, _ := g.ID.RemoteID()
		if id == ref {
			return g.ID, nil
		}
		if len(ref) >= 4 && len(id) > len(ref) && id[:len(ref)] == ref {
			matches = append(matches, g.ID)
		}
	}

	switch len(matches) {
	case 0:
		return goals.Identity{}, fmt.Errorf("no financial goal matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return goals.Identity{}, fmt.Errorf("%q matches %d financial goals, use a longer prefix", ref, len(matches))
	}
}
