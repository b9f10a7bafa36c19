package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/harmony/internal/config"
	"github.com/okian/harmony/internal/domain/scoring"
)

// resolveTop applies the configured default and ceiling to a --top flag.
func resolveTop(top int, cfg *config.Config) (int, error) {
	if top == 0 {
		return cfg.DefaultTopN, nil
	}
	if top < 0 || top > cfg.MaxTopN {
		return 0, fmt.Errorf("--top must be between 1 and %d", cfg.MaxTopN)
	}
	return top, nil
}

func rankCmd(opts *options) *cobra.Command {
	var (
		task string
		top  int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank three-person teams for a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, cfg, err := opts.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			n, err := resolveTop(top, cfg)
			if err != nil {
				return err
			}
			ranking, err := svc.RankTeams(ctx, task, n)
			if errors.Is(err, scoring.ErrInsufficientCandidates) {
				renderWarning(cmd.OutOrStdout(), err.Error())
				return nil
			}
			if err != nil {
				return err
			}
			renderRanking(cmd.OutOrStdout(), ranking)
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "task name")
	cmd.Flags().IntVar(&top, "top", 0, "number of teams (default: default_top_n)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func soloCmd(opts *options) *cobra.Command {
	var (
		task string
		top  int
	)
	cmd := &cobra.Command{
		Use:   "solo",
		Short: "Show the best individual performers for a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, cfg, err := opts.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			n, err := resolveTop(top, cfg)
			if err != nil {
				return err
			}
			solo, err := svc.BestSolo(ctx, task, n)
			if err != nil {
				return err
			}
			if len(solo) == 0 {
				renderWarning(cmd.OutOrStdout(), "no employee is scored for "+task)
				return nil
			}
			renderSolo(cmd.OutOrStdout(), task, solo)
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "task name")
	cmd.Flags().IntVar(&top, "top", 1, "number of employees")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func leaderboardCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:       "leaderboard teams|solo",
		Short:     "Show a precomputed leaderboard",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"teams", "solo"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, _, err := opts.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			read, title := svc.TopTeams, "Top team recommendations"
			if args[0] == "solo" {
				read, title = svc.TopSolo, "Top solo recommendations"
			}
			t, err := read(ctx, limit)
			if err != nil {
				return err
			}
			renderTitle(cmd.OutOrStdout(), title)
			renderDataset(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "rows to show (default: insights_limit)")
	return cmd
}

func profilesCmd(opts *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Show employee profiles, or one employee's profile with --name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, _, err := opts.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if name == "" {
				t, err := svc.Profiles(ctx)
				if err != nil {
					return err
				}
				renderDataset(cmd.OutOrStdout(), t)
				return nil
			}
			t, err := svc.Profile(ctx, name)
			if err != nil {
				return err
			}
			if t.Len() == 0 {
				renderWarning(cmd.OutOrStdout(), "no profile for "+name)
				return nil
			}
			renderDataset(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "employee name")
	return cmd
}

func tasksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List task names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, _, err := opts.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			tasks, err := svc.Tasks(ctx)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}
