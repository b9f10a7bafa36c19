package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/harmony/internal/datagen"
)

func generateCmd() *cobra.Command {
	cfg := datagen.Config{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic dataset with all seven tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := datagen.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(summary.Rows))
			for name := range summary.Rows {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{name, strconv.Itoa(summary.Rows[name])}
			}
			renderTitle(cmd.OutOrStdout(), "Dataset written to "+summary.Dir)
			renderTable(cmd.OutOrStdout(), []string{"File", "Rows"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.OutDir, "out", "data", "output directory")
	cmd.Flags().IntVar(&cfg.Employees, "employees", datagen.DefaultEmployees, "number of employees")
	cmd.Flags().IntVar(&cfg.Tasks, "tasks", datagen.DefaultTasks, "number of tasks")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", datagen.DefaultSeed, "random seed")
	return cmd
}

func smokeCmd() *cobra.Command {
	cfg := datagen.SmokeConfig{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check a running server's health and ranking invariants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := datagen.Smoke(cmd.Context(), cfg)
			renderTable(cmd.OutOrStdout(), []string{"Tasks", "Ranked", "Insufficient", "Failed", "Duration"}, [][]string{{
				strconv.Itoa(stats.Tasks),
				strconv.Itoa(stats.Ranked),
				strconv.Itoa(stats.Insufficient),
				strconv.Itoa(stats.Failed),
				stats.Duration.Round(time.Millisecond).String(),
			}})
			for _, f := range stats.Failures {
				renderWarning(cmd.OutOrStdout(), f)
			}
			if err != nil {
				return fmt.Errorf("smoke: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	cmd.Flags().IntVar(&cfg.TopN, "top", datagen.DefaultSmokeTopN, "teams requested per task")
	cmd.Flags().IntVar(&cfg.Workers, "workers", datagen.DefaultSmokeWorkers, "concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", datagen.DefaultSmokeTimeout, "HTTP request timeout")
	return cmd
}
