package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridsteel/steelflex/config"
	"github.com/gridsteel/steelflex/core/results"
)

var (
	showPrefix string
	showHourly bool
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a stored time series of a solved run",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

func init() {
	showCmd.Flags().StringVar(&showPrefix, "prefix", "power_exchange", "variable family to print")
	showCmd.Flags().BoolVar(&showHourly, "hourly", false, "aggregate to hourly means")
	rootCmd.AddCommand(showCmd)
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := results.NewStore(cfg.Results.Path)
	if err != nil {
		return err
	}
	recs, err := store.Query(args[0], showPrefix)
	if err != nil {
		return err
	}
	vals := results.SeriesByPrefix(recs, showPrefix)
	if len(vals) == 0 {
		return fmt.Errorf("run %s has no series %q", args[0], showPrefix)
	}
	if showHourly {
		vals, err = results.HourlyMeans(vals, cfg.Plant.MinutesPerStep)
		if err != nil {
			return err
		}
	}
	for i, v := range vals {
		cmd.Printf("%s[%d] = %.4f\n", showPrefix, i, v)
	}
	return nil
}
