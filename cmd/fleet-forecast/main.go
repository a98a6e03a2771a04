package main

import (
	"os"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath   string
	outputFormat string
	logLevel     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "fleet-forecast",
		Short:        "Project the cost, savings and payback of converting a vehicle fleet to CNG",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd.OutOrStdout(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(forecastCmd(opts))
	rootCmd.AddCommand(stationCmd(opts))
	rootCmd.AddCommand(sensitivityCmd(opts))
	rootCmd.AddCommand(configCmd(opts))
	return rootCmd
}

func forecastCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Run every active scenario and print the projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd.OutOrStdout(), opts)
		},
	}
}

func stationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "station",
		Short: "Size and price the fueling station of every active scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStation(cmd.OutOrStdout(), opts)
		},
	}
}

func sensitivityCmd(opts *options) *cobra.Command {
	var sweep sweepFlags

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep inputs around their configured values and report ROI swings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSensitivity(cmd.OutOrStdout(), opts, sweep)
		},
	}

	cmd.Flags().IntVar(&sweep.steps, "steps", 0, "points per variable (default from config)")
	cmd.Flags().Float64Var(&sweep.span, "span", 0, "relative swing on each side, e.g. 0.2 (default from config)")
	cmd.Flags().StringSliceVar(&sweep.variables, "variables", nil, "variables to sweep (default all)")
	return cmd
}

func configCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd.OutOrStdout(), opts)
		},
	}
}
