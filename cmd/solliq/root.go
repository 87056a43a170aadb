package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/internal/config"
	"github.com/aretw0/solliq/internal/presentation/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solliq",
		Short: "Solidus and liquidus temperatures of planetary materials",
		Long: `solliq evaluates melting curves of peridotite, basalt and Fe-S alloys
as functions of pressure, from the surface to planetary core conditions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			home, _ := os.UserHomeDir()
			return config.Init(cfgFile, home)
		},
		Run: func(cmd *cobra.Command, args []string) {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(solliq.Version))
			cmd.Help()
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "config file (default .solliq.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("json", false, "print results as JSON")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newSolidusCmd(),
		newLiquidusCmd(),
		newPhaseCmd(),
		newAlloyCmd(),
		newEutecticCmd(),
		newConvertCmd(),
		newInterpolateCmd(),
		newReferencesCmd(),
		newCurveCmd(),
		newDiagramCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
