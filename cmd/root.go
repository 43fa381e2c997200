/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"os"

	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/constant"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "robinclaw",
	Short: "Hyperliquid perpetual futures trading client",
	Long: `Robinclaw is a trading client for Hyperliquid perpetual futures:
market data reads, order placement, and a read-only web API.

All monetary values are decimals end to end. Orders are single best-effort
submissions; failures surface immediately and exit non-zero.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		logrus.SetReportCaller(config.Env.Log.ShowCaller)

		if config.Env.Env == constant.ProductionEnvironment {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}

		logLevel, err := logrus.ParseLevel(config.Env.Log.LogLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(logLevel)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.yml)")
}
