// Package cli implements the shadow-oracle command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shadow-oracle",
	Short: "shadow-oracle - fabricate mock oracle accounts for Solana testing",
	Long: `shadow-oracle fabricates on-chain account data for Pyth, Switchboard and
Chainlink price feeds without touching a network. Accounts can be printed for
inspection or persisted to a local store for reuse by test harnesses.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// initConfig loads the optional configuration file. Keys under "feeds"
// override the standard feed defaults, e.g.:
//
//	feeds:
//	  sol:
//	    price: 150.0
//	    confidence: 0.2
func initConfig() {
	if configFile == "" {
		return
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read config %s: %v\n", configFile, err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger: a development logger when --verbose is
// set, a nop logger otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
