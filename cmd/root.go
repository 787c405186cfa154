package cmd

import (
	"fmt"
	"os"

	"github.com/multipattern/pfacmatch/cmd/match"
	"github.com/multipattern/pfacmatch/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "pfacmatch",
	Short:   "pfacmatch scans input for a fixed set of patterns",
	Long:    fmt.Sprintf("pfacmatch %s - multi-pattern exact-string matcher (parallel failureless Aho-Corasick)", version.GetVersion()),
	Version: version.GetFullVersion(),
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(match.MatchCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pfacmatch.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pfacmatch")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
