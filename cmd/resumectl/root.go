package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resumectl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "resumectl runs the regex and NLP resume parsers on a local file and prints both results",
	SilenceUsage: true,
}

// Execute executes the root command. Ctrl+C cancels a running parse.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// RESUMECTL_SKILLS_FILE, RESUMECTL_DEBUG ...
	viper.SetEnvPrefix("RESUMECTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().String("skills-file", "", `CSV file with a "skill" column (default is the built-in list)`)

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("skills-file", rootCmd.PersistentFlags().Lookup("skills-file"))
}
