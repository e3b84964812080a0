package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "aftermath",
	Short: "aftermath - equity index performance after geopolitical events",
	Long: `aftermath computes forward-looking compound annual growth rates of a
daily equity-index price series following historical geopolitical events,
at 1, 3 and 5 year horizons, using a trading-day offset convention.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
