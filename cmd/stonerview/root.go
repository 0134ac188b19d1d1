package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stonerview",
	Short: "StonerView oscillator animation for the terminal",
	Long: `StonerView drives forty elements through a graph of integer oscillators and draws them
in the terminal. Motion graphs come from bundled presets or YAML files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Preferences file (default: user config dir/stonerview/config.yaml)")
	rootCmd.PersistentFlags().StringP("preset", "p", "", "Bundled preset ("+presetList()+") or preset YAML file")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for the phaser oscillators")
	rootCmd.PersistentFlags().Float64("speed", 0, "Animation speed multiplier")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}
