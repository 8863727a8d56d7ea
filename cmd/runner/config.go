package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-runner/internal/config"
)

var flagConfigPath bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in configuration as YAML. Save it to the user config
path and edit it to tune the game; partial files only override the keys
they mention.

Examples:
  runner config > ~/.arcade/configs/runner.yaml
  runner config --path`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigPath, "path", false, "Print the config search paths instead")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagConfigPath {
		if p := config.UserConfigPath(); p != "" {
			fmt.Println(p)
		}
		fmt.Println(config.LocalConfigPath)
		return
	}

	if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
