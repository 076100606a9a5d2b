package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/voicehop/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the hop config",
	Long: `Print the built-in hop config as YAML, ready to copy to
~/.voicehop/configs/hop.yaml and edit.

With --resolved, prints the config the game would load instead, after the
search order (--config, ~/.voicehop/configs/hop.yaml, ./configs/hop.yaml,
built-in defaults).

Examples:
  voicehop config > ~/.voicehop/configs/hop.yaml
  voicehop config --resolved --config ./my-hop.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the config after the search order is applied")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom hop config YAML")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigResolved {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadHop(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
