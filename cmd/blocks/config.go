package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the active configuration",
	Long: `Print the configuration the game would use, and where it came from.

With --default, print the built-in YAML instead. Save it to
~/.blocks/configs/blocks.yaml and edit the keys you want to change.

Examples:
  blocks config
  blocks config --config ./my-blocks.yaml
  blocks config --default > ~/.blocks/configs/blocks.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}
	if err := printConfig(os.Stdout); err != nil {
		fail("%v", err)
	}
}

func printConfig(w io.Writer) error {
	cfg, source, err := config.LoadBlocksWithSource(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	_, err = w.Write(data)
	return err
}
