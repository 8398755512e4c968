package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfigMode     string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would use, after the config file,
difficulty preset and mode rules are applied.

With --defaults the embedded default file is printed instead; save it to
~/.tetris/configs/tetris.yaml as a starting point for customization.

Examples:
  tetris config
  tetris config --mode marathon --difficulty hard
  tetris config --defaults > ~/.tetris/configs/tetris.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigMode, "mode", "", "Apply the rules of this mode")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagConfigMode != "" {
		if cfg, err = registry.Configure(flagConfigMode, cfg); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	return enc.Close()
}
