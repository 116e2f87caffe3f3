// Package cli implements the pixelmill command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pixelmill/pixelmill/internal/api"
	"github.com/pixelmill/pixelmill/internal/config"
	"github.com/pixelmill/pixelmill/internal/logger"
)

var (
	configPath string
	cfg        *config.Config
	manager    *api.Manager
)

var rootCmd = &cobra.Command{
	Use:   "pixelmill",
	Short: "pixelmill - parameterized image transformation",
	Long: `pixelmill transforms images with a compact instruction string.

Examples:
  pixelmill process -i photo.jpg -o thumb.jpg "w=300&h=200&fit=cover"
  pixelmill process -i logo.png -o logo.webp "output=webp&sat=0"
  pixelmill meta photo.jpg`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel)
		manager = api.New(cfg)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metaCmd)
}
