package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ideanet/config"
)

func (a *app) configCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: "Print the configuration after presets, the config file, IDEANET_* environment\n" +
			"variables and flags are applied. The output loads back with --config.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "toml or yaml")
	return cmd
}
