package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estatement-dev/estatement/internal/config"
)

func newBanksCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "banks",
		Short: "List the configured bank patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			for _, name := range registry.Banks() {
				p, err := registry.Get(name)
				if err != nil {
					return err
				}
				note := ""
				if p.NeedsStatementDate() {
					note = " (year from statement date)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, note)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	return cmd
}
