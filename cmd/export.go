package cmd

import (
	"errors"
	"fmt"

	"github.com/olibartfast/vision-infra/config"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file> [flags]",
		Short: "Write the resolved configuration to a file",
		Long: "Resolve the configuration like 'show' and write it to file. The format " +
			"follows the extension: .yaml, .yml, .json or .toml.",
		DisableFlagParsing: true,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd, nil)
			cfg, err := resolve(m, args[1:])
			if errors.Is(err, config.ErrHelp) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := m.SaveToFile(cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
			return nil
		},
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Print a configuration file written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd, config.RulesValidator{})
			cfg, err := m.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := m.Print(cmd.OutOrStdout(), cfg); err != nil {
				return err
			}
			if params := cfg.CustomParams(); len(params) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Custom Params: %d\n", len(params))
			}
			if !m.Validate(cfg) {
				log.Warnf("Configuration in %s is incomplete: %s", args[0], m.ValidationErrors(cfg))
			}
			return nil
		},
	}
}
