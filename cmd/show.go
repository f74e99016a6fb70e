package cmd

import (
	"errors"
	"fmt"

	"github.com/olibartfast/vision-infra/config"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [flags]",
		Short: "Print the configuration resolved from the environment and flags",
		Long: "Load INFERENCE_* environment variables, override them with the given " +
			"flags, print the result and check it. Run 'show --help' for the flags.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd, config.RulesValidator{})
			cfg, err := resolve(m, args)
			if errors.Is(err, config.ErrHelp) {
				return nil
			}
			if err != nil {
				return err
			}

			closer, err := setupLogging(cfg)
			defer closer.Close()
			if err != nil {
				return err
			}
			log.Debugf("Resolved configuration for model %q", cfg.ModelName)

			if err := m.Print(cmd.OutOrStdout(), cfg); err != nil {
				return err
			}
			if !m.Validate(cfg) {
				return fmt.Errorf("invalid configuration: %s", m.ValidationErrors(cfg))
			}
			return nil
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the configuration read from INFERENCE_* environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd, nil)
			cfg, err := m.LoadFromEnvironment()
			if err != nil {
				return err
			}
			return m.Print(cmd.OutOrStdout(), cfg)
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [flags]",
		Short: "Check every field of the resolved configuration",
		Long: "Resolve the configuration like 'show' and check required fields, " +
			"ranges and enumerated values of every field.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd, config.NewStructValidator())
			cfg, err := resolve(m, args)
			if errors.Is(err, config.ErrHelp) {
				return nil
			}
			if err != nil {
				return err
			}
			if !m.Validate(cfg) {
				return fmt.Errorf("invalid configuration: %s", m.ValidationErrors(cfg))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}
}
