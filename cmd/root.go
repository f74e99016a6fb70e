package cmd

import (
	"github.com/olibartfast/vision-infra/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vision-infra",
		Short: "Inference client configuration tool",
		Long: "vision-infra resolves the configuration of an inference client from " +
			"INFERENCE_* environment variables and command-line flags, validates it " +
			"and prints or exports the result.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newShowCmd(),
		newEnvCmd(),
		newValidateCmd(),
		newExportCmd(),
		newLoadCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}
