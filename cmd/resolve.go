package cmd

import (
	"io"

	"github.com/olibartfast/vision-infra/config"
	"github.com/olibartfast/vision-infra/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newManager returns a manager whose usage text goes to the command's
// output and which can read and write every supported file format.
func newManager(cmd *cobra.Command, validator config.Validator) *config.Manager {
	m := config.NewManager(&config.DefaultLoader{Output: cmd.OutOrStdout()}, validator)
	m.RegisterSerializer(".yaml", config.YAMLSerializer{})
	m.RegisterSerializer(".yml", config.YAMLSerializer{})
	m.RegisterSerializer(".json", config.ViperSerializer{})
	m.RegisterSerializer(".toml", config.ViperSerializer{})
	return m
}

// resolve loads the environment as the base and the flags in args as the
// override. Custom parameters from both sources are kept, flags winning on
// the same key. It returns config.ErrHelp when help was requested.
func resolve(m *config.Manager, args []string) (*config.InferenceConfig, error) {
	base, err := m.LoadFromEnvironment()
	if err != nil {
		return nil, err
	}
	override, err := m.LoadFromCommandLine(args)
	if err != nil {
		return nil, err
	}
	merged := m.Merge(base, override)
	for k, v := range override.CustomParams() {
		merged.SetCustomParam(k, v)
	}
	return merged, nil
}

// setupLogging applies the config's log settings to the shared logger.
// Verbose raises the default level to debug.
func setupLogging(cfg *config.InferenceConfig) (io.Closer, error) {
	closer, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return closer, err
	}
	if cfg.Verbose && log.GetLevel() < logrus.DebugLevel {
		logging.InitLogger(logrus.DebugLevel)
	}
	return closer, nil
}
