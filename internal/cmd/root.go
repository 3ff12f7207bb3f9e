// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carto/create/internal/config"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE and
// shared with every sub-command.
type GlobalConfig struct {
	// Config is the loaded configuration file. Unset values stay empty so
	// the resolver can report where each value came from.
	Config *config.Config

	// ConfigPath is the resolved config file location.
	ConfigPath string

	// LoadErr is set when the config file could not be read. Commands run
	// with built-in defaults; config vet reports it.
	LoadErr error

	Verbose bool

	configFlag     string
	timestampsFlag bool
}

// NewRootCmd creates the root command for carto-create.
func NewRootCmd() *cobra.Command {
	gc := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "carto-create",
		Short: "Create CARTO for deck.gl applications from templates",
		Long: `carto-create scaffolds a new CARTO for deck.gl application from one of the
bundled templates (angular, react, vue) or from any template directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return gc.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&gc.configFlag, "config", "", "Path to config file (env: CARTO_CREATE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&gc.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&gc.timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCreateCmd(gc))
	rootCmd.AddCommand(NewTemplatesCmd(gc))
	rootCmd.AddCommand(NewConfigCmd(gc))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initialize sets up logging and loads configuration.
func (gc *GlobalConfig) initialize(cmd *cobra.Command) error {
	output.SetupLogging(output.LogConfig{Verbose: gc.Verbose})

	configPath, err := config.ResolveConfigPath(gc.configFlag)
	if err != nil {
		return err
	}
	gc.ConfigPath = configPath.Value

	cfg, err := config.NewLoader().Load(gc.ConfigPath)
	if err != nil {
		// Don't fail here; commands that don't need config still work
		gc.LoadErr = err
		cfg = &config.Config{}
	}
	gc.Config = cfg

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: gc.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(gc.timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if gc.LoadErr != nil {
		output.Warn("ignoring unreadable config file", "path", gc.ConfigPath, "error", gc.LoadErr)
	}

	output.Debug("carto-create started", "version", version.Version)
	config.LogResolvedValues([]config.ResolvedValue{configPath})
	return nil
}
