package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/carto/create/internal/config"
	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for carto-create.`,
	}

	cmd.AddCommand(newConfigInitCmd(gc))
	cmd.AddCommand(newConfigVetCmd(gc))

	return cmd
}

func newConfigInitCmd(gc *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a default configuration file to ~/.carto-create/config.yaml
(or the path given by --config / CARTO_CREATE_CONFIG).

Examples:
  # Initialize configuration
  carto-create config init

  # Overwrite existing configuration
  carto-create config init --force`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(gc, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

func runConfigInit(gc *GlobalConfig, force bool) error {
	path, err := config.ExpandPath(gc.ConfigPath)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return oerrors.NewExitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	data, err := config.Render(config.Initial())
	if err != nil {
		return oerrors.NewExitError(err)
	}

	// Secure permissions: the file may hold an access token
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewExitError(oerrors.NewFilesystemError("mkdir", filepath.Dir(path), err))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.NewExitError(oerrors.NewFilesystemError("write", path, err))
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + path))
	output.Println("Validate with: carto-create config vet")
	return nil
}

func newConfigVetCmd(gc *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file against the internal schema.

The file at ~/.carto-create/config.yaml is validated by default. Use --config
to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigVet(gc)
		},
	}
}

func runConfigVet(gc *GlobalConfig) error {
	path, err := config.ExpandPath(gc.ConfigPath)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return oerrors.NewExitError(oerrors.NewConfigurationError(
			fmt.Sprintf("config file not found: %s", path), path,
			"Run 'carto-create config init' to create one"))
	}
	if err != nil {
		return oerrors.NewExitError(oerrors.NewFilesystemError("read", path, err))
	}

	validator, err := config.NewValidator()
	if err != nil {
		return oerrors.NewExitError(err)
	}
	if err := validator.Validate(data, path); err != nil {
		return oerrors.NewExitError(err)
	}

	output.Println(output.FormatCheckmark("Config file is valid: " + path))
	return nil
}
