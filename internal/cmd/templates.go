package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/carto/create/internal/config"
	"github.com/carto/create/internal/disk"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/templates"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(gc *GlobalConfig) *cobra.Command {
	var templatesDir string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the registered templates",
		Long: `List the registered templates and where they are looked up.

A template is available when its directory exists below the templates
directory (--templates-dir, CARTO_CREATE_TEMPLATES_DIR, templatesDir in the
config file, or a packages/ directory in the current directory or next to
the executable).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTemplates(gc, afero.NewOsFs(), templatesDir)
		},
	}

	cmd.Flags().StringVar(&templatesDir, "templates-dir", "",
		"Directory holding the registered templates (env: CARTO_CREATE_TEMPLATES_DIR)")

	return cmd
}

func runTemplates(gc *GlobalConfig, fsys afero.Fs, flagValue string) error {
	configValue := ""
	if gc.Config != nil {
		configValue = gc.Config.TemplatesDir
	}
	root := config.ResolveTemplatesDir(flagValue, configValue)
	config.LogResolvedValues([]config.ResolvedValue{root})

	styles := output.GetStyles()
	for _, t := range templates.List() {
		dir := t.Path(root.Value)
		status := styles.Success.Render("available")
		kind, err := disk.Inspect(fsys, dir)
		if err != nil || kind != disk.Directory {
			status = styles.Muted.Render("not found")
		}
		output.Println(fmt.Sprintf("%s  %s",
			output.FormatKeyValue(t.Name, dir, 10), status))
		output.Println("          " + styles.Muted.Render(t.Description))
	}
	return nil
}
