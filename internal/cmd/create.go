package cmd

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/carto/create/internal/config"
	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/generator"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/project"
	"github.com/carto/create/internal/prompt"
	"github.com/carto/create/internal/templates"
)

// labelWidth aligns the directory header.
const labelWidth = 20

type createOptions struct {
	template     string
	templatesDir string

	title              string
	auth               bool
	accessToken        string
	authClientID       string
	authOrganizationID string
	authDomain         string

	nonInteractive   bool
	force            bool
	showManifestDiff bool

	// fs and interactive are replaced in tests.
	fs          afero.Fs
	interactive func() bool
}

// NewCreateCmd creates the create command.
func NewCreateCmd(gc *GlobalConfig) *cobra.Command {
	opts := &createOptions{
		fs:          afero.NewOsFs(),
		interactive: output.IsInteractive,
	}

	cmd := &cobra.Command{
		Use:   "create [target-dir]",
		Short: "Create a new application from a template",
		Long: `Create a new application from a template.

The template is copied into the target directory (default: the current
directory), template-only files are removed, package.json is rewritten for
the new project and configuration tokens are replaced with your answers.

Questions not answered by flags, CARTO_CREATE_* environment variables or the
config file are asked interactively. With --non-interactive, or when not
attached to a terminal, missing answers are an error.

Registered templates (angular, react, vue) are read from the create-<name>
directories of the templates directory: --templates-dir,
CARTO_CREATE_TEMPLATES_DIR, templatesDir in the config file, or else a
packages/ directory in the current directory or next to the executable.

Examples:
  # Create a React application in ./my-map
  carto-create create my-map --template react

  # Scripted, using OAuth
  carto-create create my-map -t vue --non-interactive \
    --title "My Map" --auth --auth-client-id abc123

  # Use a template directory outside the registry
  carto-create create my-map --template ./templates/custom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args, gc, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "",
		"Template name ("+strings.Join(templates.Names(), ", ")+") or template directory")
	cmd.Flags().StringVar(&opts.templatesDir, "templates-dir", "",
		"Directory holding the registered templates (env: CARTO_CREATE_TEMPLATES_DIR)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Project title (env: CARTO_CREATE_TITLE)")
	cmd.Flags().BoolVar(&opts.auth, "auth", false, "Use OAuth instead of an access token (env: CARTO_CREATE_AUTH_ENABLED)")
	cmd.Flags().StringVar(&opts.accessToken, "access-token", "", "CARTO access token (env: CARTO_CREATE_ACCESS_TOKEN)")
	cmd.Flags().StringVar(&opts.authClientID, "auth-client-id", "", "OAuth client ID (env: CARTO_CREATE_AUTH_CLIENT_ID)")
	cmd.Flags().StringVar(&opts.authOrganizationID, "auth-organization-id", "",
		"OAuth organization ID for SSO (env: CARTO_CREATE_AUTH_ORGANIZATION_ID)")
	cmd.Flags().StringVar(&opts.authDomain, "auth-domain", "", "OAuth domain (env: CARTO_CREATE_AUTH_DOMAIN)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Never prompt; fail on missing answers")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite a non-empty target directory without asking")
	cmd.Flags().BoolVar(&opts.showManifestDiff, "show-manifest-diff", false,
		"Show how package.json changed from the template")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, gc *GlobalConfig, opts *createOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	input := "."
	if len(args) == 1 {
		input = args[0]
	}

	cfg := gc.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	root := config.ResolveTemplatesDir(opts.templatesDir, cfg.TemplatesDir)
	templateDir, err := templates.Resolve(opts.template, root.Value)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	presets, resolved := opts.presets(cmd, cfg.Defaults.Answers())
	config.LogResolvedValues(append([]config.ResolvedValue{root}, resolved...))

	var collector prompt.Collector
	if !opts.nonInteractive && opts.interactive() {
		collector = prompt.NewInteractive(prompt.WithPresets(presets))
		if opts.force {
			collector = forceOverwrite{collector}
		}
	} else {
		collector = prompt.NewStatic(presets, opts.force)
	}

	gen, err := generator.New(opts.fs, collector)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	projectDir, err := filepath.Abs(input)
	if err != nil {
		return oerrors.NewExitError(err)
	}
	output.Println(output.FormatCheckmark(output.FormatKeyValue("Template directory", templateDir, labelWidth)))
	output.Println(output.FormatCheckmark(output.FormatKeyValue("Target directory", projectDir, labelWidth)))
	output.Println("")

	genOpts := generator.Options{
		TemplateDir: templateDir,
		TargetDir:   input,
	}
	if !gc.Verbose {
		genOpts.Wrap = func(ctx context.Context, generate func(context.Context) error) error {
			return output.RunWithSpinner(ctx, generate, output.WithTitle("Creating project..."))
		}
	}

	result, err := gen.Run(ctx, genOpts)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	output.Println(output.FormatCheckmark("Project \"" + result.Title + "\" was created!"))
	output.Println("")

	if gc.Verbose {
		output.Println(output.RenderChangeTree(filepath.Base(result.ProjectDir), result.Changes()))
	}

	if opts.showManifestDiff {
		diff, err := output.ManifestDiff(result.ManifestBefore, result.ManifestAfter, output.IsTTY())
		if err != nil {
			output.Warn("could not render package.json diff", "error", err)
		} else if diff != "" {
			output.Println(diff)
			output.Println("")
		}
	}

	output.Print(output.FormatNextSteps(generator.NextSteps(input)))
	return nil
}

// presets merges flag values over config defaults. Only flags the user set
// count; an unset --auth must not answer the auth question with false.
func (o *createOptions) presets(cmd *cobra.Command, defaults map[string]string) (prompt.Answers, []config.ResolvedValue) {
	flagValues := map[string]string{
		project.KeyTitle:              o.title,
		project.KeyAuthEnabled:        strconv.FormatBool(o.auth),
		project.KeyAccessToken:        o.accessToken,
		project.KeyAuthClientID:       o.authClientID,
		project.KeyAuthOrganizationID: o.authOrganizationID,
		project.KeyAuthDomain:         o.authDomain,
	}

	answers := make(prompt.Answers)
	var resolved []config.ResolvedValue
	for _, f := range prompt.DefaultFields() {
		flagValue := ""
		if cmd.Flags().Changed(prompt.FlagNames[f.Key]) {
			flagValue = flagValues[f.Key]
		}
		value := config.Resolve(config.ResolveOptions{
			Key:    f.Key,
			Flag:   flagValue,
			Env:    config.DefaultsEnv(f.Key),
			Config: defaults[f.Key],
			Secret: f.Kind == prompt.Secret,
		})
		if value.Set() {
			answers[f.Key] = value.Value
		}
		resolved = append(resolved, value)
	}
	return answers, resolved
}

// forceOverwrite approves clearing a non-empty target without asking.
type forceOverwrite struct {
	prompt.Collector
}

func (forceOverwrite) Confirm(context.Context, string) (bool, error) {
	return true, nil
}
