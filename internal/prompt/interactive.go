package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/project"
)

// Interactive asks questions on the terminal with huh forms. Each field
// runs as its own form so that later fields can depend on earlier answers.
type Interactive struct {
	// Presets are answers that are not asked again, typically from flags.
	Presets Answers

	input  io.Reader
	output io.Writer
	theme  *huh.Theme

	// ask runs one field; replaced in tests.
	ask func(ctx context.Context, f Field, answers Answers) (string, error)
}

// InteractiveOption configures an Interactive collector.
type InteractiveOption func(*Interactive)

// WithIO sets the terminal streams used by the forms.
func WithIO(in io.Reader, out io.Writer) InteractiveOption {
	return func(c *Interactive) {
		c.input = in
		c.output = out
	}
}

// WithPresets sets answers that skip their question.
func WithPresets(a Answers) InteractiveOption {
	return func(c *Interactive) {
		c.Presets = a
	}
}

// NewInteractive returns a huh-backed collector.
func NewInteractive(opts ...InteractiveOption) *Interactive {
	c := &Interactive{theme: newTheme()}
	c.ask = c.askField
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm shows a yes/no prompt defaulting to no.
func (c *Interactive) Confirm(ctx context.Context, message string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := c.run(ctx, field); err != nil {
		return false, err
	}
	return ok, nil
}

// Collect asks each visible field that has no preset.
func (c *Interactive) Collect(ctx context.Context, fields []Field) (*project.Config, error) {
	collected := Answers{}
	for _, f := range fields {
		if !f.Visible(collected) {
			continue
		}

		if preset := strings.TrimSpace(c.Presets[f.Key]); preset != "" {
			value, err := resolve(f, preset)
			if err != nil {
				return nil, err
			}
			output.Debug("using preset answer", "field", f.Key)
			collected[f.Key] = value
			continue
		}

		raw, err := c.ask(ctx, f, collected)
		if err != nil {
			return nil, err
		}
		value, err := resolve(f, raw)
		if err != nil {
			return nil, err
		}
		collected[f.Key] = value
	}
	return collected.Config(), nil
}

func (c *Interactive) askField(ctx context.Context, f Field, _ Answers) (string, error) {
	if f.Kind == Toggle {
		var on bool
		if def, err := strconv.ParseBool(f.Default); err == nil {
			on = def
		}
		field := huh.NewConfirm().
			Title(f.Title).
			Description(f.Hint).
			Affirmative(f.Affirmative).
			Negative(f.Negative).
			Value(&on)
		if err := c.run(ctx, field); err != nil {
			return "", err
		}
		return strconv.FormatBool(on), nil
	}

	value := ""
	if err := c.run(ctx, buildInput(f, &value)); err != nil {
		return "", err
	}
	return value, nil
}

// buildInput creates the huh input for a text or secret field.
func buildInput(f Field, value *string) *huh.Input {
	in := huh.NewInput().
		Title(f.Title).
		Description(f.Hint).
		Value(value).
		Validate(validator(f))
	if f.Default != "" {
		in = in.Placeholder(f.Default)
	}
	if f.Kind == Secret {
		in = in.EchoMode(huh.EchoModePassword)
	}
	return in
}

// validator rejects empty answers to required fields so the form re-prompts.
func validator(f Field) func(string) error {
	return func(s string) error {
		if f.Required && strings.TrimSpace(s) == "" && f.Default == "" {
			msg := f.RequiredMessage
			if msg == "" {
				msg = f.Title + " is required"
			}
			return errors.New(msg)
		}
		return nil
	}
}

func (c *Interactive) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(c.theme)
	if c.input != nil {
		form = form.WithInput(c.input)
	}
	if c.output != nil {
		form = form.WithOutput(c.output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		// huh reports a cancelled context as ErrTimeout.
		if ctx.Err() != nil || errors.Is(err, huh.ErrUserAborted) || errors.Is(err, huh.ErrTimeout) {
			return oerrors.NewCancelledError(CancelMessage)
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func newTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(output.ColorCyan).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(output.ColorDimGray)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(output.ColorBoldRed)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Background(output.ColorCyan).
		Foreground(lipgloss.Color("0"))
	return t
}
