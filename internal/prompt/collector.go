package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/project"
)

// CancelMessage is reported whenever the user aborts project creation.
const CancelMessage = "Project creation cancelled."

// Collector obtains the decisions the orchestrator cannot make alone.
type Collector interface {
	// Confirm asks a yes/no question. Declining is not an error.
	Confirm(ctx context.Context, message string) (bool, error)

	// Collect asks every visible field in order and returns the resulting
	// configuration.
	Collect(ctx context.Context, fields []Field) (*project.Config, error)
}

// Static answers from preset values without user interaction.
type Static struct {
	// Answers are the preset answers, typically from flags, env and config.
	Answers Answers

	// Overwrite is the answer to every confirmation.
	Overwrite bool
}

// NewStatic returns a Static collector.
func NewStatic(answers Answers, overwrite bool) *Static {
	return &Static{Answers: answers, Overwrite: overwrite}
}

// Confirm returns the preset overwrite decision.
func (s *Static) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, oerrors.NewCancelledError(CancelMessage)
	}
	return s.Overwrite, nil
}

// Collect resolves every visible field from the presets. A required field
// without a value is a validation error naming the field.
func (s *Static) Collect(ctx context.Context, fields []Field) (*project.Config, error) {
	collected := Answers{}
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return nil, oerrors.NewCancelledError(CancelMessage)
		}
		if !f.Visible(collected) {
			continue
		}
		value, err := resolve(f, s.Answers[f.Key])
		if err != nil {
			return nil, err
		}
		collected[f.Key] = value
	}
	return collected.Config(), nil
}

// resolve applies defaults and the required check to a raw answer.
func resolve(f Field, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = f.Default
	}

	if f.Kind == Toggle {
		if value == "" {
			return "false", nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", oerrors.NewValidationError(
				fmt.Sprintf("%s: %q is not a boolean", f.Title, raw), f.Key, "Use true or false")
		}
		return strconv.FormatBool(b), nil
	}

	if f.Required && value == "" {
		msg := f.RequiredMessage
		if msg == "" {
			msg = f.Title + " is required"
		}
		return "", oerrors.NewValidationError(msg, f.Key, flagHint(f.Key))
	}
	return value, nil
}

// FlagNames maps configuration keys to the create command's flags.
var FlagNames = map[string]string{
	project.KeyTitle:              "title",
	project.KeyAuthEnabled:        "auth",
	project.KeyAccessToken:        "access-token",
	project.KeyAuthClientID:       "auth-client-id",
	project.KeyAuthOrganizationID: "auth-organization-id",
	project.KeyAuthDomain:         "auth-domain",
}

func flagHint(key string) string {
	if flag, ok := FlagNames[key]; ok {
		return fmt.Sprintf("Pass --%s or run interactively", flag)
	}
	return "Run interactively"
}
