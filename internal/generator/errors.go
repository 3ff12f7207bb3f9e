package generator

import (
	"errors"
	"fmt"

	oerrors "github.com/carto/create/internal/errors"
)

// StepError identifies the generation step that failed. Steps already
// completed are not rolled back.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	var detail *oerrors.DetailError
	if errors.As(e.Err, &detail) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// newStepError records the step on structured errors so it is rendered
// with the rest of the details.
func newStepError(step string, err error) error {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		ctx := make(map[string]string, len(detail.Context)+1)
		for k, v := range detail.Context {
			ctx[k] = v
		}
		ctx["Step"] = step
		annotated := *detail
		annotated.Context = ctx
		err = &annotated
	}
	return &StepError{Step: step, Err: err}
}
