package dashboard

import (
	"context"
	"fmt"

	"github.com/trezcool/alumni/core"
)

// submitResult is the outcome of a form submission. A validation failure yields fieldErrors;
// any other failure yields err.
type submitResult struct {
	fieldErrors map[string]string
	err         error
}

func (res submitResult) ok() bool {
	return res.err == nil && len(res.fieldErrors) == 0
}

// submit sends a form and maps the failure to either field errors or a form error.
// Form errors are logged; field errors are not.
func submit(ctx context.Context, logger core.Logger, form string, send func(context.Context) error) submitResult {
	err := send(ctx)
	if err == nil {
		return submitResult{}
	}
	if vErr, ok := core.AsValidationError(err); ok && len(vErr.Fields) > 0 {
		return submitResult{fieldErrors: vErr.FieldMap()}
	}
	logger.Error(fmt.Sprintf("dashboard.%s.Submit: %v", form, err), err)
	return submitResult{err: err}
}

func copyFieldErrors(fe map[string]string) map[string]string {
	cp := make(map[string]string, len(fe))
	for k, v := range fe {
		cp[k] = v
	}
	return cp
}
