package formulation

import (
	"fmt"

	"github.com/pkg/errors"
)

// Configuration errors. They always abort the build.
var (
	// ErrUnknownConstraint indicates a constraint kind with no dispatch entry.
	ErrUnknownConstraint = errors.New("formulation: constraint not defined")

	// ErrUnknownCost indicates a cost kind with no dispatch entry.
	ErrUnknownCost = errors.New("formulation: cost not defined")

	// ErrUnknownDerivative indicates a cost handler asked for neither
	// position nor velocity.
	ErrUnknownDerivative = errors.New("formulation: wrong derivative type")

	// ErrMalformedTask indicates task vectors of the wrong size, a limb
	// list that does not match the parameters, invalid parameters or a
	// build started before any task was mapped.
	ErrMalformedTask = errors.New("formulation: malformed locomotion task")
)

// ConfigError wraps a configuration error with the offending value and the
// place it was detected.
type ConfigError struct {
	Site  string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %v (got %v)", e.Site, e.Err, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(site string, value any, err error) error {
	return &ConfigError{Site: site, Value: value, Err: err}
}
