// Package fractal holds the error taxonomy shared by the rendering
// packages and their adapters.
package fractal

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrUnknownPalette   = errors.New("unknown palette")
	ErrDegenerateRegion = errors.New("degenerate region")
)

// ParamError wraps an underlying error with the name and raw value of the
// offending parameter. It always classifies as ErrInvalidParam.
type ParamError struct {
	Name  string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("parameter %q=%q: %v", e.Name, e.Value, e.Err)
	}
	return fmt.Sprintf("parameter %q=%q", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes every ParamError match ErrInvalidParam, so callers can classify
// without caring which parameter failed.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParam
}
