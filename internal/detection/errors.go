package detection

import (
	"errors"
	"fmt"
)

// Messages shown when a shell precondition is not met.
const (
	MsgSelectPlugin = "Please select a cancer type."
	MsgUploadImage  = "Please upload an image."
)

// Error kinds as reported to shells and stored in history.
const (
	KindValidation = "validation"
	KindLoad       = "load"
	KindContract   = "contract"
	KindExecution  = "execution"
)

// ValidationError means the user has not supplied everything a detection needs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// LoadError means the plugin could not be found or failed while loading.
type LoadError struct {
	Plugin string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load plugin %q: %v", e.Plugin, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ContractError means the plugin was found but does not expose the Predict entry point.
// Err is set when the plugin file itself names no entry point.
type ContractError struct {
	Plugin string
	Err    error
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("the plugin %q does not have a 'Predict' entry point (%v)", e.Plugin, e.Err)
	}
	return fmt.Sprintf("the plugin %q does not have a 'Predict' entry point", e.Plugin)
}

func (e *ContractError) Unwrap() error { return e.Err }

// ExecutionError carries the failure raised by a plugin's Predict. Its message is the raised text, unchanged.
type ExecutionError struct {
	Plugin string
	Err    error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }

func (e *ExecutionError) Unwrap() error { return e.Err }

// Kind returns the taxonomy name of err, or "" when err is not one of the detection errors.
func Kind(err error) string {
	var (
		validation *ValidationError
		load       *LoadError
		contract   *ContractError
		execution  *ExecutionError
	)
	switch {
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &load):
		return KindLoad
	case errors.As(err, &contract):
		return KindContract
	case errors.As(err, &execution):
		return KindExecution
	}
	return ""
}

// Title is the heading shells put above an error message.
func Title(err error) string {
	switch Kind(err) {
	case KindExecution:
		return "Execution Error"
	case KindLoad:
		return "Load Error"
	case KindContract:
		return "Contract Error"
	}
	return "Error"
}
