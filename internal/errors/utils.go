package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a PathError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *PathError {
	if err == nil {
		return nil
	}

	// Keep the location details of an inner PathError visible on the wrapper
	var pe *PathError
	if errors.As(err, &pe) {
		return &PathError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       pe,
			ID:          pe.ID,
			Template:    pe.Template,
			Segment:     pe.Segment,
			Index:       pe.Index,
			Placeholder: pe.Placeholder,
			Context:     pe.Context,
		}
	}

	return &PathError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
		Index:   -1,
	}
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, message string) *PathError {
	return Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, message string) *PathError {
	return Wrap(err, ErrorTypeInternal, ErrCodeInternalError, message)
}

// Chain returns every PathError in err's chain, outermost first.
func Chain(err error) []*PathError {
	var chain []*PathError
	for err != nil {
		var pe *PathError
		if !errors.As(err, &pe) {
			break
		}
		chain = append(chain, pe)
		err = pe.Cause
	}

	return chain
}

// Root returns the innermost PathError in the chain, or nil.
func Root(err error) *PathError {
	chain := Chain(err)
	if len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1]
}
