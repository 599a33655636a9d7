// Package experience turns loosely structured résumé extraction output into
// a canonical ResumeProfile.
package experience

import "fmt"

// LoadError represents an error reading or decoding a résumé document
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
