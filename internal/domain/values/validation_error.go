package values

import (
	"fmt"
)

// ValidationError represents a rejected document value
type ValidationError struct {
	Kind   string
	Value  string
	Reason string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Kind, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// scanString normalizes database input for the Scan implementations.
// ok is false for NULL or empty values.
func scanString(value interface{}, target string) (s string, ok bool, err error) {
	if value == nil {
		return "", false, nil
	}

	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return "", false, fmt.Errorf("cannot scan %T into %s", value, target)
	}

	return s, s != "", nil
}
