package values

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/davidleathers/brdocs/internal/domain/cpf"
)

// CPF represents a validated individual taxpayer ID value object
type CPF struct {
	digits string // Stored cleaned (11 digits)
}

// NewCPF creates a new CPF value object with validation
func NewCPF(raw string) (CPF, error) {
	if raw == "" {
		return CPF{}, &ValidationError{Kind: "CPF", Value: raw, Reason: "cannot be empty"}
	}

	cleaned := cpf.Clean(raw)
	if !cpf.Validate(cleaned) {
		return CPF{}, &ValidationError{Kind: "CPF", Value: raw, Reason: "check digits do not match", Cause: cpf.ErrInvalid}
	}

	return CPF{digits: cleaned}, nil
}

// MustNewCPF creates CPF and panics on error (for constants/tests)
func MustNewCPF(raw string) CPF {
	v, err := NewCPF(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the formatted CPF
func (c CPF) String() string {
	return c.Formatted()
}

// Digits returns the 11 cleaned digits
func (c CPF) Digits() string {
	return c.digits
}

// Formatted returns DDD.DDD.DDD-DD
func (c CPF) Formatted() string {
	return cpf.Format(c.digits)
}

// Masked returns the privacy-preserving rendering
func (c CPF) Masked() string {
	return cpf.Mask(c.digits)
}

// IsEmpty checks if the CPF is the zero value
func (c CPF) IsEmpty() bool {
	return c.digits == ""
}

// Equal checks if two CPF values are equal
func (c CPF) Equal(other CPF) bool {
	return c.digits == other.digits
}

// MarshalJSON implements JSON marshaling
func (c CPF) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.digits)
}

// UnmarshalJSON implements JSON unmarshaling
func (c *CPF) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v, err := NewCPF(raw)
	if err != nil {
		return err
	}

	*c = v
	return nil
}

// Value implements driver.Valuer for database storage
func (c CPF) Value() (driver.Value, error) {
	if c.digits == "" {
		return nil, nil
	}
	return c.digits, nil
}

// Scan implements sql.Scanner for database retrieval
func (c *CPF) Scan(value interface{}) error {
	s, ok, err := scanString(value, "CPF")
	if err != nil {
		return err
	}
	if !ok {
		*c = CPF{}
		return nil
	}

	v, err := NewCPF(s)
	if err != nil {
		return err
	}

	*c = v
	return nil
}
