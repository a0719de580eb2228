package values

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
)

// CNPJ represents a validated legal-entity taxpayer ID value object
type CNPJ struct {
	digits string // Stored cleaned (14 digits)
}

// NewCNPJ creates a new CNPJ value object with validation
func NewCNPJ(raw string) (CNPJ, error) {
	if raw == "" {
		return CNPJ{}, &ValidationError{Kind: "CNPJ", Value: raw, Reason: "cannot be empty"}
	}

	cleaned := cnpj.Clean(raw)
	if !cnpj.Validate(cleaned) {
		return CNPJ{}, &ValidationError{Kind: "CNPJ", Value: raw, Reason: "check digits do not match", Cause: cnpj.ErrInvalid}
	}

	return CNPJ{digits: cleaned}, nil
}

// MustNewCNPJ creates CNPJ and panics on error (for constants/tests)
func MustNewCNPJ(raw string) CNPJ {
	v, err := NewCNPJ(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the formatted CNPJ
func (c CNPJ) String() string {
	return c.Formatted()
}

// Digits returns the 14 cleaned digits
func (c CNPJ) Digits() string {
	return c.digits
}

// Formatted returns DD.DDD.DDD/DDDD-DD
func (c CNPJ) Formatted() string {
	return cnpj.Format(c.digits)
}

// IsEmpty checks if the CNPJ is the zero value
func (c CNPJ) IsEmpty() bool {
	return c.digits == ""
}

// Equal checks if two CNPJ values are equal
func (c CNPJ) Equal(other CNPJ) bool {
	return c.digits == other.digits
}

// MarshalJSON implements JSON marshaling
func (c CNPJ) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.digits)
}

// UnmarshalJSON implements JSON unmarshaling
func (c *CNPJ) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v, err := NewCNPJ(raw)
	if err != nil {
		return err
	}

	*c = v
	return nil
}

// Value implements driver.Valuer for database storage
func (c CNPJ) Value() (driver.Value, error) {
	if c.digits == "" {
		return nil, nil
	}
	return c.digits, nil
}

// Scan implements sql.Scanner for database retrieval
func (c *CNPJ) Scan(value interface{}) error {
	s, ok, err := scanString(value, "CNPJ")
	if err != nil {
		return err
	}
	if !ok {
		*c = CNPJ{}
		return nil
	}

	v, err := NewCNPJ(s)
	if err != nil {
		return err
	}

	*c = v
	return nil
}
