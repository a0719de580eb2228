package values

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/davidleathers/brdocs/internal/domain/phone"
)

// BRPhone represents a validated Brazilian phone number value object
type BRPhone struct {
	number string // Stored cleaned: 55 + area code + 8 or 9 digits
}

// NewBRPhone creates a new BRPhone value object with validation
func NewBRPhone(raw string) (BRPhone, error) {
	if raw == "" {
		return BRPhone{}, &ValidationError{Kind: "phone number", Value: raw, Reason: "cannot be empty"}
	}

	cleaned := phone.Clean(raw)
	if !phone.Validate(cleaned) {
		return BRPhone{}, &ValidationError{
			Kind:   "phone number",
			Value:  raw,
			Reason: "expected 55, a listed area code and 8 or 9 digits",
			Cause:  phone.ErrInvalid,
		}
	}

	return BRPhone{number: cleaned}, nil
}

// MustNewBRPhone creates BRPhone and panics on error (for constants/tests)
func MustNewBRPhone(raw string) BRPhone {
	p, err := NewBRPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the phone number in international style
func (p BRPhone) String() string {
	return p.Format(phone.StyleInternational)
}

// Digits returns the cleaned digits
func (p BRPhone) Digits() string {
	return p.number
}

// Format renders the number in the given style
func (p BRPhone) Format(style phone.Style) string {
	return phone.Format(p.number, style)
}

// Parsed returns the number components, or nil for the zero value
func (p BRPhone) Parsed() *phone.Parsed {
	parsed, err := phone.Parse(p.number)
	if err != nil {
		return nil
	}
	return parsed
}

// AreaCode returns the two-digit area code
func (p BRPhone) AreaCode() string {
	if p.number == "" {
		return ""
	}
	return p.number[2:4]
}

// IsMobile checks if the subscriber number carries the mobile marker
func (p BRPhone) IsMobile() bool {
	parsed := p.Parsed()
	return parsed != nil && parsed.IsMobile
}

// E164 returns the number in E.164 format
func (p BRPhone) E164() string {
	e164, err := phone.E164(p.number)
	if err != nil {
		return ""
	}
	return e164
}

// IsEmpty checks if the phone number is empty
func (p BRPhone) IsEmpty() bool {
	return p.number == ""
}

// Equal checks if two BRPhone values are equal
func (p BRPhone) Equal(other BRPhone) bool {
	return p.number == other.number
}

// MarshalJSON implements JSON marshaling
func (p BRPhone) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.number)
}

// UnmarshalJSON implements JSON unmarshaling
func (p *BRPhone) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v, err := NewBRPhone(raw)
	if err != nil {
		return err
	}

	*p = v
	return nil
}

// Value implements driver.Valuer for database storage
func (p BRPhone) Value() (driver.Value, error) {
	if p.number == "" {
		return nil, nil
	}
	return p.number, nil
}

// Scan implements sql.Scanner for database retrieval
func (p *BRPhone) Scan(value interface{}) error {
	s, ok, err := scanString(value, "BRPhone")
	if err != nil {
		return err
	}
	if !ok {
		*p = BRPhone{}
		return nil
	}

	v, err := NewBRPhone(s)
	if err != nil {
		return err
	}

	*p = v
	return nil
}
