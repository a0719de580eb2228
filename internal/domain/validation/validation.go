package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
	"github.com/davidleathers/brdocs/internal/domain/cpf"
	"github.com/davidleathers/brdocs/internal/domain/phone"
)

// Struct tags registered by New.
const (
	TagCPF     = "cpf"
	TagCNPJ    = "cnpj"
	TagBRPhone = "br_phone"
)

// ValidateCPF validates an individual taxpayer ID. Every failure wraps
// cpf.ErrInvalid with the reason.
func ValidateCPF(value string) error {
	if value == "" {
		return fmt.Errorf("CPF cannot be empty: %w", cpf.ErrInvalid)
	}

	cleaned := cpf.Clean(value)
	if len(cleaned) != cpf.Length {
		return fmt.Errorf("CPF must have %d digits, got %d: %w", cpf.Length, len(cleaned), cpf.ErrInvalid)
	}

	if !cpf.Validate(cleaned) {
		return fmt.Errorf("check digits do not match: %w", cpf.ErrInvalid)
	}

	return nil
}

// ValidateCNPJ validates a legal-entity taxpayer ID
func ValidateCNPJ(value string) error {
	if value == "" {
		return fmt.Errorf("CNPJ cannot be empty: %w", cnpj.ErrInvalid)
	}

	cleaned := cnpj.Clean(value)
	if len(cleaned) != cnpj.Length {
		return fmt.Errorf("CNPJ must have %d digits, got %d: %w", cnpj.Length, len(cleaned), cnpj.ErrInvalid)
	}

	if !cnpj.Validate(cleaned) {
		return fmt.Errorf("check digits do not match: %w", cnpj.ErrInvalid)
	}

	return nil
}

// ValidateBRPhone validates a Brazilian phone number
func ValidateBRPhone(value string) error {
	if value == "" {
		return fmt.Errorf("phone number cannot be empty: %w", phone.ErrInvalid)
	}

	cleaned := phone.Clean(value)
	if !strings.HasPrefix(cleaned, phone.CountryCode) {
		return fmt.Errorf("phone number must start with country code %s: %w", phone.CountryCode, phone.ErrInvalid)
	}

	if len(cleaned) >= 4 && !phone.IsAreaCode(cleaned[2:4]) {
		return fmt.Errorf("area code %s is not accepted: %w", cleaned[2:4], phone.ErrInvalid)
	}

	if !phone.Validate(cleaned) {
		return fmt.Errorf("malformed number: %w", phone.ErrInvalid)
	}

	return nil
}

// New returns a validator with the document tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(TagCPF, func(fl validator.FieldLevel) bool {
		return cpf.Validate(fl.Field().String())
	})
	_ = v.RegisterValidation(TagCNPJ, func(fl validator.FieldLevel) bool {
		return cnpj.Validate(fl.Field().String())
	})
	_ = v.RegisterValidation(TagBRPhone, func(fl validator.FieldLevel) bool {
		return phone.Validate(fl.Field().String())
	})

	return v
}

// FieldErrors flattens validator errors into field -> failing tag.
// Errors that are not validator.ValidationErrors yield nil.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
