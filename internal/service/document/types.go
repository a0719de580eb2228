package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
	"github.com/davidleathers/brdocs/internal/domain/cpf"
	"github.com/davidleathers/brdocs/internal/domain/errors"
	"github.com/davidleathers/brdocs/internal/domain/phone"
	"github.com/davidleathers/brdocs/internal/domain/values"
)

// Kind names a document type
type Kind string

const (
	KindCPF   Kind = "cpf"
	KindCNPJ  Kind = "cnpj"
	KindPhone Kind = "phone"
)

// Kinds lists every supported kind
func Kinds() []Kind {
	return []Kind{KindCPF, KindCNPJ, KindPhone}
}

// ParseKind resolves a case-insensitive kind name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindCPF, KindCNPJ, KindPhone:
		return k, nil
	default:
		return "", errors.ErrUnknownKind.WithDetails(map[string]interface{}{"kind": s})
	}
}

// Record is one input row holding any of the three documents
type Record struct {
	ID    uuid.UUID `json:"id"`
	CPF   string    `json:"cpf,omitempty" validate:"omitempty,cpf"`
	CNPJ  string    `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Phone string    `json:"phone,omitempty" validate:"omitempty,br_phone"`
}

// IsEmpty reports whether the record carries no document at all
func (r Record) IsEmpty() bool {
	return r.CPF == "" && r.CNPJ == "" && r.Phone == ""
}

// RecordResult aggregates per-field handler results for one record
type RecordResult struct {
	ID     uuid.UUID         `json:"id"`
	CPF    *cpf.Result       `json:"cpf,omitempty"`
	CNPJ   *cnpj.Result      `json:"cnpj,omitempty"`
	Phone  *phone.Result     `json:"phone,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Valid reports whether every present field passed validation
func (r *RecordResult) Valid() bool {
	return len(r.Errors) == 0
}

// Normalized holds typed value objects; empty fields stay zero values
type Normalized struct {
	ID    uuid.UUID      `json:"id"`
	CPF   values.CPF     `json:"cpf"`
	CNPJ  values.CNPJ    `json:"cnpj"`
	Phone values.BRPhone `json:"phone"`
}

// Options configures the service
type Options struct {
	PhoneStyle  phone.Style
	MaskCPF     bool
	Concurrency int
}

// DefaultOptions mirrors the handler defaults
func DefaultOptions() Options {
	return Options{
		PhoneStyle:  phone.StyleInternational,
		Concurrency: 8,
	}
}

func (o Options) validate() error {
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	if !o.PhoneStyle.Known() {
		return fmt.Errorf("unknown phone style %q", o.PhoneStyle)
	}
	return nil
}
