// Package cnpj validates, formats and generates CNPJ numbers, the 14-digit
// Brazilian taxpayer ID for legal entities.
package cnpj

import (
	"fmt"
	"strings"

	"github.com/davidleathers/brdocs/internal/domain/digits"
	"github.com/davidleathers/brdocs/internal/domain/errors"
)

// Length is the number of digits in a CNPJ.
const Length = 14

const baseLength = 12

var zeroBase = strings.Repeat("0", baseLength)

// ErrInvalid is returned by Process when validation is requested and fails.
var ErrInvalid = errors.NewValidationError("INVALID_CNPJ", "invalid CNPJ")

// Result aggregates the outcome of Process.
type Result struct {
	Original  string `json:"original"`
	Cleaned   string `json:"cleaned"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
}

// ProcessOptions selects the steps Process runs.
type ProcessOptions struct {
	Validate bool
	Format   bool
}

// DefaultProcessOptions validates and formats.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{Validate: true, Format: true}
}

// Clean strips every non-digit character.
func Clean(input string) string {
	return digits.Clean(input)
}

// Validate reports whether input holds a CNPJ with correct check digits.
func Validate(input string) bool {
	return valid(Clean(input))
}

// valid weighs the digits before position t with (t-7)..2 followed by 9..2.
func valid(cleaned string) bool {
	if len(cleaned) != Length {
		return false
	}
	if digits.AllSame(cleaned) {
		return false
	}

	d := digits.Values(cleaned)
	for t := baseLength; t < Length; t++ {
		sum, c := 0, 0
		for w := t - 7; w >= 2; w, c = w-1, c+1 {
			sum += d[c] * w
		}
		for w := 9; w >= 2; w, c = w-1, c+1 {
			sum += d[c] * w
		}
		if d[t] != digits.Verifier(sum) {
			return false
		}
	}
	return true
}

// Format renders input as DD.DDD.DDD/DDDD-DD. Input that does not clean to
// 14 digits is returned cleaned but otherwise untouched.
func Format(input string) string {
	return format(Clean(input))
}

func format(cleaned string) string {
	if len(cleaned) != Length {
		return cleaned
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s",
		cleaned[0:2],
		cleaned[2:5],
		cleaned[5:8],
		cleaned[8:12],
		cleaned[12:14])
}

// Generate synthesizes a random valid CNPJ. The source is not retained.
func Generate(src digits.Source, formatted bool) string {
	var base string
	for {
		base = fmt.Sprintf("%014d", src.Int64N(100_000_000_000_000))[:baseLength]
		// an all-zero base would yield the all-zero CNPJ, which never validates
		if base != zeroBase {
			break
		}
	}

	for i := 0; i < 2; i++ {
		d := digits.Values(base)
		sum := 0
		pos := 5 + i
		for j := 0; j < baseLength+i; j++ {
			sum += d[j] * pos
			if pos == 2 {
				pos = 9
			} else {
				pos--
			}
		}
		base += fmt.Sprint(digits.Mod11(sum))
	}

	if formatted {
		return format(base)
	}
	return base
}

// Process cleans and validates input once and assembles a Result. It returns
// ErrInvalid, and no result, when opts.Validate is set and input is not a CNPJ.
func Process(input string, opts ProcessOptions) (*Result, error) {
	cleaned := Clean(input)
	ok := valid(cleaned)
	if opts.Validate && !ok {
		return nil, ErrInvalid
	}

	res := &Result{
		Original: input,
		Cleaned:  cleaned,
		Valid:    ok,
	}
	if opts.Format {
		res.Formatted = format(cleaned)
	}
	return res, nil
}
