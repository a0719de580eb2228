// Package cpf validates, formats, masks and generates CPF numbers, the
// 11-digit Brazilian taxpayer ID for individuals.
//
// Every function takes free-form input and cleans it first, so callers may
// pass "123.456.789-09" or "12345678909" interchangeably.
package cpf

import (
	"fmt"

	"github.com/davidleathers/brdocs/internal/domain/digits"
	"github.com/davidleathers/brdocs/internal/domain/errors"
)

// Length is the number of digits in a CPF.
const Length = 11

const baseLength = 9

// ErrInvalid is returned by Process when validation is requested and fails.
var ErrInvalid = errors.NewValidationError("INVALID_CPF", "invalid CPF")

// Result aggregates the outcome of Process.
type Result struct {
	Original  string `json:"original"`
	Cleaned   string `json:"cleaned"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
	Masked    string `json:"masked,omitempty"`
}

// ProcessOptions selects the steps Process runs.
type ProcessOptions struct {
	Validate bool
	Format   bool
	Mask     bool
}

// DefaultProcessOptions validates and formats without masking.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{Validate: true, Format: true}
}

// Clean strips every non-digit character.
func Clean(input string) string {
	return digits.Clean(input)
}

// Validate reports whether input holds a CPF with correct check digits.
func Validate(input string) bool {
	return valid(Clean(input))
}

func valid(cleaned string) bool {
	if len(cleaned) != Length {
		return false
	}
	if digits.AllSame(cleaned) {
		return false
	}

	d := digits.Values(cleaned)
	for t := baseLength; t < Length; t++ {
		sum := 0
		for c := 0; c < t; c++ {
			sum += d[c] * ((t + 1) - c)
		}
		if d[t] != digits.Verifier(sum) {
			return false
		}
	}
	return true
}

// Format renders input as DDD.DDD.DDD-DD. Input that does not clean to 11
// digits is returned cleaned but otherwise untouched.
func Format(input string) string {
	return format(Clean(input))
}

func format(cleaned string) string {
	if len(cleaned) != Length {
		return cleaned
	}
	return fmt.Sprintf("%s.%s.%s-%s", cleaned[0:3], cleaned[3:6], cleaned[6:9], cleaned[9:11])
}

// Mask hides the middle six digits: 123.XXX.XXX-09.
func Mask(input string) string {
	return mask(Clean(input))
}

func mask(cleaned string) string {
	if len(cleaned) != Length {
		return cleaned
	}
	return cleaned[:3] + ".XXX.XXX-" + cleaned[Length-2:]
}

// Generate synthesizes a random valid CPF. The source is not retained.
func Generate(src digits.Source, formatted bool) string {
	var base string
	for {
		base = fmt.Sprintf("%09d", src.Int64N(1_000_000_000))
		// repeated-digit bases produce repeated-digit CPFs, which never validate
		if !digits.AllSame(base) {
			break
		}
	}

	for i := 0; i < 2; i++ {
		d := digits.Values(base)
		sum := 0
		for j := 0; j < baseLength+i; j++ {
			sum += d[j] * (10 + i - j)
		}
		base += fmt.Sprint(digits.Mod11(sum))
	}

	if formatted {
		return format(base)
	}
	return base
}

// Process cleans and validates input once and assembles a Result. It returns
// ErrInvalid, and no result, when opts.Validate is set and input is not a CPF.
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
	if opts.Mask {
		res.Masked = mask(cleaned)
	}
	return res, nil
}
