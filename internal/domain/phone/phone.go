// Package phone validates, formats, parses and generates Brazilian phone
// numbers written with the 55 country prefix, a two-digit area code, an
// optional mobile marker 9 and an eight-digit subscriber number.
package phone

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/nyaruka/phonenumbers"

	"github.com/davidleathers/brdocs/internal/domain/digits"
	"github.com/davidleathers/brdocs/internal/domain/errors"
)

// CountryCode is the Brazilian calling code every valid number starts with.
const CountryCode = "55"

// Style selects the layout produced by Format.
type Style string

const (
	StyleInternational Style = "international"
	StyleNational      Style = "national"
	StyleLocal         Style = "local"
)

// Known reports whether s is one of the named styles.
func (s Style) Known() bool {
	switch s {
	case StyleInternational, StyleNational, StyleLocal:
		return true
	default:
		return false
	}
}

// ErrInvalid is returned by Parse, E164 and Process when the number fails validation.
var ErrInvalid = errors.NewValidationError("INVALID_PHONE", "invalid phone number")

var (
	structureRegex = regexp.MustCompile(`^55\d{2}9?\d{8}$`)

	// Fixed snapshot; kept as-is rather than tracking telecom allocations.
	areaCodes = []string{
		"11", "21", "31", "41", "51", "61", "71", "81", "82", "83",
		"84", "85", "86", "91", "92", "95", "96", "97", "98", "99",
	}
)

// Parsed holds the components of a valid number.
type Parsed struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
	IsMobile    bool   `json:"is_mobile"`
}

// Result aggregates the outcome of Process.
type Result struct {
	Original  string  `json:"original"`
	Cleaned   string  `json:"cleaned"`
	Valid     bool    `json:"valid"`
	Formatted string  `json:"formatted"`
	Parsed    *Parsed `json:"parsed,omitempty"`
}

// ProcessOptions selects validation and the output style for Process.
type ProcessOptions struct {
	Validate bool
	Style    Style
}

// DefaultProcessOptions validates and formats internationally.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{Validate: true, Style: StyleInternational}
}

// AreaCodes returns a copy of the accepted area codes.
func AreaCodes() []string {
	return slices.Clone(areaCodes)
}

// IsAreaCode reports whether code is on the allow-list.
func IsAreaCode(code string) bool {
	return slices.Contains(areaCodes, code)
}

// Clean strips every non-digit character.
func Clean(input string) string {
	return digits.Clean(input)
}

// Validate reports whether input is a well-formed number in an accepted area.
func Validate(input string) bool {
	return valid(Clean(input))
}

func valid(cleaned string) bool {
	if !structureRegex.MatchString(cleaned) {
		return false
	}
	return IsAreaCode(cleaned[2:4])
}

// Format renders input in the given style. Invalid input, or an unknown
// style, yields the cleaned digits.
func Format(input string, style Style) string {
	cleaned := Clean(input)
	if !valid(cleaned) {
		return cleaned
	}
	return format(cleaned, style)
}

// format expects a validated number.
func format(cleaned string, style Style) string {
	country, area, number := cleaned[:2], cleaned[2:4], cleaned[4:]
	switch style {
	case StyleInternational:
		return fmt.Sprintf("+%s (%s) %s-%s", country, area, number[:5], number[5:])
	case StyleNational:
		return fmt.Sprintf("(%s) %s-%s", area, number[:5], number[5:])
	case StyleLocal:
		return number[:5] + "-" + number[5:]
	default:
		return cleaned
	}
}

// Parse splits a valid number into its components.
func Parse(input string) (*Parsed, error) {
	cleaned := Clean(input)
	if !valid(cleaned) {
		return nil, ErrInvalid
	}
	return parse(cleaned), nil
}

func parse(cleaned string) *Parsed {
	return &Parsed{
		CountryCode: cleaned[:2],
		AreaCode:    cleaned[2:4],
		Number:      cleaned[4:],
		IsMobile:    cleaned[4] == '9',
	}
}

// E164 returns the number as +55AAXXXXXXXXX.
func E164(input string) (string, error) {
	cleaned := Clean(input)
	if !valid(cleaned) {
		return "", ErrInvalid
	}

	num, err := phonenumbers.Parse("+"+cleaned, "BR")
	if err != nil {
		return "", ErrInvalid.WithCause(err)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Generate synthesizes a random valid mobile number. Formatted output uses
// the international style.
func Generate(src digits.Source, formatted bool) string {
	area := areaCodes[src.Int64N(int64(len(areaCodes)))]
	subscriber := 10_000_000 + src.Int64N(90_000_000)

	number := fmt.Sprintf("%s%s9%d", CountryCode, area, subscriber)
	if formatted {
		return format(number, StyleInternational)
	}
	return number
}

// Process cleans and validates input once and assembles a Result with the
// formatted number and, for valid input, its parsed components. It returns
// ErrInvalid, and no result, when opts.Validate is set and input is invalid.
func Process(input string, opts ProcessOptions) (*Result, error) {
	cleaned := Clean(input)
	ok := valid(cleaned)
	if opts.Validate && !ok {
		return nil, ErrInvalid
	}

	res := &Result{
		Original:  input,
		Cleaned:   cleaned,
		Valid:     ok,
		Formatted: cleaned,
	}
	if ok {
		res.Formatted = format(cleaned, opts.Style)
		res.Parsed = parse(cleaned)
	}
	return res, nil
}
