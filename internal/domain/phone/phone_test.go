package phone

import (
	"testing"
	"testing/quick"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/brdocs/internal/domain/digits"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "mobile with spaces", input: "55 82 996484440", want: true},
		{name: "mobile raw", input: "5582996484440", want: true},
		{name: "landline twelve digits", input: "+55 (11) 3456-7890", want: true},
		{name: "highest area code", input: "5599912345678", want: true},
		{name: "area code not on list", input: "55009912345678", want: false},
		{name: "area code 12 not on list", input: "5512912345678", want: false},
		{name: "wrong country", input: "5482996484440", want: false},
		{name: "too short", input: "55829964844", want: false},
		{name: "fourteen digits", input: "55829964844401", want: false},
		{name: "thirteen digits without mobile marker", input: "5582896484440", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.input))
		})
	}
}

func TestStyle_Known(t *testing.T) {
	for _, s := range []Style{StyleInternational, StyleNational, StyleLocal} {
		assert.True(t, s.Known(), s)
	}
	assert.False(t, Style("").Known())
	assert.False(t, Style("e164").Known())
}

func TestAreaCodes(t *testing.T) {
	codes := AreaCodes()
	assert.Len(t, codes, 20)
	assert.Equal(t, "11", codes[0])
	assert.Equal(t, "99", codes[len(codes)-1])

	codes[0] = "00"
	assert.Equal(t, "11", AreaCodes()[0], "returned slice must be a copy")

	assert.True(t, IsAreaCode("82"))
	assert.False(t, IsAreaCode("12"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style Style
		want  string
	}{
		{name: "international", input: "55 82 996484440", style: StyleInternational, want: "+55 (82) 99648-4440"},
		{name: "national", input: "5582996484440", style: StyleNational, want: "(82) 99648-4440"},
		{name: "local", input: "5582996484440", style: StyleLocal, want: "99648-4440"},
		{name: "unknown style", input: "55 82 996484440", style: Style("e164"), want: "5582996484440"},
		{name: "empty style", input: "5582996484440", style: "", want: "5582996484440"},
		{name: "landline keeps five digit split", input: "551134567890", style: StyleNational, want: "(11) 34567-890"},
		{name: "invalid returns cleaned", input: "55 00 99123-4567", style: StyleInternational, want: "5500991234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input, tt.style))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("mobile", func(t *testing.T) {
		p, err := Parse("55 82 996484440")
		require.NoError(t, err)

		assert.Equal(t, &Parsed{
			CountryCode: "55",
			AreaCode:    "82",
			Number:      "996484440",
			IsMobile:    true,
		}, p)
	})

	t.Run("landline", func(t *testing.T) {
		p, err := Parse("551134567890")
		require.NoError(t, err)

		assert.Equal(t, "34567890", p.Number)
		assert.False(t, p.IsMobile)
	})

	t.Run("eight digit number starting with 9 counts as mobile", func(t *testing.T) {
		p, err := Parse("551194567890")
		require.NoError(t, err)
		assert.True(t, p.IsMobile)
	})

	t.Run("invalid", func(t *testing.T) {
		p, err := Parse("55009912345678")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestE164(t *testing.T) {
	got, err := E164("(82) 99648-4440 55")
	require.Error(t, err, "country code must lead")
	assert.Empty(t, got)

	got, err = E164("+55 (82) 99648-4440")
	require.NoError(t, err)
	assert.Equal(t, "+5582996484440", got)

	_, err = E164("55009912345678")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGenerate(t *testing.T) {
	src := digits.NewSource(5)

	raw := Generate(src, false)
	assert.Len(t, raw, 13)
	assert.True(t, Validate(raw))
	assert.Equal(t, byte('9'), raw[4])

	formatted := Generate(src, true)
	assert.Regexp(t, `^\+55 \(\d{2}\) 9\d{4}-\d{4}$`, formatted)
	assert.True(t, Validate(formatted))
}

type sequenceSource struct {
	values []int64
	calls  int
}

func (s *sequenceSource) Int64N(n int64) int64 {
	v := s.values[s.calls%len(s.values)] % n
	s.calls++
	return v
}

func TestGenerate_Bounds(t *testing.T) {
	low := Generate(&sequenceSource{values: []int64{0, 0}}, false)
	assert.Equal(t, "5511910000000", low)

	high := Generate(&sequenceSource{values: []int64{19, 89_999_999}}, false)
	assert.Equal(t, "5599999999999", high)
}

func TestGenerate_AlwaysValid(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("generated numbers validate and use listed area codes", prop.ForAll(
		func(seed uint64) bool {
			n := Generate(digits.NewSource(seed), false)
			return Validate(n) && IsAreaCode(n[2:4])
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestFormat_Properties(t *testing.T) {
	t.Run("format is invariant to pre-cleaning", func(t *testing.T) {
		property := func(s string, styleIdx uint8) bool {
			styles := []Style{StyleInternational, StyleNational, StyleLocal, "other"}
			style := styles[int(styleIdx)%len(styles)]
			return Format(Clean(s), style) == Format(s, style)
		}
		require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
	})

	t.Run("clean reverses local format for the subscriber number", func(t *testing.T) {
		src := digits.NewSource(8)
		for i := 0; i < 1000; i++ {
			s := Generate(src, false)
			require.Equal(t, s[4:], Clean(Format(s, StyleLocal)))
			require.Equal(t, s, Clean(Format(s, StyleInternational)))
		}
	})
}

func TestProcess(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		res, err := Process("55 82 996484440", DefaultProcessOptions())
		require.NoError(t, err)

		assert.Equal(t, "55 82 996484440", res.Original)
		assert.Equal(t, "5582996484440", res.Cleaned)
		assert.True(t, res.Valid)
		assert.Equal(t, "+55 (82) 99648-4440", res.Formatted)
		require.NotNil(t, res.Parsed)
		assert.True(t, res.Parsed.IsMobile)
		assert.Equal(t, "82", res.Parsed.AreaCode)
	})

	t.Run("style is applied", func(t *testing.T) {
		res, err := Process("5582996484440", ProcessOptions{Validate: true, Style: StyleLocal})
		require.NoError(t, err)
		assert.Equal(t, "99648-4440", res.Formatted)
	})

	t.Run("invalid with validation", func(t *testing.T) {
		res, err := Process("55009912345678", DefaultProcessOptions())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("invalid without validation", func(t *testing.T) {
		res, err := Process("55 00 99123-4567", ProcessOptions{Style: StyleInternational})
		require.NoError(t, err)

		assert.False(t, res.Valid)
		assert.Equal(t, "5500991234567", res.Formatted)
		assert.Nil(t, res.Parsed)
	})
}

func FuzzValidate(f *testing.F) {
	f.Add("55 82 996484440")
	f.Add("")
	f.Fuzz(func(t *testing.T, input string) {
		if Validate(input) {
			n := len(Clean(input))
			if n != 12 && n != 13 {
				t.Fatalf("validated %q with length %d", input, n)
			}
		}
		_ = Format(input, StyleInternational)
		_, _ = Parse(input)
	})
}
