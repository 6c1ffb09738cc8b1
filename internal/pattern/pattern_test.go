package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() Spec {
	return Spec{
		Pattern:              `(\d{2} \w{3})\s+(.+?)\s+([\d,]+\.\d{2})( ?CR)?$`,
		TransactionDateGroup: 1,
		DescriptionGroup:     2,
		AmountGroup:          3,
		CreditMarkerGroup:    4,
		InvertAmountIfCR:     true,
		DateLayout:           "02 Jan",
	}
}

func TestCompile_Valid(t *testing.T) {
	p, err := Compile("Testbank", validSpec())
	require.NoError(t, err)

	assert.Equal(t, "Testbank", p.Bank)
	assert.Equal(t, 1, p.DateGroup)
	assert.Equal(t, 2, p.DescriptionGroup)
	assert.Equal(t, 3, p.AmountGroup)
	assert.True(t, p.HasCreditMarker())
	assert.False(t, p.DateHasYear)
	assert.True(t, p.NeedsStatementDate())
}

func TestCompile_BadRegex(t *testing.T) {
	spec := validSpec()
	spec.Pattern = `([unclosed`
	_, err := Compile("Testbank", spec)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Testbank", cfgErr.Bank)
}

func TestCompile_EmptyPattern(t *testing.T) {
	spec := validSpec()
	spec.Pattern = "   "
	_, err := Compile("Testbank", spec)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCompile_GroupOutOfRange(t *testing.T) {
	spec := validSpec()
	spec.AmountGroup = 9
	_, err := Compile("Testbank", spec)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "out of range")
}

func TestCompile_MissingRequiredGroup(t *testing.T) {
	spec := validSpec()
	spec.TransactionDateGroup = 0
	_, err := Compile("Testbank", spec)
	assert.ErrorContains(t, err, "transaction_date")
}

func TestCompile_NamedGroups(t *testing.T) {
	spec := Spec{
		Pattern: `(?P<transaction_date>\d{2} \w{3})\s+(?P<description>.+?)\s+` +
			`(?P<amount>[\d,]+\.\d{2})(?P<credit_marker> ?CR)?$`,
		DateLayout: "02 Jan",
	}
	p, err := Compile("Named", spec)
	require.NoError(t, err)

	assert.Equal(t, 1, p.DateGroup)
	assert.Equal(t, 2, p.DescriptionGroup)
	assert.Equal(t, 3, p.AmountGroup)
	assert.Equal(t, 4, p.CreditMarkerGroup)
}

func TestCompile_InvertWithoutCreditMarker(t *testing.T) {
	spec := validSpec()
	spec.CreditMarkerGroup = 0
	spec.Pattern = `(\d{2} \w{3})\s+(.+?)\s+([\d,]+\.\d{2})$`
	_, err := Compile("Testbank", spec)
	assert.ErrorContains(t, err, "invert_amount_if_cr")
}

func TestCompile_BadDateLayout(t *testing.T) {
	spec := validSpec()
	spec.DateLayout = "not a layout"
	_, err := Compile("Testbank", spec)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "parse_date_format")
}

func TestCompile_YearLayoutDetected(t *testing.T) {
	spec := validSpec()
	spec.DateLayout = "02 Jan 2006"
	p, err := Compile("Testbank", spec)
	require.NoError(t, err)

	assert.True(t, p.DateHasYear)
	assert.False(t, p.NeedsStatementDate())
}

func TestCompile_StatementDateValidation(t *testing.T) {
	spec := validSpec()
	spec.StatementDatePattern = `Statement Date: (\d{1,2} \w{3} \d{4})`
	spec.StatementDateLayout = "2 Jan 2006"
	p, err := Compile("Testbank", spec)
	require.NoError(t, err)
	require.NotNil(t, p.StatementDateRe)

	// No capture group.
	spec.StatementDatePattern = `Statement Date: \d{1,2}`
	_, err = Compile("Testbank", spec)
	assert.ErrorContains(t, err, "no capture group")

	// Layout without year.
	spec.StatementDatePattern = `Statement Date: (\d{1,2} \w{3})`
	spec.StatementDateLayout = "2 Jan"
	_, err = Compile("Testbank", spec)
	assert.ErrorContains(t, err, "lacks a year")

	// Pattern without layout.
	spec.StatementDatePattern = `Statement Date: (\d{1,2} \w{3} \d{4})`
	spec.StatementDateLayout = ""
	_, err = Compile("Testbank", spec)
	assert.ErrorContains(t, err, "statement_date_format")
}

func TestCompile_FreeSpacing(t *testing.T) {
	spec := Spec{
		Pattern: "(\\d{2}\\s\\w{3})   # transaction date\n" +
			"\\s+ (.+?) \\s+       # description\n" +
			"([\\d,]+\\.\\d{2}) $  # amount\n",
		FreeSpacing:          true,
		TransactionDateGroup: 1,
		DescriptionGroup:     2,
		AmountGroup:          3,
		DateLayout:           "02 Jan",
	}
	p, err := Compile("Spacey", spec)
	require.NoError(t, err)

	m := p.Regexp.FindStringSubmatch("05 Feb GROCERY RUN 12.30")
	require.NotNil(t, m)
	assert.Equal(t, "05 Feb", m[1])
	assert.Equal(t, "GROCERY RUN", m[2])
	assert.Equal(t, "12.30", m[3])
}

func TestStripFreeSpacing(t *testing.T) {
	assert.Equal(t, `a[ b]c`, stripFreeSpacing("a [ b] c"))
	assert.Equal(t, `ab`, stripFreeSpacing("a # comment\nb"))
	assert.Equal(t, `a[ ]b`, stripFreeSpacing(`a\ b`))
	assert.Equal(t, `\d\s`, stripFreeSpacing(`\d \s`))
}
