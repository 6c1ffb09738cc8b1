package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	banks := r.Banks()
	assert.Contains(t, banks, "Standard Chartered")
	assert.Contains(t, banks, "UOB")
	assert.Contains(t, banks, "Citibank")
	assert.Contains(t, banks, "Trust")
	assert.Contains(t, banks, "HSBC")
	assert.IsIncreasing(t, banks)
}

func TestRegistry_GetUnknownBank(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	_, err = r.Get("Gringotts")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Gringotts", cfgErr.Bank)
}

func TestRegistry_Detect(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	bank, ok := r.Detect("Your Standard Chartered statement is ready")
	require.True(t, ok)
	assert.Equal(t, "Standard Chartered", bank)

	// Alias, not the bank name itself.
	bank, ok = r.Detect("UNITED OVERSEAS BANK LIMITED account summary")
	require.True(t, ok)
	assert.Equal(t, "UOB", bank)

	_, ok = r.Detect("some unrelated text")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	content := `
banks:
  "Mybank":
    pattern: '(\d{2} \w{3})\s+(.+?)\s+([\d,]+\.\d{2})$'
    transaction_date_group: 1
    description_group: 2
    amount_group: 3
    parse_date_format: "02 Jan"
`
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mybank"}, r.Banks())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParse_InvalidBankFailsLoad(t *testing.T) {
	content := []byte(`
banks:
  "Goodbank":
    pattern: '(\d{2} \w{3})\s+(.+?)\s+([\d,]+\.\d{2})$'
    transaction_date_group: 1
    description_group: 2
    amount_group: 3
    parse_date_format: "02 Jan"
  "Badbank":
    pattern: '([unclosed'
    transaction_date_group: 1
    description_group: 1
    amount_group: 1
    parse_date_format: "02 Jan"
`)
	_, err := Parse(content)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Badbank", cfgErr.Bank)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("banks: {}"))
	assert.ErrorContains(t, err, "no banks")
}
