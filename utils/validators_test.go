package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("2024-2-1"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, IsValidCurrency("AUD"))
	assert.False(t, IsValidCurrency("aud"))
	assert.False(t, IsValidCurrency("AUSD"))
}

func TestIsValidTaxRate(t *testing.T) {
	assert.True(t, IsValidTaxRate(0))
	assert.True(t, IsValidTaxRate(100))
	assert.False(t, IsValidTaxRate(-1))
	assert.False(t, IsValidTaxRate(100.5))
}
