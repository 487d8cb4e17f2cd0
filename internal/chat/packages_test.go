package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeso(t *testing.T) {
	assert.Equal(t, "₱104,800", Peso(104800))
	assert.Equal(t, "₱1,234.56", Peso(1234.56))
	assert.Equal(t, "₱0", Peso(0))
	assert.Equal(t, "₱999", Peso(999))
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, "2 kW", Capacity(2000))
	assert.Equal(t, "6.5 kW", Capacity(6500))
}

func TestFormatPackage(t *testing.T) {
	card := FormatPackage(testPackages[0])

	assert.True(t, strings.HasPrefix(card, "**2kW On-Grid Starter** (ONG-2K-P1)"))
	assert.Contains(t, card, "- **Type:** On-Grid")
	assert.Contains(t, card, "- **System size:** 2 kW")
	assert.Contains(t, card, "- **Cash price:** ₱104,800")
	assert.Contains(t, card, "Monthly bills up to ₱3,000")
	assert.NotContains(t, card, "SRP")
	assert.NotContains(t, card, "Financing price")
	assert.True(t, strings.HasSuffix(card, "get a detailed quotation for this package?"))

	hybrid := FormatPackage(testPackages[2])
	assert.Contains(t, hybrid, "- **Financing price:** ₱465,000")
	assert.Contains(t, hybrid, "- **Type:** Hybrid")
}

func TestFormatCatalog(t *testing.T) {
	catalog := FormatCatalog(testPackages)
	lines := strings.Split(strings.TrimSpace(catalog), "\n")
	assert.Len(t, lines, len(testPackages))
	assert.Equal(t, "- ONG-2K-P1: 2kW On-Grid Starter, On-Grid, 2 kW, cash ₱104,800 (suitable for Monthly bills up to ₱3,000)", lines[0])
	assert.Contains(t, lines[1], "SRP ₱240,000")
	assert.Contains(t, lines[3], "Hybrid (Small)")

	assert.Empty(t, FormatCatalog(nil))
}
