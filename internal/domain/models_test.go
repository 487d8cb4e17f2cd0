package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAQValidate(t *testing.T) {
	faq := FAQ{
		ID:       "installment-plans",
		Question: "Do you offer installment?",
		Answer:   "Yes.",
		Keywords: []string{" installment ", "", "financing"},
	}
	require.NoError(t, faq.Validate())
	assert.Equal(t, []string{"installment", "financing"}, faq.Keywords)

	tests := []struct {
		name string
		faq  FAQ
	}{
		{"missing id", FAQ{Question: "q", Answer: "a", Keywords: []string{"k"}}},
		{"missing question", FAQ{ID: "x", Answer: "a", Keywords: []string{"k"}}},
		{"missing answer", FAQ{ID: "x", Question: "q", Keywords: []string{"k"}}},
		{"blank keywords", FAQ{ID: "x", Question: "q", Answer: "a", Keywords: []string{"  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.faq.Validate()
			require.Error(t, err)
			assert.True(t, IsType(err, ErrorTypeValidation))
		})
	}
}

func TestFAQValidate_DoesNotAliasInput(t *testing.T) {
	keywords := []string{"", "solar"}
	faq := FAQ{ID: "x", Question: "q", Answer: "a", Keywords: keywords}
	require.NoError(t, faq.Validate())
	assert.Equal(t, []string{"", "solar"}, keywords)
}

func TestPackageValidate(t *testing.T) {
	pkg := Package{Code: " ong-2k-p1 ", Name: "2kW On-Grid", Type: PackageTypeOnGrid, CashPrice: 104800}
	require.NoError(t, pkg.Validate())
	assert.Equal(t, "ONG-2K-P1", pkg.Code)

	bad := []Package{
		{Name: "no code", Type: PackageTypeOnGrid},
		{Code: "X-1", Type: PackageTypeOnGrid},
		{Code: "X-1", Name: "n", Type: "offgrid"},
		{Code: "X-1", Name: "n", Type: PackageTypeHybrid, CashPrice: -1},
	}
	for i, p := range bad {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.True(t, IsType(p.Validate(), ErrorTypeValidation))
		})
	}
}

func TestPackageTypeLabel(t *testing.T) {
	assert.Equal(t, "On-Grid", PackageTypeOnGrid.Label())
	assert.Equal(t, "Hybrid (Large)", PackageTypeHybridLarge.Label())
	assert.Equal(t, "custom", PackageType("custom").Label())
	assert.False(t, PackageType("custom").Valid())
}

func TestDomainErrors(t *testing.T) {
	cause := errors.New("boom")
	err := ProviderError("completion failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[provider] completion failed: boom", err.Error())
	assert.True(t, IsType(fmt.Errorf("wrapped: %w", err), ErrorTypeProvider))
	assert.False(t, IsType(cause, ErrorTypeProvider))

	miss := LookupMiss("package ONG-9K not found")
	assert.True(t, IsNotFound(miss))
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", ErrNotFound)))
	assert.False(t, IsNotFound(cause))
	assert.Equal(t, "[validation] bad", ValidationError("bad", nil).Error())
}
