package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawa-travel/marketplace/internal/models"
)

func TestServiceBreakdown_IndependentHost(t *testing.T) {
	b := ServiceBreakdown(100.00, models.HostIndependent)

	assert.Equal(t, 100.00, b.PriceBase)
	assert.Equal(t, 35.0, b.SawaPercent)
	assert.Equal(t, 35.00, b.SawaFee)
	assert.Equal(t, 0.0, b.OfficeFee)
	assert.Equal(t, 135.00, b.Total)
}

func TestServiceBreakdown_OfficeHost(t *testing.T) {
	b := ServiceBreakdown(100.00, models.HostOffice)

	assert.Equal(t, 28.0, b.SawaPercent)
	assert.Equal(t, 28.00, b.SawaFee)
	assert.Equal(t, 7.0, b.OfficePercent)
	assert.Equal(t, 7.00, b.OfficeFee)
	assert.Equal(t, 135.00, b.Total)
}

// Per-term rounding: 33.33 * 28% = 9.3324 → 9.33, 33.33 * 7% = 2.3331 → 2.33.
// Summing the rounded terms gives 44.99; rounding once at the end would too
// here, but the terms themselves must match the displayed breakdown.
func TestServiceBreakdown_RoundsEachTerm(t *testing.T) {
	b := ServiceBreakdown(33.33, models.HostOffice)

	assert.Equal(t, 9.33, b.SawaFee)
	assert.Equal(t, 2.33, b.OfficeFee)
	assert.Equal(t, 44.99, b.Total)
}

func TestServiceBreakdown_RoundsBase(t *testing.T) {
	b := ServiceBreakdown(99.999, models.HostIndependent)

	assert.Equal(t, 100.00, b.PriceBase)
	assert.Equal(t, 35.00, b.SawaFee)
}
