package pricing

import (
	"math"

	"github.com/sawa-travel/marketplace/internal/models"
)

// Commission rates by host category. Office hosts pay a lower platform cut
// but an extra office fee on top; the traveler total comes out the same for
// the same base price.
const (
	SawaPercentOffice      = 28.0
	SawaPercentIndependent = 35.0
	OfficePercent          = 7.0
)

type Breakdown struct {
	PriceBase     float64 `json:"price_base"`
	SawaPercent   float64 `json:"sawa_percent"`
	SawaFee       float64 `json:"sawa_fee"`
	OfficePercent float64 `json:"office_percent"`
	OfficeFee     float64 `json:"office_fee"`
	Total         float64 `json:"total"`
}

// ServiceBreakdown computes the traveler-facing price breakdown for a service
// offer. Each term is rounded to 2 decimal places independently before
// summation; displayed breakdowns sum the rounded terms, so rounding once at
// the end would drift from them by a cent.
func ServiceBreakdown(base float64, hostType models.HostType) Breakdown {
	b := Breakdown{PriceBase: Round2(base)}

	if hostType == models.HostOffice {
		b.SawaPercent = SawaPercentOffice
		b.OfficePercent = OfficePercent
		b.OfficeFee = Round2(b.PriceBase * OfficePercent / 100)
	} else {
		b.SawaPercent = SawaPercentIndependent
	}
	b.SawaFee = Round2(b.PriceBase * b.SawaPercent / 100)
	b.Total = Round2(b.PriceBase + b.SawaFee + b.OfficeFee)

	return b
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
