package costing

import "math"

// Subsidy model constants.
const (
	SubsidyCap         = 100000.0 // absolute cap, binds before tier percent
	BillOffsetFraction = 0.60     // share of the water bill harvested water displaces
	DefaultTierPercent = 50.0     // unknown income tiers resolve to middle
)

// tierPercent maps income category to subsidy percent of total cost.
var tierPercent = map[string]float64{
	"bpl":    90,
	"low":    75,
	"middle": 50,
	"high":   25,
}

// TierPercent returns the subsidy percentage for an income category.
func TierPercent(category string) float64 {
	if p, ok := tierPercent[category]; ok {
		return p
	}
	return DefaultTierPercent
}

// SubsidyAmount computes the tiered subsidy for a total cost. The cap binds
// before the tier percent, and the subsidy never exceeds the cost itself.
func SubsidyAmount(totalCost float64, incomeCategory string) float64 {
	amt := math.Round(totalCost * TierPercent(incomeCategory) / 100.0)
	if amt > SubsidyCap {
		amt = SubsidyCap
	}
	if amt > totalCost {
		amt = totalCost
	}
	if amt < 0 {
		amt = 0
	}
	return amt
}

// NetCost is total minus subsidy, floored at zero.
func NetCost(totalCost, subsidy float64) float64 {
	if n := totalCost - subsidy; n > 0 {
		return n
	}
	return 0
}

// AnnualSavings derives yearly billing offset from the current monthly bill
// at the fixed displacement fraction.
func AnnualSavings(monthlyBillINR float64) float64 {
	return monthlyBillINR * 12 * BillOffsetFraction
}

// PaybackYears returns net cost over annual savings, or nil when savings
// are zero: payback is undefined then, never a division by zero.
func PaybackYears(netCost, annualSavings float64) *float64 {
	if annualSavings <= 0 {
		return nil
	}
	y := netCost / annualSavings
	return &y
}
