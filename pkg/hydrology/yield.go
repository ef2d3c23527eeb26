package hydrology

import (
	"math"

	"rwh/entities"
)

// CollectionEfficiency is the fixed fraction of roof runoff that survives
// first-flush loss and conveyance into storage.
const CollectionEfficiency = 0.90

const defaultRunoff = 0.85

// runoffCoefficients is the authoritative per-material table.
var runoffCoefficients = map[string]float64{
	"rcc":      0.85,
	"metal":    0.90,
	"tile":     0.80,
	"asbestos": 0.85,
	"thatched": 0.60,
	"plastic":  0.90,
}

// MonsoonWeights is the fixed wet-season-weighted monthly distribution
// (Jan..Dec) used when a site has no climatology of its own. Sums to 1.0.
var MonsoonWeights = [12]float64{
	0.01, 0.01, 0.02, 0.03, 0.05, 0.15,
	0.22, 0.20, 0.15, 0.08, 0.05, 0.03,
}

// RunoffCoefficient returns the collectible-runoff fraction for a roof
// material; unknown materials fall back to the rcc value.
func RunoffCoefficient(material string) float64 {
	if c, ok := runoffCoefficients[material]; ok {
		return c
	}
	return defaultRunoff
}

// ValidWeights reports whether a 12-month distribution sums to 1.0 within
// tolerance.
func ValidWeights(w [12]float64) bool {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return math.Abs(sum-1.0) <= 1e-6
}

// ComputeYield applies the capture formula
//
//	annual = runoff(material) * rainfall_mm * roof_area_sqm * efficiency
//
// and distributes it across months by the given climatology weights.
// A zero roof area or zero rainfall yields an all-zero result.
func ComputeYield(roofAreaSqm, rainfallMM float64, material string, weights [12]float64) entities.YieldResult {
	if !ValidWeights(weights) {
		weights = MonsoonWeights
	}
	annual := RunoffCoefficient(material) * rainfallMM * roofAreaSqm * CollectionEfficiency
	var out entities.YieldResult
	out.AnnualLiters = annual
	for m := 0; m < 12; m++ {
		out.MonthlyLiters[m] = annual * weights[m]
	}
	return out
}
