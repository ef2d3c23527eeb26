package costing

import "rwh/entities"

// Flat-rate cost model constants (currency units).
const (
	BaseCostPerLiter = 8.0
	MaterialsShare   = 0.60
	LaborShare       = 0.30
	PermitFee        = 2500.0
)

// Material split within the materials pool of the flat-rate model.
var materialSplit = []struct {
	name     string
	category string
	spec     string
	share    float64
}{
	{"Storage tank", "storage", "HDPE/ferrocement, sized per scenario", 0.70},
	{"PVC piping and gutters", "conveyance", "110mm down-take, UV stabilized", 0.15},
	{"Filter unit", "filtration", "dual-media sand/charcoal", 0.10},
	{"First-flush diverter", "filtration", "manual ball valve", 0.05},
}

// Estimate is one scenario's expanded cost: bill of materials plus the
// labor and permit components.
type Estimate struct {
	Materials float64                     `json:"materials"`
	Labor     float64                     `json:"labor"`
	PermitFee float64                     `json:"permit_fee"`
	Total     float64                     `json:"total"`
	LineItems []entities.MaterialLineItem `json:"line_items"`
}

// EstimateFlatRate expands a tank size into an estimate using the flat
// per-liter rate. costFactor is the scenario policy multiplier; it scales
// the materials and labor pool, never the flat permit fee.
func EstimateFlatRate(tankLiters, costFactor float64) Estimate {
	pool := BaseCostPerLiter * tankLiters * costFactor
	est := Estimate{
		Materials: pool * MaterialsShare,
		Labor:     pool * LaborShare,
		PermitFee: PermitFee,
	}
	est.Total = est.Materials + est.Labor + est.PermitFee
	for _, ms := range materialSplit {
		cost := est.Materials * ms.share
		est.LineItems = append(est.LineItems, entities.MaterialLineItem{
			Name:      ms.name,
			Category:  ms.category,
			Spec:      ms.spec,
			Quantity:  1,
			UnitCost:  cost,
			LineTotal: cost,
		})
	}
	return est
}

// EstimateFromBOM builds an estimate from a caller-supplied bill of
// materials; the sum of line totals is authoritative for the materials
// component, with labor derived at the model's labor:materials ratio.
func EstimateFromBOM(items []entities.MaterialLineItem) Estimate {
	est := Estimate{PermitFee: PermitFee}
	for _, it := range items {
		it.LineTotal = it.Quantity * it.UnitCost
		est.LineItems = append(est.LineItems, it)
		est.Materials += it.LineTotal
	}
	est.Labor = est.Materials * (LaborShare / MaterialsShare)
	est.Total = est.Materials + est.Labor + est.PermitFee
	return est
}
