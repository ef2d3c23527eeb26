package sizing

import "rwh/entities"

// DefaultScenarioID is the active scenario when the caller does not pick one.
const DefaultScenarioID = "cost_optimized"

// Tank sizing rules a scenario policy can select.
const (
	RuleCarryover      = "carryover"       // param = days of demand
	RuleYieldFraction  = "yield_fraction"  // param = fraction of annual yield
	RuleBaseFraction   = "base_fraction"   // param = fraction of the carryover tank
	RuleMonthlyDeficit = "monthly_deficit" // sized from dry-month demand shortfall
)

// Policy is one row of the scenario table. Adding a scenario is a data
// change here, not new arithmetic at the call sites.
type Policy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TankRule    string  `json:"tank_rule"`
	TankParam   float64 `json:"tank_param"`
	CostFactor  float64 `json:"cost_factor"`
	Reliability float64 `json:"reliability_percent"`
	Optional    bool    `json:"optional"` // only generated on request
}

// Policies is the fixed, ordered scenario table. dry_season is the optional
// fourth scenario: it weights seasonal availability instead of flat cost
// reduction, so it is opt-in rather than a member of the canonical three.
var Policies = []Policy{
	{ID: "cost_optimized", Name: "Cost Optimized", TankRule: RuleCarryover, TankParam: CarryoverDays, CostFactor: 1.0, Reliability: 85},
	{ID: "max_capture", Name: "Maximum Capture", TankRule: RuleYieldFraction, TankParam: 0.15, CostFactor: 1.8, Reliability: 98},
	{ID: "budget", Name: "Budget", TankRule: RuleBaseFraction, TankParam: 0.60, CostFactor: 0.6, Reliability: 70},
	{ID: "dry_season", Name: "Dry Season", TankRule: RuleMonthlyDeficit, CostFactor: 1.2, Reliability: 90, Optional: true},
}

// PolicyByID returns the policy row for a scenario id.
func PolicyByID(id string) (Policy, bool) {
	for _, p := range Policies {
		if p.ID == id {
			return p, true
		}
	}
	return Policy{}, false
}

// Base is the shared (yield, demand) pair every scenario derives from.
type Base struct {
	Yield  entities.YieldResult
	Demand entities.DemandProfile
}

// TankFor applies a policy's sizing rule to the base pair. All rules round
// up to whole 1,000 L tanks.
func TankFor(p Policy, base Base) float64 {
	switch p.TankRule {
	case RuleYieldFraction:
		return RoundUpToThousand(base.Yield.AnnualLiters * p.TankParam)
	case RuleBaseFraction:
		return RoundUpToThousand(CarryoverTank(base.Demand.DailyLiters, CarryoverDays) * p.TankParam)
	case RuleMonthlyDeficit:
		var deficit float64
		for m := 0; m < 12; m++ {
			if short := base.Demand.MonthlyLiters[m] - base.Yield.MonthlyLiters[m]; short > 0 {
				deficit += short
			}
		}
		if deficit == 0 {
			// yield covers every month; fall back to the carryover size
			return CarryoverTank(base.Demand.DailyLiters, CarryoverDays)
		}
		return RoundUpToThousand(deficit)
	default: // RuleCarryover
		return CarryoverTank(base.Demand.DailyLiters, p.TankParam)
	}
}
