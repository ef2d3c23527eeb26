package entities

import "time"

// Result provenance: which computation produced the assessment.
const (
	SourceRemote        = "remote"
	SourceLocalFallback = "local_fallback"
)

// Compliance statuses are point-in-time; the engine keeps no history.
const (
	StatusCompliant    = "compliant"
	StatusPending      = "pending"
	StatusNonCompliant = "non_compliant"
)

type YieldResult struct {
	AnnualLiters  float64     `json:"annual_liters"`
	MonthlyLiters [12]float64 `json:"monthly_liters"` // Jan..Dec
}

// Scenario is one named design alternative. Scenarios are built independently
// from the same yield/demand base, never by patching another scenario.
type Scenario struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	TankLiters         float64  `json:"tank_liters"`
	CostFactor         float64  `json:"cost_factor"`
	TotalCost          float64  `json:"total_cost"`
	SubsidyAmount      float64  `json:"subsidy_amount"`
	NetCost            float64  `json:"net_cost"`
	PaybackYears       *float64 `json:"payback_years"` // nil when annual savings are zero
	ReliabilityPercent float64  `json:"reliability_percent"`
	Active             bool     `json:"active"`
}

type MaterialLineItem struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Spec      string  `json:"spec,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	LineTotal float64 `json:"line_total"` // quantity * unit_cost
}

type ComplianceRequirement struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Mandatory      bool     `json:"mandatory"`
	Applicable     bool     `json:"applicable"`
	MonthlyPenalty *float64 `json:"monthly_penalty,omitempty"`
	Status         string   `json:"status"` // compliant|pending|non_compliant
	Notes          string   `json:"notes,omitempty"`
}

type MaintenanceTask struct {
	Description string     `json:"description"`
	Frequency   string     `json:"frequency"`
	Priority    string     `json:"priority"` // High|Medium
	NextDue     *time.Time `json:"next_due,omitempty"`
}

// AssessmentResult is the aggregate root the report generator and the intake UI
// consume. It is assembled once per request and immutable afterwards.
type AssessmentResult struct {
	Site             SiteProfile             `json:"site"`
	Climate          ClimateProfile          `json:"climate"`
	Demand           DemandProfile           `json:"demand"`
	Yield            YieldResult             `json:"yield"`
	Scenarios        []Scenario              `json:"scenarios"`
	ActiveScenarioID string                  `json:"active_scenario_id"`
	Materials        []MaterialLineItem      `json:"materials"`
	Compliance       []ComplianceRequirement `json:"compliance"`
	ComplianceScore  *float64                `json:"compliance_score"` // nil when no rule applies
	Maintenance      []MaintenanceTask       `json:"maintenance"`
	Source           string                  `json:"source"` // remote|local_fallback
	Warnings         []string                `json:"warnings,omitempty"`
}
