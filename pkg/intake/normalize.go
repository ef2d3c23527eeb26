package intake

import (
	"fmt"
	"math"
	"strings"

	"rwh/entities"
)

// Documented defaults for missing optional intake fields. Defaulting is
// deterministic: identical partial input always yields the identical request.
const (
	DefaultRoofAreaSqm  = 120.0
	DefaultRainfallMM   = 800.0
	DefaultRoofMaterial = "rcc"
	DefaultOccupants    = 4
	DefaultPerCapitaLPD = 135.0
)

// RawRecord is the wire-shape site-intake record. Optional numerics are
// pointers so "absent" and "explicit zero" stay distinguishable.
type RawRecord struct {
	State            string                      `json:"state"`
	City             string                      `json:"city"`
	Latitude         *float64                    `json:"latitude"`
	Longitude        *float64                    `json:"longitude"`
	RoofAreaSqm      *float64                    `json:"roof_area_sqm"`
	RoofMaterial     string                      `json:"roof_type"`
	NumFloors        *int                        `json:"num_floors"`
	RoofCondition    string                      `json:"roof_condition"`
	RoofOrientation  string                      `json:"roof_orientation"`
	BuildingAge      *int                        `json:"building_age_years"`
	BuildingType     string                      `json:"building_type"`
	SoilType         string                      `json:"soil_type"`
	Occupants        *int                        `json:"num_people"`
	PerCapitaLPD     *float64                    `json:"per_capita_lpd"`
	DailyUsageLiters *float64                    `json:"daily_water_usage_liters"`
	MonthlyBillINR   *float64                    `json:"monthly_water_bill"`
	AnnualRainfallMM *float64                    `json:"annual_rainfall_mm"`
	IncomeCategory   string                      `json:"income_category"`
	BudgetINR        *float64                    `json:"budget_inr"`
	StoragePref      string                      `json:"storage_preference"`
	ExistingSystem   bool                        `json:"existing_system"`
	IoTMonitoring    bool                        `json:"iot_monitoring"`
	ScenarioID       string                      `json:"scenario_id"`
	IncludeDrySeason bool                        `json:"include_dry_season"`
	Materials        []entities.MaterialLineItem `json:"materials"`
}

// AssessmentRequest is the canonical, fully-defaulted input the pipeline runs on.
type AssessmentRequest struct {
	Site             entities.SiteProfile
	AnnualRainfallMM float64 // 0 = unresolved, look up climatology by state/city
	Occupants        int
	PerCapitaLPD     float64
	DailyUsageLiters *float64 // explicit override; occupants become informational
	MonthlyBillINR   float64
	IncomeCategory   string
	BudgetINR        float64
	StoragePref      string
	ExistingSystem   bool
	ScenarioID       string
	IncludeDrySeason bool
	Materials        []entities.MaterialLineItem
	Warnings         []string // DefaultedInputWarning provenance, never fatal
}

// ValidationError marks unrecoverable malformed input. It is the only
// condition the pipeline surfaces to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize validates a raw intake record and fills documented defaults,
// recording a warning per substituted field.
func Normalize(raw RawRecord) (*AssessmentRequest, error) {
	req := &AssessmentRequest{
		Site: entities.SiteProfile{
			State:           strings.TrimSpace(raw.State),
			City:            strings.TrimSpace(raw.City),
			RoofCondition:   raw.RoofCondition,
			RoofOrientation: raw.RoofOrientation,
			SoilType:        raw.SoilType,
			IoTMonitoring:   raw.IoTMonitoring,
		},
		IncomeCategory:   strings.ToLower(strings.TrimSpace(raw.IncomeCategory)),
		StoragePref:      raw.StoragePref,
		ExistingSystem:   raw.ExistingSystem,
		ScenarioID:       raw.ScenarioID,
		IncludeDrySeason: raw.IncludeDrySeason,
	}

	warn := func(field string, format string, args ...any) {
		req.Warnings = append(req.Warnings, fmt.Sprintf("%s defaulted: %s", field, fmt.Sprintf(format, args...)))
	}

	if raw.Latitude != nil {
		req.Site.Latitude = *raw.Latitude
	}
	if raw.Longitude != nil {
		req.Site.Longitude = *raw.Longitude
	}

	switch {
	case raw.RoofAreaSqm == nil:
		req.Site.RoofAreaSqm = DefaultRoofAreaSqm
		warn("roof_area_sqm", "%.0f m2", DefaultRoofAreaSqm)
	case math.IsNaN(*raw.RoofAreaSqm) || math.IsInf(*raw.RoofAreaSqm, 0):
		return nil, &ValidationError{Field: "roof_area_sqm", Reason: "not a finite number"}
	case *raw.RoofAreaSqm < 0:
		return nil, &ValidationError{Field: "roof_area_sqm", Reason: "negative area"}
	default:
		// zero is a legal edge case: yield computes to zero, no error
		req.Site.RoofAreaSqm = *raw.RoofAreaSqm
	}

	mat := strings.ToLower(strings.TrimSpace(raw.RoofMaterial))
	if mat == "" {
		mat = DefaultRoofMaterial
		warn("roof_type", "%q", DefaultRoofMaterial)
	}
	req.Site.RoofMaterial = mat

	if raw.NumFloors != nil {
		if *raw.NumFloors < 0 {
			return nil, &ValidationError{Field: "num_floors", Reason: "negative"}
		}
		req.Site.NumFloors = *raw.NumFloors
	} else {
		req.Site.NumFloors = 1
	}
	if raw.BuildingAge != nil {
		if *raw.BuildingAge < 0 {
			return nil, &ValidationError{Field: "building_age_years", Reason: "negative"}
		}
		req.Site.BuildingAge = *raw.BuildingAge
	}

	bt := strings.ToLower(strings.TrimSpace(raw.BuildingType))
	if bt == "" {
		bt = "residential"
	}
	req.Site.BuildingType = bt

	if raw.AnnualRainfallMM != nil {
		if math.IsNaN(*raw.AnnualRainfallMM) || *raw.AnnualRainfallMM < 0 {
			return nil, &ValidationError{Field: "annual_rainfall_mm", Reason: "negative or not a number"}
		}
		req.AnnualRainfallMM = *raw.AnnualRainfallMM
	}
	// absent rainfall stays 0 here; the service resolves it from the
	// climatology store and only then falls back to DefaultRainfallMM

	if raw.Occupants != nil {
		if *raw.Occupants < 0 {
			return nil, &ValidationError{Field: "num_people", Reason: "negative"}
		}
		req.Occupants = *raw.Occupants
	} else {
		req.Occupants = DefaultOccupants
		warn("num_people", "%d", DefaultOccupants)
	}

	if raw.PerCapitaLPD != nil {
		if *raw.PerCapitaLPD < 0 {
			return nil, &ValidationError{Field: "per_capita_lpd", Reason: "negative"}
		}
		req.PerCapitaLPD = *raw.PerCapitaLPD
	} else {
		req.PerCapitaLPD = DefaultPerCapitaLPD
		warn("per_capita_lpd", "%.0f L/day", DefaultPerCapitaLPD)
	}

	if raw.DailyUsageLiters != nil {
		if *raw.DailyUsageLiters < 0 {
			return nil, &ValidationError{Field: "daily_water_usage_liters", Reason: "negative"}
		}
		req.DailyUsageLiters = raw.DailyUsageLiters
	}
	if raw.MonthlyBillINR != nil {
		if *raw.MonthlyBillINR < 0 {
			return nil, &ValidationError{Field: "monthly_water_bill", Reason: "negative"}
		}
		req.MonthlyBillINR = *raw.MonthlyBillINR
	}
	if raw.BudgetINR != nil {
		req.BudgetINR = *raw.BudgetINR
	}

	// caller-supplied bill of materials: recompute line totals so the
	// quantity*unit_cost invariant holds regardless of what was sent
	for _, it := range raw.Materials {
		it.LineTotal = it.Quantity * it.UnitCost
		req.Materials = append(req.Materials, it)
	}

	return req, nil
}
