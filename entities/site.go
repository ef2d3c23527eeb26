package entities

// SiteProfile describes the building site an assessment is computed for.
type SiteProfile struct {
	State           string  `json:"state"`
	City            string  `json:"city"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	RoofAreaSqm     float64 `json:"roof_area_sqm"`
	RoofMaterial    string  `json:"roof_material"` // rcc|metal|tile|asbestos|thatched|plastic
	NumFloors       int     `json:"num_floors"`
	RoofCondition   string  `json:"roof_condition,omitempty"`
	RoofOrientation string  `json:"roof_orientation,omitempty"`
	BuildingAge     int     `json:"building_age_years,omitempty"`
	BuildingType    string  `json:"building_type"` // residential|commercial
	SoilType        string  `json:"soil_type,omitempty"`
	IoTMonitoring   bool    `json:"iot_monitoring"`
}

// ClimateProfile is the single-year monthly climatology the yield math runs on.
type ClimateProfile struct {
	AnnualRainfallMM float64     `json:"annual_rainfall_mm"`
	MonthlyWeights   [12]float64 `json:"monthly_weights"` // Jan..Dec, sums to 1.0
	Zone             string      `json:"climate_zone,omitempty"`
}

// DemandProfile carries occupancy-derived (or overridden) water demand.
type DemandProfile struct {
	Occupants      int         `json:"occupants"`
	PerCapitaLPD   float64     `json:"per_capita_lpd"`
	DailyLiters    float64     `json:"daily_liters"`
	MonthlyLiters  [12]float64 `json:"monthly_liters"`
	UsageOverride  bool        `json:"usage_override"` // caller supplied daily usage directly
	MonthlyBillINR float64     `json:"monthly_bill_inr,omitempty"`
}
