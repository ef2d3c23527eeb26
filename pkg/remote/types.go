package remote

// CompleteRequest is the wire request for POST /assessment/complete.
type CompleteRequest struct {
	RoofAreaSqm      float64 `json:"roof_area_sqm"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	RoofType         string  `json:"roof_type"`
	NumFloors        int     `json:"num_floors"`
	NumPeople        int     `json:"num_people"`
	MonthlyWaterBill float64 `json:"monthly_water_bill"`
	DailyUsageLiters float64 `json:"daily_water_usage_liters,omitempty"`
	IncomeCategory   string  `json:"income_category,omitempty"`
	SoilType         string  `json:"soil_type,omitempty"`
	StoragePref      string  `json:"storage_preference,omitempty"`
	BudgetINR        float64 `json:"budget_inr,omitempty"`
}

type MonthCollection struct {
	CollectionLiters float64 `json:"collection_liters"`
}

type Material struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Spec     string  `json:"spec,omitempty"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

type MaintenanceItem struct {
	Task      string `json:"task"`
	Frequency string `json:"frequency"`
	Priority  string `json:"priority,omitempty"`
}

// CompleteResponse mirrors the remote service payload. Every field is
// optional on the wire; pointers keep "absent" distinguishable so the
// assembler can backfill from the local computation.
type CompleteResponse struct {
	AnnualCollectionLiters *float64          `json:"annual_collection_liters"`
	RecommendedTankLiters  *float64          `json:"recommended_tank_liters"`
	MonthlyBreakdown       []MonthCollection `json:"monthly_breakdown"`
	TotalCost              *float64          `json:"total_cost"`
	SubsidyAmount          *float64          `json:"subsidy_amount"`
	NetCostAfterSubsidy    *float64          `json:"net_cost_after_subsidy"`
	PaybackMonths          *float64          `json:"payback_months"`
	PermitRequired         *bool             `json:"permit_required"`
	MandatoryByLaw         *bool             `json:"mandatory_by_law"`
	Materials              []Material        `json:"materials"`
	MaintenanceSchedule    []MaintenanceItem `json:"maintenance_schedule"`
}
