package entities

import "time"

// RainfallNormal is a persisted climatology reference row, keyed by state+city.
// It backs ClimateProfile resolution when the intake record omits rainfall.
type RainfallNormal struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	State          string    `gorm:"index:idx_rainfall_state_city" json:"state"`
	City           string    `gorm:"index:idx_rainfall_state_city" json:"city"`
	AnnualMM       float64   `json:"annual_mm"`
	MonthlyWeights []float64 `gorm:"serializer:json" json:"monthly_weights,omitempty"`
	Zone           string    `json:"climate_zone,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
