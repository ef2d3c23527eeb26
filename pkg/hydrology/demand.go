package hydrology

import "rwh/entities"

// Actual month lengths (non-leap) so the monthly figures stay audit-accurate.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ComputeDemand derives daily and monthly water demand from occupancy.
// An explicit daily override takes precedence; occupants then stay
// informational only.
func ComputeDemand(occupants int, perCapitaLPD float64, overrideLiters *float64, monthlyBillINR float64) entities.DemandProfile {
	d := entities.DemandProfile{
		Occupants:      occupants,
		PerCapitaLPD:   perCapitaLPD,
		MonthlyBillINR: monthlyBillINR,
	}
	if overrideLiters != nil {
		d.DailyLiters = *overrideLiters
		d.UsageOverride = true
	} else {
		d.DailyLiters = float64(occupants) * perCapitaLPD
	}
	for m := 0; m < 12; m++ {
		d.MonthlyLiters[m] = d.DailyLiters * float64(daysInMonth[m])
	}
	return d
}
