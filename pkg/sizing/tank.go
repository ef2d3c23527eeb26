package sizing

import "math"

// CarryoverDays is the default storage policy: the tank covers this many
// days of demand between rainfall events.
const CarryoverDays = 60

// RoundUpToThousand rounds a liter figure up to the next 1,000 L tank size.
func RoundUpToThousand(liters float64) float64 {
	if liters <= 0 {
		return 0
	}
	return math.Ceil(liters/1000.0) * 1000.0
}

// CarryoverTank sizes storage as daily demand times the carryover window,
// rounded up to the nearest 1,000 L.
func CarryoverTank(dailyDemandLiters float64, days float64) float64 {
	return RoundUpToThousand(dailyDemandLiters * days)
}
