package maintenance

import (
	"time"

	"rwh/entities"
)

// Baseline task table. Frequency and priority are static per task type;
// scenario choice does not change them.
var baseline = []struct {
	description string
	frequency   string
	priority    string
	interval    time.Duration
}{
	{"Clean gutters and roof filters", "Monthly", "High", 30 * 24 * time.Hour},
	{"Inspect tank for silt and cracks", "Quarterly", "Medium", 91 * 24 * time.Hour},
	{"Check pump and valves", "Quarterly", "Medium", 91 * 24 * time.Hour},
	{"Test stored water quality", "Half-yearly", "High", 182 * 24 * time.Hour},
	{"Professional full-system cleaning", "Yearly", "High", 365 * 24 * time.Hour},
}

var sensorTask = struct {
	description string
	frequency   string
	priority    string
	interval    time.Duration
}{"Calibrate level and quality sensors", "Quarterly", "Medium", 91 * 24 * time.Hour}

// Schedule emits the recurring task calendar for a system design.
// IoT-monitored designs get an extra sensor calibration task. A zero
// reference time leaves next-due dates unset, which keeps the local
// pipeline deterministic for identical input.
func Schedule(iotMonitoring bool, reference time.Time) []entities.MaintenanceTask {
	rows := baseline
	if iotMonitoring {
		rows = append(rows[:len(rows):len(rows)], sensorTask)
	}
	out := make([]entities.MaintenanceTask, 0, len(rows))
	for _, row := range rows {
		t := entities.MaintenanceTask{
			Description: row.description,
			Frequency:   row.frequency,
			Priority:    row.priority,
		}
		if !reference.IsZero() {
			due := reference.Add(row.interval)
			t.NextDue = &due
		}
		out = append(out, t)
	}
	return out
}
