package intake

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"rwh/entities"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestNormalizeDefaults(t *testing.T) {
	req, err := Normalize(RawRecord{State: "Tamil Nadu", City: "Chennai"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Site.RoofAreaSqm != DefaultRoofAreaSqm {
		t.Errorf("roof area = %v, want default %v", req.Site.RoofAreaSqm, DefaultRoofAreaSqm)
	}
	if req.Site.RoofMaterial != DefaultRoofMaterial {
		t.Errorf("roof material = %q, want %q", req.Site.RoofMaterial, DefaultRoofMaterial)
	}
	if req.Occupants != DefaultOccupants || req.PerCapitaLPD != DefaultPerCapitaLPD {
		t.Errorf("occupants/lpd = %d/%v", req.Occupants, req.PerCapitaLPD)
	}
	// rainfall resolution is deferred to the service layer
	if req.AnnualRainfallMM != 0 {
		t.Errorf("rainfall = %v, want 0 (unresolved)", req.AnnualRainfallMM)
	}
	if len(req.Warnings) != 4 {
		t.Fatalf("warnings = %v, want one per defaulted field", req.Warnings)
	}
	for _, w := range req.Warnings {
		if !strings.Contains(w, "defaulted") {
			t.Errorf("warning %q does not carry provenance", w)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := RawRecord{State: "Kerala", RoofAreaSqm: fptr(80), Occupants: iptr(3)}
	a, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Normalize(raw)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same partial input must normalize identically")
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name  string
		raw   RawRecord
		field string
	}{
		{"negative area", RawRecord{RoofAreaSqm: fptr(-10)}, "roof_area_sqm"},
		{"nan area", RawRecord{RoofAreaSqm: fptr(math.NaN())}, "roof_area_sqm"},
		{"inf area", RawRecord{RoofAreaSqm: fptr(math.Inf(1))}, "roof_area_sqm"},
		{"negative occupants", RawRecord{Occupants: iptr(-1)}, "num_people"},
		{"negative rainfall", RawRecord{AnnualRainfallMM: fptr(-5)}, "annual_rainfall_mm"},
		{"negative bill", RawRecord{MonthlyBillINR: fptr(-1)}, "monthly_water_bill"},
		{"negative usage", RawRecord{DailyUsageLiters: fptr(-200)}, "daily_water_usage_liters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestNormalizeZeroAreaLegal(t *testing.T) {
	req, err := Normalize(RawRecord{RoofAreaSqm: fptr(0)})
	if err != nil {
		t.Fatalf("explicit zero area must pass validation, got %v", err)
	}
	if req.Site.RoofAreaSqm != 0 {
		t.Fatalf("area = %v, want 0", req.Site.RoofAreaSqm)
	}
	for _, w := range req.Warnings {
		if strings.Contains(w, "roof_area_sqm") {
			t.Fatal("explicit zero must not be treated as absent")
		}
	}
}

func TestNormalizeExplicitValuesKept(t *testing.T) {
	raw := RawRecord{
		State:            " Rajasthan ",
		RoofMaterial:     "  Metal ",
		RoofAreaSqm:      fptr(250),
		Occupants:        iptr(6),
		PerCapitaLPD:     fptr(100),
		AnnualRainfallMM: fptr(575),
		IncomeCategory:   "BPL",
	}
	req, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if req.Site.State != "Rajasthan" || req.Site.RoofMaterial != "metal" {
		t.Errorf("site = %+v, want trimmed lowercase material", req.Site)
	}
	if req.IncomeCategory != "bpl" {
		t.Errorf("income = %q, want lowercased", req.IncomeCategory)
	}
	if req.AnnualRainfallMM != 575 || req.Occupants != 6 || req.PerCapitaLPD != 100 {
		t.Errorf("explicit values lost: %+v", req)
	}
	if len(req.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for fully specified input", req.Warnings)
	}
}

func TestNormalizeRecomputesLineTotals(t *testing.T) {
	raw := RawRecord{Materials: []entities.MaterialLineItem{
		{Name: "PVC pipe", Quantity: 10, UnitCost: 120, LineTotal: 99999},
	}}
	req, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if req.Materials[0].LineTotal != 1200 {
		t.Fatalf("line total = %v, want recomputed 1200", req.Materials[0].LineTotal)
	}
}
