package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"rwh/entities"
	"rwh/pkg/intake"
	"rwh/pkg/remote"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func referenceRaw() intake.RawRecord {
	area, bill := 120.0, 1500.0
	rain := 800.0
	people := 4
	return intake.RawRecord{
		State:            "Tamil Nadu",
		City:             "Chennai",
		RoofAreaSqm:      &area,
		RoofMaterial:     "rcc",
		Occupants:        &people,
		MonthlyBillINR:   &bill,
		AnnualRainfallMM: &rain,
		IncomeCategory:   "middle",
	}
}

func activeScenario(t *testing.T, res *entities.AssessmentResult) entities.Scenario {
	t.Helper()
	for _, sc := range res.Scenarios {
		if sc.Active {
			if sc.ID != res.ActiveScenarioID {
				t.Fatalf("active flag on %s but ActiveScenarioID=%s", sc.ID, res.ActiveScenarioID)
			}
			return sc
		}
	}
	t.Fatal("no active scenario")
	return entities.Scenario{}
}

func TestAssessLocalFallbackShape(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != entities.SourceLocalFallback {
		t.Fatalf("source = %s", res.Source)
	}
	if len(res.Scenarios) != 3 {
		t.Fatalf("scenarios = %d, want the canonical three", len(res.Scenarios))
	}
	if res.Yield.AnnualLiters != 73440 {
		t.Fatalf("yield = %v, want 73440", res.Yield.AnnualLiters)
	}
	sc := activeScenario(t, res)
	if sc.ID != "cost_optimized" || sc.TankLiters != 33000 {
		t.Fatalf("active = %+v", sc)
	}
	if sc.NetCost != sc.TotalCost-sc.SubsidyAmount {
		t.Fatalf("net %v != total %v - subsidy %v", sc.NetCost, sc.TotalCost, sc.SubsidyAmount)
	}
	if sc.PaybackYears == nil {
		t.Fatal("payback = nil with a nonzero bill")
	}
	if len(res.Materials) == 0 || len(res.Compliance) == 0 || len(res.Maintenance) == 0 {
		t.Fatalf("incomplete fallback: materials=%d compliance=%d maintenance=%d",
			len(res.Materials), len(res.Compliance), len(res.Maintenance))
	}
	if res.ComplianceScore == nil {
		t.Fatal("compliance score = nil for a mandate-state site")
	}
}

func TestAssessDeterministic(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	a, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical input must produce identical results")
	}
}

func TestAssessValidationError(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	bad := referenceRaw()
	bad.RoofAreaSqm = fptr(-1)
	_, err := svc.Assess(context.Background(), bad, time.Time{})
	var verr *intake.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAssessRemoteFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
	res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil {
		t.Fatalf("remote failure must not surface: %v", err)
	}
	if res.Source != entities.SourceLocalFallback {
		t.Fatalf("source = %s, want local_fallback", res.Source)
	}
	if len(res.Scenarios) != 3 || len(res.Maintenance) == 0 {
		t.Fatal("fallback result is not complete")
	}
}

func TestAssessRemoteMalformedFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
	res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil || res.Source != entities.SourceLocalFallback {
		t.Fatalf("res=%v err=%v", res.Source, err)
	}
}

func TestAssessRemotePrecedence(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req remote.CompleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.RoofAreaSqm != 120 || req.State != "Tamil Nadu" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(remote.CompleteResponse{
			AnnualCollectionLiters: fptr(70000),
			RecommendedTankLiters:  fptr(25000),
			TotalCost:              fptr(200000),
			PermitRequired:         bptr(true),
		})
	}))
	defer srv.Close()

	svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
	res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/assessment/complete" {
		t.Fatalf("path = %s", gotPath)
	}
	if res.Source != entities.SourceRemote {
		t.Fatalf("source = %s, want remote", res.Source)
	}
	if res.Yield.AnnualLiters != 70000 {
		t.Fatalf("yield = %v, remote figure must win", res.Yield.AnnualLiters)
	}

	sc := activeScenario(t, res)
	if sc.TankLiters != 25000 || sc.TotalCost != 200000 {
		t.Fatalf("active = %+v", sc)
	}
	// subsidy, net and payback were absent from the payload: re-closed locally
	if sc.SubsidyAmount != 100000 {
		t.Fatalf("subsidy = %v, want 50%% of remote total", sc.SubsidyAmount)
	}
	if sc.NetCost != sc.TotalCost-sc.SubsidyAmount {
		t.Fatalf("net %v does not close against remote total", sc.NetCost)
	}
	if sc.PaybackYears == nil {
		t.Fatal("payback not recomputed")
	}

	// inactive scenarios keep their local figures
	for _, other := range res.Scenarios {
		if !other.Active && other.TankLiters == 25000 {
			t.Fatalf("remote tank leaked into %s", other.ID)
		}
	}

	found := false
	for _, r := range res.Compliance {
		if r.ID == "municipal_permit" {
			found = true
			if r.Status != entities.StatusPending || !r.Applicable {
				t.Fatalf("municipal_permit = %+v", r)
			}
		}
	}
	if !found {
		t.Fatal("permit_required=true must add a municipal permit requirement")
	}
}

func TestAssessRemoteYieldRecloses(t *testing.T) {
	monthlySum := func(y entities.YieldResult) float64 {
		var s float64
		for _, v := range y.MonthlyLiters {
			s += v
		}
		return s
	}

	t.Run("annual only redistributes over climate weights", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(remote.CompleteResponse{
				AnnualCollectionLiters: fptr(70000),
			})
		}))
		defer srv.Close()

		svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
		res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
		if err != nil {
			t.Fatal(err)
		}
		if res.Yield.AnnualLiters != 70000 {
			t.Fatalf("annual = %v", res.Yield.AnnualLiters)
		}
		if sum := monthlySum(res.Yield); math.Abs(sum-res.Yield.AnnualLiters) > 1e-6 {
			t.Fatalf("monthlies sum to %v, annual is %v", sum, res.Yield.AnnualLiters)
		}
		// the redistribution follows the climate weights
		if want := 70000 * res.Climate.MonthlyWeights[6]; math.Abs(res.Yield.MonthlyLiters[6]-want) > 1e-6 {
			t.Fatalf("july = %v, want %v", res.Yield.MonthlyLiters[6], want)
		}
	})

	t.Run("monthlies only set the annual to their sum", func(t *testing.T) {
		breakdown := make([]remote.MonthCollection, 12)
		for m := range breakdown {
			breakdown[m] = remote.MonthCollection{CollectionLiters: 5000}
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(remote.CompleteResponse{
				MonthlyBreakdown: breakdown,
			})
		}))
		defer srv.Close()

		svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
		res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
		if err != nil {
			t.Fatal(err)
		}
		if res.Yield.AnnualLiters != 60000 {
			t.Fatalf("annual = %v, want the monthly sum", res.Yield.AnnualLiters)
		}
		if sum := monthlySum(res.Yield); math.Abs(sum-res.Yield.AnnualLiters) > 1e-6 {
			t.Fatalf("monthlies sum to %v, annual is %v", sum, res.Yield.AnnualLiters)
		}
	})
}

func TestAssessRemoteMaterialsAndMaintenanceReplace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(remote.CompleteResponse{
			Materials: []remote.Material{
				{Name: "Ferrocement tank", Quantity: 1, UnitCost: 90000},
			},
			MaintenanceSchedule: []remote.MaintenanceItem{
				{Task: "Desilt recharge pit", Frequency: "Yearly"},
			},
		})
	}))
	defer srv.Close()

	svc := New(nil, remote.NewHTTP(srv.URL, "", time.Second), nil)
	res, err := svc.Assess(context.Background(), referenceRaw(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Materials) != 1 || res.Materials[0].LineTotal != 90000 {
		t.Fatalf("materials = %+v", res.Materials)
	}
	if len(res.Maintenance) != 1 || res.Maintenance[0].Priority != "Medium" {
		t.Fatalf("maintenance = %+v, want remote row with backfilled priority", res.Maintenance)
	}
}

func TestAssessUnknownScenarioDefaults(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	raw := referenceRaw()
	raw.ScenarioID = "gold_plated"
	res, err := svc.Assess(context.Background(), raw, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if res.ActiveScenarioID != "cost_optimized" {
		t.Fatalf("active = %s", res.ActiveScenarioID)
	}
	warned := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "gold_plated") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("warnings = %v, want one naming the unknown scenario", res.Warnings)
	}
}

func TestAssessDrySeasonOptIn(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	raw := referenceRaw()
	raw.IncludeDrySeason = true
	res, err := svc.Assess(context.Background(), raw, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Scenarios) != 4 {
		t.Fatalf("scenarios = %d, want 4 with dry_season requested", len(res.Scenarios))
	}
	if res.Scenarios[3].ID != "dry_season" || res.Scenarios[3].Active {
		t.Fatalf("dry_season = %+v", res.Scenarios[3])
	}
}

func TestAssessDefaultRainfallWarning(t *testing.T) {
	svc := New(nil, remote.NewDisabled(), nil)
	raw := referenceRaw()
	raw.AnnualRainfallMM = nil
	raw.State = "Unknown State"
	res, err := svc.Assess(context.Background(), raw, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Climate.AnnualRainfallMM != intake.DefaultRainfallMM {
		t.Fatalf("rainfall = %v", res.Climate.AnnualRainfallMM)
	}
	warned := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "annual_rainfall_mm") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("warnings = %v, want rainfall default provenance", res.Warnings)
	}
}
