package serviceImp

import (
	"context"
	"fmt"
	"log"
	"time"

	"rwh/entities"
	"rwh/pkg/compliance"
	"rwh/pkg/costing"
	"rwh/pkg/hydrology"
	"rwh/pkg/intake"
	"rwh/pkg/maintenance"
	"rwh/pkg/rainfall/repository"
	"rwh/pkg/remote"
	"rwh/pkg/sizing"
)

// AssessSvc runs the assessment pipeline: normalize, compute locally, then
// let a well-formed remote result take field-by-field precedence. Remote
// failure of any kind resolves to the local result, never to an error.
type AssessSvc struct {
	rainfall repository.RainfallRepository // nil = no climatology store
	remote   remote.Client
	catalog  []compliance.Rule
}

func New(rainfall repository.RainfallRepository, rc remote.Client, catalog []compliance.Rule) *AssessSvc {
	if rc == nil {
		rc = remote.NewDisabled()
	}
	if len(catalog) == 0 {
		catalog = compliance.DefaultCatalog()
	}
	return &AssessSvc{rainfall: rainfall, remote: rc, catalog: catalog}
}

func (s *AssessSvc) Assess(ctx context.Context, raw intake.RawRecord, reference time.Time) (*entities.AssessmentResult, error) {
	req, err := intake.Normalize(raw)
	if err != nil {
		return nil, err // ValidationError is the only user-visible failure
	}

	climate := s.resolveClimate(req)
	local := s.computeLocal(req, climate, reference)

	resp, err := s.remote.Complete(ctx, buildRemoteRequest(req))
	if err != nil {
		if err != remote.ErrDisabled {
			log.Printf("[assess] remote unavailable, using local fallback: %v", err)
		}
		local.Source = entities.SourceLocalFallback
		return local, nil
	}
	return s.merge(local, resp, req), nil
}

// resolveClimate fills rainfall from, in order: explicit intake value, the
// climatology store by state/city, the documented default.
func (s *AssessSvc) resolveClimate(req *intake.AssessmentRequest) entities.ClimateProfile {
	climate := entities.ClimateProfile{
		AnnualRainfallMM: req.AnnualRainfallMM,
		MonthlyWeights:   hydrology.MonsoonWeights,
	}
	if climate.AnnualRainfallMM > 0 {
		return climate
	}
	if s.rainfall != nil && req.Site.State != "" {
		if n, err := s.rainfall.Find(req.Site.State, req.Site.City); err == nil {
			climate.AnnualRainfallMM = n.AnnualMM
			climate.Zone = n.Zone
			if len(n.MonthlyWeights) == 12 {
				var w [12]float64
				copy(w[:], n.MonthlyWeights)
				if hydrology.ValidWeights(w) {
					climate.MonthlyWeights = w
				}
			}
		}
	}
	if climate.AnnualRainfallMM <= 0 {
		climate.AnnualRainfallMM = intake.DefaultRainfallMM
		req.Warnings = append(req.Warnings,
			fmt.Sprintf("annual_rainfall_mm defaulted: %.0f mm", intake.DefaultRainfallMM))
	}
	return climate
}

// computeLocal is the pure pipeline (§yield → demand → scenarios → cost →
// subsidy → compliance → maintenance). No I/O, no shared state: identical
// input produces an identical result.
func (s *AssessSvc) computeLocal(req *intake.AssessmentRequest, climate entities.ClimateProfile, reference time.Time) *entities.AssessmentResult {
	yield := hydrology.ComputeYield(req.Site.RoofAreaSqm, climate.AnnualRainfallMM, req.Site.RoofMaterial, climate.MonthlyWeights)
	demand := hydrology.ComputeDemand(req.Occupants, req.PerCapitaLPD, req.DailyUsageLiters, req.MonthlyBillINR)
	base := sizing.Base{Yield: yield, Demand: demand}

	activeID := req.ScenarioID
	if activeID == "" {
		activeID = sizing.DefaultScenarioID
	} else if _, ok := sizing.PolicyByID(activeID); !ok {
		req.Warnings = append(req.Warnings,
			fmt.Sprintf("scenario_id defaulted: unknown %q, using %s", activeID, sizing.DefaultScenarioID))
		activeID = sizing.DefaultScenarioID
	}

	savings := costing.AnnualSavings(req.MonthlyBillINR)
	var scenarios []entities.Scenario
	var materials []entities.MaterialLineItem
	for _, p := range sizing.Policies {
		if p.Optional && !req.IncludeDrySeason && p.ID != activeID {
			continue
		}
		tank := sizing.TankFor(p, base)
		var est costing.Estimate
		if len(req.Materials) > 0 && p.ID == activeID {
			est = costing.EstimateFromBOM(req.Materials)
		} else {
			est = costing.EstimateFlatRate(tank, p.CostFactor)
		}
		subsidy := costing.SubsidyAmount(est.Total, req.IncomeCategory)
		net := costing.NetCost(est.Total, subsidy)
		sc := entities.Scenario{
			ID:                 p.ID,
			Name:               p.Name,
			TankLiters:         tank,
			CostFactor:         p.CostFactor,
			TotalCost:          est.Total,
			SubsidyAmount:      subsidy,
			NetCost:            net,
			PaybackYears:       costing.PaybackYears(net, savings),
			ReliabilityPercent: p.Reliability,
			Active:             p.ID == activeID,
		}
		if sc.Active {
			materials = est.LineItems
		}
		scenarios = append(scenarios, sc)
	}

	reqs := compliance.Evaluate(s.catalog, req.Site, req.ExistingSystem)

	return &entities.AssessmentResult{
		Site:             req.Site,
		Climate:          climate,
		Demand:           demand,
		Yield:            yield,
		Scenarios:        scenarios,
		ActiveScenarioID: activeID,
		Materials:        materials,
		Compliance:       reqs,
		ComplianceScore:  compliance.Score(reqs),
		Maintenance:      maintenance.Schedule(req.Site.IoTMonitoring, reference),
		Source:           entities.SourceLocalFallback,
		Warnings:         req.Warnings,
	}
}

func buildRemoteRequest(req *intake.AssessmentRequest) remote.CompleteRequest {
	out := remote.CompleteRequest{
		RoofAreaSqm:      req.Site.RoofAreaSqm,
		City:             req.Site.City,
		State:            req.Site.State,
		Latitude:         req.Site.Latitude,
		Longitude:        req.Site.Longitude,
		RoofType:         req.Site.RoofMaterial,
		NumFloors:        req.Site.NumFloors,
		NumPeople:        req.Occupants,
		MonthlyWaterBill: req.MonthlyBillINR,
		IncomeCategory:   req.IncomeCategory,
		SoilType:         req.Site.SoilType,
		StoragePref:      req.StoragePref,
		BudgetINR:        req.BudgetINR,
	}
	if req.DailyUsageLiters != nil {
		out.DailyUsageLiters = *req.DailyUsageLiters
	}
	return out
}

// merge applies remote-result precedence over the local computation. Any
// field the remote response omits keeps its locally computed value, and
// derived figures on the active scenario are re-closed so the
// net == total - subsidy invariant survives a partial remote payload.
func (s *AssessSvc) merge(local *entities.AssessmentResult, resp *remote.CompleteResponse, req *intake.AssessmentRequest) *entities.AssessmentResult {
	out := *local
	out.Source = entities.SourceRemote

	// yield is re-closed the same way the cost figures are below: the
	// monthlies must sum to the annual no matter which half the payload
	// carried
	switch {
	case len(resp.MonthlyBreakdown) == 12:
		var sum float64
		for m := 0; m < 12; m++ {
			out.Yield.MonthlyLiters[m] = resp.MonthlyBreakdown[m].CollectionLiters
			sum += resp.MonthlyBreakdown[m].CollectionLiters
		}
		out.Yield.AnnualLiters = sum
		if resp.AnnualCollectionLiters != nil {
			out.Yield.AnnualLiters = *resp.AnnualCollectionLiters
		}
	case resp.AnnualCollectionLiters != nil:
		// annual only: redistribute across the resolved climate weights
		out.Yield.AnnualLiters = *resp.AnnualCollectionLiters
		for m := 0; m < 12; m++ {
			out.Yield.MonthlyLiters[m] = *resp.AnnualCollectionLiters * out.Climate.MonthlyWeights[m]
		}
	}

	savings := costing.AnnualSavings(req.MonthlyBillINR)
	out.Scenarios = append([]entities.Scenario(nil), local.Scenarios...)
	for i := range out.Scenarios {
		sc := &out.Scenarios[i]
		if !sc.Active {
			continue // the remote service prices a single recommendation
		}
		if resp.RecommendedTankLiters != nil {
			sc.TankLiters = *resp.RecommendedTankLiters
		}
		if resp.TotalCost != nil {
			sc.TotalCost = *resp.TotalCost
		}
		if resp.SubsidyAmount != nil {
			sc.SubsidyAmount = *resp.SubsidyAmount
		} else if resp.TotalCost != nil {
			sc.SubsidyAmount = costing.SubsidyAmount(sc.TotalCost, req.IncomeCategory)
		}
		if resp.NetCostAfterSubsidy != nil {
			sc.NetCost = *resp.NetCostAfterSubsidy
		} else {
			sc.NetCost = costing.NetCost(sc.TotalCost, sc.SubsidyAmount)
		}
		if resp.PaybackMonths != nil {
			years := *resp.PaybackMonths / 12.0
			sc.PaybackYears = &years
		} else {
			sc.PaybackYears = costing.PaybackYears(sc.NetCost, savings)
		}
	}

	if len(resp.Materials) > 0 {
		items := make([]entities.MaterialLineItem, 0, len(resp.Materials))
		for _, m := range resp.Materials {
			items = append(items, entities.MaterialLineItem{
				Name:      m.Name,
				Category:  m.Category,
				Spec:      m.Spec,
				Quantity:  m.Quantity,
				UnitCost:  m.UnitCost,
				LineTotal: m.Quantity * m.UnitCost,
			})
		}
		out.Materials = items
	}

	if len(resp.MaintenanceSchedule) > 0 {
		tasks := make([]entities.MaintenanceTask, 0, len(resp.MaintenanceSchedule))
		for _, t := range resp.MaintenanceSchedule {
			prio := t.Priority
			if prio == "" {
				prio = "Medium"
			}
			tasks = append(tasks, entities.MaintenanceTask{
				Description: t.Task,
				Frequency:   t.Frequency,
				Priority:    prio,
			})
		}
		out.Maintenance = tasks
	}

	out.Compliance = append([]entities.ComplianceRequirement(nil), local.Compliance...)
	if resp.MandatoryByLaw != nil {
		for i := range out.Compliance {
			if out.Compliance[i].ID == "rwh_mandatory" {
				out.Compliance[i].Mandatory = *resp.MandatoryByLaw
			}
		}
	}
	if resp.PermitRequired != nil && *resp.PermitRequired {
		found := false
		for _, r := range out.Compliance {
			if r.ID == "municipal_permit" {
				found = true
				break
			}
		}
		if !found {
			out.Compliance = append(out.Compliance, entities.ComplianceRequirement{
				ID:         "municipal_permit",
				Name:       "Municipal construction permit",
				Mandatory:  true,
				Applicable: true,
				Status:     entities.StatusPending,
			})
		}
	}
	out.ComplianceScore = compliance.Score(out.Compliance)

	return &out
}
