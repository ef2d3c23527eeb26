package compliance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rwh/entities"
)

// Rule is one row of the requirement catalog: a predicate over the site
// profile plus how the requirement presents when it applies.
type Rule struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Mandatory      bool     `yaml:"mandatory"`
	States         []string `yaml:"states,omitempty"`        // empty = every jurisdiction
	MinRoofAreaSqm float64  `yaml:"min_roof_area_sqm"`       // applies when area >= threshold
	BuildingType   string   `yaml:"building_type,omitempty"` // empty = any
	MonthlyPenalty *float64 `yaml:"monthly_penalty,omitempty"`
	Notes          string   `yaml:"notes,omitempty"`
}

func penalty(v float64) *float64 { return &v }

// DefaultCatalog is the built-in requirement set. A YAML catalog file
// replaces it wholesale when configured.
func DefaultCatalog() []Rule {
	return []Rule{
		{
			ID:             "rwh_mandatory",
			Name:           "Rainwater harvesting system mandatory",
			Mandatory:      true,
			States:         []string{"tamil nadu", "karnataka", "maharashtra", "delhi", "haryana", "rajasthan"},
			MinRoofAreaSqm: 100,
			MonthlyPenalty: penalty(1000),
			Notes:          "Applies to plots with roof area of 100 m2 and above.",
		},
		{
			ID:             "recharge_pit",
			Name:           "Groundwater recharge pit required",
			Mandatory:      true,
			MinRoofAreaSqm: 300,
			Notes:          "Overflow must be routed to a recharge structure.",
		},
		{
			ID:             "annual_inspection",
			Name:           "Annual system inspection",
			Mandatory:      true,
			BuildingType:   "commercial",
			MinRoofAreaSqm: 500,
		},
		{
			ID:             "first_flush",
			Name:           "First-flush diversion recommended",
			Mandatory:      false,
			MinRoofAreaSqm: 0,
		},
		{
			ID:             "quality_certificate",
			Name:           "Potable-use water quality certificate",
			Mandatory:      false,
			MinRoofAreaSqm: 200,
		},
	}
}

// LoadCatalog reads a YAML requirement catalog; a missing path keeps the
// built-in defaults.
func LoadCatalog(path string) ([]Rule, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compliance catalog: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse compliance catalog: %w", err)
	}
	if len(rules) == 0 {
		return DefaultCatalog(), nil
	}
	return rules, nil
}

// Applies evaluates a rule's predicate against a site.
func (r Rule) Applies(site entities.SiteProfile) bool {
	if site.RoofAreaSqm < r.MinRoofAreaSqm {
		return false
	}
	if r.BuildingType != "" && r.BuildingType != site.BuildingType {
		return false
	}
	if len(r.States) > 0 {
		state := strings.ToLower(site.State)
		found := false
		for _, s := range r.States {
			if s == state {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Evaluate resolves each catalog rule to a point-in-time status. A site
// without an existing system is never compliant with an applicable
// requirement by default: penalized mandates are non_compliant, everything
// else applicable is pending.
func Evaluate(rules []Rule, site entities.SiteProfile, existingSystem bool) []entities.ComplianceRequirement {
	out := make([]entities.ComplianceRequirement, 0, len(rules))
	for _, r := range rules {
		req := entities.ComplianceRequirement{
			ID:             r.ID,
			Name:           r.Name,
			Mandatory:      r.Mandatory,
			MonthlyPenalty: r.MonthlyPenalty,
			Notes:          r.Notes,
		}
		switch {
		case !r.Applies(site):
			req.Status = entities.StatusCompliant
		case existingSystem:
			req.Status = entities.StatusCompliant
			req.Applicable = true
		case r.MonthlyPenalty != nil:
			req.Status = entities.StatusNonCompliant
			req.Applicable = true
		default:
			req.Status = entities.StatusPending
			req.Applicable = true
		}
		out = append(out, req)
	}
	return out
}

// Score is compliant-over-applicable as a percentage, nil when nothing
// applies (the ratio is undefined, not zero).
func Score(reqs []entities.ComplianceRequirement) *float64 {
	var applicable, compliant int
	for _, r := range reqs {
		if !r.Applicable {
			continue
		}
		applicable++
		if r.Status == entities.StatusCompliant {
			compliant++
		}
	}
	if applicable == 0 {
		return nil
	}
	s := float64(compliant) / float64(applicable) * 100.0
	return &s
}
