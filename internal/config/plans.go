package config

import (
	"fmt"
	"os"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

// PlanCatalogEntry is the presentation metadata of one plan. Prices and
// features are not configurable; they come from the pricing and
// entitlement rules.
type PlanCatalogEntry struct {
	Tier        entitlement.PlanTier `yaml:"tier"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	SortOrder   int                  `yaml:"sort_order"`
}

type planCatalogFile struct {
	Plans []PlanCatalogEntry `yaml:"plans"`
}

// LoadPlanCatalog parses the plan catalog file
func LoadPlanCatalog(path string) ([]PlanCatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}
	return ParsePlanCatalog(data)
}

// ParsePlanCatalog decodes catalog YAML. Every tier must appear exactly once.
func ParsePlanCatalog(data []byte) ([]PlanCatalogEntry, error) {
	var file planCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan catalog: %w", err)
	}

	seen := make(map[entitlement.PlanTier]bool, len(file.Plans))
	for i, entry := range file.Plans {
		tier, ok := entitlement.ParsePlanTier(string(entry.Tier))
		if !ok {
			return nil, fmt.Errorf("plan catalog entry %d: unknown tier %q", i, entry.Tier)
		}
		if seen[tier] {
			return nil, fmt.Errorf("plan catalog entry %d: duplicate tier %s", i, tier)
		}
		seen[tier] = true
		file.Plans[i].Tier = tier
	}
	for _, tier := range []entitlement.PlanTier{entitlement.PlanTierStandard, entitlement.PlanTierExpert} {
		if !seen[tier] {
			return nil, fmt.Errorf("plan catalog is missing tier %s", tier)
		}
	}
	return file.Plans, nil
}

// Plans converts catalog entries into plan records for the pricing service
func Plans(entries []PlanCatalogEntry) []entity.Plan {
	plans := make([]entity.Plan, 0, len(entries))
	for _, e := range entries {
		plans = append(plans, entity.Plan{
			Tier:        e.Tier,
			Name:        e.Name,
			Description: e.Description,
			SortOrder:   e.SortOrder,
		})
	}
	return plans
}
