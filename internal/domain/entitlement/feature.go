package entitlement

// Feature is a gated area of the dashboard.
type Feature string

const (
	FeatureSeminar               Feature = "seminar"
	FeatureVideoArchive          Feature = "video_archive"
	FeatureDigitalNewspaper      Feature = "digital_newspaper"
	FeatureNewsletter            Feature = "newsletter"
	FeatureTrainingCatalog       Feature = "training_catalog"
	FeatureCommunity             Feature = "community"
	FeatureDatabook              Feature = "databook"
	FeatureQualificationFreeSlot Feature = "qualification_free_slot"
)

// featureTiers maps each feature to the minimum plan tier that unlocks it.
var featureTiers = map[Feature]PlanTier{
	FeatureSeminar:               PlanTierStandard,
	FeatureVideoArchive:          PlanTierStandard,
	FeatureDigitalNewspaper:      PlanTierStandard,
	FeatureNewsletter:            PlanTierStandard,
	FeatureTrainingCatalog:       PlanTierStandard,
	FeatureCommunity:             PlanTierExpert,
	FeatureDatabook:              PlanTierExpert,
	FeatureQualificationFreeSlot: PlanTierExpert,
}

// featureOrder keeps listings stable for API responses.
var featureOrder = []Feature{
	FeatureSeminar,
	FeatureVideoArchive,
	FeatureDigitalNewspaper,
	FeatureNewsletter,
	FeatureTrainingCatalog,
	FeatureCommunity,
	FeatureDatabook,
	FeatureQualificationFreeSlot,
}

// Features returns all known features in display order.
func Features() []Feature {
	out := make([]Feature, len(featureOrder))
	copy(out, featureOrder)
	return out
}

// RequiredTier returns the minimum tier for f. ok is false for unknown features.
func RequiredTier(f Feature) (PlanTier, bool) {
	t, ok := featureTiers[f]
	return t, ok
}

// ParseFeature converts a wire name into a Feature.
func ParseFeature(name string) (Feature, bool) {
	f := Feature(name)
	_, ok := featureTiers[f]
	return f, ok
}

func (f Feature) String() string {
	return string(f)
}
