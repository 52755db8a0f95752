package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default validity-predicate tolerances applied to new solves
	DefaultCoverageRatio   float64 `json:"default_coverage_ratio"`
	DefaultDoorOverlapArea float64 `json:"default_door_overlap_area"`
	DefaultCollisionRatio  float64 `json:"default_collision_ratio"`

	// Application preferences
	OutputDir   string   `json:"output_dir"` // Where result files and exports land; "" = alongside the plan
	RecentPlans []string `json:"recent_plans"`
}

// DefaultAppConfig returns an AppConfig populated with the same tolerance
// defaults the solver uses.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultCoverageRatio:   0.999,
		DefaultDoorOverlapArea: 1e-6,
		DefaultCollisionRatio:  0.01,
		OutputDir:              "",
		RecentPlans:            []string{},
	}
}

// AddRecentPlan prepends a plan path to the recent list, de-duplicating and
// keeping at most ten entries.
func (c *AppConfig) AddRecentPlan(path string) {
	recent := []string{path}
	for _, p := range c.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentPlans = recent
}
