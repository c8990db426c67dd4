// Package ruleset holds jurisdiction-specific labor-time rule parameters.
//
// A Config is immutable data; validation happens here at the loading
// boundary so the engine itself never has to handle malformed thresholds.
package ruleset

import (
	"sort"

	dErrors "shiftwise/pkg/domain-errors"
)

// Config bundles the thresholds for one jurisdiction. All values are minutes.
type Config struct {
	Name string

	// DailyRestPeriodMinutes is the minimum gap required between the end of
	// one work interval and the start of the next.
	DailyRestPeriodMinutes int

	// WeeklyRestPeriodMinutes is the minimum single uninterrupted gap
	// required somewhere within a week that has at least two intervals.
	WeeklyRestPeriodMinutes int

	// MaxDailyWorkingTimeMinutes is the soft daily cap; exceeding it yields
	// a warning.
	MaxDailyWorkingTimeMinutes int

	// MaxDailyWorkingTimeWithCompensationMinutes is the hard daily cap;
	// exceeding it yields an error.
	MaxDailyWorkingTimeWithCompensationMinutes int

	// MaxWeeklyWorkingTimeMinutes is the hard cap on summed duration per
	// ISO week.
	MaxWeeklyWorkingTimeMinutes int

	// First break tier: working BreakRequiredAfterMinutes or longer requires
	// a break of BreakDurationMinutes.
	BreakRequiredAfterMinutes int
	BreakDurationMinutes      int

	// Optional second, stricter break tier. Zero means the tier is not
	// configured and tier-2 evaluation is skipped entirely.
	BreakRequiredAfterMinutes2 int
	BreakDurationMinutes2      int
}

// HasSecondBreakTier reports whether the stricter break tier is configured.
func (c Config) HasSecondBreakTier() bool {
	return c.BreakRequiredAfterMinutes2 > 0
}

// Validate rejects configs the engine must never see. Called when a config
// enters the system, not per evaluation.
func (c Config) Validate() error {
	if c.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "rule set name is required")
	}
	required := []struct {
		field string
		value int
	}{
		{"daily_rest_period_minutes", c.DailyRestPeriodMinutes},
		{"weekly_rest_period_minutes", c.WeeklyRestPeriodMinutes},
		{"max_daily_working_time_minutes", c.MaxDailyWorkingTimeMinutes},
		{"max_daily_working_time_with_compensation_minutes", c.MaxDailyWorkingTimeWithCompensationMinutes},
		{"max_weekly_working_time_minutes", c.MaxWeeklyWorkingTimeMinutes},
		{"break_required_after_minutes", c.BreakRequiredAfterMinutes},
		{"break_duration_minutes", c.BreakDurationMinutes},
	}
	for _, r := range required {
		if r.value <= 0 {
			return dErrors.Newf(dErrors.CodeValidation, "%s must be positive", r.field)
		}
	}
	if c.MaxDailyWorkingTimeWithCompensationMinutes < c.MaxDailyWorkingTimeMinutes {
		return dErrors.New(dErrors.CodeValidation, "hard daily cap must not be below the soft cap")
	}
	if c.BreakRequiredAfterMinutes2 < 0 || c.BreakDurationMinutes2 < 0 {
		return dErrors.New(dErrors.CodeValidation, "second break tier thresholds must not be negative")
	}
	if c.HasSecondBreakTier() && c.BreakDurationMinutes2 <= 0 {
		return dErrors.New(dErrors.CodeValidation, "second break tier requires a break duration")
	}
	return nil
}

// DefaultRuleSet is used when a tenant has no explicit assignment.
const DefaultRuleSet = "eu"

// EU returns the EU working-time directive derived defaults.
func EU() Config {
	return Config{
		Name:                    "eu",
		DailyRestPeriodMinutes:  660,  // 11h
		WeeklyRestPeriodMinutes: 1440, // 24h
		MaxDailyWorkingTimeMinutes:                 480,  // 8h
		MaxDailyWorkingTimeWithCompensationMinutes: 600,  // 10h
		MaxWeeklyWorkingTimeMinutes:                2880, // 48h
		BreakRequiredAfterMinutes:                  360,  // 6h
		BreakDurationMinutes:                       30,
		BreakRequiredAfterMinutes2:                 540, // 9h
		BreakDurationMinutes2:                      45,
	}
}

// DE returns the German ArbZG defaults. Currently numerically identical to
// EU; kept as a distinct named config because the values are expected to
// diverge.
func DE() Config {
	cfg := EU()
	cfg.Name = "de"
	return cfg
}

// Registry resolves named rule sets. It is populated once at startup and
// read-only afterwards, so lookups need no locking.
type Registry struct {
	configs map[string]Config
}

// NewRegistry builds a registry from the given configs, validating each.
func NewRegistry(configs ...Config) (*Registry, error) {
	r := &Registry{configs: make(map[string]Config, len(configs))}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid rule set "+cfg.Name)
		}
		if _, exists := r.configs[cfg.Name]; exists {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate rule set %q", cfg.Name)
		}
		r.configs[cfg.Name] = cfg
	}
	return r, nil
}

// NewDefaultRegistry returns the registry with the built-in rule sets.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(EU(), DE())
	if err != nil {
		// Built-in configs are constants; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Lookup returns the named config.
func (r *Registry) Lookup(name string) (Config, error) {
	cfg, ok := r.configs[name]
	if !ok {
		return Config{}, dErrors.Newf(dErrors.CodeNotFound, "unknown rule set %q", name)
	}
	return cfg, nil
}

// Names lists the registered rule set names in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
