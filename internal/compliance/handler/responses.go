package handler

import (
	"time"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
	"shiftwise/internal/compliance/service"
)

// EvaluateResponse is the HTTP response body for POST /compliance/evaluate.
type EvaluateResponse struct {
	RuleSet     string             `json:"rule_set"`
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	EvaluatedAt time.Time          `json:"evaluated_at"`
	Intervals   int                `json:"intervals"`
	Violations  []models.Violation `json:"violations"`
}

// FromResult maps a service result to the response shape.
func FromResult(result *service.EvaluateResult) EvaluateResponse {
	return EvaluateResponse{
		RuleSet:     result.RuleSet,
		From:        result.From,
		To:          result.To,
		EvaluatedAt: result.EvaluatedAt,
		Intervals:   result.Intervals,
		Violations:  result.Violations,
	}
}

// RuleSetResponse is the public representation of one rule configuration.
// All thresholds are minutes.
type RuleSetResponse struct {
	Name                     string `json:"name"`
	DailyRestPeriod          int    `json:"daily_rest_period_minutes"`
	WeeklyRestPeriod         int    `json:"weekly_rest_period_minutes"`
	MaxDailyWorkingTime      int    `json:"max_daily_working_time_minutes"`
	MaxDailyWithCompensation int    `json:"max_daily_working_time_with_compensation_minutes"`
	MaxWeeklyWorkingTime     int    `json:"max_weekly_working_time_minutes"`
	BreakRequiredAfter       int    `json:"break_required_after_minutes"`
	BreakDuration            int    `json:"break_duration_minutes"`
	SecondBreakRequiredAfter int    `json:"break_required_after_minutes2,omitempty"`
	SecondBreakDuration      int    `json:"break_duration_minutes2,omitempty"`
}

func fromConfig(cfg ruleset.Config) RuleSetResponse {
	return RuleSetResponse{
		Name:                     cfg.Name,
		DailyRestPeriod:          cfg.DailyRestPeriodMinutes,
		WeeklyRestPeriod:         cfg.WeeklyRestPeriodMinutes,
		MaxDailyWorkingTime:      cfg.MaxDailyWorkingTimeMinutes,
		MaxDailyWithCompensation: cfg.MaxDailyWorkingTimeWithCompensationMinutes,
		MaxWeeklyWorkingTime:     cfg.MaxWeeklyWorkingTimeMinutes,
		BreakRequiredAfter:       cfg.BreakRequiredAfterMinutes,
		BreakDuration:            cfg.BreakDurationMinutes,
		SecondBreakRequiredAfter: cfg.BreakRequiredAfterMinutes2,
		SecondBreakDuration:      cfg.BreakDurationMinutes2,
	}
}
