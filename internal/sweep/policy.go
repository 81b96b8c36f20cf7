package sweep

import (
	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// Policy holds the three ordered inactivity thresholds, in days, and the
// deletion-enablement switch. Decide is a pure function of its inputs: there
// is no persisted stage state between runs, so an account that jumps from
// unmonitored to deep inactivity is remediated in a single run without a
// prior warning run.
type Policy struct {
	WarnDays        int  `json:"warn_days"`
	DisableDays     int  `json:"disable_days"`
	DeleteDays      int  `json:"delete_days"`
	DeletionEnabled bool `json:"deletion_enabled"`
}

// Validate enforces threshold ordering.
func (p Policy) Validate() error {
	if p.WarnDays <= 0 {
		return dErrors.New(dErrors.CodeValidation, "warn threshold must be positive")
	}
	if p.DisableDays < p.WarnDays {
		return dErrors.New(dErrors.CodeValidation, "disable threshold must not be below warn threshold")
	}
	if p.DeleteDays < p.DisableDays {
		return dErrors.New(dErrors.CodeValidation, "delete threshold must not be below disable threshold")
	}
	return nil
}

// Decide maps an inactivity-day count to exactly one action. A higher tier
// fully subsumes the lower ones; the function never returns two actions.
// Below the warn threshold the account is active and the caller skips it
// with SkipActivityDetected.
func (p Policy) Decide(inactivityDays int) models.ActionDecision {
	switch {
	case inactivityDays >= p.DeleteDays:
		action := models.ActionDelete
		if !p.DeletionEnabled {
			action = models.ActionDisable
		}
		return models.ActionDecision{Action: action, Stage: models.StageDeletion}
	case inactivityDays >= p.DisableDays:
		return models.ActionDecision{Action: models.ActionDisable, Stage: models.StageDisabled}
	case inactivityDays >= p.WarnDays:
		return models.ActionDecision{Action: models.ActionNotify, Stage: models.StageWarning}
	default:
		return models.ActionDecision{Action: models.ActionNone, Stage: models.StageNone}
	}
}
