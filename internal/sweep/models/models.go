// Package models defines the input, intermediate, and output records of the
// privileged-account inactivity sweep. Field names on output types are part
// of the replay contract: RunResult.Unprocessed must round-trip as the next
// run's input without transformation.
package models

import "time"

// AccountRecord is one row of the privileged-account export. Constructed once
// per input row and read-only afterwards. Routing between the directory path
// and the cloud-native path is decided solely by presence of SAMAccountName.
type AccountRecord struct {
	PrincipalName  string            `json:"principal_name"`
	SAMAccountName string            `json:"sam_account_name,omitempty"`
	CloudObjectID  string            `json:"cloud_object_id,omitempty"`
	Enabled        bool              `json:"enabled"`
	LastActivity   *time.Time        `json:"last_activity,omitempty"`
	CreatedAt      *time.Time        `json:"created_at,omitempty"`
	Description    string            `json:"description,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// IdentitySnapshot is the live state of one account at evaluation time.
// Immutable once fetched, scoped to a single account evaluation, never cached
// across accounts or runs.
type IdentitySnapshot struct {
	Enabled            bool
	DirectoryLastLogon *time.Time
	// CloudLastSignIn is the maximum of the interactive and non-interactive
	// sign-in timestamps; either kind of activity counts as alive.
	CloudLastSignIn    *time.Time
	ExtensionAttribute string
}

// OwnerStrategy names the heuristic that resolved an owner.
type OwnerStrategy string

const (
	StrategyPrefix             OwnerStrategy = "prefix"
	StrategyExtensionAttribute OwnerStrategy = "extension_attribute"
	StrategySponsor            OwnerStrategy = "sponsor"
)

// OwnerResolution is the outcome of owner resolution for one account.
// Resolved=false means every strategy was exhausted. Email may be empty even
// when Resolved is true; callers must treat that as NoEmailFound.
type OwnerResolution struct {
	Resolved bool
	Account  string
	Email    string
	Strategy OwnerStrategy
}

// Unresolved is the explicit "no owner" value.
func Unresolved() OwnerResolution {
	return OwnerResolution{}
}

// Action is the single remediation action chosen for an account.
type Action string

const (
	ActionNone    Action = "none"
	ActionNotify  Action = "notify"
	ActionDisable Action = "disable"
	ActionDelete  Action = "delete"
)

// NotificationStage tags which lifecycle notice accompanies an action.
type NotificationStage string

const (
	StageNone     NotificationStage = ""
	StageWarning  NotificationStage = "warning"
	StageDisabled NotificationStage = "disabled"
	StageDeletion NotificationStage = "deletion"
)

// ActionDecision pairs the chosen action with its notification stage. The
// engine never stacks actions; the highest matching tier fully subsumes the
// lower ones.
type ActionDecision struct {
	Action Action            `json:"action"`
	Stage  NotificationStage `json:"stage,omitempty"`
}

// Status is the terminal state of one account's evaluation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusError     Status = "error"
)

// SkipReason distinguishes policy skips from faults. Skips are expected
// steady-state outcomes; Status=Error entries require operator attention.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipActivityDetected    SkipReason = "activity_detected"
	SkipDisabledSinceExport SkipReason = "disabled_since_export"
	SkipNoOwnerFound        SkipReason = "no_owner_found"
	SkipNoEmailFound        SkipReason = "no_email_found"
	SkipNoUPN               SkipReason = "no_upn"
)

// ResultEntry is the immutable record of one account's outcome. Created
// exactly once per processed account.
type ResultEntry struct {
	PrincipalName    string            `json:"principal_name"`
	SAMAccountName   string            `json:"sam_account_name,omitempty"`
	CloudObjectID    string            `json:"cloud_object_id,omitempty"`
	InactivityDays   *int              `json:"inactivity_days,omitempty"`
	Action           Action            `json:"action"`
	Stage            NotificationStage `json:"stage,omitempty"`
	NotificationSent bool              `json:"notification_sent"`
	Recipient        string            `json:"recipient,omitempty"`
	Status           Status            `json:"status"`
	SkipReason       SkipReason        `json:"skip_reason,omitempty"`
	Error            string            `json:"error,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

// RunSummary aggregates ResultEntries. Always present in RunResult, zero
// valued when a run aborts before processing any account.
type RunSummary struct {
	Total    int `json:"total"`
	Warned   int `json:"warned"`
	Disabled int `json:"disabled"`
	Deleted  int `json:"deleted"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
	NoOwner  int `json:"no_owner"`
}

// RunResult is the unit handed back to the caller for one batch run.
// Success is false only when a fatal error occurred; per-entry errors do not
// flip it. Unprocessed holds every input row that ended in Error or was never
// reached, reshaped for replay as the next run's input.
type RunResult struct {
	RunID       string          `json:"run_id"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	DryRun      bool            `json:"dry_run"`
	Summary     RunSummary      `json:"summary"`
	Results     []ResultEntry   `json:"results"`
	Unprocessed []AccountRecord `json:"unprocessed"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// Tally recomputes the summary from the result entries.
func (r *RunResult) Tally() {
	var s RunSummary
	for _, e := range r.Results {
		s.Total++
		switch e.Status {
		case StatusSkipped:
			s.Skipped++
			if e.SkipReason == SkipNoOwnerFound || e.SkipReason == SkipNoEmailFound {
				s.NoOwner++
			}
		case StatusError:
			s.Errors++
		case StatusCompleted:
			switch {
			case e.Action == ActionDelete:
				s.Deleted++
			case e.Action == ActionDisable:
				s.Disabled++
			case e.Action == ActionNotify:
				s.Warned++
			}
		}
	}
	r.Summary = s
}
