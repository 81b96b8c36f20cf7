package audit

import "time"

// Event is emitted from domain logic to capture key sweep actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Action    string    `json:"action"`
	Principal string    `json:"principal"`
	Recipient string    `json:"recipient,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	DryRun    bool      `json:"dry_run"`
	Timestamp time.Time `json:"timestamp"`
}

// Actions emitted by the batch orchestrator.
const (
	ActionNotified          = "account_owner_notified"
	ActionDisabled          = "account_disabled"
	ActionDeleted           = "account_deleted"
	ActionRemediationFailed = "account_remediation_failed"
)
