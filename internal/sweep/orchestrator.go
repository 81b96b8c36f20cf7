package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"privsweep/internal/audit"
	"privsweep/internal/sweep/metrics"
	"privsweep/internal/sweep/models"
	"privsweep/internal/sweep/ports"
	dErrors "privsweep/pkg/domain-errors"
)

// Runner drives one sweep run end-to-end: snapshot, activity, owner, policy,
// notification, remediation, per account in input order, and guarantees a
// well-formed RunResult under every failure mode. Failures come in two
// tiers: session-acquisition and notification-transport failures abort the
// run; everything else is isolated to the account that raised it.
type Runner struct {
	snapshots  *SnapshotResolver
	activity   *ActivityCalculator
	owners     *OwnerResolver
	policy     Policy
	remediator ports.Remediator
	notifier   ports.Notifier
	session    ports.Session
	publisher  ports.AuditPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	clock      Clock
	dryRun     bool
}

type RunnerOption func(*Runner)

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSession wraps the run in a connect/disconnect pair. Without it the
// runner assumes the caller already holds an established session.
func WithSession(session ports.Session) RunnerOption {
	return func(r *Runner) {
		r.session = session
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) RunnerOption {
	return func(r *Runner) {
		r.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithClock(clock Clock) RunnerOption {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithDryRun suppresses notifications and remediation calls while leaving
// the rest of the pipeline, and the recorded outcomes, unchanged.
func WithDryRun(dryRun bool) RunnerOption {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

func NewRunner(
	snapshots *SnapshotResolver,
	activity *ActivityCalculator,
	owners *OwnerResolver,
	policy Policy,
	remediator ports.Remediator,
	notifier ports.Notifier,
	opts ...RunnerOption,
) (*Runner, error) {
	if snapshots == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "snapshot resolver is required")
	}
	if activity == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "activity calculator is required")
	}
	if owners == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "owner resolver is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if remediator == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "remediator is required")
	}
	if notifier == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "notifier is required")
	}

	r := &Runner{
		snapshots:  snapshots,
		activity:   activity,
		owners:     owners,
		policy:     policy,
		remediator: remediator,
		notifier:   notifier,
		logger:     slog.Default(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// fatalError aborts the remaining batch; recoverable failures never produce
// one. Propagated as a value, not a panic, so both paths stay auditable.
type fatalError struct {
	step string
	err  error
}

func (e *fatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.step, e.err)
}

// Run processes the batch strictly sequentially in input order and always
// returns a structured RunResult; it never raises an unhandled fault.
func (r *Runner) Run(ctx context.Context, accounts []models.AccountRecord) *models.RunResult {
	result := &models.RunResult{
		RunID:     uuid.NewString(),
		Success:   true,
		DryRun:    r.dryRun,
		StartedAt: r.clock(),
		Results:   []models.ResultEntry{},
	}
	if r.metrics != nil {
		r.metrics.RunsTotal.Inc()
		defer func() {
			r.metrics.RunDuration.Observe(time.Since(result.StartedAt).Seconds())
		}()
	}
	defer func() {
		result.FinishedAt = r.clock()
		result.Tally()
	}()

	if r.session != nil {
		if err := r.session.Connect(ctx); err != nil {
			r.logger.ErrorContext(ctx, "session connect failed", "run_id", result.RunID, "error", err)
			result.Success = false
			result.Error = fmt.Sprintf("session connect: %v", err)
			result.Unprocessed = processable(accounts)
			if r.metrics != nil {
				r.metrics.RunsFailed.Inc()
			}
			return result
		}
		defer func() {
			// Best effort; a failed disconnect never flips Success.
			if err := r.session.Disconnect(ctx); err != nil {
				r.logger.WarnContext(ctx, "session disconnect failed", "run_id", result.RunID, "error", err)
			}
		}()
	}

	entryStatus := make(map[int]models.Status)
	abortIndex := -1

	for i, account := range accounts {
		if account.PrincipalName == "" {
			// Rows without a principal key are silently excluded.
			continue
		}

		entry, err := r.processAccount(ctx, result.RunID, account)
		if err != nil {
			r.logger.ErrorContext(ctx, "fatal error, aborting run",
				"run_id", result.RunID,
				"principal", account.PrincipalName,
				"error", err,
			)
			result.Success = false
			result.Error = err.Error()
			abortIndex = i
			if r.metrics != nil {
				r.metrics.RunsFailed.Inc()
			}
			break
		}

		result.Results = append(result.Results, *entry)
		entryStatus[i] = entry.Status
		r.observe(ctx, result.RunID, entry)
	}

	result.Unprocessed = r.unprocessed(accounts, entryStatus, abortIndex)
	return result
}

// processAccount evaluates one account. A returned error is fatal for the
// run; recoverable failures are folded into the returned entry.
func (r *Runner) processAccount(ctx context.Context, runID string, account models.AccountRecord) (*models.ResultEntry, error) {
	entry := &models.ResultEntry{
		PrincipalName:  account.PrincipalName,
		SAMAccountName: account.SAMAccountName,
		CloudObjectID:  account.CloudObjectID,
		Action:         models.ActionNone,
		Timestamp:      r.clock(),
	}

	snapshot, err := r.snapshots.Resolve(ctx, account)
	if err != nil {
		return r.errored(entry, "resolve identity: "+err.Error()), nil
	}

	// The export said enabled but the live state disagrees: state has
	// changed out from under the export and must not be acted on blindly.
	if account.Enabled && !snapshot.Enabled {
		return r.skipped(entry, models.SkipDisabledSinceExport), nil
	}

	days, err := r.activity.Days(snapshot, account)
	if err != nil {
		return r.errored(entry, err.Error()), nil
	}
	entry.InactivityDays = &days

	decision := r.policy.Decide(days)
	entry.Action = decision.Action
	entry.Stage = decision.Stage
	if decision.Action == models.ActionNone {
		return r.skipped(entry, models.SkipActivityDetected), nil
	}

	owner := r.owners.Resolve(ctx, account, snapshot)
	if !owner.Resolved {
		return r.skipped(entry, models.SkipNoOwnerFound), nil
	}
	if owner.Email == "" {
		return r.skipped(entry, models.SkipNoEmailFound), nil
	}
	entry.Recipient = owner.Email

	if !r.dryRun {
		if err := r.notifier.Send(ctx, decision.Stage, account, owner.Email, days); err != nil {
			return nil, &fatalError{step: "send notification for " + account.PrincipalName, err: err}
		}
		entry.NotificationSent = true
	}

	if err := r.remediate(ctx, account, snapshot, decision); err != nil {
		return r.errored(entry, err.Error()), nil
	}

	entry.Status = models.StatusCompleted
	return entry, nil
}

// remediate invokes the collaborator matching the decided action. An
// already-disabled account at the disable tier is left alone and tallied as
// if the disable succeeded.
func (r *Runner) remediate(ctx context.Context, account models.AccountRecord, snapshot *models.IdentitySnapshot, decision models.ActionDecision) error {
	if r.dryRun {
		return nil
	}
	switch decision.Action {
	case models.ActionDisable:
		if !snapshot.Enabled {
			return nil
		}
		if err := r.remediator.Disable(ctx, account); err != nil {
			return fmt.Errorf("disable %s: %w", account.PrincipalName, err)
		}
	case models.ActionDelete:
		// Deletion is attempted regardless of current enabled state.
		if err := r.remediator.Delete(ctx, account); err != nil {
			return fmt.Errorf("delete %s: %w", account.PrincipalName, err)
		}
	}
	return nil
}

func (r *Runner) errored(entry *models.ResultEntry, detail string) *models.ResultEntry {
	entry.Status = models.StatusError
	entry.Error = detail
	return entry
}

func (r *Runner) skipped(entry *models.ResultEntry, reason models.SkipReason) *models.ResultEntry {
	entry.Status = models.StatusSkipped
	entry.SkipReason = reason
	if reason != models.SkipActivityDetected {
		entry.Action = models.ActionNone
		entry.Stage = models.StageNone
	}
	return entry
}

// observe publishes logs, metrics, and audit events for one finished entry.
func (r *Runner) observe(ctx context.Context, runID string, entry *models.ResultEntry) {
	r.logger.InfoContext(ctx, "account evaluated",
		"run_id", runID,
		"principal", entry.PrincipalName,
		"status", entry.Status,
		"action", entry.Action,
		"skip_reason", entry.SkipReason,
		"error", entry.Error,
	)

	if r.metrics != nil {
		r.metrics.AccountsEvaluated.Inc()
		switch entry.Status {
		case models.StatusCompleted:
			r.metrics.ActionsTotal.WithLabelValues(string(entry.Action)).Inc()
		case models.StatusSkipped:
			r.metrics.SkipsTotal.WithLabelValues(string(entry.SkipReason)).Inc()
		case models.StatusError:
			r.metrics.ErrorsTotal.Inc()
		}
	}

	if r.publisher == nil {
		return
	}
	if event, ok := auditEventFor(runID, entry, r.dryRun); ok {
		if err := r.publisher.Emit(ctx, event); err != nil {
			r.logger.WarnContext(ctx, "audit emit failed",
				"run_id", runID,
				"principal", entry.PrincipalName,
				"error", err,
			)
		}
	}
}

func auditEventFor(runID string, entry *models.ResultEntry, dryRun bool) (audit.Event, bool) {
	event := audit.Event{
		RunID:     runID,
		Principal: entry.PrincipalName,
		Recipient: entry.Recipient,
		DryRun:    dryRun,
		Timestamp: entry.Timestamp,
	}
	switch {
	case entry.Status == models.StatusError && entry.Action != models.ActionNone:
		event.Action = audit.ActionRemediationFailed
		event.Detail = entry.Error
	case entry.Status != models.StatusCompleted:
		return audit.Event{}, false
	case entry.Action == models.ActionDelete:
		event.Action = audit.ActionDeleted
	case entry.Action == models.ActionDisable:
		event.Action = audit.ActionDisabled
	default:
		event.Action = audit.ActionNotified
	}
	return event, true
}

// unprocessed rebuilds the replayable subset: rows whose entry is Error and
// rows never reached because the run aborted. Completed and deliberately
// skipped accounts are excluded so a replay touches only what still needs
// attention.
func (r *Runner) unprocessed(accounts []models.AccountRecord, entryStatus map[int]models.Status, abortIndex int) []models.AccountRecord {
	out := []models.AccountRecord{}
	for i, account := range accounts {
		if account.PrincipalName == "" {
			continue
		}
		if abortIndex >= 0 && i >= abortIndex {
			out = append(out, account)
			continue
		}
		if status, ok := entryStatus[i]; ok && status == models.StatusError {
			out = append(out, account)
		}
	}
	return out
}

func processable(accounts []models.AccountRecord) []models.AccountRecord {
	out := []models.AccountRecord{}
	for _, account := range accounts {
		if account.PrincipalName != "" {
			out = append(out, account)
		}
	}
	return out
}
