// Package ports defines the collaborator interfaces the sweep engine depends
// on. Interfaces live here, away from their implementations, so the engine
// stays free of transport concerns and tests can mock every boundary.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"privsweep/internal/audit"
	"privsweep/internal/sweep/models"
)

// DirectoryUser is the on-premises directory view of an account.
type DirectoryUser struct {
	SAMAccountName     string
	PrincipalName      string
	Email              string
	Enabled            bool
	LastLogon          *time.Time
	CreatedAt          *time.Time
	ExtensionAttribute string
}

// CloudUser is the cloud-directory view of an account.
type CloudUser struct {
	ObjectID             string
	PrincipalName        string
	Enabled              bool
	InteractiveSignIn    *time.Time
	NonInteractiveSignIn *time.Time
	CreatedAt            *time.Time
}

// Sponsor is the responsible person assigned to a cloud-native account.
type Sponsor struct {
	Mail          string
	PrincipalName string
}

// DirectoryClient resolves on-premises directory accounts. Lookups fail with
// a CodeNotFound domain error for missing accounts and any other code for
// transport failures.
type DirectoryClient interface {
	GetUser(ctx context.Context, samAccountName string) (*DirectoryUser, error)
}

// CloudClient resolves cloud-directory accounts and their sponsors.
type CloudClient interface {
	GetUser(ctx context.Context, objectID string) (*CloudUser, error)
	GetSponsors(ctx context.Context, objectID string) ([]Sponsor, error)
}

// Remediator applies lifecycle actions to an account. Delete may be
// unimplemented for directory-sourced accounts in some environments; that
// must surface as an error, never a panic.
type Remediator interface {
	Disable(ctx context.Context, account models.AccountRecord) error
	Delete(ctx context.Context, account models.AccountRecord) error
}

// Notifier delivers one staged lifecycle notice to the resolved owner.
// A returned error means transport failure and aborts the whole run.
type Notifier interface {
	Send(ctx context.Context, stage models.NotificationStage, account models.AccountRecord, recipient string, inactivityDays int) error
}

// Session is the external mail/cloud session wrapped around a run.
type Session interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// AuditPublisher emits audit events for remediation outcomes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
