package sweep

import (
	"context"
	"time"

	"privsweep/internal/sweep/models"
	"privsweep/internal/sweep/ports"
	dErrors "privsweep/pkg/domain-errors"
)

// SnapshotResolver re-queries live directory state for one account at
// evaluation time. Routing is decided solely by which identifiers the input
// row carries: a directory identifier selects the on-premises path, otherwise
// the cloud object identifier is required.
type SnapshotResolver struct {
	directory ports.DirectoryClient
	cloud     ports.CloudClient
}

func NewSnapshotResolver(directory ports.DirectoryClient, cloud ports.CloudClient) (*SnapshotResolver, error) {
	if directory == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "directory client is required")
	}
	if cloud == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cloud client is required")
	}
	return &SnapshotResolver{directory: directory, cloud: cloud}, nil
}

// Resolve fetches the live snapshot for one account. Snapshots are scoped to
// a single evaluation and never cached across accounts or runs.
func (r *SnapshotResolver) Resolve(ctx context.Context, account models.AccountRecord) (*models.IdentitySnapshot, error) {
	if account.SAMAccountName == "" {
		return r.resolveCloudOnly(ctx, account)
	}

	user, err := r.directory.GetUser(ctx, account.SAMAccountName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOf(err), "directory lookup for "+account.SAMAccountName)
	}

	snapshot := &models.IdentitySnapshot{
		Enabled:            user.Enabled,
		DirectoryLastLogon: user.LastLogon,
		ExtensionAttribute: user.ExtensionAttribute,
	}

	// Hybrid account: fold the cloud sign-in activity into the snapshot so
	// token refreshes count as aliveness even without a domain logon.
	if account.CloudObjectID != "" {
		cloudUser, err := r.cloud.GetUser(ctx, account.CloudObjectID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeOf(err), "cloud lookup for "+account.CloudObjectID)
		}
		snapshot.CloudLastSignIn = latestSignIn(cloudUser)
	}

	return snapshot, nil
}

func (r *SnapshotResolver) resolveCloudOnly(ctx context.Context, account models.AccountRecord) (*models.IdentitySnapshot, error) {
	if account.CloudObjectID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			"account "+account.PrincipalName+" has neither a directory identifier nor a cloud object identifier")
	}

	cloudUser, err := r.cloud.GetUser(ctx, account.CloudObjectID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOf(err), "cloud lookup for "+account.CloudObjectID)
	}

	return &models.IdentitySnapshot{
		Enabled:         cloudUser.Enabled,
		CloudLastSignIn: latestSignIn(cloudUser),
	}, nil
}

// latestSignIn picks the most recent of the interactive and non-interactive
// sign-in timestamps; either kind of activity counts.
func latestSignIn(user *ports.CloudUser) *time.Time {
	switch {
	case user.InteractiveSignIn == nil:
		return user.NonInteractiveSignIn
	case user.NonInteractiveSignIn == nil:
		return user.InteractiveSignIn
	case user.NonInteractiveSignIn.After(*user.InteractiveSignIn):
		return user.NonInteractiveSignIn
	default:
		return user.InteractiveSignIn
	}
}
