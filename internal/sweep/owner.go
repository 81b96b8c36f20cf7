package sweep

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"privsweep/internal/sweep/models"
	"privsweep/internal/sweep/ports"
	dErrors "privsweep/pkg/domain-errors"
	"privsweep/pkg/strutil"
)

// OwnerResolver determines the human recipient for lifecycle notices. It
// runs an ordered list of pure try-resolve strategies and stops at the first
// success; resolution is deterministic given the same snapshot and
// configuration.
type OwnerResolver struct {
	directory ports.DirectoryClient
	cloud     ports.CloudClient
	prefixes  []string
	logger    *slog.Logger
}

type OwnerOption func(*OwnerResolver)

func WithOwnerLogger(logger *slog.Logger) OwnerOption {
	return func(r *OwnerResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewOwnerResolver configures the strategy chain. Prefixes are the known
// naming-convention prefixes for privileged accounts (e.g. "admin" matching
// "admin.jsmith"); they are tried longest first so a longer prefix is never
// shadowed by a shorter one that also matches.
func NewOwnerResolver(directory ports.DirectoryClient, cloud ports.CloudClient, prefixes []string, opts ...OwnerOption) (*OwnerResolver, error) {
	if directory == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "directory client is required")
	}
	if cloud == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cloud client is required")
	}

	sorted := strutil.DedupeAndTrim(prefixes)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	r := &OwnerResolver{
		directory: directory,
		cloud:     cloud,
		prefixes:  sorted,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type ownerStrategy func(ctx context.Context, account models.AccountRecord, snapshot *models.IdentitySnapshot) (models.OwnerResolution, bool)

// Resolve runs the strategies in strict priority order with early exit on
// first success. At most one resolution per account per run.
func (r *OwnerResolver) Resolve(ctx context.Context, account models.AccountRecord, snapshot *models.IdentitySnapshot) models.OwnerResolution {
	strategies := []ownerStrategy{
		r.byPrefix,
		r.byExtensionAttribute,
		r.bySponsor,
	}
	for _, strategy := range strategies {
		if resolution, ok := strategy(ctx, account, snapshot); ok {
			return resolution
		}
	}
	return models.Unresolved()
}

// byPrefix strips a configured naming-convention prefix from the directory
// identifier and looks the remainder up as the owning account. Only the
// first prefix whose pattern matches is tried; if its candidate fails
// verification no further prefixes are attempted.
func (r *OwnerResolver) byPrefix(ctx context.Context, account models.AccountRecord, _ *models.IdentitySnapshot) (models.OwnerResolution, bool) {
	if account.SAMAccountName == "" {
		return models.Unresolved(), false
	}

	for _, prefix := range r.prefixes {
		pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[._](.+)$`)
		match := pattern.FindStringSubmatch(account.SAMAccountName)
		if match == nil {
			continue
		}

		candidate := match[1]
		owner, err := r.directory.GetUser(ctx, candidate)
		if err != nil {
			r.logger.DebugContext(ctx, "prefix owner candidate failed verification",
				"account", account.SAMAccountName,
				"prefix", prefix,
				"candidate", candidate,
				"error", err,
			)
			return models.Unresolved(), false
		}

		return models.OwnerResolution{
			Resolved: true,
			Account:  owner.SAMAccountName,
			Email:    owner.Email,
			Strategy: models.StrategyPrefix,
		}, true
	}
	return models.Unresolved(), false
}

// byExtensionAttribute parses the live extension attribute as
// semicolon-delimited key=value pairs and verifies an "owner" value against
// the directory.
func (r *OwnerResolver) byExtensionAttribute(ctx context.Context, account models.AccountRecord, snapshot *models.IdentitySnapshot) (models.OwnerResolution, bool) {
	if snapshot == nil || snapshot.ExtensionAttribute == "" {
		return models.Unresolved(), false
	}

	value := ownerFromAttribute(snapshot.ExtensionAttribute)
	if value == "" {
		return models.Unresolved(), false
	}

	owner, err := r.directory.GetUser(ctx, value)
	if err != nil {
		r.logger.DebugContext(ctx, "extension attribute owner failed verification",
			"account", account.PrincipalName,
			"candidate", value,
			"error", err,
		)
		return models.Unresolved(), false
	}

	return models.OwnerResolution{
		Resolved: true,
		Account:  owner.SAMAccountName,
		Email:    owner.Email,
		Strategy: models.StrategyExtensionAttribute,
	}, true
}

// bySponsor queries the cloud sponsor relationship. Cloud-native accounts
// only; hybrid accounts must resolve through the directory strategies.
func (r *OwnerResolver) bySponsor(ctx context.Context, account models.AccountRecord, _ *models.IdentitySnapshot) (models.OwnerResolution, bool) {
	if account.SAMAccountName != "" || account.CloudObjectID == "" {
		return models.Unresolved(), false
	}

	sponsors, err := r.cloud.GetSponsors(ctx, account.CloudObjectID)
	if err != nil || len(sponsors) == 0 {
		if err != nil {
			r.logger.DebugContext(ctx, "sponsor lookup failed",
				"account", account.PrincipalName,
				"error", err,
			)
		}
		return models.Unresolved(), false
	}

	sponsor := sponsors[0]
	email := sponsor.Mail
	if email == "" {
		email = sponsor.PrincipalName
	}

	return models.OwnerResolution{
		Resolved: true,
		Account:  sponsor.PrincipalName,
		Email:    email,
		Strategy: models.StrategySponsor,
	}, true
}

// ownerFromAttribute extracts the owner value from a semicolon-delimited
// key=value attribute string. Key matching is case-insensitive.
func ownerFromAttribute(attribute string) string {
	for _, pair := range strings.Split(attribute, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "owner") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
