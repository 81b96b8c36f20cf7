package sweep

import (
	"math"
	"time"

	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// Clock abstracts time.Now for deterministic tests.
type Clock func() time.Time

// ActivityCalculator derives a single days-since-last-activity value from a
// live snapshot, falling back to the export row's creation timestamp for
// never-used accounts.
type ActivityCalculator struct {
	clock Clock
}

type ActivityOption func(*ActivityCalculator)

// WithActivityClock sets the clock for testability.
func WithActivityClock(clock Clock) ActivityOption {
	return func(c *ActivityCalculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func NewActivityCalculator(opts ...ActivityOption) *ActivityCalculator {
	c := &ActivityCalculator{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Days returns whole days (floor, UTC) between the winning timestamp and now.
//
// Precedence, highest to lowest:
//  1. live cloud sign-in vs live directory logon, most recent wins
//  2. whichever of the two exists alone
//  3. the account-creation timestamp from the input row
//
// With none of these the account's age is unknowable and the evaluation
// fails; that is an Error outcome, not a Skip.
func (c *ActivityCalculator) Days(snapshot *models.IdentitySnapshot, account models.AccountRecord) (int, error) {
	last := mostRecent(snapshot.DirectoryLastLogon, snapshot.CloudLastSignIn)
	if last == nil {
		last = account.CreatedAt
	}
	if last == nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput,
			"cannot determine last activity for "+account.PrincipalName)
	}

	now := c.clock().UTC()
	days := int(math.Floor(now.Sub(last.UTC()).Hours() / 24))
	if days < 0 {
		// Clock skew between sources; a future timestamp is current activity.
		days = 0
	}
	return days, nil
}

func mostRecent(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}
