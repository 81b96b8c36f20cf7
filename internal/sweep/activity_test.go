package sweep

import (
	"testing"
	"time"

	"privsweep/internal/sweep/models"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func tp(t time.Time) *time.Time { return &t }

func TestActivityDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	calc := NewActivityCalculator(WithActivityClock(fixedClock(now)))

	tests := []struct {
		name     string
		snapshot models.IdentitySnapshot
		account  models.AccountRecord
		want     int
		wantErr  bool
	}{
		{
			name: "more recent cloud sign-in wins over directory logon",
			snapshot: models.IdentitySnapshot{
				DirectoryLastLogon: tp(now.AddDate(0, 0, -120)),
				CloudLastSignIn:    tp(now.AddDate(0, 0, -30)),
			},
			want: 30,
		},
		{
			name: "more recent directory logon wins over cloud sign-in",
			snapshot: models.IdentitySnapshot{
				DirectoryLastLogon: tp(now.AddDate(0, 0, -10)),
				CloudLastSignIn:    tp(now.AddDate(0, 0, -200)),
			},
			want: 10,
		},
		{
			name: "directory logon alone",
			snapshot: models.IdentitySnapshot{
				DirectoryLastLogon: tp(now.AddDate(0, 0, -95)),
			},
			want: 95,
		},
		{
			name: "cloud sign-in alone",
			snapshot: models.IdentitySnapshot{
				CloudLastSignIn: tp(now.AddDate(0, 0, -95)),
			},
			want: 95,
		},
		{
			name:     "creation timestamp covers never-used accounts",
			snapshot: models.IdentitySnapshot{},
			account: models.AccountRecord{
				PrincipalName: "svc-new@corp.example",
				CreatedAt:     tp(now.AddDate(0, 0, -45)),
			},
			want: 45,
		},
		{
			name:     "no timestamp at all is an error",
			snapshot: models.IdentitySnapshot{},
			account:  models.AccountRecord{PrincipalName: "svc-ghost@corp.example"},
			wantErr:  true,
		},
		{
			name: "partial day floors down",
			snapshot: models.IdentitySnapshot{
				DirectoryLastLogon: tp(now.Add(-(90*24 + 23) * time.Hour)),
			},
			want: 90,
		},
		{
			name: "future timestamp clamps to zero",
			snapshot: models.IdentitySnapshot{
				CloudLastSignIn: tp(now.Add(2 * time.Hour)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Days(&tt.snapshot, tt.account)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}
