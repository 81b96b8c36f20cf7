package input

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"privsweep/internal/sweep/models"
)

func TestLoad(t *testing.T) {
	t.Run("parses known columns and passes extras through", func(t *testing.T) {
		src := strings.Join([]string{
			"UserPrincipalName,SamAccountName,CloudObjectID,Enabled,LastActivity,WhenCreated,Description,CostCenter",
			"admin.jsmith@corp.example,admin.jsmith,obj-1,true,2026-05-01T08:00:00Z,2020-01-15T00:00:00Z,tier1 admin,cc-42",
		}, "\n")

		accounts, err := Load(strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(accounts))
		}

		account := accounts[0]
		if account.PrincipalName != "admin.jsmith@corp.example" {
			t.Fatalf("unexpected principal: %q", account.PrincipalName)
		}
		if account.SAMAccountName != "admin.jsmith" || account.CloudObjectID != "obj-1" {
			t.Fatalf("identifier columns mismatched: %+v", account)
		}
		if !account.Enabled {
			t.Fatal("expected enabled account")
		}
		want := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		if account.LastActivity == nil || !account.LastActivity.Equal(want) {
			t.Fatalf("unexpected last activity: %v", account.LastActivity)
		}
		if account.Attributes["costcenter"] != "cc-42" {
			t.Fatalf("expected extra column passthrough, got %v", account.Attributes)
		}
	})

	t.Run("rows without a principal name are dropped silently", func(t *testing.T) {
		src := strings.Join([]string{
			"UserPrincipalName,SamAccountName,Enabled",
			",admin.nameless,true",
			"admin.kept@corp.example,admin.kept,true",
		}, "\n")

		accounts, err := Load(strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 1 || accounts[0].SAMAccountName != "admin.kept" {
			t.Fatalf("expected only the named row, got %+v", accounts)
		}
	})

	t.Run("empty input yields empty batch", func(t *testing.T) {
		accounts, err := Load(strings.NewReader(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 0 {
			t.Fatalf("expected empty batch, got %d rows", len(accounts))
		}
	})

	t.Run("unparseable timestamp becomes nil rather than failing the row", func(t *testing.T) {
		src := strings.Join([]string{
			"UserPrincipalName,LastActivity",
			"admin.odd@corp.example,never",
		}, "\n")

		accounts, err := Load(strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if accounts[0].LastActivity != nil {
			t.Fatalf("expected nil last activity, got %v", accounts[0].LastActivity)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	created := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	original := []models.AccountRecord{
		{
			PrincipalName:  "admin.jsmith@corp.example",
			SAMAccountName: "admin.jsmith",
			CloudObjectID:  "obj-1",
			Enabled:        true,
			CreatedAt:      &created,
			Description:    "tier1 admin",
			Attributes:     map[string]string{"costcenter": "cc-42"},
		},
		{
			PrincipalName: "svc-cloud@corp.example",
			CloudObjectID: "obj-2",
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("write: %v", err)
	}

	reloaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != len(original) {
		t.Fatalf("expected %d rows, got %d", len(original), len(reloaded))
	}
	for i := range original {
		if reloaded[i].PrincipalName != original[i].PrincipalName ||
			reloaded[i].SAMAccountName != original[i].SAMAccountName ||
			reloaded[i].CloudObjectID != original[i].CloudObjectID ||
			reloaded[i].Enabled != original[i].Enabled {
			t.Fatalf("row %d did not round-trip: %+v vs %+v", i, reloaded[i], original[i])
		}
	}
	if reloaded[0].Attributes["costcenter"] != "cc-42" {
		t.Fatalf("attributes did not round-trip: %v", reloaded[0].Attributes)
	}
}
