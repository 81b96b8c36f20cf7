package email

import "testing"

func TestFriendlyName(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"j.smith@corp.example", "J Smith"},
		{"mlopez@corp.example", "Mlopez"},
		{"ops_team+alerts@corp.example", "Ops Team Alerts"},
		{"@corp.example", "there"},
		{"", "there"},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			if got := FriendlyName(tt.address); got != tt.want {
				t.Fatalf("FriendlyName(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}
