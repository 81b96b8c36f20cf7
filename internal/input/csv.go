// Package input loads privileged-account export rows and writes the
// replayable unprocessed subset back out in the same shape, so a sweep's
// Unprocessed output can be fed to the next run unmodified.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"privsweep/internal/sweep/models"
)

// Well-known export column headers, matched case-insensitively. Anything
// else is passed through untouched in Attributes.
const (
	colPrincipalName = "userprincipalname"
	colSAMAccount    = "samaccountname"
	colCloudObjectID = "cloudobjectid"
	colEnabled       = "enabled"
	colLastActivity  = "lastactivity"
	colCreatedAt     = "whencreated"
	colDescription   = "description"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
}

// Load parses an account export. Rows without a principal name are dropped
// silently; they are excluded from processing and produce no output entry.
func Load(r io.Reader) ([]models.AccountRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []models.AccountRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	accounts := []models.AccountRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}

		account, ok := parseRow(columns, row)
		if !ok {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func parseRow(columns, row []string) (models.AccountRecord, bool) {
	var account models.AccountRecord
	for i, value := range row {
		if i >= len(columns) {
			break
		}
		value = strings.TrimSpace(value)
		switch columns[i] {
		case colPrincipalName:
			account.PrincipalName = value
		case colSAMAccount:
			account.SAMAccountName = value
		case colCloudObjectID:
			account.CloudObjectID = value
		case colEnabled:
			account.Enabled = parseBool(value)
		case colLastActivity:
			account.LastActivity = parseTime(value)
		case colCreatedAt:
			account.CreatedAt = parseTime(value)
		case colDescription:
			account.Description = value
		default:
			if value != "" {
				if account.Attributes == nil {
					account.Attributes = map[string]string{}
				}
				account.Attributes[columns[i]] = value
			}
		}
	}
	if account.PrincipalName == "" {
		return models.AccountRecord{}, false
	}
	return account, true
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.ToLower(value))
	return err == nil && parsed
}

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}

// Write emits accounts in the same column shape Load accepts, preserving the
// round-trip contract for unprocessed rows. Attribute columns are the union
// across all rows, sorted for stable output.
func Write(w io.Writer, accounts []models.AccountRecord) error {
	extras := map[string]struct{}{}
	for _, account := range accounts {
		for key := range account.Attributes {
			extras[key] = struct{}{}
		}
	}
	extraCols := make([]string, 0, len(extras))
	for key := range extras {
		extraCols = append(extraCols, key)
	}
	sort.Strings(extraCols)

	header := []string{
		colPrincipalName, colSAMAccount, colCloudObjectID,
		colEnabled, colLastActivity, colCreatedAt, colDescription,
	}
	header = append(header, extraCols...)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, account := range accounts {
		row := []string{
			account.PrincipalName,
			account.SAMAccountName,
			account.CloudObjectID,
			strconv.FormatBool(account.Enabled),
			formatTime(account.LastActivity),
			formatTime(account.CreatedAt),
			account.Description,
		}
		for _, key := range extraCols {
			row = append(row, account.Attributes[key])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", account.PrincipalName, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
