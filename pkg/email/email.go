// Package email derives display names from addresses for notification
// salutations when no directory display name is available.
package email

import (
	"strings"
	"unicode"
)

// FriendlyName builds a greeting name from the local part of an address:
// "j.smith@corp.example" becomes "J Smith". Falls back to "there" when the
// address yields nothing usable, so templates can always render "Hello X".
func FriendlyName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "there"
	}

	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
