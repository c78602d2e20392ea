package common

import "strings"

// BearerToken extracts the token from an authorization header value.
// It returns "" when the value is not a well-formed bearer credential.
func BearerToken(header string) string {
	if len(header) <= len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(BearerPrefix):])
}
