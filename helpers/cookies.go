package helpers

import (
	"strings"

	"mymesh/domain"
)

// ParseCookieTokens picks the primary and secondary session tokens out of Set-Cookie header values.
// Only the leading name=value pair of each header is considered; attributes after ';' are ignored,
// and surrounding whitespace and double quotes are stripped from the value. The first occurrence of a name wins.
// A token that is absent or has an empty value is left empty in the returned pair.
func ParseCookieTokens(setCookies []string, primaryName, secondaryName string) domain.TokenPair {
	var pair domain.TokenPair
	for _, raw := range setCookies {
		name, value, ok := cookieNameValue(raw)
		if !ok {
			continue
		}
		switch {
		case name == primaryName && pair.Primary == "":
			pair.Primary = value
		case name == secondaryName && pair.Secondary == "":
			pair.Secondary = value
		}
	}
	return pair
}

func cookieNameValue(raw string) (string, string, bool) {
	first, _, _ := strings.Cut(raw, ";")
	name, value, ok := strings.Cut(first, "=")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	value = strings.Trim(strings.TrimSpace(value), `"`)
	if name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}
