package dnscfg

import (
	"regexp"
	"strconv"
	"strings"
)

// ipv4Pattern matches dotted quads anywhere in command output.
var ipv4Pattern = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

// scrapeIPv4s pulls the IPv4 addresses out of a command transcript in
// order of appearance, deduplicated. Matches that fail octet range
// validation are skipped.
func scrapeIPv4s(output string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range ipv4Pattern.FindAllString(output, -1) {
		if !ValidIPv4(m) || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// ValidIPv4 reports whether s is a dotted-quad address: exactly four
// dot-separated runs of 1-3 digits, each in [0,255]. Leading zeros are
// accepted and nothing is canonicalized.
func ValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
		if n, _ := strconv.Atoi(part); n > 255 {
			return false
		}
	}
	return true
}
