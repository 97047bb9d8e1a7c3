package ipgate

import (
	"strconv"
	"strings"

	"heron/internal/domain"
)

// Decision is the outcome of evaluating one request against the configured
// allow/deny rules. The caller owns the actual block/redirect response.
type Decision struct {
	Permitted bool
	Reason    string
}

func permit() Decision {
	return Decision{Permitted: true}
}

func deny(reason string) Decision {
	return Decision{Permitted: false, Reason: reason}
}

// Evaluate decides whether a client address may proceed. Deny rules take
// absolute precedence; a non-empty allow set requires at least one match; an
// empty allow set (with no deny hit) means unrestricted access. A client
// address that does not parse as IPv4 is denied whenever any restrictive rule
// is configured, and permitted otherwise.
func Evaluate(clientAddr string, rules []domain.IPRestriction) Decision {
	var allowRules, denyRules []domain.IPRestriction
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		switch rule.RuleType {
		case domain.IPRuleDeny:
			denyRules = append(denyRules, rule)
		case domain.IPRuleAllow:
			allowRules = append(allowRules, rule)
		}
	}

	client, ok := parseIPv4(clientAddr)
	if !ok {
		if len(denyRules) > 0 || len(allowRules) > 0 {
			return deny("unrecognized client address")
		}
		return permit()
	}

	for _, rule := range denyRules {
		if matchesPattern(rule.AddressPattern, client) {
			return deny("denylisted")
		}
	}

	if len(allowRules) > 0 {
		for _, rule := range allowRules {
			if matchesPattern(rule.AddressPattern, client) {
				return permit()
			}
		}
		return deny("not in allowlist")
	}

	return permit()
}

// ValidPattern reports whether a rule pattern is a usable IPv4 literal or CIDR
// block. Used when rules are created or edited so malformed entries never reach
// the rule table.
func ValidPattern(pattern string) bool {
	if strings.Contains(pattern, "/") {
		_, _, ok := parseCIDR(pattern)
		return ok
	}
	_, ok := parseIPv4(pattern)
	return ok
}

// matchesPattern reports whether the candidate address falls inside the given
// pattern, either a single IPv4 literal or a CIDR block. Malformed patterns
// never match; a bad rule silently fails to apply instead of blocking traffic.
func matchesPattern(pattern string, candidate uint32) bool {
	if !strings.Contains(pattern, "/") {
		patternInt, ok := parseIPv4(pattern)
		return ok && patternInt == candidate
	}

	base, mask, ok := parseCIDR(pattern)
	if !ok {
		return false
	}
	return candidate&mask == base&mask
}

// parseIPv4 converts a dotted-quad address into its 32-bit integer form, each
// octet contributing octet<<(8*(3-index)).
func parseIPv4(raw string) (uint32, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 4 {
		return 0, false
	}

	var value uint32
	for _, part := range parts {
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, false
		}
		value = value<<8 | uint32(octet)
	}
	return value, true
}

// parseCIDR splits "base/prefixLen" into the base address and the netmask
// covering the top prefixLen bits. prefixLen 0 masks nothing and therefore
// matches every address; 32 requires exact equality.
func parseCIDR(pattern string) (base uint32, mask uint32, ok bool) {
	slash := strings.IndexByte(pattern, '/')
	if slash < 0 {
		return 0, 0, false
	}

	base, ok = parseIPv4(pattern[:slash])
	if !ok {
		return 0, 0, false
	}

	prefixLen, err := strconv.Atoi(pattern[slash+1:])
	if err != nil || prefixLen < 0 || prefixLen > 32 {
		return 0, 0, false
	}

	mask = ^uint32(0) << (32 - uint(prefixLen))
	if prefixLen == 0 {
		mask = 0
	}
	return base, mask, true
}
